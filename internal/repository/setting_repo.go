package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vyntrixhost/portal_go_server/internal/model"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get 按 key 读取配置。key 是 MySQL 保留字，
// 条件走结构体让方言自行加引号
func (r *SettingRepository) Get(key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.Where(&model.Setting{Key: key}).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert 按 key 写入配置，已存在则覆盖 value
func (r *SettingRepository) Upsert(key, value string) error {
	setting := model.Setting{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

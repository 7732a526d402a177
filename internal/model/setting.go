package model

import (
	"time"
)

// SettingKeyMercadoPagoToken MercadoPago 访问令牌的配置键
const SettingKeyMercadoPagoToken = "mercado_pago_token"

type Setting struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:50;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

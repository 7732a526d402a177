package service

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
)

// SettingService 持有支付令牌的内存缓存，订单创建走读缓存，
// 后台更新令牌后立即生效
type SettingService struct {
	settingRepo *repository.SettingRepository

	mu               sync.RWMutex
	mercadoPagoToken string
}

func NewSettingService(settingRepo *repository.SettingRepository) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
	}
}

// LoadToken 启动时或手动刷新时从库里读取令牌。
// 配置行不存在不算错误，缓存置空
func (s *SettingService) LoadToken() error {
	setting, err := s.settingRepo.Get(model.SettingKeyMercadoPagoToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.setToken("")
			return nil
		}
		return err
	}

	s.setToken(setting.Value)
	return nil
}

// MercadoPagoToken 读取缓存的支付令牌。
// 缓存为空时回源重读，未配置时为空串
func (s *SettingService) MercadoPagoToken() string {
	s.mu.RLock()
	token := s.mercadoPagoToken
	s.mu.RUnlock()
	if token != "" {
		return token
	}

	if err := s.LoadToken(); err != nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mercadoPagoToken
}

// Invalidate 清空令牌缓存，下次读取回源
func (s *SettingService) Invalidate() {
	s.setToken("")
}

// UpdateMercadoPagoToken 更新令牌并刷新缓存
func (s *SettingService) UpdateMercadoPagoToken(token string) error {
	if err := s.settingRepo.Upsert(model.SettingKeyMercadoPagoToken, token); err != nil {
		return err
	}
	s.setToken(token)
	return nil
}

func (s *SettingService) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mercadoPagoToken = token
}

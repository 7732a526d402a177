package service

import (
	"errors"
	"sync"
	"time"

	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/model/dto"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
)

var ErrNotAdmin = errors.New("Permissão negada")

// snapshot 后台四个集合的一次性快照
type snapshot struct {
	users            []model.User
	orders           []model.Order
	affiliates       []model.Affiliate
	withdrawRequests []model.WithdrawRequest
	loadedAt         time.Time
}

// AdminService 后台数据服务。四个集合并发拉取后整体缓存，
// 订单/提现等变更后刷新，登出时清空
type AdminService struct {
	userRepo      *repository.UserRepository
	orderRepo     *repository.OrderRepository
	affiliateRepo *repository.AffiliateRepository
	withdrawRepo  *repository.WithdrawRepository

	mu   sync.RWMutex
	snap *snapshot
}

func NewAdminService(
	userRepo *repository.UserRepository,
	orderRepo *repository.OrderRepository,
	affiliateRepo *repository.AffiliateRepository,
	withdrawRepo *repository.WithdrawRepository,
) *AdminService {
	return &AdminService{
		userRepo:      userRepo,
		orderRepo:     orderRepo,
		affiliateRepo: affiliateRepo,
		withdrawRepo:  withdrawRepo,
	}
}

// Overview 返回后台总览，缓存为空时先加载。仅限 admin
func (s *AdminService) Overview(actor *model.User) (*dto.AdminOverviewResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAdmin
	}

	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap == nil {
		var err error
		snap, err = s.load()
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.snap = snap
		s.mu.Unlock()
	}

	return &dto.AdminOverviewResponse{
		Users:            snap.users,
		Orders:           snap.orders,
		Affiliates:       snap.affiliates,
		WithdrawRequests: snap.withdrawRequests,
		LoadedAt:         snap.loadedAt.Format(time.RFC3339),
	}, nil
}

// Refresh 重新加载快照。非 admin 调用是空操作，不会触发任何查询
func (s *AdminService) Refresh(actor *model.User) error {
	if !actor.IsAdmin() {
		return nil
	}

	snap, err := s.load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Invalidate 清空全部缓存集合（登出转移）
func (s *AdminService) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

// HasCache 当前是否持有快照
func (s *AdminService) HasCache() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil
}

// load 四个集合相互独立，并发拉取
func (s *AdminService) load() (*snapshot, error) {
	var (
		wg   sync.WaitGroup
		errs [4]error
		snap snapshot
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		snap.users, errs[0] = s.userRepo.ListAll()
	}()
	go func() {
		defer wg.Done()
		snap.orders, errs[1] = s.orderRepo.ListAll()
	}()
	go func() {
		defer wg.Done()
		snap.affiliates, errs[2] = s.affiliateRepo.ListAll()
	}()
	go func() {
		defer wg.Done()
		snap.withdrawRequests, errs[3] = s.withdrawRepo.ListAll()
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	snap.loadedAt = time.Now()
	return &snap, nil
}

package service

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vyntrixhost/portal_go_server/config"
	"github.com/vyntrixhost/portal_go_server/internal/model"
	"github.com/vyntrixhost/portal_go_server/internal/model/dto"
	"github.com/vyntrixhost/portal_go_server/internal/pkg/jwt"
	"github.com/vyntrixhost/portal_go_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("Este email já está cadastrado")
	ErrInvalidCredentials = errors.New("Email ou senha incorretos")
	ErrUserNotFound       = errors.New("Usuário não encontrado")
)

type AuthService struct {
	userRepo      *repository.UserRepository
	affiliateRepo *repository.AffiliateRepository
	cfg           *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, affiliateRepo *repository.AffiliateRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		affiliateRepo: affiliateRepo,
		cfg:           cfg,
	}
}

// Register 用户注册。推广码先落库再记点击，
// 点击计数失败只记日志，不影响注册结果
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 检查邮箱是否存在
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleClient,
	}
	if req.ReferralCode != "" {
		code := req.ReferralCode
		user.ReferredByCode = &code
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if req.ReferralCode != "" {
		if err := s.affiliateRepo.IncrementClicks(req.ReferralCode); err != nil {
			log.Printf("Failed to increment affiliate clicks for code %s: %v", req.ReferralCode, err)
		}
	}

	return &dto.RegisterResponse{
		UserID: user.ID,
	}, nil
}

// Login 用户登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 生成 Token
	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  s.buildUserInfo(user),
	}, nil
}

// GetUserByID 根据 ID 获取用户，供认证中间件之后的 profile 查询使用。
// 已登录但 profile 不存在视为无效会话
func (s *AuthService) GetUserByID(id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Profile 当前登录用户的展示信息
func (s *AuthService) Profile(id int64) (*dto.UserInfo, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	return s.buildUserInfo(user), nil
}

func (s *AuthService) buildUserInfo(user *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if affiliate, err := s.affiliateRepo.GetByUserID(user.ID); err == nil {
		info.AffiliateCode = affiliate.Code
	}

	return info
}

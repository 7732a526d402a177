package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/vyntrixhost/portal_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	nano := time.Now().UnixNano()
	user := &model.User{
		Name:         fmt.Sprintf("Test User %d", nano%10000),
		Email:        fmt.Sprintf("test_%d@example.com", nano),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Role:         model.RoleClient,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithName 设置姓名
func WithName(name string) func(*model.User) {
	return func(u *model.User) {
		u.Name = name
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// WithReferredBy 设置注册来源推广码
func WithReferredBy(code string) func(*model.User) {
	return func(u *model.User) {
		u.ReferredByCode = &code
	}
}

// TestOrder 创建测试订单
func TestOrder(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Order)) *model.Order {
	t.Helper()

	order := &model.Order{
		UserID:    userID,
		UserName:  "Test User",
		UserEmail: "test@example.com",
		Plan:      "Prata (Mensal)",
		Price:     30.00,
		Status:    model.OrderStatusPending,
	}

	for _, opt := range opts {
		opt(order)
	}

	if err := db.Create(order).Error; err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}

	return order
}

// WithOrderStatus 设置订单状态
func WithOrderStatus(status string) func(*model.Order) {
	return func(o *model.Order) {
		o.Status = status
	}
}

// WithPlan 设置套餐
func WithPlan(plan string, price float64) func(*model.Order) {
	return func(o *model.Order) {
		o.Plan = plan
		o.Price = price
	}
}

// WithPaymentID 设置支付编号
func WithPaymentID(paymentID string) func(*model.Order) {
	return func(o *model.Order) {
		o.PaymentID = &paymentID
	}
}

// WithCreatedAt 设置创建时间
func WithCreatedAt(createdAt time.Time) func(*model.Order) {
	return func(o *model.Order) {
		o.CreatedAt = createdAt
	}
}

// TestAffiliate 创建测试推广账户
func TestAffiliate(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Affiliate)) *model.Affiliate {
	t.Helper()

	affiliate := &model.Affiliate{
		UserID:   userID,
		UserName: "Test User",
		Code:     fmt.Sprintf("REF%d", time.Now().UnixNano()%1000000),
	}

	for _, opt := range opts {
		opt(affiliate)
	}

	if err := db.Create(affiliate).Error; err != nil {
		t.Fatalf("Failed to create test affiliate: %v", err)
	}

	return affiliate
}

// WithCode 设置推广码
func WithCode(code string) func(*model.Affiliate) {
	return func(a *model.Affiliate) {
		a.Code = code
	}
}

// WithBalance 设置余额
func WithBalance(balance float64) func(*model.Affiliate) {
	return func(a *model.Affiliate) {
		a.Balance = balance
	}
}

// WithClicks 设置点击数
func WithClicks(clicks int) func(*model.Affiliate) {
	return func(a *model.Affiliate) {
		a.Clicks = clicks
	}
}

// TestReferral 创建测试转化记录
func TestReferral(t *testing.T, db *gorm.DB, affiliateID, orderID int64, commission float64) *model.Referral {
	t.Helper()

	referral := &model.Referral{
		AffiliateID:  affiliateID,
		ReferredName: "Referred User",
		Plan:         "Prata (Mensal)",
		Commission:   commission,
		OrderID:      orderID,
	}

	if err := db.Create(referral).Error; err != nil {
		t.Fatalf("Failed to create test referral: %v", err)
	}

	return referral
}

// TestWithdraw 创建测试提现申请
func TestWithdraw(t *testing.T, db *gorm.DB, userID int64, amount float64) *model.WithdrawRequest {
	t.Helper()

	request := &model.WithdrawRequest{
		UserID:      userID,
		UserName:    "Test User",
		Amount:      amount,
		Status:      model.WithdrawStatusPending,
		RequestDate: time.Now(),
	}

	if err := db.Create(request).Error; err != nil {
		t.Fatalf("Failed to create test withdraw request: %v", err)
	}

	return request
}

// TestSetting 写入测试配置
func TestSetting(t *testing.T, db *gorm.DB, key, value string) *model.Setting {
	t.Helper()

	setting := &model.Setting{Key: key, Value: value}
	if err := db.Create(setting).Error; err != nil {
		t.Fatalf("Failed to create test setting: %v", err)
	}

	return setting
}

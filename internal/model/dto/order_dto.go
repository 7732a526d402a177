package dto

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Plan     string  `json:"plan" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	IsAnnual bool    `json:"is_annual"`
}

// CreateOrderResponse 下单响应，CheckoutURL 是 MercadoPago 的跳转地址，
// 跳转由前端负责
type CreateOrderResponse struct {
	OrderID     int64  `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
}

// UpdateOrderStatusRequest 后台订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status     string  `json:"status" binding:"required,oneof=pending paid completed cancelled"`
	AccessInfo *string `json:"access_info,omitempty"`
}

// PlanInfo 套餐信息（公开接口）
type PlanInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MonthlyPrice float64  `json:"monthly_price"`
	AnnualPrice  float64  `json:"annual_price"`
	Features     []string `json:"features"`
	IsPopular    bool     `json:"is_popular"`
}

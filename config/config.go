package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	CORS        CORSConfig        `mapstructure:"cors"`
	MercadoPago MercadoPagoConfig `mapstructure:"mercadopago"`
	Affiliate   AffiliateConfig   `mapstructure:"affiliate"`
	Queue       QueueConfig       `mapstructure:"queue"`
	Email       EmailConfig       `mapstructure:"email"`
	Orders      OrdersConfig      `mapstructure:"orders"`
	Plans       []PlanConfig      `mapstructure:"plans"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	// BaseURL 对外访问地址，用于支付回调和推广链接
	BaseURL string `mapstructure:"base_url"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type MercadoPagoConfig struct {
	APIBaseURL string `mapstructure:"api_base_url"`
}

type AffiliateConfig struct {
	// CommissionRate 首单佣金比例（0.25 = 25%）
	CommissionRate float64 `mapstructure:"commission_rate"`
	// MinWithdraw 最低提现金额（BRL）
	MinWithdraw float64 `mapstructure:"min_withdraw"`
}

type QueueConfig struct {
	PaymentQueue string `mapstructure:"payment_queue"`
	MaxWorkers   int    `mapstructure:"max_workers"`
}

type EmailConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type OrdersConfig struct {
	// PendingExpireDays 未支付订单保留天数，超过后自动取消
	PendingExpireDays int `mapstructure:"pending_expire_days"`
}

type PlanConfig struct {
	Name         string   `mapstructure:"name"`
	Description  string   `mapstructure:"description"`
	MonthlyPrice float64  `mapstructure:"monthly_price"`
	AnnualPrice  float64  `mapstructure:"annual_price"`
	Features     []string `mapstructure:"features"`
	IsPopular    bool     `mapstructure:"is_popular"`
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	// 检查 config.local.yaml 是否存在
	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// PlanByName 按名称查找套餐，找不到返回 nil
func (c *Config) PlanByName(name string) *PlanConfig {
	for i := range c.Plans {
		if c.Plans[i].Name == name {
			return &c.Plans[i]
		}
	}
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"restaurant/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AppURL         string
	RestaurantName string
	Currency       string
	DeliveryFee    decimal.Decimal

	TokenMaxAttempts int

	NotificationConcurrency int
	NotificationTimeout     time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	StripeSecretKey     string
	StripeWebhookSecret string

	// RabbitMQURL empty disables status event publishing.
	RabbitMQURL string

	PaymentExpiryAfter    time.Duration
	PaymentExpirySchedule string
}

// SMTPEnabled reports whether outgoing email is configured.
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPassword != ""
}

// DSN is the PostgreSQL connection string for GORM.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "restaurant")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("APP_URL", "http://localhost:3000")
	v.SetDefault("RESTAURANT_NAME", "Pizza Mania")
	v.SetDefault("CURRENCY", "eur")
	v.SetDefault("DELIVERY_FEE", "3.99")

	v.SetDefault("TOKEN_MAX_ATTEMPTS", 3)

	v.SetDefault("NOTIFICATION_CONCURRENCY", 8)
	v.SetDefault("NOTIFICATION_TIMEOUT", "30s")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SMTP_FROM", "")

	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_WEBHOOK_SECRET", "")

	v.SetDefault("RABBITMQ_URL", "")

	v.SetDefault("PAYMENT_EXPIRY_AFTER", "30m")
	v.SetDefault("PAYMENT_EXPIRY_SCHEDULE", "*/5 * * * *")
}

// LoadConfig reads settings from the environment. envFile, when present, is
// loaded first; variables already set in the environment win.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	deliveryFee, err := decimal.NewFromString(v.GetString("DELIVERY_FEE"))
	if err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("DELIVERY_FEE", err)
	}
	notificationTimeout, err := time.ParseDuration(v.GetString("NOTIFICATION_TIMEOUT"))
	if err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("NOTIFICATION_TIMEOUT", err)
	}
	expiryAfter, err := time.ParseDuration(v.GetString("PAYMENT_EXPIRY_AFTER"))
	if err != nil {
		return Config{}, errs.NewValueIsInvalidErrorWithCause("PAYMENT_EXPIRY_AFTER", err)
	}

	cfg := Config{
		HTTPPort: v.GetString("HTTP_PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),

		AppURL:         v.GetString("APP_URL"),
		RestaurantName: v.GetString("RESTAURANT_NAME"),
		Currency:       v.GetString("CURRENCY"),
		DeliveryFee:    deliveryFee,

		TokenMaxAttempts: v.GetInt("TOKEN_MAX_ATTEMPTS"),

		NotificationConcurrency: v.GetInt("NOTIFICATION_CONCURRENCY"),
		NotificationTimeout:     notificationTimeout,

		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),
		SMTPUser:     v.GetString("SMTP_USER"),
		SMTPPassword: v.GetString("SMTP_PASS"),
		SMTPFrom:     v.GetString("SMTP_FROM"),

		StripeSecretKey:     v.GetString("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),

		RabbitMQURL: v.GetString("RABBITMQ_URL"),

		PaymentExpiryAfter:    expiryAfter,
		PaymentExpirySchedule: v.GetString("PAYMENT_EXPIRY_SCHEDULE"),
	}
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error
	if c.HTTPPort == "" {
		errList = append(errList, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if _, err := url.ParseRequestURI(c.AppURL); err != nil {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("APP_URL", err))
	}
	if c.DeliveryFee.IsNegative() {
		errList = append(errList, errs.NewValueIsOutOfRangeError("DELIVERY_FEE", c.DeliveryFee, 0, "∞"))
	}
	if c.TokenMaxAttempts < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("TOKEN_MAX_ATTEMPTS", c.TokenMaxAttempts, 1, "∞"))
	}
	if c.PaymentExpiryAfter <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("PAYMENT_EXPIRY_AFTER",
			fmt.Errorf("%s is not a positive duration", c.PaymentExpiryAfter)))
	}
	return errors.Join(errList...)
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	SMTP         SMTPConfig
	Storage      StorageConfig
	Policy       PolicyConfig
	OAuth2Google OAuth2GoogleConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

// PolicyConfig holds the organization-wide leave policy values. It is loaded
// once at startup and passed by value into the quota resolver and the
// reminder job, so recomputations always see the current configuration.
type PolicyConfig struct {
	// Annual-leave entitlement by tenure tier, in days per year.
	AnnualQuotaUnderFiveYears int
	AnnualQuotaFiveYearsPlus  int
	// Fixed weekly off-day excluded from business-day counts.
	WeeklyOffDay time.Weekday
	// How many days ahead the holiday reminder job looks.
	ReminderLeadDays int
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "staffhub-leave"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", "localhost"),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@staffhub.local"),
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	// Leave policy configuration
	quotaJunior, err := strconv.Atoi(getEnv("POLICY_ANNUAL_QUOTA_UNDER_5Y", "21"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_ANNUAL_QUOTA_UNDER_5Y: %w", err)
	}
	quotaSenior, err := strconv.Atoi(getEnv("POLICY_ANNUAL_QUOTA_5Y_PLUS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_ANNUAL_QUOTA_5Y_PLUS: %w", err)
	}
	reminderLead, err := strconv.Atoi(getEnv("POLICY_HOLIDAY_REMINDER_LEAD_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_HOLIDAY_REMINDER_LEAD_DAYS: %w", err)
	}
	offDay, err := parseWeekday(getEnv("POLICY_WEEKLY_OFF_DAY", "Friday"))
	if err != nil {
		return nil, err
	}

	config.Policy = PolicyConfig{
		AnnualQuotaUnderFiveYears: quotaJunior,
		AnnualQuotaFiveYearsPlus:  quotaSenior,
		WeeklyOffDay:              offDay,
		ReminderLeadDays:          reminderLead,
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Policy.AnnualQuotaUnderFiveYears < 0 || c.Policy.AnnualQuotaFiveYearsPlus < 0 {
		return fmt.Errorf("annual quota policy values must not be negative")
	}
	if c.Policy.ReminderLeadDays < 0 {
		return fmt.Errorf("POLICY_HOLIDAY_REMINDER_LEAD_DAYS must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid POLICY_WEEKLY_OFF_DAY: %q", name)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}

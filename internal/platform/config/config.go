package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MpesaConfig configures the M-Pesa Daraja STK push client.
type MpesaConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	PassKey        string
	CallbackURL    string
	Timeout        time.Duration
}

// MailConfig configures the SMTP notification sender.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// StorageConfig configures story image hosting on S3.
type StorageConfig struct {
	Bucket        string
	Region        string
	PublicBaseURL string
}

// DBPoolConfig sizes the PostgreSQL connection pool.
type DBPoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	DBPool            DBPoolConfig
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Used to build links in emails.
	FrontendBaseURL    string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
	// AuthRateLimit is a ulule/limiter formatted rate applied per IP to login, register
	// and forgot-password.
	AuthRateLimit    string
	PasswordResetTTL time.Duration

	Mpesa   MpesaConfig
	Mail    MailConfig
	Storage StorageConfig
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PGSQL_MAX_CONNS", 10)
	viper.SetDefault("PGSQL_MIN_CONNS", 0)
	viper.SetDefault("PGSQL_MAX_CONN_IDLE_TIME", "30m")
	viper.SetDefault("PGSQL_CONNECT_TIMEOUT", "10s")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "msaada-backend")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("PASSWORD_RESET_TTL", "24h")

	viper.SetDefault("MPESA_BASE_URL", "https://sandbox.safaricom.co.ke")
	viper.SetDefault("MPESA_CONSUMER_KEY", "")
	viper.SetDefault("MPESA_CONSUMER_SECRET", "")
	viper.SetDefault("MPESA_SHORTCODE", "174379")
	viper.SetDefault("MPESA_PASSKEY", "")
	viper.SetDefault("MPESA_CALLBACK_URL", "")
	viper.SetDefault("MPESA_TIMEOUT", "30s")

	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("MAIL_FROM", "")

	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_REGION", "eu-west-1")
	viper.SetDefault("S3_PUBLIC_BASE_URL", "")

	// Environment variables override defaults and .env values.
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL: viper.GetString("PGSQL_URL"),
		DBPool: DBPoolConfig{
			MaxConns:        viper.GetInt32("PGSQL_MAX_CONNS"),
			MinConns:        viper.GetInt32("PGSQL_MIN_CONNS"),
			MaxConnIdleTime: durationOrDefault("PGSQL_MAX_CONN_IDLE_TIME", 30*time.Minute),
			ConnectTimeout:  durationOrDefault("PGSQL_CONNECT_TIMEOUT", 10*time.Second),
		},
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:    viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		JWTIssuer:         viper.GetString("JWT_ISSUER"),
		FrontendBaseURL:   strings.TrimRight(viper.GetString("FRONTEND_BASE_URL"), "/"),
		PosthogAPIKey:     viper.GetString("POSTHOG_API_KEY"),
		AuthRateLimit:     viper.GetString("LOGIN_RATE_LIMIT"),
		JWTExpiryDuration: durationOrDefault("JWT_EXPIRY_DURATION", time.Hour),
		PasswordResetTTL:  durationOrDefault("PASSWORD_RESET_TTL", 24*time.Hour),
		Mpesa: MpesaConfig{
			BaseURL:        strings.TrimRight(viper.GetString("MPESA_BASE_URL"), "/"),
			ConsumerKey:    viper.GetString("MPESA_CONSUMER_KEY"),
			ConsumerSecret: viper.GetString("MPESA_CONSUMER_SECRET"),
			ShortCode:      viper.GetString("MPESA_SHORTCODE"),
			PassKey:        viper.GetString("MPESA_PASSKEY"),
			CallbackURL:    viper.GetString("MPESA_CALLBACK_URL"),
			Timeout:        durationOrDefault("MPESA_TIMEOUT", 30*time.Second),
		},
		Mail: MailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("MAIL_FROM"),
		},
		Storage: StorageConfig{
			Bucket:        viper.GetString("S3_BUCKET"),
			Region:        viper.GetString("S3_REGION"),
			PublicBaseURL: strings.TrimRight(viper.GetString("S3_PUBLIC_BASE_URL"), "/"),
		},
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.Mpesa.ConsumerKey == "" || cfg.Mpesa.PassKey == "" || cfg.Mpesa.CallbackURL == "" {
		log.Println("Warning: MPESA_CONSUMER_KEY, MPESA_PASSKEY or MPESA_CALLBACK_URL not set. Payments will fail.")
	}
	if cfg.Mail.Username == "" {
		log.Println("Warning: SMTP_USERNAME not set. Emails will not be delivered.")
	}
	if cfg.Storage.Bucket == "" {
		log.Println("Warning: S3_BUCKET not set. Story images cannot be uploaded.")
	}

	return cfg, nil
}

// durationOrDefault parses key as a duration such as "60m" or "1h", falling back to def.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

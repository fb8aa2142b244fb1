package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port       string
	APIBaseURL string
	APITimeout time.Duration

	DBDSN          string
	SessionBackend string // sql | redis | memory
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string

	FirebaseAPIKey  string
	FirebaseAuthURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SalesEmail   string
	MailFrom     string

	BodyLimitMB  int
	TemplatesDir string
	StaticDir    string
	LogFile      string
	CookieSecure bool
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:5000")
	v.SetDefault("API_TIMEOUT", "0s")
	v.SetDefault("DB_DSN", "nkeinfinity.db")
	v.SetDefault("SESSION_BACKEND", "sql")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("FIREBASE_AUTH_URL", "https://identitytoolkit.googleapis.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM", "noreply@nkeinfinity.in")
	v.SetDefault("SALES_EMAIL", "snke.infinity@gmail.com")
	v.SetDefault("BODY_LIMIT_MB", 50)
	v.SetDefault("TEMPLATES_DIR", "./web/templates")
	v.SetDefault("STATIC_DIR", "./web/static")
	v.SetDefault("LOG_FILE", "./nkeinfinity.log")
	v.SetDefault("COOKIE_SECURE", false)
}

// Load reads .env (if present), an optional CONFIG_FILE, then the process
// environment. Environment variables win.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env loaded: %v", err)
	}
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	if f := os.Getenv("CONFIG_FILE"); f != "" {
		v.SetConfigFile(f)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("[config] could not read %s: %v", f, err)
		}
	}
	cfg := fromViper(v)
	log.Printf("[config] PORT=%s API_BASE_URL=%s DB_DSN=%s SESSION_BACKEND=%s FIREBASE=%t SMTP=%t LOG_FILE=%s",
		cfg.Port, cfg.APIBaseURL, cfg.DBDSN, cfg.SessionBackend, cfg.FirebaseAPIKey != "", cfg.SMTPHost != "", cfg.LogFile)
	return cfg
}

func fromViper(v *viper.Viper) Config {
	return Config{
		Port:            v.GetString("PORT"),
		APIBaseURL:      v.GetString("API_BASE_URL"),
		APITimeout:      v.GetDuration("API_TIMEOUT"),
		DBDSN:           v.GetString("DB_DSN"),
		SessionBackend:  v.GetString("SESSION_BACKEND"),
		SessionTTL:      v.GetDuration("SESSION_TTL"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		FirebaseAPIKey:  v.GetString("FIREBASE_API_KEY"),
		FirebaseAuthURL: v.GetString("FIREBASE_AUTH_URL"),
		SMTPHost:        v.GetString("SMTP_HOST"),
		SMTPPort:        v.GetInt("SMTP_PORT"),
		SMTPUsername:    v.GetString("SMTP_USERNAME"),
		SMTPPassword:    v.GetString("SMTP_PASSWORD"),
		SalesEmail:      v.GetString("SALES_EMAIL"),
		MailFrom:        v.GetString("MAIL_FROM"),
		BodyLimitMB:     v.GetInt("BODY_LIMIT_MB"),
		TemplatesDir:    v.GetString("TEMPLATES_DIR"),
		StaticDir:       v.GetString("STATIC_DIR"),
		LogFile:         v.GetString("LOG_FILE"),
		CookieSecure:    v.GetBool("COOKIE_SECURE"),
	}
}

package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DB struct {
	Driver     string
	DSN        string
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

// Enabled reports whether cover image uploads are configured.
func (m MinIO) Enabled() bool {
	return m.Endpoint != ""
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	Timeout  time.Duration
}

type Config struct {
	ServerPort      int
	DB              DB
	MinIO           MinIO
	SMTP            SMTP
	SessionSecret   string
	SessionDuration time.Duration
	CookieSecure    bool
	MaxUploadSize   int64
}

var defaults = map[string]any{
	"SERVER_PORT": 8080,

	"DB_DRIVER":   "postgres",
	"DB_DSN":      "",
	"DB_HOST":     "localhost",
	"DB_PORT":     "5432",
	"DB_USER":     "postgres",
	"DB_PASSWORD": "password",
	"DB_NAME":     "blog",
	"DB_SSLMODE":  "disable",

	"MINIO_ENDPOINT":    "",
	"MINIO_ACCESS_KEY":  "minioadmin",
	"MINIO_SECRET_KEY":  "minioadmin",
	"MINIO_BUCKET_NAME": "images",
	"MINIO_USE_SSL":     false,
	"MINIO_REGION":      "us-east-1",
	"MINIO_PUBLIC_URL":  "http://localhost:9000",

	"SMTP_HOST":     "smtp.gmail.com",
	"SMTP_PORT":     587,
	"SMTP_USERNAME": "",
	"SMTP_PASSWORD": "",
	"SMTP_FROM":     "",
	"SMTP_TO":       "",
	"SMTP_TIMEOUT":  "10s",

	"SESSION_SECRET":   "",
	"SESSION_DURATION": "168h",
	"COOKIE_SECURE":    false,
	"MAX_UPLOAD_SIZE":  int64(10 * 1024 * 1024),
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

func loadDB(v *viper.Viper) DB {
	return DB{
		Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
		DSN:        v.GetString("DB_DSN"),
		DbHOST:     v.GetString("DB_HOST"),
		DbPORT:     v.GetString("DB_PORT"),
		DbUSER:     v.GetString("DB_USER"),
		DbPASSWORD: v.GetString("DB_PASSWORD"),
		DbNAME:     v.GetString("DB_NAME"),
		DbSSLMODE:  v.GetString("DB_SSLMODE"),
	}
}

func loadMinIO(v *viper.Viper) MinIO {
	return MinIO{
		Endpoint:   v.GetString("MINIO_ENDPOINT"),
		AccessKey:  v.GetString("MINIO_ACCESS_KEY"),
		SecretKey:  v.GetString("MINIO_SECRET_KEY"),
		BucketName: v.GetString("MINIO_BUCKET_NAME"),
		UseSSL:     v.GetBool("MINIO_USE_SSL"),
		Region:     v.GetString("MINIO_REGION"),
		PublicURL:  strings.TrimSuffix(v.GetString("MINIO_PUBLIC_URL"), "/"),
	}
}

func loadSMTP(v *viper.Viper) SMTP {
	from := v.GetString("SMTP_FROM")
	if from == "" {
		from = v.GetString("SMTP_USERNAME")
	}

	return SMTP{
		Host:     v.GetString("SMTP_HOST"),
		Port:     v.GetInt("SMTP_PORT"),
		Username: v.GetString("SMTP_USERNAME"),
		Password: v.GetString("SMTP_PASSWORD"),
		From:     from,
		To:       v.GetString("SMTP_TO"),
		Timeout:  durationOr(v.GetDuration("SMTP_TIMEOUT"), 10*time.Second),
	}
}

// LoadConfig reads envFile (if present) into the process environment and
// builds the configuration from environment variables and defaults.
func LoadConfig(envFile string) *Config {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Warning: %s not loaded, using environment variables", envFile)
	}

	v := newViper()

	return &Config{
		ServerPort:      v.GetInt("SERVER_PORT"),
		DB:              loadDB(v),
		MinIO:           loadMinIO(v),
		SMTP:            loadSMTP(v),
		SessionSecret:   v.GetString("SESSION_SECRET"),
		SessionDuration: durationOr(v.GetDuration("SESSION_DURATION"), 168*time.Hour),
		CookieSecure:    v.GetBool("COOKIE_SECURE"),
		MaxUploadSize:   sizeOr(v.GetInt64("MAX_UPLOAD_SIZE"), 10*1024*1024),
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is not set")
	}
	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}

	switch c.DB.Driver {
	case "postgres", "pgx", "mysql", "sqlite3":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}

	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.ServerPort)
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}

func sizeOr(value, fallback int64) int64 {
	if value <= 0 {
		return fallback
	}
	return value
}

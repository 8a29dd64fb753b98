package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	LLM    LLMConfig
	OCR    OCRConfig
	Upload UploadConfig
	Export ExportConfig
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LLMConfig holds chat-completion gateway settings.
type LLMConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	TimeoutSecs int     `mapstructure:"timeout_secs"`
}

// SupportedModels lists the model ids the scoring pipeline is validated for.
var SupportedModels = []string{"gpt-4o", "gpt-4-turbo"}

// OCRConfig holds the external text-extraction tool settings.
type OCRConfig struct {
	Pdftotext string `mapstructure:"pdftotext"`
	Pdftoppm  string `mapstructure:"pdftoppm"`
	Tesseract string `mapstructure:"tesseract"`
	Language  string `mapstructure:"language"`
	DPI       int    `mapstructure:"dpi"`
	MaxPages  int    `mapstructure:"max_pages"`
}

// UploadConfig holds upload validation settings.
type UploadConfig struct {
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	TempDir       string `mapstructure:"temp_dir"`
}

// ExportConfig holds artifact output settings.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the HEALTHSYNC prefix.
// The LLM API key additionally falls back to OPENAI_API_KEY so local setups
// that already export it keep working.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HEALTHSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "healthsync")
	v.SetDefault("db.password", "healthsync_secret")
	v.SetDefault("db.name", "healthsync_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout_secs", 120)

	// OCR defaults
	v.SetDefault("ocr.pdftotext", "pdftotext")
	v.SetDefault("ocr.pdftoppm", "pdftoppm")
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.max_pages", 0)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 25)
	v.SetDefault("upload.temp_dir", "")

	// Export defaults
	v.SetDefault("export.dir", "./exports")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "HEALTHSYNC_SERVER_PORT",
		"server.read_timeout":     "HEALTHSYNC_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "HEALTHSYNC_SERVER_WRITE_TIMEOUT",
		"server.environment":      "HEALTHSYNC_SERVER_ENVIRONMENT",
		"db.host":                 "HEALTHSYNC_DB_HOST",
		"db.port":                 "HEALTHSYNC_DB_PORT",
		"db.user":                 "HEALTHSYNC_DB_USER",
		"db.password":             "HEALTHSYNC_DB_PASSWORD",
		"db.name":                 "HEALTHSYNC_DB_NAME",
		"db.sslmode":              "HEALTHSYNC_DB_SSLMODE",
		"db.max_open":             "HEALTHSYNC_DB_MAX_OPEN",
		"db.max_idle":             "HEALTHSYNC_DB_MAX_IDLE",
		"llm.api_key":             "HEALTHSYNC_LLM_API_KEY",
		"llm.model":               "HEALTHSYNC_LLM_MODEL",
		"llm.temperature":         "HEALTHSYNC_LLM_TEMPERATURE",
		"llm.timeout_secs":        "HEALTHSYNC_LLM_TIMEOUT_SECS",
		"ocr.pdftotext":           "HEALTHSYNC_OCR_PDFTOTEXT",
		"ocr.pdftoppm":            "HEALTHSYNC_OCR_PDFTOPPM",
		"ocr.tesseract":           "HEALTHSYNC_OCR_TESSERACT",
		"ocr.language":            "HEALTHSYNC_OCR_LANGUAGE",
		"ocr.dpi":                 "HEALTHSYNC_OCR_DPI",
		"ocr.max_pages":           "HEALTHSYNC_OCR_MAX_PAGES",
		"upload.max_file_size_mb": "HEALTHSYNC_UPLOAD_MAX_FILE_SIZE_MB",
		"upload.temp_dir":         "HEALTHSYNC_UPLOAD_TEMP_DIR",
		"export.dir":              "HEALTHSYNC_EXPORT_DIR",
		"log.level":               "HEALTHSYNC_LOG_LEVEL",
		"log.format":              "HEALTHSYNC_LOG_FORMAT",
		"cors.allowed_origins":    "HEALTHSYNC_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if HEALTHSYNC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HEALTHSYNC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}

	apiKey := v.GetString("llm.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.LLM = LLMConfig{
		APIKey:      apiKey,
		Model:       v.GetString("llm.model"),
		Temperature: v.GetFloat64("llm.temperature"),
		TimeoutSecs: v.GetInt("llm.timeout_secs"),
	}
	if !isSupportedModel(cfg.LLM.Model) {
		return nil, fmt.Errorf("unsupported LLM model %q; supported: %s",
			cfg.LLM.Model, strings.Join(SupportedModels, ", "))
	}

	cfg.OCR = OCRConfig{
		Pdftotext: v.GetString("ocr.pdftotext"),
		Pdftoppm:  v.GetString("ocr.pdftoppm"),
		Tesseract: v.GetString("ocr.tesseract"),
		Language:  v.GetString("ocr.language"),
		DPI:       v.GetInt("ocr.dpi"),
		MaxPages:  v.GetInt("ocr.max_pages"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
		TempDir:       v.GetString("upload.temp_dir"),
	}
	cfg.Export = ExportConfig{
		Dir: v.GetString("export.dir"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}

func isSupportedModel(model string) bool {
	for _, m := range SupportedModels {
		if m == model {
			return true
		}
	}
	return false
}

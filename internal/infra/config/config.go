package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const minSecretKeyLen = 16

type Config struct {
	HTTPAddress string

	ServerBaseURL  string
	DownloadFolder string
	QRDirectory    string
	FillColor      string
	BackColor      string

	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
	Audience       string

	AdminUser         string
	AdminPassword     string
	AdminPasswordHash string
	PasswordPepper    string

	AllowedOrigins   []string
	AllowCredentials bool

	LogLevel string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDRESS", "")
	v.SetDefault("PORT", "8000")
	v.SetDefault("SERVER_BASE_URL", "http://localhost:8000")
	v.SetDefault("SERVER_DOWNLOAD_FOLDER", "downloads")
	v.SetDefault("QR_CODE_DIR", "./qr_codes")
	v.SetDefault("FILL_COLOR", "red")
	v.SetDefault("BACK_COLOR", "white")
	v.SetDefault("ACCESS_TOKEN_TTL", "30m")
	v.SetDefault("ADMIN_USER", "admin")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("ALLOW_CREDENTIALS", false)
	v.SetDefault("LOG_LEVEL", "debug")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	ttl, err := time.ParseDuration(v.GetString("ACCESS_TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL: %w", err)
	}

	origins, err := parseOrigins(v.GetString("ALLOWED_ORIGINS"))
	if err != nil {
		return nil, fmt.Errorf("ALLOWED_ORIGINS: %w", err)
	}

	addr := v.GetString("HTTP_ADDRESS")
	if addr == "" {
		addr = ":" + v.GetString("PORT")
	}

	cfg := &Config{
		HTTPAddress:       addr,
		ServerBaseURL:     strings.TrimRight(v.GetString("SERVER_BASE_URL"), "/"),
		DownloadFolder:    strings.Trim(v.GetString("SERVER_DOWNLOAD_FOLDER"), "/"),
		QRDirectory:       v.GetString("QR_CODE_DIR"),
		FillColor:         v.GetString("FILL_COLOR"),
		BackColor:         v.GetString("BACK_COLOR"),
		SecretKey:         v.GetString("SECRET_KEY"),
		AccessTokenTTL:    ttl,
		Issuer:            v.GetString("JWT_ISSUER"),
		Audience:          v.GetString("JWT_AUDIENCE"),
		AdminUser:         v.GetString("ADMIN_USER"),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		PasswordPepper:    v.GetString("PASSWORD_PEPPER"),
		AllowedOrigins:    origins,
		AllowCredentials:  v.GetBool("ALLOW_CREDENTIALS"),
		LogLevel:          v.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case len(c.SecretKey) < minSecretKeyLen:
		return fmt.Errorf("SECRET_KEY must be at least %d bytes", minSecretKeyLen)
	case c.AccessTokenTTL <= 0:
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	case c.AdminUser == "":
		return errors.New("ADMIN_USER is required")
	case c.AdminPassword == "" && c.AdminPasswordHash == "":
		return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	case c.QRDirectory == "":
		return errors.New("QR_CODE_DIR is required")
	case c.DownloadFolder == "":
		return errors.New("SERVER_DOWNLOAD_FOLDER is required")
	}
	return nil
}

// parseOrigins accepts either a JSON array or a comma separated list.
func parseOrigins(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}, nil
	}
	var out []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out, nil
}

// APIPrefix is the versioned root every API route lives under.
const APIPrefix = "/api/v1"

// DefaultQRSize is the module size used when a request leaves it out.
const DefaultQRSize = 10

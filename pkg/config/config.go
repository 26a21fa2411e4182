package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	Catalog struct {
		BaseURL string `envconfig:"CATALOG_BASE_URL" default:"https://api.themoviedb.org/3"`
		Token   string `envconfig:"CATALOG_API_TOKEN"`
	}
	Auth struct {
		JWTSecret          string `envconfig:"AUTH_JWT_SECRET"`
		SessionTTLHours    int    `envconfig:"AUTH_SESSION_TTL_HOURS" default:"24"`
		CookieDomain       string `envconfig:"AUTH_COOKIE_DOMAIN"`
		GoogleClientID     string `envconfig:"AUTH_GOOGLE_CLIENT_ID"`
		GoogleClientSecret string `envconfig:"AUTH_GOOGLE_CLIENT_SECRET"`
		GoogleRedirectURL  string `envconfig:"AUTH_GOOGLE_REDIRECT_URL"`
	}
}

// IsProduction reports whether the app runs in a deployed environment where
// session cookies must be Secure and cross-site.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

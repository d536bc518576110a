package config

import (
	"log"
	"os"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env          string `env:"APP_ENV" env-default:"development"`
		Port         int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl    string `env:"SENTRY_URL"`
		DashboardURL string `env:"DASHBOARD_URL" env-default:"/dashboard"`
	}
	Instagram struct {
		ClientID       string `env:"INSTAGRAM_CLIENT_ID"`
		ClientSecret   string `env:"INSTAGRAM_CLIENT_SECRET"`
		RedirectURI    string `env:"INSTAGRAM_REDIRECT_URI"`
		AuthURL        string `env:"INSTAGRAM_AUTH_URL" env-default:"https://www.instagram.com/oauth/authorize"`
		TokenURL       string `env:"INSTAGRAM_TOKEN_URL" env-default:"https://api.instagram.com/oauth/access_token"`
		GraphURL       string `env:"INSTAGRAM_GRAPH_URL" env-default:"https://graph.instagram.com"`
		TimeoutSeconds int    `env:"INSTAGRAM_TIMEOUT_SECONDS" env-default:"30"`
	}
	RateLimit struct {
		Requests   int `env:"RATE_LIMIT_REQUESTS" env-default:"2"`
		PerSeconds int `env:"RATE_LIMIT_PER_SECONDS" env-default:"1"`
		Burst      int `env:"RATE_LIMIT_BURST" env-default:"10"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}

		var err error
		if _, statErr := os.Stat(".env"); statErr == nil {
			err = cleanenv.ReadConfig(".env", cfg)
		} else {
			err = cleanenv.ReadEnv(cfg)
		}

		if err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

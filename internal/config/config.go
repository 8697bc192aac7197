package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	ClassifierBaseURL string `env:"CLASSIFIER_BASE_URL" envDefault:"https://api-inference.huggingface.co"`
	ClassifierAPIKey  string `env:"CLASSIFIER_API_KEY,required"`
	ClassifierModel   string `env:"CLASSIFIER_MODEL" envDefault:"MoritzLaurer/mDeBERTa-v3-base-mnli-xnli"`

	// DBReadyMaxAttempts en 0 significa reintentar sin límite.
	DBReadyMaxAttempts     int `env:"DB_READY_MAX_ATTEMPTS" envDefault:"30"`
	DBReadyIntervalSeconds int `env:"DB_READY_INTERVAL_SECONDS" envDefault:"2"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	RateLimitWindowSeconds int `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`
	RateLimitMax           int `env:"RATE_LIMIT_MAX" envDefault:"30"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

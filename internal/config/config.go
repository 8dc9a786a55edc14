package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config конфигурация сервера
type Config struct {
	// Сервер
	Port string `json:"port"`

	// База данных
	DatabasePath string `json:"database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Геопровайдеры
	Providers *ProvidersConfig `json:"providers"`

	// Агрегация
	Discovery *DiscoveryConfig `json:"discovery"`
}

// ProvidersConfig конфигурация внешних геопровайдеров. URL и User-Agent
// инжектируются, а не зашиты в код, чтобы тесты могли подменить endpoint.
type ProvidersConfig struct {
	NominatimBaseURL   string        `json:"nominatim_base_url"`
	NominatimTimeout   time.Duration `json:"nominatim_timeout"`
	NominatimRateLimit time.Duration `json:"nominatim_rate_limit"`
	OverpassBaseURL    string        `json:"overpass_base_url"`
	OverpassTimeout    time.Duration `json:"overpass_timeout"`
	OverpassRateLimit  time.Duration `json:"overpass_rate_limit"`
	CityInfoBaseURL    string        `json:"cityinfo_base_url"`
	UserAgent          string        `json:"user_agent"`
	ResultLimit        int           `json:"result_limit"`
}

// DiscoveryConfig параметры оркестратора агрегации.
type DiscoveryConfig struct {
	// FallbackMinResults порог недобора: если первичный провайдер вернул
	// меньше записей, подключается вторичный (bbox) провайдер.
	FallbackMinResults int     `json:"fallback_min_results"`
	CityRadiusKm       float64 `json:"city_radius_km"`
	NearbyRadiusKm     float64 `json:"nearby_radius_km"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	config := &Config{
		// Сервер
		Port: getEnv("SERVER_PORT", "5000"),

		// База данных
		DatabasePath: getEnv("DATABASE_PATH", "trip_planner.db"),

		// Connection pooling
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		// Геопровайдеры
		Providers: &ProvidersConfig{
			NominatimBaseURL:   getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
			NominatimTimeout:   getEnvDuration("NOMINATIM_TIMEOUT", 15*time.Second),
			NominatimRateLimit: getEnvDuration("NOMINATIM_RATE_LIMIT", time.Second),
			OverpassBaseURL:    getEnv("OVERPASS_BASE_URL", "https://overpass-api.de/api/interpreter"),
			OverpassTimeout:    getEnvDuration("OVERPASS_TIMEOUT", 25*time.Second),
			OverpassRateLimit:  getEnvDuration("OVERPASS_RATE_LIMIT", time.Second),
			CityInfoBaseURL:    getEnv("CITYINFO_BASE_URL", "https://en.wikipedia.org"),
			UserAgent:          getEnv("PROVIDER_USER_AGENT", "TripPlannerApp/1.0"),
			ResultLimit:        getEnvInt("PROVIDER_RESULT_LIMIT", 40),
		},

		// Агрегация
		Discovery: &DiscoveryConfig{
			FallbackMinResults: getEnvInt("DISCOVERY_FALLBACK_MIN_RESULTS", 5),
			CityRadiusKm:       getEnvFloat("DISCOVERY_CITY_RADIUS_KM", 8),
			NearbyRadiusKm:     getEnvFloat("DISCOVERY_NEARBY_RADIUS_KM", 5),
		},
	}

	// Валидация
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate проверяет согласованность конфигурации.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Providers == nil || c.Providers.NominatimBaseURL == "" ||
		c.Providers.OverpassBaseURL == "" || c.Providers.CityInfoBaseURL == "" {
		return fmt.Errorf("provider base URLs are required")
	}
	if c.Providers.NominatimTimeout <= 0 || c.Providers.OverpassTimeout <= 0 {
		return fmt.Errorf("provider timeouts must be positive")
	}
	if c.Discovery == nil || c.Discovery.FallbackMinResults < 0 {
		return fmt.Errorf("fallback threshold must not be negative")
	}
	if c.Discovery.CityRadiusKm <= 0 || c.Discovery.NearbyRadiusKm <= 0 {
		return fmt.Errorf("discovery radii must be positive")
	}
	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

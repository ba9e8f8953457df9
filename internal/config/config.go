package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	AppEnv      string
	LogLevel    string
	AdminAPIKey string
	SeedCatalog bool

	DBDSN      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Load lee .env si existe y después el entorno. Las variables POSTGRES_* quedan como
// alternativa a DB_USER/DB_PASSWORD/DB_NAME.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_CATALOG", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")

	return Config{
		Port:        v.GetString("PORT"),
		AppEnv:      strings.ToLower(v.GetString("APP_ENV")),
		LogLevel:    strings.ToLower(v.GetString("LOG_LEVEL")),
		AdminAPIKey: v.GetString("ADMIN_API_KEY"),
		SeedCatalog: v.GetBool("SEED_CATALOG"),

		DBDSN:      strings.TrimSpace(v.GetString("DB_DSN")),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     firstNonEmpty(v.GetString("DB_USER"), v.GetString("POSTGRES_USER"), "postgres"),
		DBPassword: firstNonEmpty(v.GetString("DB_PASSWORD"), v.GetString("POSTGRES_PASSWORD"), "postgres"),
		DBName:     firstNonEmpty(v.GetString("DB_NAME"), v.GetString("POSTGRES_DB"), "cablemrp"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),
	}
}

func (c Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword + " dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=" + c.DBSSLMode
}

func (c Config) IsDev() bool {
	return c.AppEnv == "" || c.AppEnv == "development" || c.AppEnv == "dev"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

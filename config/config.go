package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	defaultAppName      = "HealthAssist API"
	defaultAppPort      = 8080
	defaultGroqEndpoint = "https://api.groq.com/openai/v1"
	defaultGroqModel    = "llama-3.1-8b-instant"
	defaultGeoapifyURL  = "https://api.geoapify.com"
	defaultMediaRoot    = "media"
	defaultFallbackCity = "Ongole"
	defaultTempMaxAge   = time.Hour
	defaultMaxBodyBytes = 10 << 20
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`
	DBHost  string `json:"dbhost"`
	DBPort  uint16 `json:"dbport"`
	DBName  string `json:"dbname"`
	DBUSER  string `json:"dbuser"`
	DBPass  string `json:"dbpass"`

	// External services. An empty key disables the matching feature.
	GroqAPIKey         string `json:"-"`
	GroqEndpoint       string `json:"groq_endpoint"`
	GroqModel          string `json:"groq_model"`
	GeoapifyAPIKey     string `json:"-"`
	GeoapifyBaseURL    string `json:"geoapify_base_url"`
	ClassifierEndpoint string `json:"classifier_endpoint"`

	MediaRoot    string        `json:"media_root"`
	FallbackCity string        `json:"fallback_city"`
	TempMaxAge   time.Duration `json:"temp_max_age"`
	MaxBodyBytes int64         `json:"max_body_bytes"`
	GeoIPDBPath  string        `json:"geoip_db_path"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env is fine when the environment is provided by the runtime.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Error loading .env file: %v", err)
		}

		appPort, err := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		if err != nil || appPort == 0 {
			appPort = defaultAppPort
		}
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		tempMaxAge := defaultTempMaxAge
		if v := os.Getenv("TEMP_MAX_AGE"); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				tempMaxAge = d
			}
		}

		maxBodyBytes, err := strconv.ParseInt(os.Getenv("MAX_BODY_BYTES"), 10, 64)
		if err != nil || maxBodyBytes <= 0 {
			maxBodyBytes = defaultMaxBodyBytes
		}

		config = &Config{
			AppName: getEnv("APPNAME", defaultAppName),
			AppEnv:  os.Getenv("APPENV"),
			AppPort: uint16(appPort),
			GinMode: getEnv("GINMODE", "debug"),
			DBHost:  os.Getenv("DBHOST"),
			DBPort:  uint16(dbPort),
			DBName:  os.Getenv("DBNAME"),
			DBUSER:  os.Getenv("DBUSER"),
			DBPass:  os.Getenv("DBPASS"),

			GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
			GroqEndpoint:       getEnv("GROQ_ENDPOINT", defaultGroqEndpoint),
			GroqModel:          getEnv("GROQ_MODEL", defaultGroqModel),
			GeoapifyAPIKey:     os.Getenv("GEOAPIFY_API_KEY"),
			GeoapifyBaseURL:    getEnv("GEOAPIFY_BASE_URL", defaultGeoapifyURL),
			ClassifierEndpoint: os.Getenv("CLASSIFIER_ENDPOINT"),

			MediaRoot:    getEnv("MEDIA_ROOT", defaultMediaRoot),
			FallbackCity: getEnv("FALLBACK_CITY", defaultFallbackCity),
			TempMaxAge:   tempMaxAge,
			MaxBodyBytes: maxBodyBytes,
			GeoIPDBPath:  os.Getenv("GEOIP_DB_PATH"),
		}
	})
	return config
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IsTestEnv reports whether APPENV is "test". It reads the environment directly
// so tests can flip it after the config singleton was built.
func IsTestEnv() bool {
	return os.Getenv("APPENV") == "test"
}

// ConnectMySQL establishes a connection to a MySQL database using the configuration values.
// With APPENV=test it opens a fresh in-memory SQLite database instead.
func ConnectMySQL() (*gorm.DB, error) {
	if IsTestEnv() {
		dsn := fmt.Sprintf("file:healthassist_%d?mode=memory&cache=shared&_foreign_keys=1", time.Now().UnixNano())
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	}

	cfg := LoadConfig()
	// Build the Data Source Name (DSN) using the configuration values.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4", cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// ResetConfigForTest drops the config singleton so the next LoadConfig call
// re-reads the environment.
func ResetConfigForTest() {
	config = nil
	once = sync.Once{}
}

package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const PlaceholderAPIKey = "your-api-key-here"

type Config struct {
	App struct {
		Env         string   `mapstructure:"env"`
		Port        string   `mapstructure:"port"`
		StaticDir   string   `mapstructure:"static_dir"`
		CORSOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"app"`
	DeepSeek struct {
		APIKey  string        `mapstructure:"api_key"`
		BaseURL string        `mapstructure:"base_url"`
		Model   string        `mapstructure:"model"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"deepseek"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

// LoadConfig reads .env, then config.yaml, then the process environment.
// Later sources win. An optional path overrides the search directory.
func LoadConfig(paths ...string) (cfg Config, err error) {
	dir := "."
	if len(paths) > 0 && paths[0] != "" {
		dir = paths[0]
	}

	if err = godotenv.Load(dir + "/.env"); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.static_dir", "STATIC_DIR")
	v.BindEnv("app.cors_origins", "CORS_ORIGINS")
	v.BindEnv("deepseek.api_key", "DEEPSEEK_API_KEY")
	v.BindEnv("deepseek.base_url", "DEEPSEEK_BASE_URL")
	v.BindEnv("deepseek.model", "DEEPSEEK_MODEL")
	v.BindEnv("deepseek.timeout", "DEEPSEEK_TIMEOUT")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.cache_ttl", "REDIS_CACHE_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("jaeger.otlp_endpoint", "OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8001")
	v.SetDefault("app.static_dir", ".")
	v.SetDefault("app.cors_origins", []string{"*"})
	v.SetDefault("deepseek.base_url", "https://api.deepseek.com/v1")
	v.SetDefault("deepseek.model", "deepseek-chat")
	v.SetDefault("deepseek.timeout", 30*time.Second)
	v.SetDefault("redis.cache_ttl", 10*time.Minute)
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
}

// HasAPIKey reports whether a real credential was configured.
func (c Config) HasAPIKey() bool {
	return c.DeepSeek.APIKey != "" && c.DeepSeek.APIKey != PlaceholderAPIKey
}

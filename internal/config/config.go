package config

import (
	"time"

	"github.com/spf13/viper"

	pkgconfig "github.com/devconnect/devconnect-backend/pkg/config"
	"github.com/devconnect/devconnect-backend/pkg/database"
)

type Config struct {
	Server        ServerConfig
	Database      database.Config
	Redis         RedisConfig
	JWT           JWTConfig
	WebSocket     WebSocketConfig
	Assistant     AssistantConfig
	Kafka         KafkaConfig
	Elasticsearch ElasticsearchConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Log           LogConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret          string
	AccessDuration  time.Duration `mapstructure:"access_duration"`
	RefreshDuration time.Duration `mapstructure:"refresh_duration"`
	Issuer          string
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

// AssistantConfig configures the two model endpoints the chatbot talks to.
type AssistantConfig struct {
	Embedding  EmbeddingConfig
	Completion CompletionConfig
	MaxResults int `mapstructure:"max_results"`
}

type EmbeddingConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	Dimensions int           `mapstructure:"dimensions"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type CompletionConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type KafkaConfig struct {
	Enabled bool
	Brokers string
	Topic   string
	GroupID string `mapstructure:"group_id"`
}

type ElasticsearchConfig struct {
	Enabled   bool
	Addresses string
	Username  string
	Password  string
}

type StorageConfig struct {
	Backend        string // "s3" or "local"
	Bucket         string
	Region         string
	Endpoint       string
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`
	LocalBasePath  string `mapstructure:"local_base_path"`
	LocalBaseURL   string `mapstructure:"local_base_url"`
	PresignExpiry  time.Duration `mapstructure:"presign_expiry"`
}

type CacheConfig struct {
	HistoryTTL time.Duration `mapstructure:"history_ttl"`
	SearchTTL  time.Duration `mapstructure:"search_ttl"`
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "devconnect")
	v.SetDefault("database.password", "devconnect")
	v.SetDefault("database.dbname", "devconnect")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_duration", "15m")
	v.SetDefault("jwt.refresh_duration", "168h")
	v.SetDefault("jwt.issuer", "devconnect")
	v.SetDefault("websocket.ping_interval", "30s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.max_message_size", 4096)
	v.SetDefault("assistant.embedding.base_url", "https://integrate.api.nvidia.com/v1")
	v.SetDefault("assistant.embedding.model", "nvidia/nv-embedqa-mistral-7b-v2")
	v.SetDefault("assistant.embedding.dimensions", 1024)
	v.SetDefault("assistant.embedding.timeout", "30s")
	v.SetDefault("assistant.completion.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("assistant.completion.model", "meta-llama/llama-3.3-70b-instruct")
	v.SetDefault("assistant.completion.timeout", "60s")
	v.SetDefault("assistant.max_results", 5)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.topic", "embedding-refresh")
	v.SetDefault("kafka.group_id", "devconnect-embedding-refresher")
	v.SetDefault("elasticsearch.enabled", false)
	v.SetDefault("elasticsearch.addresses", "http://localhost:9200")
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.bucket", "devconnect-avatars")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.local_base_path", "./data/avatars")
	v.SetDefault("storage.local_base_url", "http://localhost:8080")
	v.SetDefault("storage.presign_expiry", "15m")
	v.SetDefault("cache.history_ttl", "5m")
	v.SetDefault("cache.search_ttl", "10m")
	v.SetDefault("log.level", "info")

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("assistant.embedding.base_url", "EMBEDDING_BASE_URL")
	v.BindEnv("assistant.embedding.api_key", "EMBEDDING_API_KEY")
	v.BindEnv("assistant.embedding.model", "EMBEDDING_MODEL")
	v.BindEnv("assistant.completion.base_url", "COMPLETION_BASE_URL")
	v.BindEnv("assistant.completion.api_key", "COMPLETION_API_KEY")
	v.BindEnv("assistant.completion.model", "COMPLETION_MODEL")
	v.BindEnv("kafka.enabled", "KAFKA_ENABLED")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("elasticsearch.enabled", "ELASTICSEARCH_ENABLED")
	v.BindEnv("elasticsearch.addresses", "ELASTICSEARCH_ADDRESSES")
	v.BindEnv("storage.backend", "STORAGE_BACKEND")
	v.BindEnv("storage.bucket", "STORAGE_BUCKET")
	v.BindEnv("storage.endpoint", "STORAGE_ENDPOINT")
	v.BindEnv("storage.access_key", "STORAGE_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "STORAGE_SECRET_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.Server.ShutdownTimeout = parseDuration(v, "server.shutdown_timeout", 15*time.Second)
	cfg.JWT.AccessDuration = parseDuration(v, "jwt.access_duration", 15*time.Minute)
	cfg.JWT.RefreshDuration = parseDuration(v, "jwt.refresh_duration", 168*time.Hour)
	cfg.WebSocket.PingInterval = parseDuration(v, "websocket.ping_interval", 30*time.Second)
	cfg.WebSocket.PongWait = parseDuration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = parseDuration(v, "websocket.write_wait", 10*time.Second)
	cfg.Assistant.Embedding.Timeout = parseDuration(v, "assistant.embedding.timeout", 30*time.Second)
	cfg.Assistant.Completion.Timeout = parseDuration(v, "assistant.completion.timeout", 60*time.Second)
	cfg.Storage.PresignExpiry = parseDuration(v, "storage.presign_expiry", 15*time.Minute)
	cfg.Cache.HistoryTTL = parseDuration(v, "cache.history_ttl", 5*time.Minute)
	cfg.Cache.SearchTTL = parseDuration(v, "cache.search_ttl", 10*time.Minute)

	return &cfg, nil
}

func parseDuration(v *viper.Viper, key string, defaultVal time.Duration) time.Duration {
	str := v.GetString(key)
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}

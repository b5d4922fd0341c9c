package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	LLM       LLMConfig
	Embedding EmbeddingConfig
	Auth      AuthConfig
	Quiz      QuizConfig
	Session   SessionConfig
	Logger    LoggerConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
	CORSOrigins  string
}

// DBConfig points at the SQLite database file. ":memory:" is accepted.
type DBConfig struct {
	Path string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

type LLMConfig struct {
	Provider     string // "ollama" or "openai"
	ServerURL    string
	Model        string
	OpenAIAPIKey string
	Timeout      time.Duration
}

type EmbeddingConfig struct {
	Source              string // "ollama", "openai" or "" to disable
	OllamaModel         string
	OllamaServerURL     string
	OpenAIModel         string
	SimilarityThreshold float64
}

// AuthConfig holds the shared secret of the hosted auth provider. Tokens are
// verified only; they are issued elsewhere.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

type QuizConfig struct {
	DefaultCount int
	MaxCount     int
	TimeoutGrace time.Duration
	CorrectGrace time.Duration
}

type SessionConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type RateLimitConfig struct {
	GenerationPerMinute int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.body_limit", 4*1024*1024)
	v.SetDefault("server.cors_origins", "*")

	v.SetDefault("db.path", "bible_study.db")

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 300)

	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.server", "http://localhost:11434")
	v.SetDefault("llm.model", "qwen3:0.6b")
	v.SetDefault("llm.timeout", 60)

	v.SetDefault("embedding.ollama_model", "nomic-embed-text")
	v.SetDefault("embedding.openai_model", "text-embedding-3-small")
	v.SetDefault("embedding.similarity_threshold", 0.95)

	v.SetDefault("quiz.default_count", 10)
	v.SetDefault("quiz.max_count", 50)
	v.SetDefault("quiz.timeout_grace_ms", 2000)
	v.SetDefault("quiz.correct_grace_ms", 500)

	v.SetDefault("session.idle_ttl", 30)
	v.SetDefault("session.sweep_interval", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("ratelimit.generation_per_minute", 5)
}

// LoadConfig reads config.yaml from the usual locations, then applies
// environment overrides (db.path -> DB_PATH). A .env file, when present, is
// loaded into the environment first. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	if os.Getenv("ENV") == "test" {
		return Load("../../config", "../../")
	}
	return Load(".", "./config")
}

// Load is LoadConfig with explicit search paths.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: v.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
			CORSOrigins:  v.GetString("server.cors_origins"),
		},
		DB: DBConfig{
			Path: v.GetString("db.path"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl") * time.Second,
		},
		LLM: LLMConfig{
			Provider:     strings.ToLower(v.GetString("llm.provider")),
			ServerURL:    v.GetString("llm.server"),
			Model:        v.GetString("llm.model"),
			OpenAIAPIKey: v.GetString("openai_api_key"),
			Timeout:      v.GetDuration("llm.timeout") * time.Second,
		},
		Embedding: EmbeddingConfig{
			Source:              strings.ToLower(v.GetString("embedding.source")),
			OllamaModel:         v.GetString("embedding.ollama_model"),
			OllamaServerURL:     v.GetString("embedding.ollama_server_url"),
			OpenAIModel:         v.GetString("embedding.openai_model"),
			SimilarityThreshold: v.GetFloat64("embedding.similarity_threshold"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			Issuer:    v.GetString("auth.issuer"),
		},
		Quiz: QuizConfig{
			DefaultCount: v.GetInt("quiz.default_count"),
			MaxCount:     v.GetInt("quiz.max_count"),
			TimeoutGrace: v.GetDuration("quiz.timeout_grace_ms") * time.Millisecond,
			CorrectGrace: v.GetDuration("quiz.correct_grace_ms") * time.Millisecond,
		},
		Session: SessionConfig{
			IdleTTL:       v.GetDuration("session.idle_ttl") * time.Minute,
			SweepInterval: v.GetDuration("session.sweep_interval") * time.Second,
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		RateLimit: RateLimitConfig{
			GenerationPerMinute: v.GetInt("ratelimit.generation_per_minute"),
		},
	}
	if cfg.Embedding.OllamaServerURL == "" {
		cfg.Embedding.OllamaServerURL = cfg.LLM.ServerURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c.DB.Path == "" {
		return errors.New("config: db.path is required")
	}
	switch c.LLM.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("config: unsupported llm.provider %q", c.LLM.Provider)
	}
	if c.Quiz.MaxCount < c.Quiz.DefaultCount {
		return fmt.Errorf("config: quiz.max_count (%d) is below quiz.default_count (%d)", c.Quiz.MaxCount, c.Quiz.DefaultCount)
	}
	return nil
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Address != ""
}

package config

import "github.com/aws/aws-sdk-go-v2/service/s3"

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Client   *s3.Client
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

// AuthConfig : параметры удалённого auth-сервиса (Supabase-совместимый)
type AuthConfig struct {
	URL       string `yaml:"url"`
	AnonKey   string `yaml:"anon_key"`
	JWTSecret string `yaml:"jwt_secret"`
	Timeout   string `yaml:"timeout"`
}

// OpenAIConfig : параметры сервиса генерации текста
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// RendererConfig : параметры headless-браузера
type RendererConfig struct {
	Timeout     string `yaml:"timeout"`
	SettleDelay string `yaml:"settle_delay"`
}

// PipelineConfig : таймауты этапов конвертации и размер пула воркеров
type PipelineConfig struct {
	WorkerPoolSize int    `yaml:"worker_pool_size"`
	StageTimeout   string `yaml:"stage_timeout"`
	TempDir        string `yaml:"temp_dir"`
}

// ChatConfig : бюджет контекста для вопросов по документу
type ChatConfig struct {
	ContextBudgetChars int `yaml:"context_budget_chars"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type TTL struct {
	S3AndRedis int `yaml:"s3_and_redis"`
}

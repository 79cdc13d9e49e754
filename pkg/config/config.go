package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Knowledge  KnowledgeConfig
	Completion CompletionConfig
	Chat       ChatConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string // json or console
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	StaticDir    string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Knowledge base sources
const (
	KnowledgeSourceEmbedded = "embedded"
	KnowledgeSourceFile     = "file"
	KnowledgeSourcePostgres = "postgres"
)

type KnowledgeConfig struct {
	Source string
	Path   string
}

// Completion providers
const (
	ProviderNone     = "none"
	ProviderGigaChat = "gigachat"
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
)

type CompletionConfig struct {
	Provider      string
	Timeout       time.Duration
	RatePerMinute int
	Burst         int
	GigaChat      GigaChatConfig
	OpenAI        OpenAIConfig
	Gemini        GeminiConfig
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	InsecureSkipVerify bool
	// Endpoint overrides; empty means the public GigaChat endpoints.
	BaseURL string
	AuthURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type ChatConfig struct {
	SessionTTL       time.Duration
	DefaultFormat    string
	MaxMessageLength int
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work too (Docker/K8s)
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	completionTimeout, _ := strconv.Atoi(getEnv("COMPLETION_TIMEOUT", "10"))
	ratePerMinute, _ := strconv.Atoi(getEnv("COMPLETION_RATE_PER_MINUTE", "30"))
	burst, _ := strconv.Atoi(getEnv("COMPLETION_BURST", "5"))
	sessionTTL, _ := strconv.Atoi(getEnv("CHAT_SESSION_TTL_MINUTES", "60"))
	maxLen, _ := strconv.Atoi(getEnv("CHAT_MAX_MESSAGE_LENGTH", "1000"))

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			StaticDir:    getEnv("SERVER_STATIC_DIR", ""),
			AllowOrigins: getEnv("SERVER_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "faqbot"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Knowledge: KnowledgeConfig{
			Source: strings.ToLower(getEnv("KNOWLEDGE_SOURCE", KnowledgeSourceEmbedded)),
			Path:   getEnv("KNOWLEDGE_PATH", ""),
		},
		Completion: CompletionConfig{
			Provider:      strings.ToLower(getEnv("COMPLETION_PROVIDER", ProviderNone)),
			Timeout:       time.Duration(completionTimeout) * time.Second,
			RatePerMinute: ratePerMinute,
			Burst:         burst,
			GigaChat: GigaChatConfig{
				APIKey:             getEnv("GIGACHAT_API_KEY", ""),
				Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
				Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
				InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true",
				BaseURL:            getEnv("GIGACHAT_BASE_URL", ""),
				AuthURL:            getEnv("GIGACHAT_AUTH_URL", ""),
			},
			OpenAI: OpenAIConfig{
				APIKey:  getEnv("OPENAI_API_KEY", ""),
				Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
				BaseURL: getEnv("OPENAI_BASE_URL", ""),
			},
			Gemini: GeminiConfig{
				APIKey:  getEnv("GEMINI_API_KEY", ""),
				Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
				BaseURL: getEnv("GEMINI_BASE_URL", ""),
			},
		},
		Chat: ChatConfig{
			SessionTTL:       time.Duration(sessionTTL) * time.Minute,
			DefaultFormat:    getEnv("CHAT_DEFAULT_FORMAT", "markdown"),
			MaxMessageLength: maxLen,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise only fail at first use.
func (c *Config) Validate() error {
	switch c.Knowledge.Source {
	case KnowledgeSourceEmbedded, KnowledgeSourcePostgres:
	case KnowledgeSourceFile:
		if c.Knowledge.Path == "" {
			return fmt.Errorf("KNOWLEDGE_PATH is required for knowledge source %q", c.Knowledge.Source)
		}
	default:
		return fmt.Errorf("unknown knowledge source %q", c.Knowledge.Source)
	}

	switch c.Completion.Provider {
	case ProviderNone, "":
	case ProviderGigaChat:
		if c.Completion.GigaChat.APIKey == "" {
			return fmt.Errorf("GIGACHAT_API_KEY is required for provider %q", c.Completion.Provider)
		}
	case ProviderOpenAI:
		if c.Completion.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", c.Completion.Provider)
		}
	case ProviderGemini:
		if c.Completion.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", c.Completion.Provider)
		}
	default:
		return fmt.Errorf("unknown completion provider %q", c.Completion.Provider)
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

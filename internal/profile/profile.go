package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is configuration to start the main server.
type Profile struct {
	// Unified LLM configuration (OpenAI-compatible protocol)
	// All providers (deepseek, openai, siliconflow, ollama) use the same config
	LLMProvider string // Provider identifier: deepseek, openai, siliconflow, ollama
	LLMAPIKey   string
	LLMBaseURL  string // optional, has a default per provider
	LLMModel    string // deepseek-chat, gpt-4o-mini, etc.
	LLMTimeout  int    // request timeout in seconds (default: 60)
	LLMRPM      int    // outbound requests per minute, 0 disables throttling

	// Engine configuration
	CacheTTLSeconds   int // response cache TTL (default: 600)
	CacheCapacity     int // response cache entry cap (default: 500)
	SessionTTLMinutes int // idle session eviction (default: 60)

	// Server configuration
	Mode      string // demo, dev, prod
	Addr      string
	Port      int
	Data      string
	Driver    string // sqlite, postgres
	DSN       string
	Version   string
	SecretKey string // JWT signing secret
	Metrics   bool   // expose /metrics
}

// Provider default configurations for the LLM.
// Used when MINDSENSE_AI_LLM_BASE_URL is not explicitly set.
var llmProviderDefaults = map[string]struct {
	BaseURL string
	Model   string
}{
	"deepseek": {
		BaseURL: "https://api.deepseek.com",
		Model:   "deepseek-chat",
	},
	"openai": {
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o-mini",
	},
	"siliconflow": {
		BaseURL: "https://api.siliconflow.cn/v1",
		Model:   "Qwen/Qwen2.5-72B-Instruct",
	},
	"ollama": {
		BaseURL: "http://localhost:11434/v1",
		Model:   "llama3.1",
	},
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if an LLM API key is configured. Without one the
// server still runs, answering every turn with the fallback message.
func (p *Profile) IsAIEnabled() bool {
	return p.LLMAPIKey != ""
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
func (p *Profile) FromEnv() {
	p.LLMProvider = getEnvOrDefault("MINDSENSE_AI_LLM_PROVIDER", "deepseek")
	p.LLMAPIKey = getEnvOrDefault("MINDSENSE_AI_LLM_API_KEY", "")
	p.LLMBaseURL = getEnvOrDefault("MINDSENSE_AI_LLM_BASE_URL", "")
	p.LLMModel = getEnvOrDefault("MINDSENSE_AI_LLM_MODEL", "")
	p.LLMTimeout = getEnvOrDefaultInt("MINDSENSE_AI_LLM_TIMEOUT_SECONDS", 60)
	p.LLMRPM = getEnvOrDefaultInt("MINDSENSE_AI_LLM_RPM", 0)

	if _, ok := llmProviderDefaults[p.LLMProvider]; !ok {
		slog.Warn("unknown LLM provider, using default: deepseek", "provider", p.LLMProvider)
		p.LLMProvider = "deepseek"
	}
	if defaults, ok := llmProviderDefaults[p.LLMProvider]; ok {
		if p.LLMBaseURL == "" {
			p.LLMBaseURL = defaults.BaseURL
		}
		if p.LLMModel == "" {
			p.LLMModel = defaults.Model
		}
	}

	p.CacheTTLSeconds = getEnvOrDefaultInt("MINDSENSE_AI_CACHE_TTL_SECONDS", 600)
	p.CacheCapacity = getEnvOrDefaultInt("MINDSENSE_AI_CACHE_CAPACITY", 500)
	p.SessionTTLMinutes = getEnvOrDefaultInt("MINDSENSE_SESSION_TTL_MINUTES", 60)

	p.SecretKey = getEnvOrDefault("MINDSENSE_SECRET_KEY", "")
	p.Metrics = getEnvOrDefault("MINDSENSE_METRICS", "true") == "true"
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "mindsense")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/mindsense"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported driver %q", p.Driver)
	}
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("mindsense_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("postgres driver requires a dsn")
	}

	return nil
}

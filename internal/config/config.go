package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/domain"
	"github.com/joho/godotenv"
)

type Config struct {
	ComplaintsDBPath  string
	WhatsAppStorePath string
	GeminiAPIKey      string
	APIKey            string
	HTTPAddr          string
	KnowledgeBasePath string
	SessionTTL        time.Duration
}

func NewConfig() domain.ConfigService {
	// Load .env if present
	_ = godotenv.Load()

	dbPath := os.Getenv("COMPLAINTS_DB_PATH")
	if dbPath == "" {
		dbPath = "complaints.db"
	}

	storePath := os.Getenv("WHATSAPP_STORE_PATH")
	if storePath == "" {
		storePath = "whatsmeow.db"
	}

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	kbPath := os.Getenv("KNOWLEDGE_BASE_PATH")
	if kbPath == "" {
		kbPath = "customer_service_knowledgebase.txt"
	}

	ttlMinutes := 30
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttlMinutes = n
		}
	}

	return &Config{
		ComplaintsDBPath:  dbPath,
		WhatsAppStorePath: storePath,
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		APIKey:            os.Getenv("API_KEY"),
		HTTPAddr:          httpAddr,
		KnowledgeBasePath: kbPath,
		SessionTTL:        time.Duration(ttlMinutes) * time.Minute,
	}
}

func (c *Config) GetComplaintsDBPath() string {
	return c.ComplaintsDBPath
}

func (c *Config) GetWhatsAppStorePath() string {
	return c.WhatsAppStorePath
}

func (c *Config) GetGeminiAPIKey() string {
	return c.GeminiAPIKey
}

func (c *Config) GetAPIKey() string {
	return c.APIKey
}

func (c *Config) GetHTTPAddr() string {
	return c.HTTPAddr
}

func (c *Config) GetKnowledgeBasePath() string {
	return c.KnowledgeBasePath
}

func (c *Config) GetSessionTTL() time.Duration {
	return c.SessionTTL
}

func (c *Config) Validate() error {
	if c.ComplaintsDBPath == "" {
		return fmt.Errorf("COMPLAINTS_DB_PATH is required")
	}
	return nil
}

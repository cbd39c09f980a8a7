package domain

import (
	"context"
	"time"
)

// ComplaintStore handles durable complaint persistence
type ComplaintStore interface {
	Create(ctx context.Context, req *ComplaintRequest) (string, error)
	Get(ctx context.Context, id string) (*Complaint, error)
	GetAll(ctx context.Context) ([]Complaint, error)
	Close() error
}

// ComplaintService is the validation boundary over the store
type ComplaintService interface {
	Create(ctx context.Context, req *ComplaintRequest) (string, error)
	Get(ctx context.Context, id string) (*Complaint, error)
	GetAll(ctx context.Context) ([]Complaint, error)
}

// AnswerService answers free-text questions from the knowledge base
type AnswerService interface {
	Answer(ctx context.Context, question string) (string, error)
}

// WhatsAppService handles WhatsApp messaging operations
type WhatsAppService interface {
	SendMessage(ctx context.Context, phone, message string) error
	IsConnected() bool
}

// ConfigService handles application configuration
type ConfigService interface {
	GetComplaintsDBPath() string
	GetWhatsAppStorePath() string
	GetGeminiAPIKey() string
	GetAPIKey() string
	GetHTTPAddr() string
	GetKnowledgeBasePath() string
	GetSessionTTL() time.Duration
}

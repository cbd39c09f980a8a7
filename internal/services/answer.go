package services

import (
	"context"
	"os"
	"strings"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/domain"
	ai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const answerModel = "gemini-2.0-flash"

const (
	msgAssistantOffline = "The assistant is currently offline, so I can't answer general questions right now. I can still help you file a complaint or look one up by ID."
	msgNoAnswer         = "I don't have an answer for that. Could you rephrase your question?"
)

// AnswerService answers free-text questions with Gemini, grounded on the
// knowledge base document. The rest of the system treats it as a single
// opaque call: question in, answer out.
type AnswerService struct {
	geminiKey string
	kbPath    string
}

func NewAnswerService(geminiKey, kbPath string) domain.AnswerService {
	return &AnswerService{
		geminiKey: geminiKey,
		kbPath:    kbPath,
	}
}

func (a *AnswerService) Answer(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(a.geminiKey) == "" {
		return msgAssistantOffline, nil
	}

	client, err := ai.NewClient(ctx, option.WithAPIKey(a.geminiKey))
	if err != nil {
		return "", &domain.ExternalServiceError{Service: "gemini", Err: err}
	}
	defer client.Close()

	model := client.GenerativeModel(answerModel)

	var sb strings.Builder
	sb.WriteString("Answer based on this context:\n")
	sb.WriteString(a.readKnowledgeBase())
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)

	resp, err := model.GenerateContent(ctx, ai.Text(sb.String()))
	if err != nil {
		return "", &domain.ExternalServiceError{Service: "gemini", Err: err}
	}

	var out string
	for _, c := range resp.Candidates {
		for _, p := range c.Content.Parts {
			if t, ok := p.(ai.Text); ok {
				out += string(t)
			}
		}
	}

	if strings.TrimSpace(out) == "" {
		return msgNoAnswer, nil
	}
	return out, nil
}

func (a *AnswerService) readKnowledgeBase() string {
	b, err := os.ReadFile(a.kbPath)
	if err != nil {
		return "You are a customer service assistant for an online store. Answer questions about orders, deliveries, refunds, returns and complaints clearly and briefly. If the user wants to file a complaint, tell them to say \"file a complaint\"."
	}
	return string(b)
}

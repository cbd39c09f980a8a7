package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/domain"
	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/services"
	waEvents "go.mau.fi/whatsmeow/types/events"
)

type BotHandler struct {
	router   *services.Router
	sessions *services.SessionStore
	whatsapp domain.WhatsAppService
}

func NewBotHandler(router *services.Router, sessions *services.SessionStore, whatsapp domain.WhatsAppService) *BotHandler {
	return &BotHandler{
		router:   router,
		sessions: sessions,
		whatsapp: whatsapp,
	}
}

func (h *BotHandler) HandleMessage(evt interface{}) {
	switch e := evt.(type) {
	case *waEvents.Message:
		if e.Message.GetConversation() == "" && e.Message.ExtendedTextMessage == nil {
			return
		}

		// Ignore own messages and group chats
		if e.Info.IsFromMe || e.Info.IsGroup {
			return
		}

		from := e.Info.MessageSource.Sender
		text := strings.TrimSpace(services.ExtractText(e))
		if text == "" {
			return
		}

		log.Printf("msg from %s: %s", from.String(), text)

		// One session per sender; the router decides what the turn means
		ctx := context.Background()
		sess := h.sessions.Get(from.User)
		reply := h.router.Route(ctx, sess, text)
		if reply == "" {
			return
		}

		h.sendReply(ctx, from.User, reply)
	}
}

func (h *BotHandler) sendReply(ctx context.Context, phone, message string) {
	if err := h.whatsapp.SendMessage(ctx, phone, message); err != nil {
		log.Printf("Failed to send reply: %v", err)
	}
}

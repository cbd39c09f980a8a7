package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/config"
	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/handlers"
	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/services"
)

func main() {
	// Initialize configuration
	cfg := config.NewConfig()

	// Initialize complaint storage and service
	store, err := services.NewComplaintStore(cfg.GetComplaintsDBPath())
	if err != nil {
		log.Fatalf("Failed to initialize complaint store: %v", err)
	}
	defer store.Close()

	complaintService := services.NewComplaintService(store)

	// Initialize WhatsApp service
	whatsappService, err := services.NewWhatsAppService(cfg.GetWhatsAppStorePath())
	if err != nil {
		log.Fatalf("Failed to initialize WhatsApp service: %v", err)
	}

	log.Println("WhatsApp bot running")

	// Initialize answering service
	if cfg.GetGeminiAPIKey() == "" {
		log.Println("GEMINI_API_KEY not set, general questions will get the offline reply")
	}
	answerService := services.NewAnswerService(cfg.GetGeminiAPIKey(), cfg.GetKnowledgeBasePath())

	// Initialize conversational core
	sessions := services.NewSessionStore(cfg.GetSessionTTL())
	intake := services.NewIntakeController(complaintService)
	router := services.NewRouter(intake, complaintService, answerService)

	// Initialize handlers
	botHandler := handlers.NewBotHandler(router, sessions, whatsappService)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	chatHandler := handlers.NewChatHandler(router, sessions)
	messageHandler := handlers.NewMessageHandler(whatsappService, cfg)

	// Setup WhatsApp event handler for listening to user chats
	whatsappService.AddEventHandler(botHandler.HandleMessage)

	// Setup REST API
	if cfg.GetAPIKey() == "" {
		log.Println("WARNING: API_KEY is empty, /api/send-message will reject requests")
	}

	http.HandleFunc("/complaints", complaintHandler.HandleComplaints)
	http.HandleFunc("/complaints/", complaintHandler.HandleComplaintByID)
	http.HandleFunc("/api/chat", chatHandler.Chat)
	http.HandleFunc("/api/send-message", messageHandler.SendMessage)

	go func() {
		log.Printf("REST API listening on %s", cfg.GetHTTPAddr())
		if err := http.ListenAndServe(cfg.GetHTTPAddr(), nil); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	whatsappService.Disconnect()
	log.Println("Shutdown")
}

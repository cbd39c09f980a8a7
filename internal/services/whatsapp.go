package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waTypes "go.mau.fi/whatsmeow/types"
	waEvents "go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite" // SQLite driver for whatsmeow store
)

type WhatsAppService struct {
	client *whatsmeow.Client
}

func NewWhatsAppService(storePath string) (*WhatsAppService, error) {
	log.Printf("Initializing WhatsApp service with store path: %s", storePath)

	container, err := sqlstore.New(context.Background(), "sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout=5000&_pragma=foreign_keys=on", storePath), waLog.Stdout("SQLStore", "INFO", true))
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlstore: %w", err)
	}

	// Get the first device from the store, or create a new one if none exists
	deviceStore, err := container.GetFirstDevice(context.Background())
	if err != nil {
		log.Printf("No existing device found, creating new device: %v", err)
		deviceStore = container.NewDevice()
	} else {
		log.Printf("Found existing device with ID: %s", deviceStore.ID)
	}

	client := whatsmeow.NewClient(deviceStore, waLog.Stdout("Client", "INFO", true))
	service := &WhatsAppService{client: client}

	client.AddEventHandler(func(evt interface{}) {
		switch v := evt.(type) {
		case *waEvents.Connected:
			log.Println("WhatsApp client connected successfully")
		case *waEvents.Disconnected:
			log.Printf("WhatsApp client disconnected: %v", v)
		case *waEvents.LoggedOut:
			log.Println("WhatsApp client logged out")
		}
	})

	if client.Store.ID == nil {
		log.Println("No session found, starting QR code pairing...")
		// First login: print QR to pair
		qr, _ := client.GetQRChannel(context.Background())
		if err = client.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect: %w", err)
		}
		for evt := range qr {
			if evt.Event == "code" {
				log.Println("Scan the QR code in WhatsApp to pair:")
				qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
			} else {
				log.Printf("QR event: %s", evt.Event)
			}
		}
	} else {
		log.Printf("Existing session found for device ID: %s", client.Store.ID)
		if err = client.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect with existing session: %w", err)
		}

		// Wait a bit for the connection to stabilize
		time.Sleep(3 * time.Second)
		if !client.IsConnected() {
			log.Println("Warning: Client may not be fully connected yet")
		}
	}

	return service, nil
}

func (w *WhatsAppService) SendMessage(ctx context.Context, phone, message string) error {
	if !w.client.IsConnected() {
		return fmt.Errorf("WhatsApp client is not connected")
	}

	phone = normalizePhone(phone)
	if phone == "" {
		return fmt.Errorf("invalid phone number")
	}

	to := waTypes.NewJID(phone, waTypes.DefaultUserServer)
	msg := &waProto.Message{Conversation: &message}

	// Retry mechanism for encryption issues
	var err error
	maxRetries := 3

	for i := 0; i < maxRetries; i++ {
		var resp whatsmeow.SendResponse
		resp, err = w.client.SendMessage(ctx, to, msg)
		if err == nil {
			log.Printf("[WA] Sent message ID: %s to %s", resp.ID, phone)
			return nil
		}

		if strings.Contains(fmt.Sprintf("%v", err), "can't encrypt message") ||
			strings.Contains(fmt.Sprintf("%v", err), "no signal session established") {
			log.Printf("[WA] Encryption error (attempt %d/%d): %v", i+1, maxRetries, err)

			if i < maxRetries-1 {
				time.Sleep(time.Duration(i+1) * 2 * time.Second)
				log.Printf("[WA] Retrying message send to %s...", phone)
				continue
			}
		}

		// For other errors, don't retry
		break
	}

	return fmt.Errorf("failed to send message: %w", err)
}

func (w *WhatsAppService) IsConnected() bool {
	return w.client.IsConnected()
}

func (w *WhatsAppService) AddEventHandler(handler func(interface{})) {
	w.client.AddEventHandler(handler)
}

func (w *WhatsAppService) Disconnect() {
	w.client.Disconnect()
}

func ExtractText(e *waEvents.Message) string {
	if e.Message.GetConversation() != "" {
		return e.Message.GetConversation()
	}
	if e.Message.ExtendedTextMessage != nil {
		return e.Message.ExtendedTextMessage.GetText()
	}
	return ""
}

// stripDevicePart removes the device suffix from a JID user part, e.g.
// 62812345:12 -> 62812345
func stripDevicePart(user string) string {
	if i := strings.IndexByte(user, ':'); i != -1 {
		return user[:i]
	}
	return user
}

// normalizePhone reduces a raw phone or JID string to bare digits
func normalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '@'); i != -1 {
		raw = raw[:i]
	}
	raw = stripDevicePart(raw)

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package domain

import "time"

// Complaint is the persisted complaint record
type Complaint struct {
	ComplaintID      string    `json:"complaint_id"`
	Name             string    `json:"name"`
	PhoneNumber      string    `json:"phone_number"`
	Email            string    `json:"email"`
	ComplaintDetails string    `json:"complaint_details"`
	CreatedAt        time.Time `json:"created_at"`
}

// ComplaintRequest represents request to file a new complaint
type ComplaintRequest struct {
	Name             string `json:"name"`
	PhoneNumber      string `json:"phone_number"`
	Email            string `json:"email"`
	ComplaintDetails string `json:"complaint_details"`
}

// ComplaintCreatedResponse represents response after filing a complaint
type ComplaintCreatedResponse struct {
	ComplaintID string `json:"complaint_id"`
}

// ChatRequest represents one user turn on the chat endpoint
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// ChatResponse represents the assistant reply for one turn
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// SendMessageRequest represents request to send message
type SendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendMessageResponse represents response after sending message
type SendMessageResponse struct {
	Status string `json:"status"`
	Phone  string `json:"phone"`
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/domain"
)

const (
	msgIntakeStart   = "I'm sorry to hear about your issue. Let me help you file a complaint. Please provide your name."
	msgAskName       = "Please provide your name."
	msgInvalidPhone  = "Please enter a valid 10-digit phone number"
	msgAskEmail      = "Got it. Please provide your email address."
	msgInvalidEmail  = "Please enter a valid email address"
	msgAskDetails    = "Thanks. Please describe your issue or complaint in detail."
	msgSubmitFailed  = "❌ Sorry, something went wrong while registering your complaint. Please try again later."
	msgSubmitSuccess = "✅ Your complaint has been registered successfully!\n\n*Complaint ID: %s*\n\nYou'll hear back from us soon. Please save this ID for future reference."
)

// IntakeController walks a session through the complaint form one field
// per turn: name, phone, email, details. While a flow is active every
// utterance is consumed as the awaited field, whatever its content.
type IntakeController struct {
	complaints domain.ComplaintService
}

func NewIntakeController(complaints domain.ComplaintService) *IntakeController {
	return &IntakeController{complaints: complaints}
}

// Start begins a new intake flow and asks for the first field
func (c *IntakeController) Start(sess *Session) string {
	sess.InComplaintFlow = true
	sess.Awaiting = FieldName
	return msgIntakeStart
}

// Advance consumes one utterance as the currently awaited field. Invalid
// input re-prompts without changing state; the final field triggers the
// create call and clears the session either way.
func (c *IntakeController) Advance(ctx context.Context, sess *Session, input string) string {
	input = strings.TrimSpace(input)

	switch sess.Awaiting {
	case FieldName:
		if input == "" {
			return msgAskName
		}
		sess.Name = input
		sess.Awaiting = FieldPhone
		return fmt.Sprintf("Thank you, %s. What is your phone number?", input)

	case FieldPhone:
		if !phonePattern.MatchString(input) {
			return msgInvalidPhone
		}
		sess.Phone = input
		sess.Awaiting = FieldEmail
		return msgAskEmail

	case FieldEmail:
		if !emailPattern.MatchString(input) {
			return msgInvalidEmail
		}
		sess.Email = input
		sess.Awaiting = FieldDetails
		return msgAskDetails

	case FieldDetails:
		if input == "" {
			return msgAskDetails
		}
		sess.Details = input
		reply := c.submit(ctx, sess)
		sess.Reset()
		return reply
	}

	// Flow flag set without an awaited field; recover to idle
	sess.Reset()
	return msgSubmitFailed
}

func (c *IntakeController) submit(ctx context.Context, sess *Session) string {
	req := &domain.ComplaintRequest{
		Name:             sess.Name,
		PhoneNumber:      sess.Phone,
		Email:            sess.Email,
		ComplaintDetails: sess.Details,
	}

	id, err := c.complaints.Create(ctx, req)
	if err != nil {
		log.Printf("[intake] complaint create failed for chat %s: %v", sess.ChatID, err)

		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return "❌ Error: " + verr.Error()
		}
		return msgSubmitFailed
	}

	return fmt.Sprintf(msgSubmitSuccess, id)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/Kelompok-1-ODP-IT-343/Bot-WA-Complaint/internal/domain"
)

const (
	msgShowAllDenied  = "⛔ You are not authorized to view all complaints."
	msgLookupNotFound = "❌ Complaint not found. Please check your ID."
	msgLookupFailed   = "❌ Server error. Please try again later."
	msgAnswerFailed   = "❌ Sorry, I couldn't process your question right now."
)

// complaintTriggers are the phrases that start the intake flow when a
// session is idle. Matching is a case-insensitive substring check.
var complaintTriggers = []string{
	"file complaint", "new complaint", "make complaint",
	"raise complaint", "complain about", "report issue",
	"issue with", "problem with", "delayed delivery",
	"wrong item", "received damaged", "not delivered",
	"want to file", "file a complaint", "damaged product",
	"defective", "broken", "poor service", "bad experience",
	"refund", "return", "exchange", "billing issue",
	"overcharged", "charged twice", "wrong charge",
	"missing item", "incomplete order", "late delivery",
	"rude staff", "customer service", "quality issue",
}

// showAllPhrases always answer with the fixed denial. The list endpoint
// stays reachable over REST; the chat surface never exposes it.
var showAllPhrases = []string{
	"show all complaint", "get all complaint", "list all complaint",
	"show complaint", "all complaint", "list complaint",
}

// lookupPatterns extract a complaint ID candidate from an utterance.
// They run against the upper-cased input, bare codes included.
var lookupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)SHOW.*COMPLAINT.*([A-Z]{3}\d{3})`),
	regexp.MustCompile(`(?i)GET.*COMPLAINT.*([A-Z]{3}\d{3})`),
	regexp.MustCompile(`(?i)DETAILS.*COMPLAINT.*([A-Z]{3}\d{3})`),
	regexp.MustCompile(`(?i)STATUS.*COMPLAINT.*([A-Z]{3}\d{3})`),
	regexp.MustCompile(`(?i)COMPLAINT.*([A-Z]{3}\d{3})`),
	regexp.MustCompile(`(?i)DETAILS.*OF.*([A-Z]{3}\d{3})`),
	regexp.MustCompile(`^([A-Z]{3}\d{3})$`),
}

type route struct {
	match  func(sess *Session, text string) bool
	handle func(ctx context.Context, sess *Session, text string) string
}

// Router classifies each utterance and dispatches it to the intake flow,
// the complaint lookup, the show-all denial, or the answering service.
type Router struct {
	intake     *IntakeController
	complaints domain.ComplaintService
	answer     domain.AnswerService
	routes     []route
}

func NewRouter(intake *IntakeController, complaints domain.ComplaintService, answer domain.AnswerService) *Router {
	r := &Router{
		intake:     intake,
		complaints: complaints,
		answer:     answer,
	}

	// Strict priority order, first match wins. A session that is mid-flow
	// consumes everything, trigger phrases included.
	r.routes = []route{
		{r.matchInFlow, r.handleInFlow},
		{r.matchTrigger, r.handleTrigger},
		{r.matchShowAll, r.handleShowAll},
		{r.matchLookup, r.handleLookup},
		{r.matchAny, r.handleQuestion},
	}

	return r
}

// Route produces the assistant reply for one utterance
func (r *Router) Route(ctx context.Context, sess *Session, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	for _, rt := range r.routes {
		if rt.match(sess, text) {
			return rt.handle(ctx, sess, text)
		}
	}
	return ""
}

func (r *Router) matchInFlow(sess *Session, _ string) bool {
	return sess.InComplaintFlow
}

func (r *Router) handleInFlow(ctx context.Context, sess *Session, text string) string {
	return r.intake.Advance(ctx, sess, text)
}

func (r *Router) matchTrigger(_ *Session, text string) bool {
	lower := strings.ToLower(text)
	for _, trigger := range complaintTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

func (r *Router) handleTrigger(_ context.Context, sess *Session, _ string) string {
	return r.intake.Start(sess)
}

func (r *Router) matchShowAll(_ *Session, text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range showAllPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func (r *Router) handleShowAll(_ context.Context, _ *Session, _ string) string {
	return msgShowAllDenied
}

func (r *Router) matchLookup(_ *Session, text string) bool {
	return extractComplaintID(text) != ""
}

func (r *Router) handleLookup(ctx context.Context, _ *Session, text string) string {
	id := extractComplaintID(text)

	rec, err := r.complaints.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return msgLookupNotFound
	}
	if err != nil {
		log.Printf("[router] lookup of %s failed: %v", id, err)
		return msgLookupFailed
	}

	return formatComplaintCard(rec)
}

func (r *Router) matchAny(_ *Session, _ string) bool {
	return true
}

func (r *Router) handleQuestion(ctx context.Context, _ *Session, text string) string {
	answer, err := r.answer.Answer(ctx, text)
	if err != nil {
		log.Printf("[router] answering failed: %v", err)
		return msgAnswerFailed
	}
	return answer
}

// extractComplaintID returns the first ID candidate found in text, or ""
func extractComplaintID(text string) string {
	upper := strings.ToUpper(strings.TrimSpace(text))
	for _, pattern := range lookupPatterns {
		if m := pattern.FindStringSubmatch(upper); m != nil {
			return m[1]
		}
	}
	return ""
}

func formatComplaintCard(rec *domain.Complaint) string {
	var sb strings.Builder
	sb.WriteString("📋 *Complaint Details:*\n\n")
	fmt.Fprintf(&sb, "*Complaint ID: %s*\n", rec.ComplaintID)
	fmt.Fprintf(&sb, "*Name:* %s\n", rec.Name)
	fmt.Fprintf(&sb, "*Phone:* %s\n", rec.PhoneNumber)
	fmt.Fprintf(&sb, "*Email:* %s\n", rec.Email)
	fmt.Fprintf(&sb, "*Details:* %s\n", rec.ComplaintDetails)
	fmt.Fprintf(&sb, "*Created At:* %s", rec.CreatedAt.Format(createdAtLayout))
	return sb.String()
}

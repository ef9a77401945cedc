package model

import (
	"context"
	"time"

	"github.com/cloudwego/eino/schema"
)

// ContactStep is the position in the contact-gathering sequence. Steps only
// move forward: first_name, last_name, phone, age, done.
type ContactStep string

const (
	ContactStepNone      ContactStep = ""
	ContactStepFirstName ContactStep = "first_name"
	ContactStepLastName  ContactStep = "last_name"
	ContactStepPhone     ContactStep = "phone"
	ContactStepAge       ContactStep = "age"
	ContactStepDone      ContactStep = "done"
)

var contactOrder = map[ContactStep]int{
	ContactStepNone:      0,
	ContactStepFirstName: 1,
	ContactStepLastName:  2,
	ContactStepPhone:     3,
	ContactStepAge:       4,
	ContactStepDone:      5,
}

// Order returns the position of the step; higher is later.
func (s ContactStep) Order() int {
	return contactOrder[s]
}

// Next returns the following step. Done is terminal.
func (s ContactStep) Next() ContactStep {
	switch s {
	case ContactStepNone:
		return ContactStepFirstName
	case ContactStepFirstName:
		return ContactStepLastName
	case ContactStepLastName:
		return ContactStepPhone
	case ContactStepPhone:
		return ContactStepAge
	default:
		return ContactStepDone
	}
}

// ContactInfo holds whatever contact fragments have been collected so far.
type ContactInfo struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Age       *int   `json:"age,omitempty"`
}

// SessionState is everything remembered about one conversation.
type SessionState struct {
	SessionID          string            `json:"session_id"`
	History            []*schema.Message `json:"conversation_history"`
	InterestScore      int               `json:"interest_score"`
	Turns              int               `json:"conversation_turns"`
	ContactRequested   bool              `json:"contact_requested"`
	ContactGathering   bool              `json:"gathering_contact"`
	ContactStep        ContactStep       `json:"contact_step,omitempty"`
	ContactInfo        ContactInfo       `json:"contact_info"`
	InterestedProducts []string          `json:"interested_products"`
	CustomerSaved      bool              `json:"customer_saved"`
	CustomerID         string            `json:"customer_id,omitempty"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func NewSessionState(sessionID string) *SessionState {
	return &SessionState{
		SessionID:          sessionID,
		History:            []*schema.Message{},
		InterestedProducts: []string{},
	}
}

// AddInterestedProduct records name once, keeping first-seen order.
func (s *SessionState) AddInterestedProduct(name string) bool {
	if name == "" {
		return false
	}
	for _, p := range s.InterestedProducts {
		if p == name {
			return false
		}
	}
	s.InterestedProducts = append(s.InterestedProducts, name)
	return true
}

// Transcript returns the user and assistant turns with visible content.
// System prompts, tool calls and tool results are left out.
func (s *SessionState) Transcript() []Turn {
	turns := make([]Turn, 0, len(s.History))
	for _, m := range s.History {
		if m == nil || m.Content == "" {
			continue
		}
		switch m.Role {
		case schema.User, schema.Assistant:
			turns = append(turns, Turn{Role: string(m.Role), Content: m.Content})
		}
	}
	return turns
}

// SessionStore persists SessionState by session id.
type SessionStore interface {
	// GetOrCreate returns the stored state or a fresh one when none exists.
	GetOrCreate(ctx context.Context, sessionID string) (*SessionState, error)

	// Save replaces the stored state for sessionID.
	Save(ctx context.Context, sessionID string, state *SessionState) error

	// Delete drops the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

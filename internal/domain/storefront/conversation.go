package storefront

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Step represents the data-collection step a checkout conversation is at.
// Idle is modeled as the absence of a conversation, not as a step.
type Step string

const (
	// StepCollectingName waits for the customer's first and last name.
	StepCollectingName Step = "collecting_name"
	// StepCollectingPhone waits for the customer's phone number.
	StepCollectingPhone Step = "collecting_phone"
	// StepCollectingEmail waits for the customer's email ("-" means none).
	StepCollectingEmail Step = "collecting_email"
	// StepSubmitting means the order is being sent to the backend; further
	// replies are rejected until submission settles.
	StepSubmitting Step = "submitting"
)

// IsValid checks if the step is a valid Step
func (s Step) IsValid() bool {
	switch s {
	case StepCollectingName, StepCollectingPhone, StepCollectingEmail, StepSubmitting:
		return true
	}
	return false
}

// String returns the string representation of Step
func (s Step) String() string {
	return string(s)
}

// nextStep is the transition table for valid free-text replies.
var nextStep = map[Step]Step{
	StepCollectingName:  StepCollectingPhone,
	StepCollectingPhone: StepCollectingEmail,
	StepCollectingEmail: StepSubmitting,
}

// Conversation holds the transient state of one user's checkout. It carries
// an immutable snapshot of the cart taken when checkout started, so cart
// edits during data collection never alter the order being built.
type Conversation struct {
	ID        uuid.UUID
	UserID    int64
	Step      Step
	Snapshot  Cart
	Name      string
	Phone     string
	Email     string
	StartedAt time.Time
}

// NewConversation starts a checkout conversation for the user, snapshotting
// the given cart. Starting with an empty cart is a guard violation.
func NewConversation(userID int64, cart Cart) (*Conversation, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	return &Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		Step:      StepCollectingName,
		Snapshot:  cart.Clone(),
		StartedAt: time.Now(),
	}, nil
}

// Apply consumes one free-text reply and advances the conversation one step.
// Command-prefixed input is never consumed as field data, and replies that
// are empty after trimming do not advance the step. Once the email is stored
// the conversation enters StepSubmitting and Apply returns
// ErrSubmissionInFlight for any further reply.
func (c *Conversation) Apply(text string) error {
	if c.Step == StepSubmitting {
		return ErrSubmissionInFlight
	}
	if strings.HasPrefix(text, "/") {
		return ErrCommandReply
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyReply
	}

	switch c.Step {
	case StepCollectingName:
		c.Name = text
	case StepCollectingPhone:
		c.Phone = text
	case StepCollectingEmail:
		if text == "-" {
			text = ""
		}
		c.Email = text
	default:
		return ErrNoConversation
	}

	c.Step = nextStep[c.Step]
	return nil
}

// Completed reports whether all fields were collected and the conversation
// is ready for (or undergoing) submission.
func (c *Conversation) Completed() bool {
	return c.Step == StepSubmitting
}

// Draft assembles the order draft consumed by the order submitter. It must
// only be called on a completed conversation.
func (c *Conversation) Draft() (*OrderDraft, error) {
	if !c.Completed() {
		return nil, ErrNoConversation
	}
	return &OrderDraft{
		ConversationID: c.ID,
		UserID:         c.UserID,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		Cart:           c.Snapshot.Clone(),
	}, nil
}

// OrderDraft is the fully collected checkout data handed to the order
// submitter. It exists only transiently before submission.
type OrderDraft struct {
	ConversationID uuid.UUID
	UserID         int64
	Name           string
	Phone          string
	Email          string
	Cart           Cart
}

// SplitName splits the collected name into first and last name. Anything
// after the first space becomes the last name.
func (d *OrderDraft) SplitName() (first, last string) {
	parts := strings.SplitN(d.Name, " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}

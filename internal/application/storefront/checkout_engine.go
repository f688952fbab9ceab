package storefront

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/storebot/backend/internal/domain/storefront"
)

// ReplyResult is the outcome of feeding one free-text reply to the engine.
type ReplyResult struct {
	// Prompt is the text asking for the next field, empty when collection
	// completed.
	Prompt string
	// Draft is non-nil once all fields were collected; the conversation is
	// then in the submitting step and further replies are rejected until
	// submission settles.
	Draft *storefront.OrderDraft
}

// CheckoutEngine owns the per-user checkout conversations and drives the
// ordered name → phone → email collection. At most one conversation exists
// per user.
type CheckoutEngine struct {
	mu    sync.Mutex
	convs map[int64]*storefront.Conversation
	carts *CartService
	log   *zap.Logger
}

// NewCheckoutEngine creates an engine backed by the given cart store.
func NewCheckoutEngine(carts *CartService, log *zap.Logger) *CheckoutEngine {
	return &CheckoutEngine{
		convs: make(map[int64]*storefront.Conversation),
		carts: carts,
		log:   log,
	}
}

// Start begins a checkout conversation for the user, snapshotting the cart
// as of now. Starting with an empty cart returns storefront.ErrEmptyCart and
// creates no conversation. Starting while already mid-collection restarts
// from the name step with a fresh snapshot, discarding partial answers; the
// only exception is a submission already in flight, which must settle first.
func (e *CheckoutEngine) Start(userID int64) (string, error) {
	cart := e.carts.Cart(userID)

	e.mu.Lock()
	defer e.mu.Unlock()

	if existing, ok := e.convs[userID]; ok && existing.Step == storefront.StepSubmitting {
		return "", storefront.ErrSubmissionInFlight
	}

	conv, err := storefront.NewConversation(userID, cart)
	if err != nil {
		return "", err
	}
	e.convs[userID] = conv

	e.log.Info("checkout started",
		zap.Int64("user_id", userID),
		zap.String("conversation_id", conv.ID.String()),
		zap.Int("cart_size", len(conv.Snapshot)),
	)
	return prompts[conv.Step], nil
}

// Active reports whether the user has a checkout conversation in progress.
func (e *CheckoutEngine) Active(userID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.convs[userID]
	return ok
}

// Reply feeds one free-text reply into the user's conversation. Without an
// active conversation it returns storefront.ErrNoConversation; the reply
// validation errors of Conversation.Apply pass through unchanged.
func (e *CheckoutEngine) Reply(userID int64, text string) (*ReplyResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	conv, ok := e.convs[userID]
	if !ok {
		return nil, storefront.ErrNoConversation
	}

	if err := conv.Apply(text); err != nil {
		return nil, err
	}

	if conv.Completed() {
		draft, err := conv.Draft()
		if err != nil {
			return nil, err
		}
		return &ReplyResult{Draft: draft}, nil
	}
	return &ReplyResult{Prompt: prompts[conv.Step]}, nil
}

// Finish destroys the user's conversation after a successful submission.
func (e *CheckoutEngine) Finish(userID int64) {
	e.mu.Lock()
	delete(e.convs, userID)
	e.mu.Unlock()
}

// Reopen returns a conversation whose submission failed to the email step,
// keeping the collected name and phone so the user is not forced to re-enter
// them.
func (e *CheckoutEngine) Reopen(userID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	conv, ok := e.convs[userID]
	if !ok || conv.Step != storefront.StepSubmitting {
		return
	}
	conv.Step = storefront.StepCollectingEmail
}

// IsReplyIgnored reports whether a Reply error means the input was simply
// not checkout data (no conversation, empty text, command, or a reply racing
// an in-flight submission) rather than a fault.
func IsReplyIgnored(err error) bool {
	return errors.Is(err, storefront.ErrNoConversation) ||
		errors.Is(err, storefront.ErrEmptyReply) ||
		errors.Is(err, storefront.ErrCommandReply) ||
		errors.Is(err, storefront.ErrSubmissionInFlight)
}

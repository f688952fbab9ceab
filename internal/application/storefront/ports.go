package storefront

import "context"

// Button is one inline button attached to an outgoing message.
type Button struct {
	Label string
	Data  string
}

// MessageOptions carries the transport-agnostic presentation options for an
// outgoing message.
type MessageOptions struct {
	Markdown   bool
	ForceReply bool
	Buttons    [][]Button
}

// Messenger is the port to the chat transport. Implementations deliver
// messages to a chat participant identified by their chat id.
type Messenger interface {
	// SendText delivers a plain or markdown text message.
	SendText(ctx context.Context, chatID int64, text string, opts *MessageOptions) error

	// SendPhoto delivers an image by URL with a caption.
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, opts *MessageOptions) error

	// AckCallback acknowledges a button press with a short notice.
	AckCallback(ctx context.Context, callbackID, text string) error
}

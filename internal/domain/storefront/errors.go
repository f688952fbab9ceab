package storefront

import "errors"

var (
	// Cart errors
	ErrInvalidProduct  = errors.New("storefront: product has no valid price")
	ErrInvalidQuantity = errors.New("storefront: quantity must be positive")

	// Conversation errors
	ErrEmptyCart          = errors.New("storefront: cannot start checkout with an empty cart")
	ErrNoConversation     = errors.New("storefront: no active checkout conversation")
	ErrEmptyReply         = errors.New("storefront: reply must not be empty")
	ErrCommandReply       = errors.New("storefront: commands are not checkout input")
	ErrSubmissionInFlight = errors.New("storefront: order submission already in flight")
)

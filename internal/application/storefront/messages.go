package storefront

import "github.com/storebot/backend/internal/domain/storefront"

// User-facing texts. Raw backend errors are never shown to the end user;
// failures surface as the terse notices below while the full error goes to
// the operator log.
const (
	msgWelcome = "👋 Welcome to the store!\n\nWrite /products to see the products\n/cart — view cart."

	msgCartEmpty         = "🧺 Your cart is empty."
	msgCheckoutCartEmpty = "🧺 Cart is empty."
	msgCatalogError      = "❌ Error while receiving goods."
	msgOrderPlaced = "✅ The order has been placed! We will contact you."
	msgOrderFailed = "❌ Error while placing your order."

	toastAddedToCart = "✅ Added to cart"
	toastError       = "❌ Error"

	promptName  = "📛 Please enter your *first and last name*:"
	promptPhone = "📞 Enter your *phone*:"
	promptEmail = "📧 Enter your *email* (or -):"
)

// prompts maps each collection step to the text asking for its field.
var prompts = map[storefront.Step]string{
	storefront.StepCollectingName:  promptName,
	storefront.StepCollectingPhone: promptPhone,
	storefront.StepCollectingEmail: promptEmail,
}

// promptOptions are the presentation options for checkout prompts.
func promptOptions() *MessageOptions {
	return &MessageOptions{Markdown: true, ForceReply: true}
}

package storefront

import (
	"sync"

	"go.uber.org/zap"

	"github.com/storebot/backend/internal/domain/commerce"
	"github.com/storebot/backend/internal/domain/storefront"
)

// CartService owns the per-user carts. All state is process-local and
// in-memory; carts live until the order is placed or the process exits.
type CartService struct {
	mu    sync.RWMutex
	carts map[int64]storefront.Cart
	log   *zap.Logger
}

// NewCartService creates an empty cart store.
func NewCartService(log *zap.Logger) *CartService {
	return &CartService{
		carts: make(map[int64]storefront.Cart),
		log:   log,
	}
}

// AddItem merges the product into the user's cart: an existing line for the
// same product gets its quantity incremented, otherwise a new line is
// appended. Products without a positive price are rejected with
// storefront.ErrInvalidProduct and the cart is left unchanged.
func (s *CartService) AddItem(userID int64, product commerce.Product, quantity int) (storefront.Cart, error) {
	item, err := storefront.NewCartItem(product.ID, product.Name, product.Price, quantity)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	updated := s.carts[userID].Add(item)
	s.carts[userID] = updated
	s.mu.Unlock()

	s.log.Debug("item added to cart",
		zap.Int64("user_id", userID),
		zap.Int64("product_id", product.ID),
		zap.Int("cart_size", len(updated)),
	)
	return updated.Clone(), nil
}

// Cart returns a copy of the user's cart. A user with no prior activity gets
// an empty cart, never an error.
func (s *CartService) Cart(userID int64) storefront.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[userID].Clone()
}

// Clear removes all cart entries for the user. Idempotent.
func (s *CartService) Clear(userID int64) {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
}

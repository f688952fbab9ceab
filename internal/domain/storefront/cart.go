package storefront

import (
	"github.com/shopspring/decimal"
)

// CartItem is a single accumulated selection in a user's cart.
type CartItem struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// NewCartItem creates a cart item, rejecting products without a positive
// price and non-positive quantities.
func NewCartItem(productID int64, name string, unitPrice decimal.Decimal, quantity int) (CartItem, error) {
	if !unitPrice.IsPositive() {
		return CartItem{}, ErrInvalidProduct
	}
	if quantity <= 0 {
		return CartItem{}, ErrInvalidQuantity
	}
	return CartItem{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	}, nil
}

// Subtotal returns UnitPrice * Quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered sequence of cart items. The zero value (nil) is a valid
// empty cart.
type Cart []CartItem

// Add merges an item into the cart: an existing entry for the same product
// gets its quantity incremented, otherwise the item is appended. The
// receiver is not modified.
func (c Cart) Add(item CartItem) Cart {
	out := c.Clone()
	for i := range out {
		if out[i].ProductID == item.ProductID {
			out[i].Quantity += item.Quantity
			return out
		}
	}
	return append(out, item)
}

// Clone returns a deep copy of the cart. Cloning insulates checkout
// snapshots from later cart mutations.
func (c Cart) Clone() Cart {
	if len(c) == 0 {
		return Cart{}
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Total returns the sum of all item subtotals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IsEmpty reports whether the cart has no items.
func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

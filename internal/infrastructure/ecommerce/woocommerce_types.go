package ecommerce

// wooImage is a product image in a WooCommerce API response
type wooImage struct {
	Src string `json:"src"`
}

// wooProduct is a product in a WooCommerce API response
type wooProduct struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Price            string     `json:"price"`
	ShortDescription string     `json:"short_description"`
	Images           []wooImage `json:"images"`
}

// wooAddress is a billing or shipping block in an order payload
type wooAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// wooLineItem is a line item in an order payload
type wooLineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// wooOrderRequest is the payload for POST /orders
type wooOrderRequest struct {
	PaymentMethod      string        `json:"payment_method"`
	PaymentMethodTitle string        `json:"payment_method_title"`
	SetPaid            bool          `json:"set_paid"`
	Billing            wooAddress    `json:"billing"`
	Shipping           wooAddress    `json:"shipping"`
	LineItems          []wooLineItem `json:"line_items"`
}

// wooOrderResponse is the response from POST /orders
type wooOrderResponse struct {
	ID int64 `json:"id"`
}

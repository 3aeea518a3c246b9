package entity

import "time"

// CartItem reserves one product for one user. At most one exists per (UserID, ProductID).
type CartItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CartLine is a cart item joined with its product for display.
// Sales embed a copy of the lines they were created from.
type CartLine struct {
	CartItemID string `json:"cart_item_id"`
	ProductID  string `json:"product_id"`
	Title      string `json:"title"`
	Price      string `json:"price"`
	ImageRef   string `json:"image_ref"`
	Quantity   int    `json:"quantity"`
}

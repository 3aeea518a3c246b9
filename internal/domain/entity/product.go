package entity

import "time"

// ProductStatus moves from available to sold exactly once, at checkout.
type ProductStatus string

const (
	ProductAvailable ProductStatus = "available"
	ProductSold      ProductStatus = "sold"
)

// ProductDetails are the fields an admin may overwrite on update.
type ProductDetails struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Price    string  `json:"price" validate:"required,max=50"`
	Width    float64 `json:"width" validate:"gte=0"`
	Height   float64 `json:"height" validate:"gte=0"`
	ImageRef string  `json:"image_ref" validate:"max=2048"`
}

// Product is a unique catalog piece. Price is kept display-formatted ("R$ 150,00").
type Product struct {
	ID string `json:"id"`
	ProductDetails
	OwnerID   string        `json:"owner_id"`
	Status    ProductStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// IsAvailable reports whether the product can still be reserved.
func (p *Product) IsAvailable() bool {
	return p.Status == ProductAvailable
}

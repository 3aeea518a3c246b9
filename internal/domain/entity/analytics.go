package entity

import "time"

// ProductView is one append-only analytics event.
type ProductView struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	ViewerID  string    `json:"viewer_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PopularProduct is a product ranked by view count.
type PopularProduct struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	ViewCount int64  `json:"view_count"`
}

// DashboardStats summarizes the store for the admin dashboard.
type DashboardStats struct {
	TotalViews      int64            `json:"total_views"`
	TotalProducts   int64            `json:"total_products"`
	TotalUsers      int64            `json:"total_users"`
	PopularProducts []PopularProduct `json:"popular_products"`
}

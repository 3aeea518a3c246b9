package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomOrderStatus is the state of a made-to-order request.
//
//	pending -> quoted -> refused
//	                  -> paid
type CustomOrderStatus string

const (
	CustomOrderPending CustomOrderStatus = "pending"
	CustomOrderQuoted  CustomOrderStatus = "quoted"
	CustomOrderRefused CustomOrderStatus = "refused"
	CustomOrderPaid    CustomOrderStatus = "paid"
)

var customOrderTransitions = map[CustomOrderStatus][]CustomOrderStatus{
	CustomOrderPending: {CustomOrderQuoted},
	CustomOrderQuoted:  {CustomOrderRefused, CustomOrderPaid},
}

// Valid reports whether s is one of the known statuses.
func (s CustomOrderStatus) Valid() bool {
	switch s {
	case CustomOrderPending, CustomOrderQuoted, CustomOrderRefused, CustomOrderPaid:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s CustomOrderStatus) Terminal() bool {
	return len(customOrderTransitions[s]) == 0
}

// CanTransitionTo reports whether next directly follows s.
func (s CustomOrderStatus) CanTransitionTo(next CustomOrderStatus) bool {
	for _, allowed := range customOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CustomOrder is a bespoke request. Price and DeliveryFee stay nil until the order is quoted.
type CustomOrder struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	ImageRef    string            `json:"image_ref"`
	Width       float64           `json:"width"`
	Height      float64           `json:"height"`
	Description string            `json:"description"`
	Address     string            `json:"address"`
	Status      CustomOrderStatus `json:"status"`
	Price       *decimal.Decimal  `json:"price"`
	DeliveryFee *decimal.Decimal  `json:"delivery_fee"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Clone returns a copy whose quote amounts are not shared with o.
func (o CustomOrder) Clone() CustomOrder {
	if o.Price != nil {
		p := *o.Price
		o.Price = &p
	}
	if o.DeliveryFee != nil {
		f := *o.DeliveryFee
		o.DeliveryFee = &f
	}
	return o
}

// PayableTotal is price plus delivery fee. ok is false while the order has no quote.
func (o *CustomOrder) PayableTotal() (total decimal.Decimal, ok bool) {
	if o.Price == nil {
		return decimal.Zero, false
	}
	total = *o.Price
	if o.DeliveryFee != nil {
		total = total.Add(*o.DeliveryFee)
	}
	return total, true
}

// PendingCustomOrder is the admin queue row: the order plus who asked for it.
type PendingCustomOrder struct {
	CustomOrder
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
}

package model

import "time"

// PaymentMethod is the closed set of supported payment methods.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
)

// Valid reports whether the payment method is one of the supported values.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery || m == PaymentBankTransfer
}

// OrderStatus is the lifecycle state of a persisted order. This client only
// ever writes StatusPending; orders are append-only records.
type OrderStatus string

// StatusPending means the order is awaiting processing.
const StatusPending OrderStatus = "pending"

// Order is the record persisted on successful checkout: a snapshot of the
// cart, the shipping address and the payment choice at submission time.
type Order struct {
	ID              string          `json:"id"`
	Items           []CartItem      `json:"items"`
	Total           float64         `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	OrderNotes      string          `json:"orderNotes,omitempty"`
	OrderDate       time.Time       `json:"orderDate"`
	Status          OrderStatus     `json:"status"`
}

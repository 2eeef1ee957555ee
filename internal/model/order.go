package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// LicenseValidity is the license window granted when an order completes.
const LicenseValidity = 30 * 24 * time.Hour

var validTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:   {OrderStatusCompleted: true, OrderStatusCancelled: true},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from s to next.
// Completed and cancelled are terminal.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	return validTransitions[s][next]
}

// Order represents a customer order. Items is a snapshot of what was
// purchased, deliberately decoupled from live Product/SKU state so later
// catalog edits never alter historical orders. ExpiresAt is nil until the
// order is completed.
type Order struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	CustomerID    *int64      `json:"customerId,omitempty" db:"customer_id"`
	CustomerName  string      `json:"customerName,omitempty" db:"customer_name"`
	CustomerEmail string      `json:"customerEmail,omitempty" db:"customer_email"`
	CustomerPhone string      `json:"customerPhone,omitempty" db:"customer_phone"`
	Items         []OrderItem `json:"items" db:"items"`
	TotalAmount   int64       `json:"totalAmount" db:"total_amount"`
	Status        OrderStatus `json:"status" db:"status"`
	ExpiresAt     *time.Time  `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a priced snapshot of one purchased line. ProductName,
// Selection and UnitPrice are captured at purchase time.
type OrderItem struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Selection   string `json:"selection,omitempty"` // e.g. "License Term: 1 month | Edition: Pro"
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
}

// OrderRequest is the payload for creating an order.
type OrderRequest struct {
	CustomerID    *int64      `json:"customerId,omitempty"`
	CustomerName  string      `json:"customerName,omitempty"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	Items         []OrderItem `json:"items"`
	TotalAmount   int64       `json:"totalAmount"`
}

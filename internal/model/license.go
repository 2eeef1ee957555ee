package model

import "time"

// SoldLicense is an admin-entered ledger record tracking a delivered
// license's expiration. It is maintained independently of orders and feeds
// the renewal-reminder screen.
type SoldLicense struct {
	ID               int64     `json:"id" db:"id"`
	CustomerName     string    `json:"customerName" db:"customer_name"`
	CustomerEmail    string    `json:"customerEmail" db:"customer_email"`
	CustomerWhatsapp string    `json:"customerWhatsapp" db:"customer_whatsapp"`
	ProductID        int64     `json:"productId" db:"product_id"`
	ProductName      string    `json:"productName" db:"product_name"` // denormalized for display
	LicenseCode      string    `json:"licenseCode" db:"license_code"`
	ExpirationDate   time.Time `json:"expirationDate" db:"expiration_date"`
	Notes            string    `json:"notes,omitempty" db:"notes"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// SoldLicenseInput is the payload for creating or updating a ledger entry.
type SoldLicenseInput struct {
	CustomerName     string    `json:"customerName"`
	CustomerEmail    string    `json:"customerEmail"`
	CustomerWhatsapp string    `json:"customerWhatsapp"`
	ProductID        int64     `json:"productId"`
	ProductName      string    `json:"productName"`
	LicenseCode      string    `json:"licenseCode"`
	ExpirationDate   time.Time `json:"expirationDate"`
	Notes            string    `json:"notes,omitempty"`
}

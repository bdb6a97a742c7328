package models

import "time"

type RmaRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Human-readable reference, patched from the primary key inside the
	// creation transaction. Immutable afterwards.
	RmaNumber string `gorm:"size:50;uniqueIndex;not null" json:"rma_number"`

	CustomerID uint     `gorm:"not null;index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	// Loose reference: products may be deleted without touching RMAs.
	ProductCode string `gorm:"size:100;not null" json:"product_code"`
	ProductName string `gorm:"size:255" json:"product_name"`

	SerialNumber       string    `gorm:"size:100;not null" json:"serial_number"`
	Quantity           int       `gorm:"default:1" json:"quantity"`
	InvoiceDate        time.Time `json:"invoice_date"`
	SalesDocumentNo    string    `gorm:"size:100;not null" json:"sales_document_no"`
	ReturnReason       string    `gorm:"size:255;not null" json:"return_reason"`
	ProblemDescription string    `gorm:"type:text;not null" json:"problem_description"`
	PhotoPath          string    `gorm:"size:255" json:"photo_path"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

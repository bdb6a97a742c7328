package models

import (
	"strings"
	"time"
)

type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyName  string `gorm:"size:255" json:"company_name"`
	IsNotCompany bool   `gorm:"default:false" json:"is_not_company"`
	Website      string `gorm:"size:255" json:"website"`

	FirstName    string `gorm:"size:100;not null" json:"first_name"`
	LastName     string `gorm:"size:100;not null" json:"last_name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Fax          string `gorm:"size:20" json:"fax"`

	ShippingAddress1 string `gorm:"size:255" json:"shipping_address1"`
	ShippingAddress2 string `gorm:"size:255" json:"shipping_address2"`
	ShippingCity     string `gorm:"size:100" json:"shipping_city"`
	ShippingState    string `gorm:"size:100" json:"shipping_state"`
	ShippingZipcode  string `gorm:"size:20" json:"shipping_zipcode"`
	ShippingCountry  string `gorm:"size:100" json:"shipping_country"`

	IsBillingAddressDifferent bool   `gorm:"default:false" json:"is_billing_address_different"`
	BillingAddress1           string `gorm:"size:255" json:"billing_address1"`
	BillingAddress2           string `gorm:"size:255" json:"billing_address2"`
	BillingCity               string `gorm:"size:100" json:"billing_city"`
	BillingState              string `gorm:"size:100" json:"billing_state"`
	BillingZipcode            string `gorm:"size:20" json:"billing_zipcode"`
	BillingCountry            string `gorm:"size:100" json:"billing_country"`

	VerificationKey string `gorm:"size:255" json:"verification_key"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) DisplayName() string {
	if c == nil {
		return ""
	}
	if c.CompanyName != "" {
		return c.CompanyName
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

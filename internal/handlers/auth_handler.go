package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rmadesk/rma-portal/internal/auth"
	"github.com/rmadesk/rma-portal/internal/httperr"
	"github.com/rmadesk/rma-portal/internal/middleware"
	"github.com/rmadesk/rma-portal/internal/models"
	"github.com/rmadesk/rma-portal/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *auth.TokenManager
	store  auth.TokenStore
}

func NewAuthHandler(db *gorm.DB, tokens *auth.TokenManager, store auth.TokenStore) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, store: store}
}

// --------- Requests ---------

type RegisterRequest struct {
	CompanyName  string `json:"company_name" binding:"max=255"`
	IsNotCompany bool   `json:"is_not_company"`
	Website      string `json:"website" binding:"omitempty,url,max=255"`

	FirstName            string `json:"first_name" binding:"required,max=255"`
	LastName             string `json:"last_name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	Phone                string `json:"phone" binding:"required,max=20"`
	Fax                  string `json:"fax" binding:"max=20"`

	ShippingAddress1 string `json:"shipping_address1" binding:"required,max=255"`
	ShippingAddress2 string `json:"shipping_address2" binding:"max=255"`
	ShippingCity     string `json:"shipping_city" binding:"required,max=255"`
	ShippingState    string `json:"shipping_state" binding:"required,max=255"`
	ShippingZipcode  string `json:"shipping_zipcode" binding:"required,max=255"`
	ShippingCountry  string `json:"shipping_country" binding:"required,max=255"`

	IsBillingAddressDifferent bool   `json:"is_billing_address_different"`
	BillingAddress1           string `json:"billing_address1" binding:"max=255"`
	BillingAddress2           string `json:"billing_address2" binding:"max=255"`
	BillingCity               string `json:"billing_city" binding:"max=255"`
	BillingState              string `json:"billing_state" binding:"max=255"`
	BillingZipcode            string `json:"billing_zipcode" binding:"max=255"`
	BillingCountry            string `json:"billing_country" binding:"max=255"`

	VerificationKey string `json:"verification_key" binding:"max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// normalizeBilling applies the single billing rule: when the billing
// address is not flagged as different, billing fields are overwritten
// with shipping fields before validation and persistence.
func (r *RegisterRequest) normalizeBilling() {
	if r.IsBillingAddressDifferent {
		return
	}
	r.BillingAddress1 = r.ShippingAddress1
	r.BillingAddress2 = r.ShippingAddress2
	r.BillingCity = r.ShippingCity
	r.BillingState = r.ShippingState
	r.BillingZipcode = r.ShippingZipcode
	r.BillingCountry = r.ShippingCountry
}

func (r *RegisterRequest) billingFieldErrors() httperr.FieldErrors {
	fields := httperr.FieldErrors{}
	if !r.IsBillingAddressDifferent {
		return fields
	}

	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			fields[name] = "The " + name + " field is required when the billing address differs."
		}
	}
	check("billing_address1", r.BillingAddress1)
	check("billing_city", r.BillingCity)
	check("billing_state", r.BillingState)
	check("billing_zipcode", r.BillingZipcode)
	check("billing_country", r.BillingCountry)
	return fields
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
		return
	}

	req.normalizeBilling()
	if fields := req.billingFieldErrors(); len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.Customer{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Validation(c, map[string]string{
			"email": "The email has already been taken.",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not register.")
		return
	}

	customer := models.Customer{
		CompanyName:  req.CompanyName,
		IsNotCompany: req.IsNotCompany,
		Website:      req.Website,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Fax:          req.Fax,

		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		ShippingCity:     req.ShippingCity,
		ShippingState:    req.ShippingState,
		ShippingZipcode:  req.ShippingZipcode,
		ShippingCountry:  req.ShippingCountry,

		IsBillingAddressDifferent: req.IsBillingAddressDifferent,
		BillingAddress1:           req.BillingAddress1,
		BillingAddress2:           req.BillingAddress2,
		BillingCity:               req.BillingCity,
		BillingState:              req.BillingState,
		BillingZipcode:            req.BillingZipcode,
		BillingCountry:            req.BillingCountry,

		VerificationKey: req.VerificationKey,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_create_customer", "Could not register.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Customer registered successfully!",
		"customer": customer,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var customer models.Customer
	if err := h.db.Where("email = ?", email).First(&customer).Error; err != nil {
		// Unknown email and wrong password are indistinguishable.
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
		return
	}

	token, jti, err := h.tokens.Generate(customer.ID, auth.PrincipalCustomer)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not log in.")
		return
	}
	if err := h.store.Save(c.Request.Context(), jti, h.tokens.TTL()); err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not log in.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"customer": customer,
		"token":    token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.MustGet(middleware.ContextTokenID).(string)

	if err := h.store.Revoke(c.Request.Context(), jti); err != nil {
		httperr.Internal(c, "failed_to_logout", "Could not log out.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextPrincipalID).(uint)

	var customer models.Customer
	if err := h.db.First(&customer, customerID).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome back!",
		"user":    customer,
	})
}

// GenerateTempPassword builds the throwaway credential assigned to
// admin-created customers.
func GenerateTempPassword() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rmadesk/rma-portal/internal/httperr"
	"github.com/rmadesk/rma-portal/internal/httpresp"
	"github.com/rmadesk/rma-portal/internal/models"
	"github.com/rmadesk/rma-portal/internal/validators"
)

// CustomerHandler serves the back-office customer CRUD.
type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// --------- Requests ---------

type CustomerFields struct {
	CompanyName  string `json:"company_name" binding:"max=255"`
	IsNotCompany bool   `json:"is_not_company"`
	Website      string `json:"website" binding:"omitempty,url,max=255"`

	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"max=20"`
	Fax       string `json:"fax" binding:"max=20"`

	ShippingAddress1 string `json:"shipping_address1" binding:"max=255"`
	ShippingAddress2 string `json:"shipping_address2" binding:"max=255"`
	ShippingCity     string `json:"shipping_city" binding:"max=100"`
	ShippingState    string `json:"shipping_state" binding:"max=100"`
	ShippingZipcode  string `json:"shipping_zipcode" binding:"max=20"`
	ShippingCountry  string `json:"shipping_country" binding:"max=100"`

	IsBillingAddressDifferent bool   `json:"is_billing_address_different"`
	BillingAddress1           string `json:"billing_address1" binding:"max=255"`
	BillingAddress2           string `json:"billing_address2" binding:"max=255"`
	BillingCity               string `json:"billing_city" binding:"max=100"`
	BillingState              string `json:"billing_state" binding:"max=100"`
	BillingZipcode            string `json:"billing_zipcode" binding:"max=20"`
	BillingCountry            string `json:"billing_country" binding:"max=100"`
}

func (f *CustomerFields) apply(customer *models.Customer) {
	if !f.IsBillingAddressDifferent {
		f.BillingAddress1 = f.ShippingAddress1
		f.BillingAddress2 = f.ShippingAddress2
		f.BillingCity = f.ShippingCity
		f.BillingState = f.ShippingState
		f.BillingZipcode = f.ShippingZipcode
		f.BillingCountry = f.ShippingCountry
	}

	customer.CompanyName = f.CompanyName
	customer.IsNotCompany = f.IsNotCompany
	customer.Website = f.Website
	customer.FirstName = f.FirstName
	customer.LastName = f.LastName
	customer.Email = strings.ToLower(strings.TrimSpace(f.Email))
	customer.Phone = f.Phone
	customer.Fax = f.Fax

	customer.ShippingAddress1 = f.ShippingAddress1
	customer.ShippingAddress2 = f.ShippingAddress2
	customer.ShippingCity = f.ShippingCity
	customer.ShippingState = f.ShippingState
	customer.ShippingZipcode = f.ShippingZipcode
	customer.ShippingCountry = f.ShippingCountry

	customer.IsBillingAddressDifferent = f.IsBillingAddressDifferent
	customer.BillingAddress1 = f.BillingAddress1
	customer.BillingAddress2 = f.BillingAddress2
	customer.BillingCity = f.BillingCity
	customer.BillingState = f.BillingState
	customer.BillingZipcode = f.BillingZipcode
	customer.BillingCountry = f.BillingCountry
}

// --------- Handlers ---------

func (h *CustomerHandler) List(c *gin.Context) {
	page := pageParam(c, "page", 1)
	perPage := pageParam(c, "per_page", 10)

	q := h.db.Model(&models.Customer{})

	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"LOWER(company_name) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Could not fetch customers.")
		return
	}

	var customers []models.Customer
	if err := q.
		Order("id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&customers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Could not fetch customers.")
		return
	}

	httpresp.Page(c, customers, httpresp.NewMeta(total, perPage, page, len(customers)))
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CustomerFields
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
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

	// Admin-created accounts start with a throwaway credential; the
	// customer resets it through the verification key flow.
	hashed, err := bcrypt.GenerateFromPassword([]byte(GenerateTempPassword()), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_create_customer", "Could not create the customer.")
		return
	}

	var customer models.Customer
	req.apply(&customer)
	customer.PasswordHash = string(hashed)
	customer.VerificationKey = strings.ReplaceAll(uuid.NewString(), "-", "")

	if err := h.db.Create(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_create_customer", "Could not create the customer.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Customer created successfully.",
		"customer": customer,
	})
}

func (h *CustomerHandler) Show(c *gin.Context) {
	id, ok := idParam(c, "customer_not_found", "Customer not found.")
	if !ok {
		return
	}

	var customer models.Customer
	if err := h.db.First(&customer, id).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "customer_not_found", "Customer not found.")
	if !ok {
		return
	}

	var customer models.Customer
	if err := h.db.First(&customer, id).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	var req CustomerFields
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Uniqueness check excludes the row being updated.
	var count int64
	h.db.Model(&models.Customer{}).
		Where("email = ? AND id <> ?", email, customer.ID).
		Count(&count)
	if count > 0 {
		httperr.Validation(c, map[string]string{
			"email": "The email has already been taken.",
		})
		return
	}

	req.apply(&customer)

	if err := h.db.Save(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_update_customer", "Could not update the customer.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Customer updated successfully.",
		"customer": customer,
	})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "customer_not_found", "Customer not found.")
	if !ok {
		return
	}

	var customer models.Customer
	if err := h.db.First(&customer, id).Error; err != nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	// Customers own their RMA requests; deleting one takes its requests
	// with it.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", customer.ID).
			Delete(&models.RmaRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&customer).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_customer", "Could not delete the customer.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully."})
}

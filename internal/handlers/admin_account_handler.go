package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rmadesk/rma-portal/internal/httperr"
	"github.com/rmadesk/rma-portal/internal/httpresp"
	"github.com/rmadesk/rma-portal/internal/middleware"
	"github.com/rmadesk/rma-portal/internal/models"
	"github.com/rmadesk/rma-portal/internal/validators"
)

// AdminAccountHandler manages back-office accounts themselves.
type AdminAccountHandler struct {
	db *gorm.DB
}

func NewAdminAccountHandler(db *gorm.DB) *AdminAccountHandler {
	return &AdminAccountHandler{db: db}
}

// --------- Requests ---------

type CreateAdminRequest struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"max=50"`
}

type UpdateAdminRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Password  *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Role      *string `json:"role,omitempty" binding:"omitempty,max=50"`
}

// --------- Handlers ---------

func (h *AdminAccountHandler) List(c *gin.Context) {
	page := pageParam(c, "page", 1)
	perPage := pageParam(c, "per_page", 10)

	q := h.db.Model(&models.Admin{})

	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_admins", "Could not fetch admins.")
		return
	}

	var admins []models.Admin
	if err := q.
		Order("id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&admins).Error; err != nil {
		httperr.Internal(c, "failed_to_list_admins", "Could not fetch admins.")
		return
	}

	httpresp.Page(c, admins, httpresp.NewMeta(total, perPage, page, len(admins)))
}

func (h *AdminAccountHandler) Create(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.Admin{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Validation(c, map[string]string{
			"email": "The email has already been taken.",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_create_admin", "Could not create the admin.")
		return
	}

	role := req.Role
	if role == "" {
		role = "super_admin"
	}

	admin := models.Admin{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := h.db.Create(&admin).Error; err != nil {
		httperr.Internal(c, "failed_to_create_admin", "Could not create the admin.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin created successfully.",
		"admin":   admin,
	})
}

func (h *AdminAccountHandler) Show(c *gin.Context) {
	id, ok := idParam(c, "admin_not_found", "Admin not found.")
	if !ok {
		return
	}

	var admin models.Admin
	if err := h.db.First(&admin, id).Error; err != nil {
		httperr.NotFound(c, "admin_not_found", "Admin not found.")
		return
	}

	httpresp.OK(c, admin)
}

func (h *AdminAccountHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "admin_not_found", "Admin not found.")
	if !ok {
		return
	}

	var admin models.Admin
	if err := h.db.First(&admin, id).Error; err != nil {
		httperr.NotFound(c, "admin_not_found", "Admin not found.")
		return
	}

	var req UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
		return
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))

		var count int64
		h.db.Model(&models.Admin{}).
			Where("email = ? AND id <> ?", email, admin.ID).
			Count(&count)
		if count > 0 {
			httperr.Validation(c, map[string]string{
				"email": "The email has already been taken.",
			})
			return
		}
		admin.Email = email
	}

	if req.FirstName != nil {
		admin.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		admin.LastName = *req.LastName
	}
	if req.Role != nil {
		admin.Role = *req.Role
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_update_admin", "Could not update the admin.")
			return
		}
		admin.PasswordHash = string(hashed)
	}

	if err := h.db.Save(&admin).Error; err != nil {
		httperr.Internal(c, "failed_to_update_admin", "Could not update the admin.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin updated successfully.",
		"admin":   admin,
	})
}

func (h *AdminAccountHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "admin_not_found", "Admin not found.")
	if !ok {
		return
	}

	// An admin cannot delete its own account while logged in with it.
	if selfID, exists := c.Get(middleware.ContextPrincipalID); exists && selfID.(uint) == id {
		httperr.BadRequest(c, "cannot_delete_self", "You cannot delete your own account.")
		return
	}

	res := h.db.Delete(&models.Admin{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_admin", "Could not delete the admin.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "admin_not_found", "Admin not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted successfully."})
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rmadesk/rma-portal/internal/auth"
	"github.com/rmadesk/rma-portal/internal/httperr"
	"github.com/rmadesk/rma-portal/internal/middleware"
	"github.com/rmadesk/rma-portal/internal/models"
	"github.com/rmadesk/rma-portal/internal/validators"
)

type AdminAuthHandler struct {
	db     *gorm.DB
	tokens *auth.TokenManager
	store  auth.TokenStore
}

func NewAdminAuthHandler(db *gorm.DB, tokens *auth.TokenManager, store auth.TokenStore) *AdminAuthHandler {
	return &AdminAuthHandler{db: db, tokens: tokens, store: store}
}

func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.Admin
	if err := h.db.Where("email = ?", email).First(&admin).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
		return
	}

	token, jti, err := h.tokens.Generate(admin.ID, auth.PrincipalAdmin)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not log in.")
		return
	}
	if err := h.store.Save(c.Request.Context(), jti, h.tokens.TTL()); err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not log in.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"admin":   admin,
		"token":   token,
	})
}

func (h *AdminAuthHandler) Me(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextPrincipalID).(uint)

	var admin models.Admin
	if err := h.db.First(&admin, adminID).Error; err != nil {
		httperr.NotFound(c, "admin_not_found", "Admin not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

func (h *AdminAuthHandler) Logout(c *gin.Context) {
	jti := c.MustGet(middleware.ContextTokenID).(string)

	if err := h.store.Revoke(c.Request.Context(), jti); err != nil {
		httperr.Internal(c, "failed_to_logout", "Could not log out.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rmadesk/rma-portal/internal/httperr"
	"github.com/rmadesk/rma-portal/internal/httpresp"
	"github.com/rmadesk/rma-portal/internal/models"
	"github.com/rmadesk/rma-portal/internal/validators"
)

// ProductHandler serves the back-office product CRUD.
type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// --------- Requests ---------

type ProductFields struct {
	Code     string   `json:"code" binding:"required,max=100"`
	Name     string   `json:"name" binding:"required,max=255"`
	Brand    string   `json:"brand" binding:"max=100"`
	Category string   `json:"category" binding:"max=100"`
	Stock    int      `json:"stock" binding:"min=0"`
	Price    *float64 `json:"price"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	page := pageParam(c, "page", 1)
	perPage := pageParam(c, "per_page", 10)

	q := h.db.Model(&models.Product{})

	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"LOWER(code) LIKE ? OR LOWER(name) LIKE ? OR LOWER(brand) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Could not fetch products.")
		return
	}

	var products []models.Product
	if err := q.
		Order("id ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Could not fetch products.")
		return
	}

	httpresp.Page(c, products, httpresp.NewMeta(total, perPage, page, len(products)))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductFields
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
		return
	}

	var count int64
	h.db.Model(&models.Product{}).Where("code = ?", req.Code).Count(&count)
	if count > 0 {
		httperr.Validation(c, map[string]string{
			"code": "The code has already been taken.",
		})
		return
	}

	product := models.Product{
		Code:     req.Code,
		Name:     req.Name,
		Brand:    req.Brand,
		Category: req.Category,
		Stock:    req.Stock,
		Price:    req.Price,
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Could not create the product.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully.",
		"product": product,
	})
}

func (h *ProductHandler) Show(c *gin.Context) {
	id, ok := idParam(c, "product_not_found", "Product not found.")
	if !ok {
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}

	httpresp.OK(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "product_not_found", "Product not found.")
	if !ok {
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}

	var req ProductFields
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
		return
	}

	var count int64
	h.db.Model(&models.Product{}).
		Where("code = ? AND id <> ?", req.Code, product.ID).
		Count(&count)
	if count > 0 {
		httperr.Validation(c, map[string]string{
			"code": "The code has already been taken.",
		})
		return
	}

	product.Code = req.Code
	product.Name = req.Name
	product.Brand = req.Brand
	product.Category = req.Category
	product.Stock = req.Stock
	product.Price = req.Price

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Could not update the product.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully.",
		"product": product,
	})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "product_not_found", "Product not found.")
	if !ok {
		return
	}

	res := h.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_product", "Could not delete the product.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "product_not_found", "Product not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

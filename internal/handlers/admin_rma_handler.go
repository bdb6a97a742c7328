package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/rmadesk/rma-portal/internal/domain/rma"
	"github.com/rmadesk/rma-portal/internal/httperr"
	"github.com/rmadesk/rma-portal/internal/httpresp"
	ucRma "github.com/rmadesk/rma-portal/internal/usecase/rma"
	"github.com/rmadesk/rma-portal/internal/validators"
)

// AdminRmaHandler serves the back-office RMA endpoints.
type AdminRmaHandler struct {
	repo         domain.Repository
	listUC       *ucRma.List
	exportUC     *ucRma.ExportCsv
	setStatusUC  *ucRma.SetStatus
	bulkStatusUC *ucRma.BulkSetStatus
}

func NewAdminRmaHandler(
	repo domain.Repository,
	listUC *ucRma.List,
	exportUC *ucRma.ExportCsv,
	setStatusUC *ucRma.SetStatus,
	bulkStatusUC *ucRma.BulkSetStatus,
) *AdminRmaHandler {
	return &AdminRmaHandler{
		repo:         repo,
		listUC:       listUC,
		exportUC:     exportUC,
		setStatusUC:  setStatusUC,
		bulkStatusUC: bulkStatusUC,
	}
}

// --------- Requests ---------

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BulkUpdateStatusRequest struct {
	IDs    []uint `json:"ids" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type UpdateRmaRequest struct {
	ProductCode        *string `json:"product_code,omitempty"`
	ProductName        *string `json:"product_name,omitempty"`
	SerialNumber       *string `json:"serial_number,omitempty"`
	Quantity           *int    `json:"quantity,omitempty"`
	InvoiceDate        *string `json:"invoice_date,omitempty"`
	SalesDocumentNo    *string `json:"sales_document_no,omitempty"`
	ReturnReason       *string `json:"return_reason,omitempty"`
	ProblemDescription *string `json:"problem_description,omitempty"`
	Status             *string `json:"status,omitempty"`
}

// --------- Handlers ---------

func (h *AdminRmaHandler) Index(c *gin.Context) {
	filter, ok := filterFromQuery(c)
	if !ok {
		return
	}

	page := pageParam(c, "page", 1)
	perPage := pageParam(c, "limit", ucRma.DefaultPerPage)

	rows, total, err := h.listUC.Execute(
		c.Request.Context(),
		domain.AdminScope(),
		filter,
		domain.Page{Number: page, PerPage: perPage},
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_rmas", "Could not fetch RMA requests.")
		return
	}

	httpresp.Page(c, rows, httpresp.NewMeta(total, perPage, page, len(rows)))
}

func (h *AdminRmaHandler) Show(c *gin.Context) {
	id, ok := idParam(c, "rma_not_found", "RMA request not found.")
	if !ok {
		return
	}

	req, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "rma_not_found", "RMA request not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_rma", "Could not fetch the RMA request.")
		return
	}

	httpresp.OK(c, req)
}

func (h *AdminRmaHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "rma_not_found", "RMA request not found.")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
		return
	}

	if err := h.setStatusUC.Execute(c.Request.Context(), id, req.Status); err != nil {
		h.writeRmaError(c, err, "failed_to_update_status", "Could not update the RMA status.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "RMA status updated successfully."})
}

func (h *AdminRmaHandler) BulkUpdateStatus(c *gin.Context) {
	var req BulkUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
		return
	}

	updated, err := h.bulkStatusUC.Execute(c.Request.Context(), req.IDs, req.Status)
	if err != nil {
		h.writeRmaError(c, err, "failed_to_bulk_update", "Could not update the RMA statuses.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Updated %d RMA(s) successfully.", updated),
		"updated": updated,
	})
}

func (h *AdminRmaHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "rma_not_found", "RMA request not found.")
	if !ok {
		return
	}

	req, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "rma_not_found", "RMA request not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_rma", "Could not fetch the RMA request.")
		return
	}

	var body UpdateRmaRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.Validation(c, validators.FieldMessages(err))
		return
	}

	fields := httperr.FieldErrors{}

	if body.Quantity != nil && *body.Quantity < 1 {
		fields["quantity"] = "The quantity field must be at least 1."
	}
	if body.Status != nil && !domain.IsValidStatus(*body.Status) {
		fields["status"] = "The status field must be one of the RMA statuses."
	}
	if body.InvoiceDate != nil {
		parsed, perr := parseDateParamValue(*body.InvoiceDate)
		if perr != nil {
			fields["invoice_date"] = "The invoice_date field must be a valid date."
		} else {
			req.InvoiceDate = parsed
		}
	}
	if len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	if body.ProductCode != nil {
		req.ProductCode = *body.ProductCode
	}
	if body.ProductName != nil {
		req.ProductName = *body.ProductName
	}
	if body.SerialNumber != nil {
		req.SerialNumber = *body.SerialNumber
	}
	if body.Quantity != nil {
		req.Quantity = *body.Quantity
	}
	if body.SalesDocumentNo != nil {
		req.SalesDocumentNo = *body.SalesDocumentNo
	}
	if body.ReturnReason != nil {
		req.ReturnReason = *body.ReturnReason
	}
	if body.ProblemDescription != nil {
		req.ProblemDescription = *body.ProblemDescription
	}
	if body.Status != nil {
		req.Status = *body.Status
	}

	// The reference number never changes after creation.
	if err := h.repo.Update(c.Request.Context(), req); err != nil {
		httperr.Internal(c, "failed_to_update_rma", "Could not update the RMA request.")
		return
	}

	httpresp.OK(c, req)
}

func (h *AdminRmaHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "rma_not_found", "RMA request not found.")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "rma_not_found", "RMA request not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_rma", "Could not delete the RMA request.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "RMA request deleted successfully."})
}

func (h *AdminRmaHandler) Export(c *gin.Context) {
	filter, ok := filterFromQuery(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+ucRma.ExportFilename+`"`)
	c.Status(http.StatusOK)

	if err := h.exportUC.Execute(c.Request.Context(), domain.AdminScope(), filter, c.Writer); err != nil {
		// Headers are already out; nothing sensible left to send.
		_ = c.Error(err)
	}
}

func (h *AdminRmaHandler) Statuses(c *gin.Context) {
	labels := domain.Labels()

	out := make([]gin.H, 0, len(labels))
	for _, s := range domain.Statuses() {
		out = append(out, gin.H{
			"value": string(s),
			"label": labels[s],
		})
	}

	httpresp.OK(c, out)
}

// --------- Helpers ---------

func (h *AdminRmaHandler) writeRmaError(c *gin.Context, err error, code, message string) {
	if fields, ok := httperr.AsFieldErrors(err); ok {
		httperr.Validation(c, fields)
		return
	}
	if httperr.IsBusiness(err, "rma_not_found") {
		httperr.NotFound(c, "rma_not_found", "RMA request not found.")
		return
	}
	httperr.Internal(c, code, message)
}

func idParam(c *gin.Context, code, message string) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.NotFound(c, code, message)
		return 0, false
	}
	return uint(id), true
}

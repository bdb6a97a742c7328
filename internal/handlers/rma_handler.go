package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/rmadesk/rma-portal/internal/domain/rma"
	"github.com/rmadesk/rma-portal/internal/httperr"
	"github.com/rmadesk/rma-portal/internal/httpresp"
	"github.com/rmadesk/rma-portal/internal/middleware"
	"github.com/rmadesk/rma-portal/internal/storage"
	ucRma "github.com/rmadesk/rma-portal/internal/usecase/rma"
)

// RmaHandler serves the customer-facing RMA endpoints.
type RmaHandler struct {
	createUC *ucRma.CreateRma
	listUC   *ucRma.List
}

func NewRmaHandler(createUC *ucRma.CreateRma, listUC *ucRma.List) *RmaHandler {
	return &RmaHandler{
		createUC: createUC,
		listUC:   listUC,
	}
}

const customerPerPage = 15

// Create accepts a multipart form so the photo can ride along with the
// fields.
func (h *RmaHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextPrincipalID).(uint)

	quantity := 0
	if raw := c.PostForm("quantity"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			quantity = n
		} else {
			quantity = -1
		}
	}

	in := ucRma.CreateRmaInput{
		CustomerID:         customerID,
		ProductCode:        c.PostForm("productCode"),
		SerialNumber:       c.PostForm("serialNumber"),
		Quantity:           quantity,
		InvoiceDate:        c.PostForm("invoiceDate"),
		SalesDocumentNo:    c.PostForm("salesDocumentNo"),
		ReturnReason:       c.PostForm("returnReason"),
		ProblemDescription: c.PostForm("problemDescription"),
	}

	if file, err := c.FormFile("photo"); err == nil {
		if file.Size > storage.MaxPhotoBytes {
			httperr.Validation(c, map[string]string{
				"photo": "The photo may not be larger than 2MB.",
			})
			return
		}

		f, err := file.Open()
		if err != nil {
			httperr.Internal(c, "failed_to_read_photo", "Could not read the uploaded photo.")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			httperr.Internal(c, "failed_to_read_photo", "Could not read the uploaded photo.")
			return
		}

		in.Photo = data
		in.PhotoContentType = file.Header.Get("Content-Type")
	}

	req, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		if fields, ok := httperr.AsFieldErrors(err); ok {
			httperr.Validation(c, fields)
			return
		}
		httperr.Internal(c, "failed_to_create_rma", "Could not submit the RMA request.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":             true,
		"rmaNumber":           req.RmaNumber,
		"productCode":         req.ProductCode,
		"serialNumber":        req.SerialNumber,
		"returnReason":        req.ReturnReason,
		"estimatedResolution": ucRma.EstimatedResolution,
		"status":              req.Status,
	})
}

// List returns the caller's own requests, newest first.
func (h *RmaHandler) List(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextPrincipalID).(uint)

	page := pageParam(c, "page", 1)
	perPage := pageParam(c, "limit", customerPerPage)

	rows, total, err := h.listUC.Execute(
		c.Request.Context(),
		domain.CustomerScope(customerID),
		domain.Filter{},
		domain.Page{Number: page, PerPage: perPage},
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_rmas", "Could not fetch RMA requests.")
		return
	}

	httpresp.Page(c, rows, httpresp.NewMeta(total, perPage, page, len(rows)))
}

func pageParam(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

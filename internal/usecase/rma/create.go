package rma

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/rmadesk/rma-portal/internal/domain/rma"
	"github.com/rmadesk/rma-portal/internal/httperr"
	"github.com/rmadesk/rma-portal/internal/models"
	"github.com/rmadesk/rma-portal/internal/storage"
)

// EstimatedResolution is quoted back to the customer on submission. It is
// a fixed promise, not computed from anything.
const EstimatedResolution = "5–7 business days"

// ======================================================
// INPUT
// ======================================================

type CreateRmaInput struct {
	CustomerID uint

	ProductCode        string
	SerialNumber       string
	Quantity           int
	InvoiceDate        string // YYYY-MM-DD
	SalesDocumentNo    string
	ReturnReason       string
	ProblemDescription string

	// Optional upload, already read into memory by the handler.
	Photo            []byte
	PhotoContentType string
}

// ======================================================
// USE CASE
// ======================================================

type CreateRma struct {
	repo   domain.Repository
	photos storage.PhotoStorage
}

func NewCreateRma(repo domain.Repository, photos storage.PhotoStorage) *CreateRma {
	return &CreateRma{
		repo:   repo,
		photos: photos,
	}
}

func (uc *CreateRma) Execute(
	ctx context.Context,
	in CreateRmaInput,
) (*models.RmaRequest, error) {

	fields := httperr.FieldErrors{}

	requireString(fields, "product_code", in.ProductCode)
	requireString(fields, "serial_number", in.SerialNumber)
	requireString(fields, "sales_document_no", in.SalesDocumentNo)
	requireString(fields, "return_reason", in.ReturnReason)
	requireString(fields, "problem_description", in.ProblemDescription)

	if in.Quantity < 1 {
		fields["quantity"] = "The quantity field must be at least 1."
	}

	var invoiceDate time.Time
	if strings.TrimSpace(in.InvoiceDate) == "" {
		fields["invoice_date"] = "The invoice_date field is required."
	} else {
		parsed, err := time.Parse("2006-01-02", in.InvoiceDate)
		if err != nil {
			fields["invoice_date"] = "The invoice_date field must be a valid date."
		} else {
			invoiceDate = parsed
		}
	}

	if len(in.Photo) > 0 {
		if err := storage.ValidatePhoto(in.Photo); err != nil {
			if httperr.IsBusiness(err, "photo_too_large") {
				fields["photo"] = "The photo may not be larger than 2MB."
			} else {
				fields["photo"] = "The photo must be an image."
			}
		}
	}

	// Fail closed: nothing is persisted or stored on invalid input.
	if len(fields) > 0 {
		return nil, fields
	}

	photoPath := ""
	if len(in.Photo) > 0 {
		path, err := uc.storePhoto(ctx, in.Photo, in.PhotoContentType)
		if err != nil {
			return nil, err
		}
		photoPath = path
	}

	req := &models.RmaRequest{
		CustomerID:         in.CustomerID,
		ProductCode:        in.ProductCode,
		SerialNumber:       in.SerialNumber,
		Quantity:           in.Quantity,
		InvoiceDate:        invoiceDate,
		SalesDocumentNo:    in.SalesDocumentNo,
		ReturnReason:       in.ReturnReason,
		ProblemDescription: in.ProblemDescription,
		PhotoPath:          photoPath,
		Status:             string(domain.InitialStatus()),
	}

	// Denormalize the product name for search and export. The code is a
	// loose reference; an unknown code is accepted as-is.
	if product, err := uc.repo.FindProductByCode(ctx, in.ProductCode); err == nil {
		req.ProductName = product.Name
	}

	if err := uc.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (uc *CreateRma) storePhoto(ctx context.Context, data []byte, contentType string) (string, error) {
	name := uuid.NewString() + extensionFor(contentType)

	path, err := uc.photos.Save(ctx, name, data, contentType)
	if err != nil {
		return "", err
	}

	// Thumbnail failures are tolerated: the original photo is what the
	// back-office needs.
	if thumb, err := storage.Thumbnail(data); err == nil {
		_, _ = uc.photos.Save(ctx, name+"_thumb.webp", thumb, "image/webp")
	}

	return path, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func requireString(fields httperr.FieldErrors, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = "The " + name + " field is required."
	}
}

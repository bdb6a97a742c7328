package rma

import (
	"context"

	"github.com/rmadesk/rma-portal/internal/models"
)

type Repository interface {
	// -------- Create (single transaction: insert + reference patch) --------
	Create(
		ctx context.Context,
		req *models.RmaRequest,
	) error

	// -------- Product (loose reference) --------
	// FindProductByCode resolves a product for name denormalization.
	// A missing product is not an error at creation time.
	FindProductByCode(
		ctx context.Context,
		code string,
	) (*models.Product, error)

	// -------- Read --------
	GetByID(
		ctx context.Context,
		id uint,
	) (*models.RmaRequest, error)

	List(
		ctx context.Context,
		scope Scope,
		filter Filter,
		page Page,
	) ([]models.RmaRequest, int64, error)

	// ListAll returns every row matching scope+filter, unpaginated, for
	// export.
	ListAll(
		ctx context.Context,
		scope Scope,
		filter Filter,
	) ([]models.RmaRequest, error)

	// -------- State change --------
	UpdateStatus(
		ctx context.Context,
		id uint,
		status Status,
	) error

	// BulkUpdateStatus applies status to every existing id in one
	// multi-row update and reports how many rows changed. Unknown ids
	// are skipped silently.
	BulkUpdateStatus(
		ctx context.Context,
		ids []uint,
		status Status,
	) (int64, error)

	// -------- Edit / delete --------
	Update(
		ctx context.Context,
		req *models.RmaRequest,
	) error

	Delete(
		ctx context.Context,
		id uint,
	) error
}

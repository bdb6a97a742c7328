package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/rmadesk/rma-portal/internal/domain/rma"
	"github.com/rmadesk/rma-portal/internal/models"
)

type RmaGormRepository struct {
	db *gorm.DB
}

func NewRmaGormRepository(db *gorm.DB) *RmaGormRepository {
	return &RmaGormRepository{db: db}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

// Create inserts the row and patches the reference number derived from
// the primary key in the same transaction, so no record is ever visible
// with a provisional reference.
func (r *RmaGormRepository) Create(
	ctx context.Context,
	req *models.RmaRequest,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req.RmaNumber = "RMA-TMP-" + uuid.NewString()

		if err := tx.Create(req).Error; err != nil {
			return err
		}

		ref := domain.ReferenceNumber(time.Now().Year(), req.ID)
		if err := tx.Model(&models.RmaRequest{}).
			Where("id = ?", req.ID).
			Update("rma_number", ref).Error; err != nil {
			return err
		}

		req.RmaNumber = ref
		return nil
	})
}

// --------------------------------------------------
// Product
// --------------------------------------------------

func (r *RmaGormRepository) FindProductByCode(
	ctx context.Context,
	code string,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *RmaGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.RmaRequest, error) {

	var req models.RmaRequest
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RmaGormRepository) List(
	ctx context.Context,
	scope domain.Scope,
	filter domain.Filter,
	page domain.Page,
) ([]models.RmaRequest, int64, error) {

	var total int64
	if err := r.listQuery(ctx, scope, filter).
		Model(&models.RmaRequest{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.RmaRequest
	if err := r.listQuery(ctx, scope, filter).
		Preload("Customer").
		Order("rma_requests.created_at DESC, rma_requests.id ASC").
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *RmaGormRepository) ListAll(
	ctx context.Context,
	scope domain.Scope,
	filter domain.Filter,
) ([]models.RmaRequest, error) {

	var rows []models.RmaRequest
	if err := r.listQuery(ctx, scope, filter).
		Preload("Customer").
		Order("rma_requests.created_at DESC, rma_requests.id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *RmaGormRepository) UpdateStatus(
	ctx context.Context,
	id uint,
	status domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.RmaRequest{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Could be a missing row or an idempotent re-apply; disambiguate.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.RmaRequest{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *RmaGormRepository) BulkUpdateStatus(
	ctx context.Context,
	ids []uint,
	status domain.Status,
) (int64, error) {

	if len(ids) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Model(&models.RmaRequest{}).
		Where("id IN ?", ids).
		Update("status", string(status))
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Edit / delete
// --------------------------------------------------

func (r *RmaGormRepository) Update(
	ctx context.Context,
	req *models.RmaRequest,
) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *RmaGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.RmaRequest{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Filtering
// --------------------------------------------------

func (r *RmaGormRepository) listQuery(
	ctx context.Context,
	scope domain.Scope,
	filter domain.Filter,
) *gorm.DB {

	q := r.db.WithContext(ctx).Model(&models.RmaRequest{})

	switch {
	case scope.Admin:
		// unrestricted
	case scope.CustomerID != 0:
		q = q.Where("rma_requests.customer_id = ?", scope.CustomerID)
	default:
		// Anonymous callers see nothing.
		q = q.Where("1 = 0")
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Joins("LEFT JOIN customers ON customers.id = rma_requests.customer_id").
			Where(
				"LOWER(rma_requests.rma_number) LIKE ?"+
					" OR LOWER(customers.first_name) LIKE ?"+
					" OR LOWER(customers.last_name) LIKE ?"+
					" OR LOWER(customers.company_name) LIKE ?"+
					" OR LOWER(rma_requests.product_name) LIKE ?",
				like, like, like, like, like,
			)
	}

	if filter.Status != "" {
		q = q.Where("rma_requests.status = ?", filter.Status)
	}

	if filter.ReturnReason != "" {
		q = q.Where("rma_requests.return_reason = ?", filter.ReturnReason)
	}

	if filter.StartDate != nil {
		q = q.Where("rma_requests.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		// Inclusive of the whole end day.
		q = q.Where("rma_requests.created_at < ?", filter.EndDate.Add(24*time.Hour))
	}

	return q
}

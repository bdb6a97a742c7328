package repository_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/rmadesk/rma-portal/internal/db"
	domain "github.com/rmadesk/rma-portal/internal/domain/rma"
	"github.com/rmadesk/rma-portal/internal/infra/repository"
	"github.com/rmadesk/rma-portal/internal/models"
)

func setupRepo(t *testing.T) (*repository.RmaGormRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := dbpkg.Migrate(testDB); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	return repository.NewRmaGormRepository(testDB), testDB
}

func newRequest(customerID uint) *models.RmaRequest {
	return &models.RmaRequest{
		CustomerID:         customerID,
		ProductCode:        "PC-1",
		SerialNumber:       "SN-1",
		Quantity:           1,
		SalesDocumentNo:    "SD-1",
		ReturnReason:       "Defective",
		ProblemDescription: "Rattles when shaken.",
		Status:             string(domain.InitialStatus()),
	}
}

func TestCreateAssignsReferenceFromPrimaryKey(t *testing.T) {
	repo, testDB := setupRepo(t)
	ctx := context.Background()

	first := newRequest(1)
	assert.NoError(t, repo.Create(ctx, first))
	second := newRequest(1)
	assert.NoError(t, repo.Create(ctx, second))

	year := time.Now().Year()
	assert.Equal(t, domain.ReferenceNumber(year, first.ID), first.RmaNumber)
	assert.Equal(t, domain.ReferenceNumber(year, second.ID), second.RmaNumber)
	assert.NotEqual(t, first.RmaNumber, second.RmaNumber)

	// No provisional value survives the transaction.
	var count int64
	testDB.Model(&models.RmaRequest{}).
		Where("rma_number LIKE ?", "RMA-TMP-%").
		Count(&count)
	assert.Equal(t, int64(0), count)

	stored, err := repo.GetByID(ctx, first.ID)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.RmaNumber, fmt.Sprintf("RMA-%d-", year)))
}

func TestAnonymousScopeSeesNothing(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, newRequest(1)))

	rows, total, err := repo.List(ctx, domain.AnonymousScope(), domain.Filter{},
		domain.Page{Number: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, rows)

	all, err := repo.ListAll(ctx, domain.AnonymousScope(), domain.Filter{})
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestBulkUpdateStatusCountsOnlyExistingRows(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	a := newRequest(1)
	b := newRequest(1)
	assert.NoError(t, repo.Create(ctx, a))
	assert.NoError(t, repo.Create(ctx, b))

	count, err := repo.BulkUpdateStatus(ctx, []uint{a.ID, b.ID, 99999}, domain.StatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.BulkUpdateStatus(ctx, nil, domain.StatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUpdateStatusDistinguishesMissingRows(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	req := newRequest(1)
	assert.NoError(t, repo.Create(ctx, req))

	assert.NoError(t, repo.UpdateStatus(ctx, req.ID, domain.StatusApproved))
	// Re-applying the same status is still a success.
	assert.NoError(t, repo.UpdateStatus(ctx, req.ID, domain.StatusApproved))

	err := repo.UpdateStatus(ctx, 99999, domain.StatusApproved)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

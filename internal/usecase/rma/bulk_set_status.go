package rma

import (
	"context"

	domain "github.com/rmadesk/rma-portal/internal/domain/rma"
	"github.com/rmadesk/rma-portal/internal/httperr"
)

type BulkSetStatus struct {
	repo domain.Repository
}

func NewBulkSetStatus(repo domain.Repository) *BulkSetStatus {
	return &BulkSetStatus{repo: repo}
}

// Execute applies the status to every existing id in one statement and
// returns how many rows changed. Ids that do not exist are skipped
// silently; the caller sees the count, not a partial-failure report.
func (uc *BulkSetStatus) Execute(
	ctx context.Context,
	ids []uint,
	status string,
) (int64, error) {

	fields := httperr.FieldErrors{}
	if len(ids) == 0 {
		fields["ids"] = "The ids field is required."
	}
	if !domain.IsValidStatus(status) {
		fields["status"] = "The status field must be one of the RMA statuses."
	}
	if len(fields) > 0 {
		return 0, fields
	}

	return uc.repo.BulkUpdateStatus(ctx, ids, domain.Status(status))
}

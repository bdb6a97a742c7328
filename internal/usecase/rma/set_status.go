package rma

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/rmadesk/rma-portal/internal/domain/rma"
	"github.com/rmadesk/rma-portal/internal/httperr"
)

type SetStatus struct {
	repo domain.Repository
}

func NewSetStatus(repo domain.Repository) *SetStatus {
	return &SetStatus{repo: repo}
}

// Execute assigns the status. Transition legality is not checked: any
// status may replace any other, and re-applying the current status is a
// no-op rather than an error.
func (uc *SetStatus) Execute(
	ctx context.Context,
	id uint,
	status string,
) error {

	if !domain.IsValidStatus(status) {
		return httperr.FieldErrors{
			"status": "The status field must be one of the RMA statuses.",
		}
	}

	if err := uc.repo.UpdateStatus(ctx, id, domain.Status(status)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("rma_not_found")
		}
		return err
	}
	return nil
}

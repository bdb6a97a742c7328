package rma

import (
	"context"

	domain "github.com/rmadesk/rma-portal/internal/domain/rma"
	"github.com/rmadesk/rma-portal/internal/models"
)

const (
	DefaultPerPage = 20
	maxPerPage     = 100
)

type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

// Execute lists requests visible to the caller's scope, newest first.
func (uc *List) Execute(
	ctx context.Context,
	scope domain.Scope,
	filter domain.Filter,
	page domain.Page,
) ([]models.RmaRequest, int64, error) {

	if page.Number < 1 {
		page.Number = 1
	}
	if page.PerPage < 1 {
		page.PerPage = DefaultPerPage
	}
	if page.PerPage > maxPerPage {
		page.PerPage = maxPerPage
	}

	return uc.repo.List(ctx, scope, filter, page)
}

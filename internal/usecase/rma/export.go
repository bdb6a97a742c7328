package rma

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	domain "github.com/rmadesk/rma-portal/internal/domain/rma"
)

// ExportFilename is used in the Content-Disposition header.
const ExportFilename = "rmas_export.csv"

type ExportCsv struct {
	repo domain.Repository
}

func NewExportCsv(repo domain.Repository) *ExportCsv {
	return &ExportCsv{repo: repo}
}

// Execute streams every request matching scope+filter as CSV. Zero
// matching rows still produce the header row.
func (uc *ExportCsv) Execute(
	ctx context.Context,
	scope domain.Scope,
	filter domain.Filter,
	w io.Writer,
) error {

	rows, err := uc.repo.ListAll(ctx, scope, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "RMA Number", "Customer", "Status", "Return Reason", "Created At"}); err != nil {
		return err
	}

	for i := range rows {
		row := &rows[i]

		customer := row.Customer.DisplayName()
		if customer == "" {
			customer = "N/A"
		}

		if err := cw.Write([]string{
			strconv.FormatUint(uint64(row.ID), 10),
			row.RmaNumber,
			customer,
			row.Status,
			row.ReturnReason,
			row.CreatedAt.Format("2006-01-02 15:04:05"),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

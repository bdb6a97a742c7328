package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/rmadesk/rma-portal/internal/domain/rma"
	"github.com/rmadesk/rma-portal/internal/httperr"
)

const dateLayout = "2006-01-02"

func parseDateParamValue(raw string) (time.Time, error) {
	return time.Parse(dateLayout, raw)
}

// filterFromQuery builds the RMA list filter from the admin query
// parameters. Malformed dates are rejected before any query runs.
func filterFromQuery(c *gin.Context) (domain.Filter, bool) {
	filter := domain.Filter{
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		ReturnReason: c.Query("returnReason"),
	}

	fields := httperr.FieldErrors{}

	if raw := c.Query("startDate"); raw != "" {
		parsed, err := parseDateParamValue(raw)
		if err != nil {
			fields["startDate"] = "The startDate field must be a valid date."
		} else {
			filter.StartDate = &parsed
		}
	}

	if raw := c.Query("endDate"); raw != "" {
		parsed, err := parseDateParamValue(raw)
		if err != nil {
			fields["endDate"] = "The endDate field must be a valid date."
		} else {
			filter.EndDate = &parsed
		}
	}

	if len(fields) > 0 {
		httperr.Validation(c, fields)
		return domain.Filter{}, false
	}

	return filter, true
}

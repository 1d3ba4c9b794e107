package dto

import (
	"strings"

	"github.com/feebridge/feebridge/internal/domain/student"
	ierr "github.com/feebridge/feebridge/internal/errors"
)

const minQueryLength = 3

// SearchRequest carries the student search query parameters
type SearchRequest struct {
	Name      string `form:"name"`
	Admission string `form:"admission"`
	School    string `form:"school"`
}

// Validate trims the inputs and enforces the minimum query length on the
// required fields
func (r *SearchRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Admission = strings.TrimSpace(r.Admission)
	r.School = strings.TrimSpace(r.School)

	if len(r.Name) < minQueryLength || len(r.Admission) < minQueryLength {
		return ierr.NewError("search query too short").
			WithHintf("name and admission must each be at least %d characters", minQueryLength).
			WithReportableDetails(map[string]any{
				"name":      r.Name,
				"admission": r.Admission,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SearchResponse is the student search result set
type SearchResponse struct {
	Results []*student.Student `json:"results"`
	Count   int                `json:"count"`
}

// HealthResponse reports liveness and the size of the loaded dataset. Rows
// is omitted when the dataset never loaded.
type HealthResponse struct {
	Status string `json:"status"`
	Rows   *int   `json:"rows,omitempty"`
}

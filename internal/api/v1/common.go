package v1

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/types"
)

// dateQuery reads an optional YYYY-MM-DD query parameter
func dateQuery(c *gin.Context, name string) (*types.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	d, err := types.ParseDate(raw)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("%s must be a date in YYYY-MM-DD format", name).
			WithReportableDetails(map[string]any{name: raw}).
			Mark(ierr.ErrValidation)
	}
	return &d, nil
}

func invalidRequest(err error) error {
	return ierr.WithError(err).
		WithHint("Invalid request format").
		Mark(ierr.ErrValidation)
}

func invalidFilter(err error) error {
	return ierr.WithError(err).
		WithHint("Invalid filter parameters").
		Mark(ierr.ErrValidation)
}

package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/sma-remedial-api/pkg/errors"
)

// weekQuery reads the optional ?week= filter. Absent means every week.
func weekQuery(c *gin.Context) (*int, error) {
	raw := strings.TrimSpace(c.Query("week"))
	if raw == "" {
		return nil, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "week must be a positive integer")
	}
	return &week, nil
}

func invalidPayload(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

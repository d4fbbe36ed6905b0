package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/dto"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

// pathID reads a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, ok := dto.ParseEntityID(c.Param(name))
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer")
	}
	return id, nil
}

// optionalQueryID reads a positive integer query parameter; absent means zero.
func optionalQueryID(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	id, ok := dto.ParseEntityID(raw)
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer")
	}
	return id, nil
}

// filterQueryID is optionalQueryID for delete filters, where an explicit zero
// is a filter that matches nothing rather than an invalid id.
func filterQueryID(c *gin.Context, name string) (id int64, zero bool, err error) {
	if raw := strings.TrimSpace(c.Query(name)); raw != "" {
		if v, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil && v == 0 {
			return 0, true, nil
		}
	}
	id, err = optionalQueryID(c, name)
	return id, false, err
}

func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed JSON body")
	}
	return nil
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

func int64Param(c *gin.Context, name string) (int64, error) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || value <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer")
	}
	return value, nil
}

func intQuery(c *gin.Context, name string) (int, error) {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be an integer")
	}
	return value, nil
}

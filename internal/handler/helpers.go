package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"cabinet-service/pkg/apperror"
)

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperror.ErrBadRequest
	}
	return uint(id), nil
}

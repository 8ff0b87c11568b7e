package handler

import (
	"backend/pkg/apperror"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError maps a service error onto the standard error envelope
func writeError(c *gin.Context, err error) {
	status := apperror.StatusOf(err)
	c.JSON(status, response.Error(status, err.Error()))
}

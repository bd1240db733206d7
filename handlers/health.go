package handlers

import (
	"net/http"

	"fairway/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last observed status of external dependencies.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}

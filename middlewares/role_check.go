package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// SessionRole pulls the typed role set by the auth middleware.
func SessionRole(c *gin.Context) (models.Role, bool) {
	roleInterface, exists := c.Get("role")
	if !exists {
		return "", false
	}
	role, ok := roleInterface.(models.Role)
	return role, ok
}

// ManagerOnly rejects requests from non-manager operators.
func ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := SessionRole(c)
		if !ok || !role.IsManager() {
			utils.RespondError(c, http.StatusForbidden, errors.New("manager access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RegisterRolesOnly rejects roles that cannot operate the register.
func RegisterRolesOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := SessionRole(c)
		if !ok || !role.CanOperatePOS() {
			utils.RespondError(c, http.StatusForbidden, errors.New("register access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-pos/services"
)

var (
	ErrNoSession    = errors.New("no register session on this request")
	ErrNoPermission = errors.New("you do not have permission for this action")
)

// currentSession pulls the operator's register session loaded by the
// auth middleware.
func currentSession(c *gin.Context) (*services.OrderSession, error) {
	v, exists := c.Get("session")
	if !exists {
		return nil, ErrNoSession
	}
	session, ok := v.(*services.OrderSession)
	if !ok {
		return nil, ErrNoSession
	}
	return session, nil
}

func currentEmployeeID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("employee_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type EmployeeController struct {
	DB        *gorm.DB
	Sessions  *services.SessionManager
	Timeclock *services.TimeclockService
}

func NewEmployeeController(db *gorm.DB, sessions *services.SessionManager, timeclock *services.TimeclockService) *EmployeeController {
	return &EmployeeController{DB: db, Sessions: sessions, Timeclock: timeclock}
}

// Register creates an employee with a hashed PIN.
func (ec *EmployeeController) Register(c *gin.Context) {
	type request struct {
		Name string `json:"name" binding:"required"`
		PIN  string `json:"pin" binding:"required,min=4,max=6,numeric"`
		Role string `json:"role" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	employee := models.Employee{
		Name:    req.Name,
		PINHash: string(hashed),
		Role:    role,
	}
	if err := ec.DB.Create(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New employee registered: %s (role=%s)", employee.Name, employee.Role)
	utils.RespondJSON(c, http.StatusCreated, "Employee registered", gin.H{
		"employee_id": employee.ID,
	})
}

// Login verifies a PIN, opens the register session and returns a
// session token. Only register roles may log in to the POS; a shift
// left running past the auto clock-out limit is closed on the way in.
func (ec *EmployeeController) Login(c *gin.Context) {
	var input struct {
		PIN string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cfg := ec.Sessions.Config()
	if len(input.PIN) < cfg.PINMinLen || len(input.PIN) > cfg.PINMaxLen {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid PIN"))
		return
	}

	employee, err := ec.findByPIN(input.PIN)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid PIN"))
		return
	}

	if !employee.Role.CanOperatePOS() {
		utils.RespondError(c, http.StatusForbidden, errors.New("your role does not have access to the POS"))
		return
	}

	if _, err := ec.Timeclock.AutoClockOutIfOverdue(employee, cfg.AutoClockOutAfter); err != nil {
		utils.ErrorLogger.Printf("auto clock-out check failed for employee %d: %v", employee.ID, err)
	}

	ec.Sessions.Open(*employee)

	token, err := utils.GenerateToken(employee.ID, employee.Role)
	if err != nil {
		ec.Sessions.Close(employee.ID)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for employee %d (role=%s)", employee.ID, employee.Role)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"employee": gin.H{
			"id":            employee.ID,
			"name":          employee.Name,
			"role":          employee.Role,
			"is_clocked_in": employee.IsClockedIn,
		},
	})
}

// Logout revokes the token and closes the register session.
func (ec *EmployeeController) Logout(c *gin.Context) {
	if token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "); token != "" {
		utils.BlacklistToken(token)
	}
	if id, ok := currentEmployeeID(c); ok {
		ec.Sessions.Close(id)
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile returns the logged-in operator.
func (ec *EmployeeController) GetProfile(c *gin.Context) {
	id, ok := currentEmployeeID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("employee id not found in context"))
		return
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":            employee.ID,
		"name":          employee.Name,
		"role":          employee.Role,
		"is_clocked_in": employee.IsClockedIn,
	})
}

// findByPIN scans employees for a bcrypt PIN match. PINs are short, so
// there is no usable index on the hash; the employee table is tiny.
func (ec *EmployeeController) findByPIN(pin string) (*models.Employee, error) {
	var employees []models.Employee
	if err := ec.DB.Find(&employees).Error; err != nil {
		return nil, err
	}
	for i := range employees {
		if bcrypt.CompareHashAndPassword([]byte(employees[i].PINHash), []byte(pin)) == nil {
			return &employees[i], nil
		}
	}
	return nil, errors.New("no employee with that PIN")
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type MenuController struct {
	DB   *gorm.DB
	Menu *services.MenuService
}

func NewMenuController(db *gorm.DB, menu *services.MenuService) *MenuController {
	return &MenuController{DB: db, Menu: menu}
}

// GetAllMenus -> list available items with modifier groups preloaded
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	q := mc.DB.Preload("ModifierGroups", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Preload("ModifierGroups.Options")

	if c.Query("include_unavailable") != "true" {
		q = q.Where("is_available = ?", true)
	}

	if err := q.Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByCategory -> items filtered by ?category_id=
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Query("category_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category_id is required"))
		return
	}

	var menus []models.Menu
	if err := mc.DB.Preload("ModifierGroups.Options").
		Where("category_id = ? AND is_available = ?", categoryID, true).
		Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menus by category", menus)
}

func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := mc.DB.Preload("ModifierGroups.Options").First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// CreateMenu adds a catalog item with its modifier groups.
func (mc *MenuController) CreateMenu(c *gin.Context) {
	type optionReq struct {
		Name       string  `json:"name" binding:"required"`
		PriceDelta float64 `json:"price_delta"`
	}
	type groupReq struct {
		Name          string      `json:"name" binding:"required"`
		MaxSelections int         `json:"max_selections"`
		Required      bool        `json:"required"`
		Options       []optionReq `json:"options" binding:"required"`
	}
	var req struct {
		CategoryID     uint       `json:"category_id" binding:"required"`
		Name           string     `json:"name" binding:"required"`
		Price          float64    `json:"price" binding:"required"`
		ModifierGroups []groupReq `json:"modifier_groups"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must be non-negative"))
		return
	}

	menu := models.Menu{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		IsAvailable: true,
	}
	for i, g := range req.ModifierGroups {
		maxSel := g.MaxSelections
		if maxSel < 1 {
			maxSel = 1
		}
		group := models.ModifierGroup{
			Name:          g.Name,
			MaxSelections: maxSel,
			Required:      g.Required,
			SortOrder:     i,
		}
		for _, o := range g.Options {
			group.Options = append(group.Options, models.ModifierOption{
				Name:       o.Name,
				PriceDelta: o.PriceDelta,
			})
		}
		menu.ModifierGroups = append(menu.ModifierGroups, group)
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// MarkSoldOut flips an item unavailable. Managers act directly; a
// non-manager request parks behind the authorization gate instead of
// mutating anything.
func (mc *MenuController) MarkSoldOut(c *gin.Context) {
	menuID64, err := strconv.ParseUint(c.Param("menu_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}
	menuID := uint(menuID64)

	session, err := currentSession(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	if !session.Employee.Role.IsManager() {
		if err := session.Gate.Request(services.AuthRequest{
			Kind:   services.ActionMarkSoldOut,
			ItemID: &menuID,
		}); err != nil {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondJSON(c, http.StatusAccepted, "Manager authorization required", gin.H{
			"pending": services.ActionMarkSoldOut,
		})
		return
	}

	menu, err := mc.Menu.MarkSoldOut(menuID, session.Employee)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu marked sold out", menu)
}

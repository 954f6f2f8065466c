package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/services"
)

func SetupRouter(db *gorm.DB, sessions *services.SessionManager, splh *services.SPLHMonitor) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Shared services
	audit := services.NewAuditLog(db)
	timeclock := services.NewTimeclockService(db)
	menuSvc := services.NewMenuService(db, audit)
	heldOrders := services.NewHeldOrderStore(db)
	checkout := services.NewCheckoutService(db, audit)
	receipts := services.NewReceiptService()
	settings := services.NewSettingsService(db, audit)

	// Controllers
	employeeCtrl := controllers.NewEmployeeController(db, sessions, timeclock)
	timeclockCtrl := controllers.NewTimeclockController(db, timeclock)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db, menuSvc)
	ticketCtrl := controllers.NewTicketController(db, audit)
	checkoutCtrl := controllers.NewCheckoutController(db, checkout, receipts, sessions)
	gateCtrl := controllers.NewAuthGateController(db, menuSvc, audit)
	heldCtrl := controllers.NewHeldOrderController(heldOrders)
	settingsCtrl := controllers.NewSettingsController(settings)
	overrideCtrl := controllers.NewOverrideLogController(audit)
	splhCtrl := controllers.NewSPLHController(splh)
	eventsCtrl := controllers.NewEventsController()

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter for register/login
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", employeeCtrl.Register)
		public.POST("/login", employeeCtrl.Login)
	}

	// Terminal event stream; the token rides in the query string.
	r.GET("/ws", eventsCtrl.Stream)

	// ----------------------------------------------------------------
	//                      TIMECLOCK ROUTES
	// ----------------------------------------------------------------
	// Timeclock only needs a valid token, not a register session, so
	// kitchen roles can clock in and out too.
	clock := r.Group("/timeclock")
	clock.Use(middlewares.TokenOnlyMiddleware())
	{
		clock.POST("/in", timeclockCtrl.ClockIn)
		clock.POST("/out", timeclockCtrl.ClockOut)
		clock.POST("/break/start", timeclockCtrl.StartBreak)
		clock.POST("/break/end", timeclockCtrl.EndBreak)
	}

	// ----------------------------------------------------------------
	//                      REGISTER ROUTES
	// ----------------------------------------------------------------
	pos := r.Group("/pos")
	pos.Use(middlewares.AuthMiddleware(sessions), middlewares.RegisterRolesOnly())

	pos.GET("/profile", employeeCtrl.GetProfile)
	pos.POST("/logout", employeeCtrl.Logout)

	// CATALOG
	pos.GET("/categories", categoryCtrl.GetAllCategories)
	pos.GET("/menus", menuCtrl.GetAllMenus)
	pos.GET("/menus/by-category", menuCtrl.GetMenuByCategory)
	pos.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	pos.POST("/menus/:menu_id/sold-out", menuCtrl.MarkSoldOut)

	// TICKET
	pos.GET("/ticket", ticketCtrl.GetTicket)
	pos.POST("/ticket/lines", ticketCtrl.AddLine)
	pos.PATCH("/ticket/lines/:line_id", ticketCtrl.ChangeQuantity)
	pos.DELETE("/ticket/lines/:line_id", ticketCtrl.RemoveLine)
	pos.POST("/ticket/void", ticketCtrl.Void)

	// CHECKOUT
	pos.POST("/checkout", checkoutCtrl.Begin)
	pos.GET("/checkout", checkoutCtrl.GetQuote)
	pos.POST("/checkout/discount", checkoutCtrl.SetDiscount)
	pos.POST("/checkout/tip", checkoutCtrl.SetTip)
	pos.POST("/checkout/cancel", checkoutCtrl.Cancel)
	pos.POST("/checkout/complete", checkoutCtrl.Complete)
	pos.POST("/checkout/receipt", checkoutCtrl.DeliverReceipt)

	// AUTHORIZATION GATE (manager PIN pad)
	pos.GET("/authorize", gateCtrl.Status)
	pos.POST("/authorize/digit", gateCtrl.PressDigit)
	pos.POST("/authorize/clear", gateCtrl.ClearPIN)
	pos.POST("/authorize/submit", gateCtrl.Submit)
	pos.POST("/authorize/cancel", gateCtrl.Cancel)

	// HELD ORDERS
	pos.POST("/held-orders", heldCtrl.Hold)
	pos.GET("/held-orders", heldCtrl.List)
	pos.POST("/held-orders/:id/resume", heldCtrl.Resume)
	pos.DELETE("/held-orders/:id", heldCtrl.Delete)

	// SETTINGS (any register role)
	pos.GET("/settings/online-ordering", settingsCtrl.GetOnlineOrdering)
	pos.PUT("/settings/online-ordering", settingsCtrl.SetOnlineOrdering)

	// MANAGER ROUTES
	manager := pos.Group("/")
	manager.Use(middlewares.ManagerOnly())
	{
		manager.POST("/categories", categoryCtrl.CreateCategory)
		manager.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
		manager.POST("/menus", menuCtrl.CreateMenu)
		manager.GET("/override-log", overrideCtrl.List)
		manager.GET("/splh", splhCtrl.GetCurrent)
	}

	return r
}

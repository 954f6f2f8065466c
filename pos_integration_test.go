package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/config"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/router"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestRegisterFlow walks the main register path end to end:
// login -> ring up a customized item -> checkout -> pay cash ->
// order persisted and ticket cleared.
func TestRegisterFlow(t *testing.T) {
	db := setupIntegrationDB(t)
	r := setupTestRouter(db)

	token := loginAs(t, r, "1111")

	// Ring up two large burgers; the second add merges into one line.
	addLine(t, r, token)
	addLine(t, r, token)

	w := doJSON(t, r, "GET", "/pos/ticket", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := responseData(t, w)
	assert.Equal(t, 18.00, data["subtotal"])
	assert.Equal(t, 1.44, data["tax"])
	assert.Equal(t, 19.44, data["total"])
	assert.Len(t, data["lines"], 1)

	// Start checkout and pay cash with change.
	w = doJSON(t, r, "POST", "/pos/checkout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", "/pos/checkout/complete", token, map[string]interface{}{
		"payment_type": "cash",
		"cash_amount":  20.00,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data = responseData(t, w)
	assert.Equal(t, 0.56, data["change_due"])

	var orders []models.Order
	assert.NoError(t, db.Find(&orders).Error)
	assert.Len(t, orders, 1)
	assert.Equal(t, 19.44, orders[0].Total)

	// The register is clear for the next customer.
	w = doJSON(t, r, "GET", "/pos/ticket", token, nil)
	data = responseData(t, w)
	assert.Empty(t, data["lines"])
}

// TestHighDiscountNeedsManagerPIN drives the authorization gate:
// a cashier requesting 50% gets parked, a bad PIN stays pending,
// the manager PIN applies the discount.
func TestHighDiscountNeedsManagerPIN(t *testing.T) {
	db := setupIntegrationDB(t)
	r := setupTestRouter(db)
	token := loginAs(t, r, "1111")

	addLine(t, r, token)
	w := doJSON(t, r, "POST", "/pos/checkout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", "/pos/checkout/discount", token, map[string]interface{}{
		"percent": 50.0,
	})
	assert.Equal(t, http.StatusAccepted, w.Code)

	// Wrong PIN: denied, still pending.
	enterPIN(t, r, token, "9999")
	w = doJSON(t, r, "POST", "/pos/authorize/submit", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Manager PIN: discount lands on the quote.
	enterPIN(t, r, token, "4321")
	w = doJSON(t, r, "POST", "/pos/authorize/submit", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/pos/checkout", token, nil)
	data := responseData(t, w)
	assert.Equal(t, 50.0, data["discount_percent"])
	assert.Equal(t, 4.86, data["final_total"])

	// The override trail has the entry.
	var entries []models.OverrideLog
	assert.NoError(t, db.Where("action = ?", models.ActionHighDiscount).Find(&entries).Error)
	assert.Len(t, entries, 1)
}

// TestHoldAndResume parks a ticket and takes it back.
func TestHoldAndResume(t *testing.T) {
	db := setupIntegrationDB(t)
	r := setupTestRouter(db)
	token := loginAs(t, r, "1111")

	addLine(t, r, token)
	w := doJSON(t, r, "POST", "/pos/held-orders", token, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	heldID := responseData(t, w)["id"].(string)

	w = doJSON(t, r, "GET", "/pos/ticket", token, nil)
	assert.Empty(t, responseData(t, w)["lines"])

	w = doJSON(t, r, "POST", "/pos/held-orders/"+heldID+"/resume", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, responseData(t, w)["lines"], 1)

	var count int64
	db.Model(&models.HeldOrder{}).Count(&count)
	assert.Zero(t, count)
}

// TestKitchenRoleCannotOpenRegister checks the role split: a cook can
// clock in but never gets a register session.
func TestKitchenRoleCannotOpenRegister(t *testing.T) {
	db := setupIntegrationDB(t)
	r := setupTestRouter(db)

	w := doJSON(t, r, "POST", "/login", "", map[string]interface{}{"pin": "3333"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// TestEventStreamRejectsRemovedEmployee: a token can outlive its employee
// record; the websocket endpoint must not hand a terminal to one.
func TestEventStreamRejectsRemovedEmployee(t *testing.T) {
	db := setupIntegrationDB(t)
	r := setupTestRouter(db)
	token := loginAs(t, r, "1111")

	assert.NoError(t, db.Where("name = ?", "Casey").Delete(&models.Employee{}).Error)

	w := doJSON(t, r, "GET", "/ws?token="+token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Employee{},
		&models.Shift{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.ModifierGroup{},
		&models.ModifierOption{},
		&models.Order{},
		&models.HeldOrder{},
		&models.OverrideLog{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	utils.InitDB(db)

	seedIntegrationEmployee(t, db, "Casey", models.RoleCashier, "1111")
	seedIntegrationEmployee(t, db, "Morgan", models.RoleManager, "4321")
	seedIntegrationEmployee(t, db, "Jordan", models.RoleCook, "3333")

	category := models.MenuCategory{Name: "Food"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	menu := models.Menu{
		CategoryID:  category.ID,
		Name:        "Burger",
		Price:       8.00,
		IsAvailable: true,
		ModifierGroups: []models.ModifierGroup{
			{
				Name:          "Size",
				MaxSelections: 1,
				Required:      true,
				Options: []models.ModifierOption{
					{Name: "Regular", PriceDelta: 0},
					{Name: "Large", PriceDelta: 1.00},
				},
			},
		},
	}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("seed menu: %v", err)
	}
	return db
}

func seedIntegrationEmployee(t *testing.T, db *gorm.DB, name string, role models.Role, pin string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	if err := db.Create(&models.Employee{Name: name, PINHash: string(hash), Role: role}).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	cfg := config.DefaultPOS()
	sessions := services.NewSessionManager(db, cfg)
	splh := services.NewSPLHMonitor(db, time.Minute, cfg.SPLHEligibleRoles)
	return router.SetupRouter(db, sessions, splh)
}

func loginAs(t *testing.T, r *gin.Engine, pin string) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/login", "", map[string]interface{}{"pin": pin})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	token, ok := responseData(t, w)["token"].(string)
	if !ok || token == "" {
		t.Fatalf("no token in login response: %s", w.Body.String())
	}
	return token
}

func addLine(t *testing.T, r *gin.Engine, token string) {
	t.Helper()
	w := doJSON(t, r, "POST", "/pos/ticket/lines", token, map[string]interface{}{
		"menu_id":    1,
		"selections": map[string][]uint{"Size": {2}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add line failed: %d %s", w.Code, w.Body.String())
	}
}

func enterPIN(t *testing.T, r *gin.Engine, token, pin string) {
	t.Helper()
	for i := 0; i < len(pin); i++ {
		w := doJSON(t, r, "POST", "/pos/authorize/digit", token, map[string]interface{}{
			"digit": string(pin[i]),
		})
		if w.Code != http.StatusOK {
			t.Fatalf("press digit failed: %d %s", w.Code, w.Body.String())
		}
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %s", w.Body.String())
	}
	return data
}

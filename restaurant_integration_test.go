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
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gezana/restaurant-backend/database"
	"github.com/gezana/restaurant-backend/models"
	"github.com/gezana/restaurant-backend/router"
	"github.com/gezana/restaurant-backend/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupApp(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Booking{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return db, router.SetupRouter(db)
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// TestBookingEndToEnd walks the full guest journey: browse slots, book,
// look the booking up, cancel, and book the freed slot again.
func TestBookingEndToEnd(t *testing.T) {
	_, r := setupApp(t)
	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	// Ping
	w := doJSON(t, r, "GET", "/ping", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Slot grid before anything is booked
	w = doJSON(t, r, "GET", "/booking/slots?date="+date+"&guests=4", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	slots := decode(t, w)["data"].(map[string]interface{})["slots"].([]interface{})
	assert.Len(t, slots, 15)
	for _, s := range slots {
		assert.True(t, s.(map[string]interface{})["available"].(bool))
	}

	// Book dinner for four
	w = doJSON(t, r, "POST", "/bookings", map[string]interface{}{
		"name":   "Alice",
		"email":  "alice@example.com",
		"guests": 4,
		"date":   date,
		"time":   "18:00",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)["data"].(map[string]interface{})
	reference := created["reference"].(string)
	assert.Len(t, reference, 8)

	// The confirmation page can fetch it
	w = doJSON(t, r, "GET", "/bookings/"+reference, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	detail := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Alice", detail["name"])

	// A second booking with the same email on the same date is rejected
	w = doJSON(t, r, "POST", "/bookings", map[string]interface{}{
		"name":   "Alice Again",
		"email":  "ALICE@EXAMPLE.COM",
		"guests": 2,
		"date":   date,
		"time":   "12:00",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Cancel by reference
	w = doJSON(t, r, "POST", "/bookings/cancel", map[string]string{"reference": reference}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/bookings/"+reference, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The slot is free again
	w = doJSON(t, r, "POST", "/bookings", map[string]interface{}{
		"name":   "Alice",
		"email":  "alice@example.com",
		"guests": 4,
		"date":   date,
		"time":   "18:00",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

// TestAdminBookingOverview registers an admin, logs in, and reads the
// booking list through the protected route.
func TestAdminBookingOverview(t *testing.T) {
	_, r := setupApp(t)
	date := time.Now().AddDate(0, 0, 3).Format("2006-01-02")

	w := doJSON(t, r, "POST", "/bookings", map[string]interface{}{
		"name":   "Bob",
		"phone":  "+1 555 987 6543",
		"guests": 2,
		"date":   date,
		"time":   "13:30",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	// No token -> rejected
	w = doJSON(t, r, "GET", "/admin/bookings", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, "POST", "/register", map[string]string{
		"name":     "Manager",
		"email":    "manager@example.com",
		"password": "s3cret-pass",
		"role":     "admin",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/login", map[string]string{
		"email":    "manager@example.com",
		"password": "s3cret-pass",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["data"].(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)

	w = doJSON(t, r, "GET", "/admin/bookings?date="+date, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	bookings := decode(t, w)["data"].([]interface{})
	if assert.Len(t, bookings, 1) {
		entry := bookings[0].(map[string]interface{})
		assert.Equal(t, "Bob", entry["name"])
		assert.NotNil(t, entry["table"])
	}
}

// TestGlobalRateLimit hammers the API from one client until the
// per-IP limiter pushes back.
func TestGlobalRateLimit(t *testing.T) {
	_, r := setupApp(t)

	last := 0
	for i := 0; i < 51; i++ {
		w := doJSON(t, r, "GET", "/ping", nil, "")
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

// TestMenuBrowsing covers the seeded categories plus an admin-created dish.
func TestMenuBrowsing(t *testing.T) {
	db, r := setupApp(t)

	var category models.MenuCategory
	assert.NoError(t, db.Where("name = ?", "Main Course").First(&category).Error)
	db.Create(&models.Menu{
		CategoryID:  category.ID,
		Name:        "Tibs",
		Description: "Sauteed beef with rosemary",
		Ingredients: "beef, rosemary, onion",
		Price:       13.00,
	})

	w := doJSON(t, r, "GET", "/categories", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	categories := decode(t, w)["data"].([]interface{})
	assert.Len(t, categories, 5)

	w = doJSON(t, r, "GET", "/menus?search=rosemary", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	menus := decode(t, w)["data"].([]interface{})
	if assert.Len(t, menus, 1) {
		assert.Equal(t, "Tibs", menus[0].(map[string]interface{})["name"])
	}
}

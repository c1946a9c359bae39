package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gezana/restaurant-backend/controllers"
	"github.com/gezana/restaurant-backend/models"
)

func setupTestDBForTables(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Table{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// Auth middleware is exercised by the integration test; here the routes
// are mounted bare to test the controller itself.
func setupTableRouter(db *gorm.DB) *gin.Engine {
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	router.POST("/admin/tables", tableCtrl.CreateTable)
	router.GET("/admin/tables", tableCtrl.GetAllTables)
	router.GET("/admin/tables/:table_id", tableCtrl.GetTableByID)
	router.DELETE("/admin/tables/:table_id", tableCtrl.DeleteTable)
	return router
}

func TestCreateAndListTables(t *testing.T) {
	db := setupTestDBForTables(t)
	router := setupTableRouter(db)

	w := postJSON(t, router, "/admin/tables", map[string]interface{}{
		"table_number": "T10",
		"capacity":     6,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, router, "/admin/tables", map[string]interface{}{
		"table_number": "T11",
		"capacity":     2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	code, response := getJSON(t, router, "/admin/tables")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "List of tables", response["message"])

	data := response["data"].([]interface{})
	if assert.Len(t, data, 2) {
		// Capacity ascending
		first := data[0].(map[string]interface{})
		assert.Equal(t, "T11", first["table_number"])
	}
}

func TestCreateTableInvalidCapacity(t *testing.T) {
	db := setupTestDBForTables(t)
	router := setupTableRouter(db)

	w := postJSON(t, router, "/admin/tables", map[string]interface{}{
		"table_number": "T10",
		"capacity":     -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTable(t *testing.T) {
	db := setupTestDBForTables(t)
	router := setupTableRouter(db)

	table := models.Table{TableNumber: "T10", Capacity: 4}
	db.Create(&table)

	url := "/admin/tables/" + strconv.Itoa(int(table.ID))
	req, _ := http.NewRequest("DELETE", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Table deleted", response["message"])

	code, _ := getJSON(t, router, url)
	assert.Equal(t, http.StatusNotFound, code)
}

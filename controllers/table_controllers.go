package controllers

import (
	"errors"
	"net/http"

	"github.com/gezana/restaurant-backend/events"
	"github.com/gezana/restaurant-backend/models"
	"github.com/gezana/restaurant-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> admin adds a physical table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Capacity < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("capacity must be positive"))
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableCreate(table)
	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableNumber, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> catalog in capacity order
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("capacity asc").Order("id asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID
func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// DeleteTable -> bookings pointing here fall back to no table via the
// SET NULL constraint
func (tc *TableController) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableDelete(table)
	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}

package controllers

import (
	"net/http"

	"github.com/gezana/restaurant-backend/models"
	"github.com/gezana/restaurant-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuCategoryController struct {
	DB *gorm.DB
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{DB: db}
}

// GetAllCategories
func (cc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := cc.DB.Order("id asc").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// CreateCategory -> admin only
func (cc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{Name: req.Name}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New category created: %s", category.Name)
	utils.RespondJSON(c, http.StatusCreated, "Category created successfully", category)
}

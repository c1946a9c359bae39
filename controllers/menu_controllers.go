package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gezana/restaurant-backend/middlewares"
	"github.com/gezana/restaurant-backend/models"
	"github.com/gezana/restaurant-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuController struct {
	DB    *gorm.DB
	Cache *middlewares.CacheStore
}

func NewMenuController(db *gorm.DB, cache *middlewares.CacheStore) *MenuController {
	return &MenuController{DB: db, Cache: cache}
}

// GetAllMenus -> public listing, filter by category name and free-text
// search over name/description/ingredients
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	query := mc.DB.Preload("Category")

	if category := c.Query("category"); category != "" {
		query = query.
			Joins("JOIN menu_categories ON menu_categories.id = menus.category_id").
			Where("menu_categories.name = ?", category)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(menus.name) LIKE ? OR LOWER(menus.description) LIKE ? OR LOWER(menus.ingredients) LIKE ?",
			like, like, like,
		)
	}

	menus := make([]models.Menu, 0)
	if err := query.Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByID -> detail for one dish
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.Preload("Category").First(&menu, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// CreateMenu -> admin adds a dish
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req struct {
		CategoryID   uint    `json:"category_id" binding:"required"`
		Name         string  `json:"name" binding:"required"`
		Description  string  `json:"description"`
		Ingredients  string  `json:"ingredients"`
		Price        float64 `json:"price" binding:"required"`
		IsVegetarian bool    `json:"is_vegetarian"`
		IsPopular    bool    `json:"is_popular"`
		IsNew        bool    `json:"is_new"`
		IsChefChoice bool    `json:"is_chef_choice"`
		ImageUrl     *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := mc.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
		return
	}

	menu := models.Menu{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Price:        req.Price,
		IsVegetarian: req.IsVegetarian,
		IsPopular:    req.IsPopular,
		IsNew:        req.IsNew,
		IsChefChoice: req.IsChefChoice,
		ImageUrl:     req.ImageUrl,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	menu.Category = category

	mc.Cache.Invalidate("/menus")
	utils.InfoLogger.Printf("New menu created: %s (category=%s)", menu.Name, category.Name)
	utils.RespondJSON(c, http.StatusCreated, "Menu created successfully", menu)
}

// UpdateMenu -> admin edits a dish, only provided fields change
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.First(&menu, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		CategoryID   *uint    `json:"category_id"`
		Name         *string  `json:"name"`
		Description  *string  `json:"description"`
		Ingredients  *string  `json:"ingredients"`
		Price        *float64 `json:"price"`
		IsVegetarian *bool    `json:"is_vegetarian"`
		IsPopular    *bool    `json:"is_popular"`
		IsNew        *bool    `json:"is_new"`
		IsChefChoice *bool    `json:"is_chef_choice"`
		ImageUrl     *string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CategoryID != nil {
		var category models.MenuCategory
		if err := mc.DB.First(&category, *req.CategoryID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
			return
		}
		menu.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.Ingredients != nil {
		menu.Ingredients = *req.Ingredients
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.IsVegetarian != nil {
		menu.IsVegetarian = *req.IsVegetarian
	}
	if req.IsPopular != nil {
		menu.IsPopular = *req.IsPopular
	}
	if req.IsNew != nil {
		menu.IsNew = *req.IsNew
	}
	if req.IsChefChoice != nil {
		menu.IsChefChoice = *req.IsChefChoice
	}
	if req.ImageUrl != nil {
		menu.ImageUrl = req.ImageUrl
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Invalidate("/menus")
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu -> admin removes a dish
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.First(&menu, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if err := mc.DB.Delete(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Invalidate("/menus")
	utils.InfoLogger.Printf("Menu %d deleted", menu.ID)
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"id": menu.ID})
}

package router

import (
	"os"
	"strconv"
	"time"

	"github.com/gezana/restaurant-backend/controllers"
	"github.com/gezana/restaurant-backend/middlewares"
	"github.com/gezana/restaurant-backend/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// 50 requests per second per IP across the whole API
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	cache := middlewares.NewCacheStoreFromEnv()
	notifier := services.NewNotifierFromEnv()

	leadMinutes, _ := strconv.Atoi(os.Getenv("BOOKING_LEAD_MINUTES"))
	bookingSvc := services.NewBookingService(db, notifier, time.Duration(leadMinutes)*time.Minute)

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db, cache)
	bookingCtrl := controllers.NewBookingController(db, bookingSvc)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter for login/register
	auth := r.Group("/")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", cache.Cache(), menuCtrl.GetAllMenus)
	r.GET("/menus/:menu_id", cache.Cache(), menuCtrl.GetMenuByID)

	r.GET("/booking/slots", bookingCtrl.GetTimeSlots)
	r.POST("/bookings", bookingCtrl.CreateBooking)
	r.POST("/bookings/cancel", bookingCtrl.CancelBooking)
	r.GET("/bookings/:reference", bookingCtrl.GetBookingByReference)

	// Live dashboard feed
	r.GET("/ws", controllers.EventsHandler)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireAdmin())
	{
		admin.GET("/bookings", bookingCtrl.ListBookings)

		admin.POST("/tables", tableCtrl.CreateTable)
		admin.GET("/tables", tableCtrl.GetAllTables)
		admin.GET("/tables/:table_id", tableCtrl.GetTableByID)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.POST("/menus", menuCtrl.CreateMenu)
		admin.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
		admin.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)
	}

	return r
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gezana/restaurant-backend/events"
	"github.com/gezana/restaurant-backend/models"
	"github.com/gezana/restaurant-backend/services"
	"github.com/gezana/restaurant-backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookingController struct {
	DB      *gorm.DB
	Service *services.BookingService
}

func NewBookingController(db *gorm.DB, service *services.BookingService) *BookingController {
	return &BookingController{DB: db, Service: service}
}

// CreateBooking -> public booking form submission
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Phone  string `json:"phone"`
		Guests int    `json:"guests"`
		Date   string `json:"date"`
		Time   string `json:"time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, fieldErrs, err := bc.Service.Create(services.BookingInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Guests: req.Guests,
		Date:   req.Date,
		Time:   req.Time,
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(fieldErrs) > 0 {
		utils.RespondJSON(c, http.StatusUnprocessableEntity, "Booking validation failed", gin.H{
			"errors": fieldErrs,
		})
		return
	}

	events.BroadcastBookingCreated(*booking)
	utils.RespondJSON(c, http.StatusCreated, "Booking confirmed", booking)
}

// CancelBooking -> cancel by reference code
func (bc *BookingController) CancelBooking(c *gin.Context) {
	var req struct {
		Reference string `json:"reference" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Service.Cancel(req.Reference)
	if errors.Is(err, services.ErrBookingNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("invalid reference code"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastBookingCancelled(*booking)
	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", gin.H{
		"reference": booking.Reference,
	})
}

// GetBookingByReference -> lookup for the confirmation page
func (bc *BookingController) GetBookingByReference(c *gin.Context) {
	booking, err := bc.Service.FindByReference(c.Param("reference"))
	if errors.Is(err, services.ErrBookingNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("invalid reference code"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// GetTimeSlots -> bookable grid; availability is filled in when a date is
// given
func (bc *BookingController) GetTimeSlots(c *gin.Context) {
	date := c.Query("date")
	guests, err := strconv.Atoi(c.DefaultQuery("guests", "2"))
	if err != nil || guests < 1 {
		guests = 2
	}

	slots := services.DefaultTimeSlots()
	if date == "" {
		utils.RespondJSON(c, http.StatusOK, "Time slots", gin.H{"slots": slots})
		return
	}
	if _, err := time.Parse(services.DateLayout, date); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date"))
		return
	}

	type slotInfo struct {
		Time      string `json:"time"`
		Available bool   `json:"available"`
	}
	infos := make([]slotInfo, 0, len(slots))
	for _, slot := range slots {
		table, err := services.FindAvailableTable(bc.DB, date, slot, guests)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		infos = append(infos, slotInfo{Time: slot, Available: table != nil})
	}

	utils.RespondJSON(c, http.StatusOK, "Time slots", gin.H{
		"date":   date,
		"guests": guests,
		"slots":  infos,
	})
}

// ListBookings -> admin overview, optional date filter
func (bc *BookingController) ListBookings(c *gin.Context) {
	query := bc.DB.Preload("Table").Order("date asc").Order("time asc")
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	bookings := make([]models.Booking, 0)
	if err := query.Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

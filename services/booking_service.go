package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gezana/restaurant-backend/models"
	"github.com/gezana/restaurant-backend/utils"
	"gorm.io/gorm"
)

// ErrBookingNotFound is returned when no booking matches a reference code.
var ErrBookingNotFound = errors.New("booking not found")

// errValidation aborts the create transaction when the re-check inside the
// critical section fails.
var errValidation = errors.New("booking validation failed")

// FieldError is one violated booking rule. Field names the form field, or
// "form" for failures that belong to the whole request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type BookingInput struct {
	Name   string
	Email  string
	Phone  string
	Guests int
	Date   string
	Time   string
}

type BookingService struct {
	DB       *gorm.DB
	Notifier Notifier

	// LeadTime is the minimum distance from now for same-day bookings.
	LeadTime time.Duration
	// Now is replaceable in tests.
	Now func() time.Time

	// mu serializes Create so the availability re-check and insert act as
	// one unit. A multi-process deployment would need a row lock or a
	// unique (table_id, date, time) key in the same place.
	mu sync.Mutex
}

func NewBookingService(db *gorm.DB, notifier Notifier, leadTime time.Duration) *BookingService {
	return &BookingService{
		DB:       db,
		Notifier: notifier,
		LeadTime: leadTime,
		Now:      time.Now,
	}
}

// Validate applies every booking rule and reports all violations at once.
// On success it returns a draft with the resolved table attached so the
// caller does not resolve twice.
func (s *BookingService) Validate(in BookingInput) (*models.Booking, []FieldError, error) {
	return s.validate(s.DB, in)
}

func (s *BookingService) validate(db *gorm.DB, in BookingInput) (*models.Booking, []FieldError, error) {
	var fieldErrs []FieldError
	add := func(field, message string) {
		fieldErrs = append(fieldErrs, FieldError{Field: field, Message: message})
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if name == "" {
		add("name", "name is required")
	}
	if in.Guests < 1 {
		add("guests", "at least one guest is required")
	}

	now := s.Now()

	dateOK := true
	bookingDate, err := time.ParseInLocation(DateLayout, in.Date, now.Location())
	if err != nil {
		add("date", "invalid date")
		dateOK = false
	}

	timeOK := true
	startMinute, err := minuteOfDay(in.Time)
	if err != nil {
		add("time", "invalid time slot")
		timeOK = false
	}
	if timeOK {
		open, _ := minuteOfDay(ServiceOpen)
		closing, _ := minuteOfDay(ServiceClose)
		step := int(SlotStep.Minutes())
		if startMinute < open || startMinute > closing || startMinute%step != 0 {
			add("time", "invalid time slot")
			timeOK = false
		}
	}

	if dateOK {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if bookingDate.Before(today) {
			add("date", "date in the past")
		} else if timeOK && bookingDate.Equal(today) {
			start := bookingDate.Add(time.Duration(startMinute) * time.Minute)
			if !start.After(now.Add(s.LeadTime)) {
				add("time", "time must be in the future")
			}
		}
	}

	if email == "" && phone == "" {
		add("contact", "missing contact method")
	}
	if email != "" && !strings.Contains(email, "@") {
		add("email", "invalid email address")
	}
	if phone != "" && !utils.ValidPhone(phone) {
		add("phone", "invalid phone number")
	}

	// The remaining rules need well-formed date, time and party size.
	if !dateOK || !timeOK || in.Guests < 1 {
		return nil, fieldErrs, nil
	}

	date := bookingDate.Format(DateLayout)
	startTime := in.Time

	var fitting int64
	if err := db.Model(&models.Table{}).Where("capacity >= ?", in.Guests).
		Count(&fitting).Error; err != nil {
		return nil, nil, err
	}
	if fitting == 0 {
		add("guests", "party too large")
		return nil, fieldErrs, nil
	}

	table, err := FindAvailableTable(db, date, startTime, in.Guests)
	if err != nil {
		return nil, nil, err
	}
	if table == nil {
		add("form", "fully booked")
	}

	normPhone := utils.NormalizePhone(phone)
	duplicate, err := hasDuplicate(db, date, email, normPhone)
	if err != nil {
		return nil, nil, err
	}
	if duplicate {
		add("form", "duplicate booking for that date")
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	draft := &models.Booking{
		Name:    name,
		Phone:   normPhone,
		Guests:  in.Guests,
		Date:    date,
		Time:    startTime,
		TableID: &table.ID,
		Table:   table,
	}
	if email != "" {
		draft.Email = &email
	}
	return draft, nil, nil
}

// hasDuplicate reports whether a booking on the same date shares the email
// (case-insensitive) or the normalized phone number.
func hasDuplicate(db *gorm.DB, date, email, normPhone string) (bool, error) {
	var sameDay []models.Booking
	if err := db.Where("date = ?", date).Find(&sameDay).Error; err != nil {
		return false, err
	}
	for _, b := range sameDay {
		if email != "" && b.Email != nil && strings.EqualFold(*b.Email, email) {
			return true, nil
		}
		if normPhone != "" && b.Phone == normPhone {
			return true, nil
		}
	}
	return false, nil
}

// Create validates the input and persists the booking. Validation and the
// insert run inside one transaction under the service mutex, so two
// concurrent requests cannot both claim the same table window.
func (s *BookingService) Create(in BookingInput) (*models.Booking, []FieldError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		booking   *models.Booking
		fieldErrs []FieldError
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		draft, ferrs, err := s.validate(tx, in)
		if err != nil {
			return err
		}
		if len(ferrs) > 0 {
			fieldErrs = ferrs
			return errValidation
		}

		reference, err := s.generateReference(tx)
		if err != nil {
			return err
		}
		draft.Reference = reference

		if err := tx.Omit("Table").Create(draft).Error; err != nil {
			return err
		}
		booking = draft
		return nil
	})
	if errors.Is(err, errValidation) {
		return nil, fieldErrs, nil
	}
	if err != nil {
		return nil, nil, err
	}

	utils.InfoLogger.Printf("Booking %s created: %s %s, %d guests, table %s",
		booking.Reference, booking.Date, booking.Time, booking.Guests, booking.Table.TableNumber)
	if s.Notifier != nil {
		go s.Notifier.NotifyBookingConfirmed(*booking)
	}
	return booking, nil, nil
}

// generateReference loops until a code unused by any current booking comes
// up. The re-check runs at generation time inside the create transaction.
func (s *BookingService) generateReference(tx *gorm.DB) (string, error) {
	for {
		code := utils.RandomReference()
		var count int64
		if err := tx.Model(&models.Booking{}).Where("reference = ?", code).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
}

// Cancel removes the booking for the given reference code. Codes are
// matched case-insensitively by normalizing to uppercase.
func (s *BookingService) Cancel(reference string) (*models.Booking, error) {
	booking, err := s.FindByReference(reference)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Delete(booking).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Booking %s cancelled", booking.Reference)
	if s.Notifier != nil {
		go s.Notifier.NotifyBookingCancelled(*booking)
	}
	return booking, nil
}

// FindByReference looks a booking up by its reference code.
func (s *BookingService) FindByReference(reference string) (*models.Booking, error) {
	code := strings.ToUpper(strings.TrimSpace(reference))

	var booking models.Booking
	if err := s.DB.Preload("Table").Where("reference = ?", code).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/serializers"
	"github.com/yeremiapane/restaurant-booking/utils"
	"gorm.io/gorm"
)

// BookingController only ever touches rows whose Name is the caller's username.
type BookingController struct {
	DB     *gorm.DB
	Events events.Publisher
}

func NewBookingController(db *gorm.DB, pub events.Publisher) *BookingController {
	return &BookingController{DB: db, Events: pub}
}

func (bc *BookingController) GetMyBookings(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var bookings []models.Booking
	err := bc.DB.WithContext(c.Request.Context()).
		Where("name = ?", user.Username).
		Order("id").
		Find(&bookings).Error
	if err != nil {
		utils.RespondError(c, fmt.Errorf("list bookings: %w", err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, serializers.NewBookingListResponse(bookings))
}

// CreateBooking ignores any client-supplied Name.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req serializers.BookingRequest
	if !bindRequest(c, &req) {
		return
	}
	fields, err := req.Validate()
	if err != nil {
		respondInvalid(c, err)
		return
	}

	booking := fields.NewBooking(user.Username)
	if err := bc.DB.WithContext(c.Request.Context()).Create(&booking).Error; err != nil {
		utils.RespondError(c, fmt.Errorf("create booking: %w", err))
		return
	}

	resp := serializers.NewBookingResponse(booking)
	events.Emit(c.Request.Context(), bc.Events, events.New(events.EntityBooking, events.ActionCreated, booking.ID, user.Username, resp))
	utils.RespondJSON(c, http.StatusCreated, resp)
}

// DeleteBooking removes one of the caller's bookings. Another user's booking is
// reported exactly like a missing one.
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if c.Param("booking_id") == "" {
		utils.RespondError(c, utils.ErrBookingIDRequired)
		return
	}
	id, ok := parseID(c, "booking_id")
	if !ok {
		return
	}

	result := bc.DB.WithContext(c.Request.Context()).
		Where("id = ? AND name = ?", id, user.Username).
		Delete(&models.Booking{})
	if result.Error != nil {
		utils.RespondError(c, fmt.Errorf("delete booking %d: %w", id, result.Error))
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, utils.ErrNotFound)
		return
	}

	events.Emit(c.Request.Context(), bc.Events, events.New(events.EntityBooking, events.ActionDeleted, id, user.Username, gin.H{"id": id}))
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	bookingRepo "meetspace/database/repository/booking"
	roomRepo "meetspace/database/repository/room"
	"meetspace/middleware"
	"meetspace/models"
	"meetspace/services/booking"
)

// BookingHandler serves the booking workflow endpoints.
type BookingHandler struct {
	Svc booking.BookingService
	// Now is the clock; tests override it.
	Now func() time.Time
}

func (h *BookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Availability returns a room's slot grid. An optional ?date=YYYY-MM-DD
// selects the day; it defaults to today.
func (h *BookingHandler) Availability(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	day := h.now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, day.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	grid, err := h.Svc.Availability(c.Request.Context(), roomID, day)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, grid)
}

// Create books a slot for the authenticated user.
func (h *BookingHandler) Create(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Svc.Book(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotLoggedIn):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrTitleRequired),
			errors.Is(err, booking.ErrSlotOffGrid),
			errors.Is(err, booking.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, roomRepo.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			// Store errors pass through with their original text.
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Cancel deletes the authenticated user's booking.
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.Svc.Cancel(c.Request.Context(), middleware.UserID(c), bookingID); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": bookingID})
}

// Mine lists the authenticated user's upcoming bookings.
func (h *BookingHandler) Mine(c *gin.Context) {
	bookings, err := h.Svc.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if bookings == nil {
		bookings = []models.BookingWithRoom{}
	}
	c.JSON(http.StatusOK, bookings)
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "meetspace/database/repository/booking"
	roomRepo "meetspace/database/repository/room"
	"meetspace/models"
	"meetspace/services/booking"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubBookingService returns canned results per call.
type stubBookingService struct {
	availability *models.Availability
	booked       *models.Booking
	err          error
	mine         []models.BookingWithRoom
}

func (s *stubBookingService) Availability(ctx context.Context, roomID int64, day time.Time) (*models.Availability, error) {
	return s.availability, s.err
}

func (s *stubBookingService) Book(ctx context.Context, userID string, input models.BookingInput) (*models.Booking, error) {
	return s.booked, s.err
}

func (s *stubBookingService) Cancel(ctx context.Context, userID string, bookingID int64) error {
	return s.err
}

func (s *stubBookingService) ListForUser(ctx context.Context, userID string) ([]models.BookingWithRoom, error) {
	return s.mine, s.err
}

func bookingRouter(svc booking.BookingService) *gin.Engine {
	h := &BookingHandler{Svc: svc}
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "u1") })
	r.GET("/api/rooms/:id/availability", h.Availability)
	r.POST("/api/bookings", h.Create)
	r.DELETE("/api/bookings/:id", h.Cancel)
	r.GET("/api/bookings/mine", h.Mine)
	return r
}

func postBooking(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingStatusMapping(t *testing.T) {
	body := `{"room_id":1,"title":"Sync","time":"9:30 AM"}`

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"slot taken", bookingRepo.ErrSlotTaken, http.StatusConflict},
		{"not logged in", booking.ErrNotLoggedIn, http.StatusUnauthorized},
		{"missing title", booking.ErrTitleRequired, http.StatusBadRequest},
		{"off-grid time", booking.ErrSlotOffGrid, http.StatusBadRequest},
		{"bad date", booking.ErrInvalidDate, http.StatusBadRequest},
		{"unknown room", roomRepo.ErrRoomNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := bookingRouter(&stubBookingService{err: tc.err})
			w := postBooking(t, r, body)
			assert.Equal(t, tc.status, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.err.Error(), resp["error"])
		})
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	booked := &models.Booking{ID: 7, UserID: "u1", RoomID: 1, Title: "Sync"}
	r := bookingRouter(&stubBookingService{booked: booked})

	w := postBooking(t, r, `{"room_id":1,"title":"Sync","time":"9:30 AM"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
}

func TestCreateBookingRejectsBadPayload(t *testing.T) {
	r := bookingRouter(&stubBookingService{})
	w := postBooking(t, r, `{"room_id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelBookingNotFound(t *testing.T) {
	r := bookingRouter(&stubBookingService{err: bookingRepo.ErrBookingNotFound})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/bookings/7", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelBookingNotOwner(t *testing.T) {
	r := bookingRouter(&stubBookingService{err: booking.ErrNotOwner})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/bookings/7", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMineReturnsEmptyArray(t *testing.T) {
	r := bookingRouter(&stubBookingService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings/mine", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestAvailabilityRejectsBadDate(t *testing.T) {
	r := bookingRouter(&stubBookingService{availability: &models.Availability{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms/1/availability?date=March+10", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityOK(t *testing.T) {
	grid := &models.Availability{
		Room: models.Room{ID: 1, Name: "Boardroom"},
		Date: "2025-03-10",
		Slots: []models.TimeSlot{
			{Time: "8:00 AM", Available: true},
		},
	}
	r := bookingRouter(&stubBookingService{availability: grid})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms/1/availability?date=2025-03-10", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.Availability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-10", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.True(t, resp.Slots[0].Available)
}

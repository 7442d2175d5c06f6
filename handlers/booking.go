package handlers

import (
	"net/http"

	"pawcare/middleware"
	"pawcare/models"
	"pawcare/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the customer booking endpoints of every category.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

type createBookingRequest struct {
	PetID        string         `json:"petId"`
	BookingType  string         `json:"bookingType"`
	ClinicID     string         `json:"clinicId"`
	SelectedDate string         `json:"selectedDate" binding:"required"`
	SelectedTime string         `json:"selectedTime" binding:"required"`
	Contact      models.Contact `json:"contact"`
	Notes        string         `json:"notes"`
}

type createBookingResponse struct {
	Booking *models.Booking      `json:"booking"`
	Payment *models.PaymentOrder `json:"payment,omitempty"`
}

// CreateBooking handles POST /api/bookings/:category.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "selectedDate and selectedTime are required")
		return
	}

	b, order, err := h.Service.Create(c.Request.Context(), booking.CreateBookingInput{
		Category:    category,
		CustomerID:  c.GetString(middleware.CtxCustomerID),
		PetID:       req.PetID,
		BookingType: req.BookingType,
		ClinicID:    req.ClinicID,
		Date:        req.SelectedDate,
		Time:        req.SelectedTime,
		Contact:     req.Contact,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, createBookingResponse{Booking: b, Payment: order})
}

type rescheduleRequest struct {
	ID              string `json:"id" binding:"required"`
	RescheduledDate string `json:"rescheduledDate" binding:"required"`
	RescheduledTime string `json:"rescheduledTime" binding:"required"`
	Status          string `json:"status"`
}

// RescheduleBooking handles PUT /api/bookings/:category/reschedule.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "id, rescheduledDate and rescheduledTime are required")
		return
	}
	// Older clients echo the target status; anything but Rescheduled is a mistake.
	if req.Status != "" && req.Status != string(models.StatusRescheduled) {
		invalidInput(c, "status must be Rescheduled")
		return
	}

	b, err := h.Service.Reschedule(c.Request.Context(), booking.RescheduleInput{
		Category:   category,
		BookingID:  req.ID,
		CustomerID: caller(c),
		Date:       req.RescheduledDate,
		Time:       req.RescheduledTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("booking rescheduled via api", zap.String("bookingId", b.ID))
	respondOK(c, http.StatusOK, b)
}

// GetAvailability handles GET /api/bookings/:category/availability.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		invalidInput(c, "date query parameter is required")
		return
	}

	slots, err := h.Service.Availability(c.Request.Context(), category, date, c.Query("clinicId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if slots == nil {
		slots = []models.AvailableSlot{}
	}
	respondOK(c, http.StatusOK, slots)
}

// GetBooking handles GET /api/bookings/id/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

// ListMyBookings handles GET /api/bookings/mine.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	list, err := h.Service.ListByCustomer(c.Request.Context(), c.GetString(middleware.CtxCustomerID))
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []models.Booking{}
	}
	respondOK(c, http.StatusOK, list)
}

type verifyPaymentRequest struct {
	ID      string `json:"id" binding:"required"`
	OrderID string `json:"orderId" binding:"required"`
}

// VerifyPayment handles POST /api/bookings/:category/payment/verify.
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	if _, ok := categoryParam(c); !ok {
		return
	}
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "id and orderId are required")
		return
	}

	b, err := h.Service.ConfirmPayment(c.Request.Context(), req.ID, req.OrderID, caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

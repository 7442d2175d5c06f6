package handlers

import (
	"net/http"

	clinicRepo "pawcare/database/repository/clinic"
	"pawcare/models"
	"pawcare/services/booking"
	"pawcare/services/settings"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves category settings and booking administration.
type AdminHandler struct {
	Settings settings.SettingsService
	Bookings booking.BookingService
	Clinics  clinicRepo.ClinicRepository
}

func NewAdminHandler(settingsSvc settings.SettingsService, bookingSvc booking.BookingService, clinics clinicRepo.ClinicRepository) *AdminHandler {
	return &AdminHandler{Settings: settingsSvc, Bookings: bookingSvc, Clinics: clinics}
}

type settingsRequest struct {
	Policy   models.BookingTimePolicy `json:"policy"`
	Fee      int64                    `json:"fee"`
	Currency string                   `json:"currency"`
}

// GetSettings handles GET /api/admin/settings/:category.
func (h *AdminHandler) GetSettings(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	s, err := h.Settings.Get(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, s)
}

// ListSettings handles GET /api/admin/settings.
func (h *AdminHandler) ListSettings(c *gin.Context) {
	list, err := h.Settings.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []models.CategorySettings{}
	}
	respondOK(c, http.StatusOK, list)
}

// UpdateSettings handles PUT /api/admin/settings/:category.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "invalid settings body: "+err.Error())
		return
	}

	s := &models.CategorySettings{
		Category: category,
		Policy:   req.Policy,
		Fee:      req.Fee,
		Currency: req.Currency,
	}
	if err := h.Settings.Update(c.Request.Context(), s, actor(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, s)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateBookingStatus handles PATCH /api/admin/bookings/:id/status.
func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "status is required")
		return
	}
	to, err := models.ParseBookingStatus(req.Status)
	if err != nil {
		invalidInput(c, err.Error())
		return
	}

	b, err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), to, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

// DeleteBooking handles DELETE /api/admin/bookings/:id.
func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	if err := h.Bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// ListClinics handles GET /api/admin/clinics.
func (h *AdminHandler) ListClinics(c *gin.Context) {
	list, err := h.Clinics.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []models.Clinic{}
	}
	respondOK(c, http.StatusOK, list)
}

// UpsertClinic handles PUT /api/admin/clinics/:id.
func (h *AdminHandler) UpsertClinic(c *gin.Context) {
	var clinic models.Clinic
	if err := c.ShouldBindJSON(&clinic); err != nil {
		invalidInput(c, "invalid clinic body: "+err.Error())
		return
	}
	clinic.ID = c.Param("id")

	open, err := models.ParseClock(clinic.OpenTime)
	if err != nil {
		invalidInput(c, "openTime: "+err.Error())
		return
	}
	closing, err := models.ParseClock(clinic.CloseTime)
	if err != nil {
		invalidInput(c, "closeTime: "+err.Error())
		return
	}
	if open >= closing {
		invalidInput(c, "openTime must be before closeTime")
		return
	}

	if err := h.Clinics.Upsert(c.Request.Context(), &clinic); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, clinic)
}

package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/srgjo27/captainbook/internal/core/domain"
	"github.com/srgjo27/captainbook/internal/core/services"
)

type BookingHandler struct {
	svc          *services.BookingService
	availability *services.AvailabilityService
	log          zerolog.Logger
}

func NewBookingHandler(svc *services.BookingService, availability *services.AvailabilityService, log zerolog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, availability: availability, log: log}
}

// POST /bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	booking, err := h.svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booking created!", "booking": booking})
}

// GET /bookings/captain/:captainId (captain, own bookings only)
func (h *BookingHandler) GetCaptainBookings(c *gin.Context) {
	captainID, ok := uuidParam(c, "captainId")
	if !ok {
		return
	}
	if principalFrom(c).ID != captainID {
		writeError(c, h.log, domain.NewForbiddenError("forbidden"))
		return
	}

	bookings, err := h.svc.ListForCaptain(c.Request.Context(), captainID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(bookings), "bookings": bookings})
}

// GET /bookings/user/:userId
func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	bookings, err := h.svc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type updateBookingRequest struct {
	Status domain.BookingStatus `json:"status"`
}

// PATCH /bookings/:bookingId (captain)
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, ok := uuidParam(c, "bookingId")
	if !ok {
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json body")
		return
	}

	booking, err := h.svc.ResolveBooking(c.Request.Context(), bookingID, principalFrom(c).ID, req.Status)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Booking %s successfully", strings.ToLower(string(booking.Status))),
		"data":    booking,
	})
}

type ratingRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// PUT /bookings/review/:bookingId
func (h *BookingHandler) AddRating(c *gin.Context) {
	bookingID, ok := uuidParam(c, "bookingId")
	if !ok {
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "rating must be between 1 and 5")
		return
	}

	booking, err := h.svc.AttachRating(c.Request.Context(), bookingID, req.Rating, req.Review)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rating added successfully!", "data": booking})
}

// GET /bookings/available-captains?location=&skill=
func (h *BookingHandler) AvailableCaptains(c *gin.Context) {
	captains, err := h.availability.FindAvailable(c.Request.Context(), c.Query("location"), c.Query("skill"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "captains": captains})
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"freightline/internal/apperr"
	"freightline/internal/domain"
	"freightline/internal/logx"
)

// BookingHandler serves HTTP endpoints for quotes, bookings and tracking.
type BookingHandler struct {
	usecase bookingUsecase
	logger  logx.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(logger logx.Logger, uc bookingUsecase) *BookingHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &BookingHandler{usecase: uc, logger: logger}
}

// Quote handles POST /api/quote.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	cost, err := h.usecase.EstimateQuote(
		r.Context(),
		req.PickupAddress.toModel(),
		req.DeliveryAddress.toModel(),
		req.WeightLbs,
		req.ItemDescription,
		domain.ServiceType(req.ServiceType),
	)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, quoteResponse{EstimatedCost: cost})
	case errors.Is(err, apperr.ErrInvalidAddress):
		writeError(h.logger, w, r, http.StatusBadRequest, "incomplete address")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	var pickupTime time.Time
	if req.PickupTime != 0 {
		pickupTime = time.Unix(0, req.PickupTime).UTC()
	}

	id, err := h.usecase.CreateBooking(
		r.Context(),
		req.Customer.toModel(),
		req.toShipment(),
		domain.ServiceType(req.ServiceType),
		pickupTime,
	)
	switch {
	case err == nil:
		w.Header().Set("Location", "/api/bookings/"+id)
		writeJSON(h.logger, w, r, http.StatusCreated, createBookingResponse{ShipmentID: id})
	case errors.Is(err, apperr.ErrInvalidAddress):
		writeError(h.logger, w, r, http.StatusBadRequest, "incomplete address")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// GetByID handles GET /api/bookings/{shipmentID}.
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := shipmentIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid shipment id")
		return
	}

	b, err := h.usecase.GetBooking(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, bookingToResponse(b))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "booking not found")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid shipment id")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /api/bookings. With ?status= it filters by current
// status; otherwise it returns every booking ordered by pickup time.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []domain.Booking
		err  error
	)

	if s := r.URL.Query().Get("status"); s != "" {
		list, err = h.usecase.GetBookingsByStatus(r.Context(), domain.ShipmentStatus(s))
	} else {
		list, err = h.usecase.GetAllBookingsByPickupTime(r.Context())
	}

	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, bookingsToResponse(list))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Track handles GET /api/tracking/{shipmentID}.
func (h *BookingHandler) Track(w http.ResponseWriter, r *http.Request) {
	id, err := shipmentIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid shipment id")
		return
	}

	snap, err := h.usecase.TrackShipment(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, snapshotToResponse(snap))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "shipment not found")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid shipment id")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// UpdateTracking handles POST /api/bookings/{shipmentID}/tracking.
func (h *BookingHandler) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	id, err := shipmentIDFromURL(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid shipment id")
		return
	}

	var req updateTrackingRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	err = h.usecase.UpdateTracking(r.Context(), id, req.Location, domain.ShipmentStatus(req.Status), req.Notes)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "booking not found")
	case errors.Is(err, apperr.ErrShipmentClosed):
		writeError(h.logger, w, r, http.StatusConflict, "shipment already delivered")
	case errors.Is(err, apperr.ErrInvalidTransition):
		writeError(h.logger, w, r, http.StatusConflict, "status cannot move backwards")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

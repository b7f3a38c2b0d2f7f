package handler

import (
	"encoding/json"
	"net/http"

	"digital-city/internal/model"
	"digital-city/internal/session"

	"github.com/rs/zerolog"
)

// CheckoutHandler drives the session's checkout wizard over HTTP.
type CheckoutHandler struct {
	logger zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		logger: logger.With().Str("handler", "checkout").Logger(),
	}
}

// paymentRequest is the body for the payment step.
type paymentRequest struct {
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	OrderNotes    string              `json:"orderNotes"`
}

func (h *CheckoutHandler) sessionFrom(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "no session on request", h.logger)
		return nil, false
	}
	return s, true
}

// State handles GET /api/checkout requests.
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	s, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, s.Checkout.State())
}

// Shipping handles POST /api/checkout/shipping requests. Validation
// failures return the wizard state so the caller can render every field
// error at once.
func (h *CheckoutHandler) Shipping(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	s, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	var addr model.ShippingAddress
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	fieldErrors, err := s.Checkout.SubmitShipping(addr)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, s.Checkout.State())
		return
	}

	writeJSON(w, http.StatusOK, s.Checkout.State())
}

// Payment handles POST /api/checkout/payment requests.
func (h *CheckoutHandler) Payment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	s, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := s.Checkout.ConfirmPayment(req.PaymentMethod, req.OrderNotes); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, s.Checkout.State())
}

// Back handles POST /api/checkout/back requests.
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	s, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	if err := s.Checkout.Back(); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, s.Checkout.State())
}

// Submit handles POST /api/checkout/submit requests. The call blocks for
// the simulated processing delay and returns the persisted order.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	s, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	order, err := s.Checkout.Submit(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// Close handles POST /api/checkout/close requests, resetting the wizard.
func (h *CheckoutHandler) Close(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed", h.logger)
		return
	}

	s, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	s.Checkout.Close()
	writeJSON(w, http.StatusOK, s.Checkout.State())
}

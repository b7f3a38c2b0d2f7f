package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"digital-city/internal/cart"
	"digital-city/internal/model"
	"digital-city/internal/repository"

	"github.com/rs/zerolog"
)

// Step is a checkout wizard state.
type Step string

const (
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// IDGenerator produces timestamp-derived order ids that are unique per
// submission even when two submissions land in the same millisecond.
// A single instance is shared by all wizards.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewIDGenerator creates a new order id generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next order id for the given submission time.
func (g *IDGenerator) Next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return fmt.Sprintf("ORDER-%d", ms)
}

// State is a snapshot of the wizard for rendering.
type State struct {
	Step          Step                  `json:"step"`
	Submitting    bool                  `json:"submitting"`
	Succeeded     bool                  `json:"succeeded"`
	Shipping      model.ShippingAddress `json:"shipping"`
	PaymentMethod model.PaymentMethod   `json:"paymentMethod"`
	OrderNotes    string                `json:"orderNotes,omitempty"`
	FieldErrors   FieldErrors           `json:"fieldErrors,omitempty"`
	Summary       cart.Summary          `json:"summary"`
}

// Wizard drives one visitor's checkout: shipping -> payment -> confirmation,
// plus a submitting flag (single-flight guard) and a succeeded flag overlay.
// Backward navigation is free until submission; Close resets everything.
type Wizard struct {
	cart    *cart.Store
	regions []model.Region
	orders  repository.OrderRepository
	pricing cart.Pricing
	idGen   *IDGenerator
	delay   time.Duration
	logger  zerolog.Logger

	mu            sync.Mutex
	step          Step
	shipping      model.ShippingAddress
	paymentMethod model.PaymentMethod
	orderNotes    string
	fieldErrors   FieldErrors
	submitting    bool
	succeeded     bool
	generation    int // bumped by Close so stale submissions cannot resurrect state
}

// NewWizard creates a checkout wizard over the given cart. delay is the
// simulated order-processing latency applied before persisting.
func NewWizard(
	c *cart.Store,
	regions []model.Region,
	orders repository.OrderRepository,
	pricing cart.Pricing,
	idGen *IDGenerator,
	delay time.Duration,
	logger zerolog.Logger,
) *Wizard {
	return &Wizard{
		cart:          c,
		regions:       regions,
		orders:        orders,
		pricing:       pricing,
		idGen:         idGen,
		delay:         delay,
		logger:        logger.With().Str("component", "checkout").Logger(),
		step:          StepShipping,
		paymentMethod: model.PaymentCashOnDelivery,
	}
}

// State returns a snapshot of the wizard including the current cart summary.
func (w *Wizard) State() State {
	subtotal := w.cart.Subtotal()

	w.mu.Lock()
	defer w.mu.Unlock()

	return State{
		Step:          w.step,
		Submitting:    w.submitting,
		Succeeded:     w.succeeded,
		Shipping:      w.shipping,
		PaymentMethod: w.paymentMethod,
		OrderNotes:    w.orderNotes,
		FieldErrors:   w.fieldErrors,
		Summary:       w.pricing.Summarize(subtotal),
	}
}

// SubmitShipping validates the shipping form. On success the wizard advances
// to the payment step; on failure it stays in shipping and the per-field
// errors are retained for display.
func (w *Wizard) SubmitShipping(addr model.ShippingAddress) (FieldErrors, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepShipping {
		return nil, model.ErrInvalidTransition
	}

	errs := ValidateShipping(addr, w.regions)
	if len(errs) > 0 {
		w.fieldErrors = errs
		w.logger.Debug().Int("violations", len(errs)).Msg("shipping validation failed")
		return errs, nil
	}

	w.shipping = addr
	w.fieldErrors = nil
	w.step = StepPayment

	w.logger.Debug().Str("wilaya", addr.Wilaya).Msg("shipping accepted")

	return nil, nil
}

// ConfirmPayment records the payment choice and advances to confirmation.
// The transition is unconditional: an empty method falls back to the default
// cash-on-delivery selection.
func (w *Wizard) ConfirmPayment(method model.PaymentMethod, notes string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepPayment {
		return model.ErrInvalidTransition
	}

	if method == "" {
		method = model.PaymentCashOnDelivery
	}
	if !method.Valid() {
		return model.NewDomainError(model.ErrCodeValidationFailed, "Unknown payment method")
	}

	w.paymentMethod = method
	w.orderNotes = notes
	w.step = StepConfirmation

	return nil
}

// Back navigates one step backwards: payment to shipping, or confirmation to
// payment. It is rejected while a submission is in flight or after success.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting || w.succeeded {
		return model.ErrInvalidTransition
	}

	switch w.step {
	case StepPayment:
		w.step = StepShipping
	case StepConfirmation:
		w.step = StepPayment
	default:
		return model.ErrInvalidTransition
	}

	return nil
}

// Submit builds the order from the current cart, persists it and clears the
// cart. Only one submission may be outstanding at a time; a second call
// while one is in flight returns ErrSubmissionInFlight. On failure the
// wizard stays in confirmation with submission unlocked so the user can
// retry; the cart is only cleared on confirmed success.
func (w *Wizard) Submit(ctx context.Context) (*model.Order, error) {
	w.mu.Lock()
	if w.step != StepConfirmation || w.succeeded {
		w.mu.Unlock()
		return nil, model.ErrInvalidTransition
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, model.ErrSubmissionInFlight
	}

	items := w.cart.Items()
	if len(items) == 0 {
		w.mu.Unlock()
		return nil, model.ErrEmptyCart
	}

	w.submitting = true
	gen := w.generation
	shipping := w.shipping
	method := w.paymentMethod
	notes := w.orderNotes
	w.mu.Unlock()

	order, err := w.process(ctx, items, shipping, method, notes)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.generation != gen {
		// The wizard was closed while the submission was in flight; the
		// fresh state must not be touched. A persisted order stays
		// persisted, matching append-only semantics.
		w.logger.Warn().Msg("submission completed after checkout was closed, discarding result")
		return nil, model.ErrInvalidTransition
	}

	w.submitting = false

	if err != nil {
		w.logger.Error().Err(err).Msg("order submission failed")
		return nil, err
	}

	w.succeeded = true
	w.cart.Clear()

	w.logger.Info().
		Str("order_id", order.ID).
		Float64("total", order.Total).
		Msg("order submitted successfully")

	return order, nil
}

// Close resets the wizard to its initial state. An in-flight submission is
// orphaned: its completion is discarded rather than applied to fresh state.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.step = StepShipping
	w.shipping = model.ShippingAddress{}
	w.paymentMethod = model.PaymentCashOnDelivery
	w.orderNotes = ""
	w.fieldErrors = nil
	w.submitting = false
	w.succeeded = false
	w.generation++
}

// process applies the simulated processing latency and persists the order.
func (w *Wizard) process(
	ctx context.Context,
	items []model.CartItem,
	shipping model.ShippingAddress,
	method model.PaymentMethod,
	notes string,
) (*model.Order, error) {
	if w.delay > 0 {
		select {
		case <-time.After(w.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:              w.idGen.Next(now),
		Items:           items,
		Total:           w.pricing.Summarize(subtotal).Total,
		ShippingAddress: shipping,
		PaymentMethod:   method,
		OrderNotes:      notes,
		OrderDate:       now,
		Status:          model.StatusPending,
	}

	if err := w.orders.Append(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	return order, nil
}

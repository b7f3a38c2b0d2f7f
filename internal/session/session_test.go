package session

import (
	"context"
	"testing"
	"time"

	"digital-city/internal/cart"
	"digital-city/internal/checkout"
	"digital-city/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopOrderRepository struct{}

func (noopOrderRepository) Append(ctx context.Context, order *model.Order) error {
	return nil
}

func (noopOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return nil, nil
}

func (noopOrderRepository) List(ctx context.Context) ([]model.Order, error) {
	return nil, nil
}

func newTestManager() *Manager {
	return newTestManagerTTL(0)
}

func newTestManagerTTL(ttl time.Duration) *Manager {
	logger := zerolog.Nop()
	idGen := checkout.NewIDGenerator()
	factory := func(c *cart.Store) *checkout.Wizard {
		return checkout.NewWizard(c, nil, noopOrderRepository{}, cart.DefaultPricing(), idGen, 0, logger)
	}
	return NewManager(factory, ttl, logger)
}

func TestManager_Create(t *testing.T) {
	m := newTestManager()

	s := m.Create()

	require.NotEmpty(t, s.ID)
	require.NotNil(t, s.Cart)
	require.NotNil(t, s.Checkout)
	assert.WithinDuration(t, time.Now(), s.CreatedAt, time.Second)
	assert.Equal(t, 1, m.Count())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestManager_CreateAssignsDistinctIDs(t *testing.T) {
	m := newTestManager()

	a := m.Create()
	b := m.Create()

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotSame(t, a.Cart, b.Cart)
	assert.Equal(t, 2, m.Count())
}

func TestManager_GetUnknown(t *testing.T) {
	m := newTestManager()

	_, ok := m.Get("missing")
	assert.False(t, ok)
}

func TestManager_GetOrCreate(t *testing.T) {
	m := newTestManager()

	fresh := m.GetOrCreate("")
	require.NotNil(t, fresh)

	same := m.GetOrCreate(fresh.ID)
	assert.Same(t, fresh, same)

	other := m.GetOrCreate("unknown-id")
	assert.NotSame(t, fresh, other)
	assert.NotEqual(t, "unknown-id", other.ID)
	assert.Equal(t, 2, m.Count())
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := newTestManager()

	a := m.Create()
	b := m.Create()

	product := model.Product{ID: 1, Name: "هاتف", Price: 1000, Stock: 5, InStock: true}
	require.NoError(t, a.Cart.AddItem(product, 1, "", ""))

	assert.Equal(t, 1, a.Cart.ItemCount())
	assert.Equal(t, 0, b.Cart.ItemCount())
}

func TestManager_IdleSessionsExpire(t *testing.T) {
	m := newTestManagerTTL(30 * time.Minute)

	s := m.Create()
	s.LastSeen = time.Now().Add(-time.Hour)

	_, ok := m.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Count())

	// An unknown id after expiry mints a fresh session.
	fresh := m.GetOrCreate(s.ID)
	assert.NotEqual(t, s.ID, fresh.ID)
}

func TestManager_GetRefreshesLastSeen(t *testing.T) {
	m := newTestManagerTTL(30 * time.Minute)

	s := m.Create()
	s.LastSeen = time.Now().Add(-29 * time.Minute)

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.WithinDuration(t, time.Now(), s.LastSeen, time.Second)
}

func TestManager_CreateSweepsIdleSessions(t *testing.T) {
	m := newTestManagerTTL(30 * time.Minute)

	stale := m.Create()
	stale.LastSeen = time.Now().Add(-time.Hour)
	live := m.Create()

	assert.Equal(t, 1, m.Count())
	_, ok := m.Get(stale.ID)
	assert.False(t, ok)
	_, ok = m.Get(live.ID)
	assert.True(t, ok)
}

func TestManager_ZeroTTLNeverExpires(t *testing.T) {
	m := newTestManager()

	s := m.Create()
	s.LastSeen = time.Now().Add(-24 * time.Hour)

	_, ok := m.Get(s.ID)
	assert.True(t, ok)
}

func TestContextRoundTrip(t *testing.T) {
	m := newTestManager()
	s := m.Create()

	ctx := NewContext(context.Background(), s)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}

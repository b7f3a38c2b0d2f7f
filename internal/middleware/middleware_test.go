package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"digital-city/internal/cart"
	"digital-city/internal/checkout"
	"digital-city/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		expectedStatus int
		expectHandler  bool
	}{
		{
			name:           "Preflight request",
			method:         http.MethodOptions,
			expectedStatus: http.StatusNoContent,
			expectHandler:  false,
		},
		{
			name:           "GET request",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "POST request",
			method:         http.MethodPost,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := CORS(testHandler)

			req := httptest.NewRequest(tt.method, "/test", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, PATCH, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type, X-Session-ID", w.Header().Get("Access-Control-Allow-Headers"))
		})
	}
}

func newSessionManager() *session.Manager {
	logger := zerolog.Nop()
	idGen := checkout.NewIDGenerator()
	factory := func(c *cart.Store) *checkout.Wizard {
		return checkout.NewWizard(c, nil, nil, cart.DefaultPricing(), idGen, 0, logger)
	}
	return session.NewManager(factory, 0, logger)
}

func TestSession_IssuesNewSession(t *testing.T) {
	manager := newSessionManager()

	var got *session.Session
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Session(manager)(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.NotNil(t, got)
	assert.Equal(t, got.ID, w.Header().Get(SessionHeader))
	assert.Equal(t, 1, manager.Count())
}

func TestSession_ReusesKnownSession(t *testing.T) {
	manager := newSessionManager()
	existing := manager.Create()

	var got *session.Session
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Session(manager)(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(SessionHeader, existing.ID)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Same(t, existing, got)
	assert.Equal(t, existing.ID, w.Header().Get(SessionHeader))
	assert.Equal(t, 1, manager.Count())
}

func TestSession_ReplacesUnknownID(t *testing.T) {
	manager := newSessionManager()

	handler := Session(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(SessionHeader, "stale-or-forged-id")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	issued := w.Header().Get(SessionHeader)
	assert.NotEmpty(t, issued)
	assert.NotEqual(t, "stale-or-forged-id", issued)
}

func TestSession_SkipsHealthCheck(t *testing.T) {
	manager := newSessionManager()

	handler := Session(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := session.FromContext(r.Context())
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get(SessionHeader))
	assert.Equal(t, 0, manager.Count())
}

func TestLogging(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	handler := Logging(zerolog.Nop())(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRecovery(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	handler := Recovery(zerolog.Nop())(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

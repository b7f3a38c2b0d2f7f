package router

import (
	"net/http"
	"strings"

	"digital-city/internal/handler"
	"digital-city/internal/middleware"
	"digital-city/internal/session"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	sessions *session.Manager,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no session required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalog routes
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product ID
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)
	mux.HandleFunc("/api/categories", productHandler.Categories)
	mux.HandleFunc("/api/sliders", productHandler.Sliders)
	mux.HandleFunc("/api/regions", productHandler.Regions)

	// Cart routes: DELETE clears the cart, anything else is the cart view
	cartRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			cartHandler.Clear(w, r)
			return
		}
		cartHandler.Get(w, r)
	}
	mux.HandleFunc("/api/cart", cartRouteHandler)
	mux.HandleFunc("/api/cart/items", cartHandler.Items)

	// Favorites routes
	mux.HandleFunc("/api/favorites", cartHandler.Favorites)
	mux.HandleFunc("/api/favorites/", cartHandler.FavoriteByID)

	// Checkout routes
	mux.HandleFunc("/api/checkout", checkoutHandler.State)
	mux.HandleFunc("/api/checkout/shipping", checkoutHandler.Shipping)
	mux.HandleFunc("/api/checkout/payment", checkoutHandler.Payment)
	mux.HandleFunc("/api/checkout/back", checkoutHandler.Back)
	mux.HandleFunc("/api/checkout/submit", checkoutHandler.Submit)
	mux.HandleFunc("/api/checkout/close", checkoutHandler.Close)

	// Order routes
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/orders/") && r.URL.Path != "/api/orders/" {
			orderHandler.GetByID(w, r)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	}
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> Session
	var h http.Handler = mux
	h = middleware.Session(sessions)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}

package api

import (
	"net/http"

	"github.com/example/storefront-core/internal/api/middleware"
	"github.com/example/storefront-core/internal/auth"
	"github.com/example/storefront-core/internal/domain/actor"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func NewRouter(handlers *Handlers, jwtService *auth.JWTService, log *logrus.Entry) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", handlers.Health).Methods(http.MethodGet)

	// Everything below requires a valid access token
	authed := r.NewRoute().Subrouter()
	authed.Use(middleware.AuthMiddleware(jwtService))

	// Cart
	authed.HandleFunc("/cart", handlers.GetCart).Methods(http.MethodGet)
	authed.HandleFunc("/cart", handlers.ClearCart).Methods(http.MethodDelete)
	authed.HandleFunc("/cart/items", handlers.AddToCart).Methods(http.MethodPost)
	authed.HandleFunc("/cart/items/{id}", handlers.UpdateCartItem).Methods(http.MethodPatch)
	authed.HandleFunc("/cart/items/{id}", handlers.RemoveFromCart).Methods(http.MethodDelete)

	// Orders
	authed.HandleFunc("/orders", handlers.GetOrders).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id}", handlers.GetOrder).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id}/status", handlers.UpdateOrderStatus).Methods(http.MethodPatch)

	// Admin
	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(actor.RoleAdmin))
	admin.HandleFunc("/orders", handlers.GetAllOrders).Methods(http.MethodGet)

	return middleware.RequestLogger(log)(r)
}

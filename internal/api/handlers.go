package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/example/storefront-core/internal/api/middleware"
	"github.com/example/storefront-core/internal/apperr"
	"github.com/example/storefront-core/internal/command"
	"github.com/example/storefront-core/internal/domain/actor"
	"github.com/example/storefront-core/internal/logging"
	"github.com/example/storefront-core/internal/query"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

var errInvalidBody = fmt.Errorf("%w: invalid JSON body", apperr.ErrValidation)

type Handlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
	log          *logrus.Entry
}

func NewHandlers(cmdHandler *command.Handler, queryHandler *query.Handler) *Handlers {
	return &Handlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
		log:          logging.For("api"),
	}
}

var success = map[string]bool{"success": true}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.queryHandler.GetCart(r.Context(), currentActor(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var cmd command.AddToCart
	if err := decodeBody(r, &cmd); err != nil {
		h.respondError(w, r, err)
		return
	}
	cmd.UserID = currentActor(r).UserID

	if err := h.cmdHandler.AddToCart(r.Context(), cmd); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, success)
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathInt(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var cmd command.UpdateCartItem
	if err := decodeBody(r, &cmd); err != nil {
		h.respondError(w, r, err)
		return
	}
	cmd.UserID = currentActor(r).UserID
	cmd.ItemID = itemID

	item, err := h.cmdHandler.UpdateCartItem(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathInt(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	cmd := command.RemoveFromCart{UserID: currentActor(r).UserID, ItemID: itemID}
	if err := h.cmdHandler.RemoveFromCart(r.Context(), cmd); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, success)
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	cmd := command.ClearCart{UserID: currentActor(r).UserID}
	if err := h.cmdHandler.ClearCart(r.Context(), cmd); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, success)
}

// Order Handlers

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.queryHandler.ListOrdersByUser(r.Context(), currentActor(r), r.URL.Query().Get("status"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.queryHandler.GetOrder(r.Context(), currentActor(r), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var cmd command.UpdateOrderStatus
	if err := decodeBody(r, &cmd); err != nil {
		h.respondError(w, r, err)
		return
	}
	cmd.Actor = currentActor(r)
	cmd.OrderID = mux.Vars(r)["id"]

	order, err := h.cmdHandler.UpdateOrderStatus(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// Admin Handlers

func (h *Handlers) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.queryHandler.ListAllOrders(r.Context(), currentActor(r), r.URL.Query().Get("status"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

func pathInt(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", apperr.ErrValidation, name, raw)
	}
	return id, nil
}

// currentActor returns the zero actor when the request is unauthenticated;
// the services reject it.
func currentActor(r *http.Request) actor.Actor {
	a, _ := middleware.GetActor(r.Context())
	return a
}

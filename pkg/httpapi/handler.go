// Package httpapi exposes the checkout session over JSON/HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront/pkg/apperror"
	"storefront/pkg/checkout"
	"storefront/pkg/order"
	"storefront/pkg/otel"
	"storefront/pkg/payment"
)

// Handler serves the storefront routes.
type Handler struct {
	session *checkout.Session
	log     *zap.Logger
}

// NewHandler creates a Handler over session.
func NewHandler(session *checkout.Session, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{session: session, log: log}
}

// addItemRequest is the body of POST /cart/items.
type addItemRequest struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// checkoutRequest is the body of POST /checkout.
type checkoutRequest struct {
	Payment int `json:"payment"`
}

// paymentMethod is one entry of GET /payment-methods.
type paymentMethod struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// errorResponse is the body of every failed request. Order is set when a
// checkout committed but its log line could not be written.
type errorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Order   *order.Order `json:"order,omitempty"`
}

// listProducts lists the catalog.
// @Summary List products
// @Produce json
// @Success 200 {array} catalog.Item
// @Router /products [get]
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listProducts")
	defer span.End()

	writeJSON(w, http.StatusOK, h.session.ListProducts(ctx))
}

// getProduct looks up one product by code.
// @Summary Get product
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} catalog.Item
// @Failure 404 {object} errorResponse
// @Router /products/{code} [get]
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getProduct")
	defer span.End()

	it, err := h.session.Product(ctx, mux.Vars(r)["code"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// addToCart adds a quantity of a product to the cart.
// @Summary Add to cart
// @Accept json
// @Produce json
// @Param item body addItemRequest true "Product code and quantity"
// @Success 200 {object} cart.Line
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /cart/items [post]
func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addToCart")
	defer span.End()

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperror.Wrap(apperror.InvalidArgument, err, "decode request"))
		return
	}
	line, err := h.session.AddToCart(ctx, req.Code, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

// getCart shows the cart lines and total without starting a review.
// @Summary View cart
// @Produce json
// @Success 200 {object} checkout.CartView
// @Router /cart [get]
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getCart")
	defer span.End()

	writeJSON(w, http.StatusOK, h.session.Cart(ctx))
}

// checkout reviews the cart, selects a payment method and commits the order.
// @Summary Checkout
// @Accept json
// @Produce json
// @Param checkout body checkoutRequest true "Payment method index (1-3)"
// @Success 201 {object} order.Order
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /checkout [post]
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "checkout")
	defer span.End()

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperror.Wrap(apperror.InvalidArgument, err, "decode request"))
		return
	}
	o, err := h.session.Checkout(ctx, req.Payment)
	if err != nil {
		if o.ID != 0 {
			h.log.Warn("order committed without log line",
				zap.Int("order_id", o.ID), zap.String("request_id", RequestIDFrom(ctx)), zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{
				Error:   apperror.KindOf(err).String(),
				Message: err.Error(),
				Order:   &o,
			})
			return
		}
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// listOrders returns committed orders in commit order.
// @Summary List orders
// @Produce json
// @Success 200 {array} order.Order
// @Router /orders [get]
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listOrders")
	defer span.End()

	orders, err := h.session.ListOrders(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// getOrder returns a committed order by id.
// @Summary Get order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} order.Order
// @Failure 404 {object} errorResponse
// @Router /orders/{id} [get]
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getOrder")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, apperror.Wrap(apperror.InvalidArgument, err, "parse order id"))
		return
	}
	o, err := h.session.GetOrder(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// listPaymentMethods returns the selectable payment methods with their index.
// @Summary List payment methods
// @Produce json
// @Success 200 {array} paymentMethod
// @Router /payment-methods [get]
func (h *Handler) listPaymentMethods(w http.ResponseWriter, _ *http.Request) {
	methods := payment.Methods()
	out := make([]paymentMethod, len(methods))
	for i, m := range methods {
		out[i] = paymentMethod{Index: i + 1, Name: m.Name()}
	}
	writeJSON(w, http.StatusOK, out)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps a failure kind to an HTTP status.
func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.NotFound:
		return http.StatusNotFound
	case apperror.InvalidArgument, apperror.InvalidSelection:
		return http.StatusBadRequest
	case apperror.CapacityExceeded, apperror.Overflow, apperror.EmptyCart,
		apperror.LedgerFull, apperror.InvalidState:
		return http.StatusConflict
	case apperror.SinkUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperror.KindOf(err)
	status := statusFor(kind)

	msg := err.Error()
	var appErr *apperror.Error
	if status == http.StatusInternalServerError && !errors.As(err, &appErr) {
		msg = http.StatusText(status)
	}
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("request_id", RequestIDFrom(r.Context())),
			zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: kind.String(), Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

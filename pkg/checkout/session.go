// Package checkout runs the shopping session: catalog lookup, cart
// accumulation, payment selection and order commit.
package checkout

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"storefront/pkg/apperror"
	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/metrics"
	"storefront/pkg/order"
	"storefront/pkg/orderlog"
	"storefront/pkg/otel"
	"storefront/pkg/payment"
)

// CartView is the cart as presented for review.
type CartView struct {
	Lines []cart.Line     `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// Session owns one shopper's catalog, cart and order history. Every method
// runs under a single lock, so callers observe operations one at a time.
type Session struct {
	mu sync.Mutex

	catalog *catalog.Catalog
	cart    *cart.Cart
	ledger  order.Ledger
	sink    orderlog.Sink
	seq     *order.Sequence
	log     *zap.Logger

	state  State
	method payment.Method
}

// New creates a session in the Browsing state. A nil logger discards output.
func New(cat *catalog.Catalog, c *cart.Cart, ledger order.Ledger, sink orderlog.Sink, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		catalog: cat,
		cart:    c,
		ledger:  ledger,
		sink:    sink,
		seq:     order.NewSequence(),
		log:     log,
		state:   StateBrowsing,
	}
}

// State returns the current protocol state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ListProducts returns the catalog in registration order.
func (s *Session) ListProducts(ctx context.Context) []catalog.Item {
	return s.catalog.List()
}

// Product looks up a single catalog item.
func (s *Session) Product(ctx context.Context, code string) (catalog.Item, error) {
	return s.catalog.FindByID(code)
}

// AddToCart resolves code and adds quantity units to the cart. Adding during
// review returns the session to Browsing and drops any selected payment.
func (s *Session) AddToCart(ctx context.Context, code string, quantity int) (cart.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.catalog.FindByID(code)
	if err != nil {
		return cart.Line{}, err
	}
	line, err := s.cart.AddItem(item, quantity)
	if err != nil {
		return cart.Line{}, err
	}
	metrics.CartItemsAdded.Add(float64(quantity))
	s.method = nil
	s.transition(StateBrowsing)
	s.log.Debug("added to cart",
		zap.String("code", item.ID),
		zap.Int("quantity", quantity),
		zap.Int("line_quantity", line.Quantity))
	return line, nil
}

// Cart returns the current cart without changing state.
func (s *Session) Cart(ctx context.Context) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// ViewCart is Review under its menu name.
func (s *Session) ViewCart(ctx context.Context) (CartView, error) {
	return s.Review(ctx)
}

// Review moves a non-empty cart to the Reviewing state.
func (s *Session) Review(ctx context.Context) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.review()
}

// SelectPayment picks the payment method by 1-based index. Reviewing happens
// implicitly when the session is still Browsing.
func (s *Session) SelectPayment(ctx context.Context, index int) (payment.Method, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateBrowsing {
		if _, err := s.review(); err != nil {
			return nil, err
		}
	}
	return s.selectPayment(index)
}

// Commit charges the cart with the selected method and records the order.
//
// A full ledger or an unavailable sink rejects the checkout before anything is
// stored: the cart is kept and the session returns to Reviewing. If the sink
// fails after the order was stored, the committed order is returned together
// with a SinkUnavailable error.
func (s *Session) Commit(ctx context.Context) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx)
}

// Checkout reviews the cart, selects the payment method and commits.
func (s *Session) Checkout(ctx context.Context, paymentIndex int) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.review(); err != nil {
		metrics.CheckoutsTotal.WithLabelValues(resultLabel(err)).Inc()
		return order.Order{}, err
	}
	if _, err := s.selectPayment(paymentIndex); err != nil {
		metrics.CheckoutsTotal.WithLabelValues(resultLabel(err)).Inc()
		return order.Order{}, err
	}
	return s.commit(ctx)
}

// ListOrders returns committed orders in ascending id order.
func (s *Session) ListOrders(ctx context.Context) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.List(ctx)
}

// GetOrder returns a committed order by id.
func (s *Session) GetOrder(ctx context.Context, id int) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Get(ctx, id)
}

func (s *Session) view() CartView {
	return CartView{Lines: s.cart.Lines(), Total: s.cart.Total()}
}

func (s *Session) review() (CartView, error) {
	if s.cart.IsEmpty() {
		return CartView{}, apperror.New(apperror.EmptyCart, "shopping cart is empty")
	}
	s.method = nil
	s.transition(StateReviewing)
	return s.view(), nil
}

func (s *Session) selectPayment(index int) (payment.Method, error) {
	m, err := payment.Select(index)
	if err != nil {
		return nil, err
	}
	s.method = m
	s.transition(StatePaymentSelected)
	return m, nil
}

func (s *Session) commit(ctx context.Context) (order.Order, error) {
	if s.state != StatePaymentSelected || s.method == nil {
		err := apperror.Newf(apperror.InvalidState, "cannot commit from %s: no payment method selected", s.state)
		metrics.CheckoutsTotal.WithLabelValues(resultLabel(err)).Inc()
		return order.Order{}, err
	}

	ctx, span := otel.AddSpan(ctx, "checkout.commit", attribute.String("payment.method", s.method.Name()))
	defer span.End()

	if err := s.sink.Open(ctx); err != nil {
		return order.Order{}, s.reject(span, err)
	}

	total := s.cart.Total()
	rec, err := s.method.Charge(ctx, total)
	if err != nil {
		return order.Order{}, s.reject(span, err)
	}

	o := order.New(s.seq.Peek(), total, rec.Method, s.cart.Lines())
	if err := s.ledger.Append(ctx, o); err != nil {
		return order.Order{}, s.reject(span, err)
	}
	s.seq.Advance()
	span.SetAttributes(attribute.Int("order.id", o.ID))

	if n, err := s.ledger.Count(ctx); err == nil {
		metrics.LedgerOrders.Set(float64(n))
	}
	metrics.OrderAmount.Observe(total.InexactFloat64())

	sinkErr := s.sink.Record(ctx, o.ID, o.PaymentMethod)

	s.cart.Clear()
	s.method = nil
	s.transition(StateCommitted)
	s.transition(StateBrowsing)

	s.log.Info("order committed",
		zap.Int("order_id", o.ID),
		zap.String("payment_method", o.PaymentMethod),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("lines", len(o.Lines)),
		zap.String("trace_id", otel.GetTraceID(ctx)))

	if sinkErr != nil {
		span.RecordError(sinkErr)
		span.SetStatus(codes.Error, "order log write failed")
		s.log.Error("order log write failed", zap.Int("order_id", o.ID), zap.Error(sinkErr))
		metrics.CheckoutsTotal.WithLabelValues(resultLabel(sinkErr)).Inc()
		return o, sinkErr
	}
	metrics.CheckoutsTotal.WithLabelValues("ok").Inc()
	return o, nil
}

// reject aborts a commit without side effects on the cart or ledger.
func (s *Session) reject(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.method = nil
	s.transition(StateReviewing)
	s.log.Warn("checkout rejected",
		zap.String("kind", apperror.KindOf(err).String()),
		zap.Error(err))
	metrics.CheckoutsTotal.WithLabelValues(resultLabel(err)).Inc()
	return err
}

func (s *Session) transition(to State) {
	if s.state == to {
		return
	}
	s.log.Debug("checkout state", zap.Stringer("from", s.state), zap.Stringer("to", to))
	s.state = to
}

func resultLabel(err error) string {
	return strings.ToLower(apperror.KindOf(err).String())
}

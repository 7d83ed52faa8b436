package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/example/storefront-core/internal/domain/cart"
	"github.com/example/storefront-core/internal/domain/order"
	"github.com/example/storefront-core/internal/email"
	"github.com/example/storefront-core/internal/event"
	"github.com/example/storefront-core/internal/infrastructure/store/mocks"
	"github.com/example/storefront-core/internal/readmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	To     string
	Update email.StatusUpdate
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendOrderStatusUpdate(to string, update email.StatusUpdate) error {
	m.sent = append(m.sent, sentMail{To: to, Update: update})
	return m.err
}

func newTestHandler() (*Handler, *fakeMailer) {
	users := mocks.NewMockUserStore(readmodel.UserReadModel{ID: "user-1", Email: "budi@example.com", Name: "Budi"})
	orders := mocks.NewMockOrderStore(&readmodel.OrderReadModel{
		ID:     "order-1",
		UserID: "user-1",
		Status: "SHIPPED",
		Total:  250000,
		OrderProducts: []readmodel.OrderProductReadModel{
			{ID: 1, ProductID: 7, Quantity: 2, Product: readmodel.ProductReadModel{ID: 7, Name: "Mug", Price: 1500}},
		},
	})
	mailer := &fakeMailer{}
	return NewHandler(mailer, users, orders), mailer
}

func statusChangedMessage(t *testing.T, orderID, userID string, from, to order.Status) []byte {
	t.Helper()
	ev, err := event.New(orderID, order.AggregateType, order.EventOrderStatusChanged, order.OrderStatusChanged{
		OrderID:   orderID,
		UserID:    userID,
		From:      string(from),
		To:        string(to),
		ChangedBy: "admin-1",
		Role:      "admin",
		ChangedAt: time.Now(),
	})
	require.NoError(t, err)
	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	return raw
}

func TestHandler_StatusChanged_SendsEmail(t *testing.T) {
	handler, mailer := newTestHandler()

	err := handler.HandleEvent(context.Background(), []byte("order-1"),
		statusChangedMessage(t, "order-1", "user-1", order.StatusPacked, order.StatusShipped))

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	assert.Equal(t, "budi@example.com", sent.To)
	assert.Equal(t, "SHIPPED", sent.Update.Status)
	assert.Equal(t, "Budi", sent.Update.CustomerName)
	assert.Equal(t, order.StatusShipped.Description(), sent.Update.Message)
	assert.Equal(t, int64(250000), sent.Update.Total)
	require.Len(t, sent.Update.Items, 1)
	assert.Equal(t, "Mug", sent.Update.Items[0].Name)
}

func TestHandler_IgnoresOtherEvents(t *testing.T) {
	handler, mailer := newTestHandler()

	ev, err := event.New("cart-user-1", cart.AggregateType, cart.EventItemAdded, cart.ItemAddedToCart{UserID: "user-1"})
	require.NoError(t, err)
	raw, _ := json.Marshal(ev)

	require.NoError(t, handler.HandleEvent(context.Background(), nil, raw))
	assert.Empty(t, mailer.sent)
}

func TestHandler_UnknownUserIsSkipped(t *testing.T) {
	handler, mailer := newTestHandler()

	err := handler.HandleEvent(context.Background(), nil,
		statusChangedMessage(t, "order-9", "ghost", order.StatusPending, order.StatusCancelled))

	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestHandler_MissingOrderStillNotifies(t *testing.T) {
	handler, mailer := newTestHandler()

	err := handler.HandleEvent(context.Background(), nil,
		statusChangedMessage(t, "order-gone", "user-1", order.StatusPending, order.StatusCancelled))

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Empty(t, mailer.sent[0].Update.Items)
	assert.Zero(t, mailer.sent[0].Update.Total)
}

func TestHandler_MailerError(t *testing.T) {
	handler, mailer := newTestHandler()
	mailer.err = errors.New("smtp: connection refused")

	err := handler.HandleEvent(context.Background(), nil,
		statusChangedMessage(t, "order-1", "user-1", order.StatusShipped, order.StatusDelivered))

	assert.ErrorIs(t, err, mailer.err)
}

func TestHandler_MalformedMessage(t *testing.T) {
	handler, mailer := newTestHandler()

	err := handler.HandleEvent(context.Background(), nil, []byte("{not json"))

	assert.Error(t, err)
	assert.Empty(t, mailer.sent)
}

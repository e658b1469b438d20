package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
	"github.com/tgshop/miniapp-backend/pkg/logger"
	"github.com/tgshop/miniapp-backend/pkg/metrics"
	"github.com/tgshop/miniapp-backend/pkg/telegram"
	"github.com/tgshop/miniapp-backend/pkg/types"
)

// Notifier delivers one chat message and returns the provider's raw reply.
type Notifier interface {
	SendMessage(ctx context.Context, msg telegram.Message) (json.RawMessage, error)
}

// Config holds the relay's fixed delivery settings.
type Config struct {
	AdminChatID int64
	ParseMode   string
}

// Result is the outcome of a fully delivered order.
type Result struct {
	OrderID string
	Admin   json.RawMessage
	User    json.RawMessage
}

// DeliveryDetails carries whichever provider replies were obtained when a
// delivery failed.
type DeliveryDetails struct {
	Admin json.RawMessage `json:"admin,omitempty"`
	User  json.RawMessage `json:"user,omitempty"`
}

// Service turns order requests into admin and customer notifications.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	notifier    Notifier
	adminChatID int64
	parseMode   string
	now         func() time.Time
	logg        *logger.Logger
	metrics     *metrics.RelayMetrics
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for order ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMetrics attaches relay metrics.
func WithMetrics(m *metrics.RelayMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService wires the relay.
func NewService(notifier Notifier, cfg Config, logg *logger.Logger, opts ...Option) (*Service, error) {
	if notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifier required")
	}
	if cfg.AdminChatID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "admin chat id required")
	}
	if cfg.ParseMode == "" {
		cfg.ParseMode = telegram.ParseModeMarkdown
	}
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Service{
		notifier:    notifier,
		adminChatID: cfg.AdminChatID,
		parseMode:   cfg.ParseMode,
		now:         time.Now,
		logg:        logg,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// OrderID derives "#" plus the last six digits of the epoch milliseconds.
// Two orders in the same millisecond (or 10^6 ms apart) share an id.
func OrderID(t time.Time) string {
	return fmt.Sprintf("#%06d", t.UnixMilli()%1_000_000)
}

// Relay validates req, then sends both notifications concurrently and waits
// for both. A failure of either yields DELIVERY_ERROR; the other send is not
// cancelled and its reply is kept in the error details.
func (s *Service) Relay(ctx context.Context, req types.OrderRequest) (*Result, error) {
	if err := Validate(req); err != nil {
		s.metrics.IncOrder(metrics.OutcomeRejected)
		return nil, err
	}

	now := s.now()
	note := BuildNotification(OrderID(now), now.Format(timestampLayout), req)

	ctx = s.logg.WithOrderID(ctx, note.OrderID)
	ctx = s.logg.WithSubmitter(ctx, req.User.ID)
	s.logg.Info(ctx, "orders.relay.started")

	var (
		g                 errgroup.Group
		adminRaw, userRaw json.RawMessage
		adminErr, userErr error
	)
	g.Go(func() error {
		adminRaw, adminErr = s.deliver(ctx, metrics.RecipientAdmin, s.adminChatID, note.AdminText)
		return nil
	})
	g.Go(func() error {
		userRaw, userErr = s.deliver(ctx, metrics.RecipientCustomer, req.User.ID, note.CustomerText)
		return nil
	})
	_ = g.Wait()

	if err := multierr.Append(adminErr, userErr); err != nil {
		s.metrics.IncOrder(metrics.OutcomeFailed)
		s.logg.Error(ctx, "orders.relay.failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDelivery, err, "failed to send messages to telegram").
			WithDetails(DeliveryDetails{Admin: adminRaw, User: userRaw})
	}

	s.metrics.IncOrder(metrics.OutcomeSuccess)
	s.logg.Info(ctx, "orders.relay.completed")
	return &Result{OrderID: note.OrderID, Admin: adminRaw, User: userRaw}, nil
}

func (s *Service) deliver(ctx context.Context, recipient string, chatID int64, text string) (json.RawMessage, error) {
	start := time.Now()
	raw, err := s.notifier.SendMessage(ctx, telegram.Message{
		ChatID:    chatID,
		Text:      text,
		ParseMode: s.parseMode,
	})
	s.metrics.ObserveDelivery(recipient, time.Since(start), err != nil)
	if err != nil {
		return raw, fmt.Errorf("%s notification: %w", recipient, err)
	}
	return raw, nil
}

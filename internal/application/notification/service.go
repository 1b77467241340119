package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sent-robotics/robot-relay/internal/domain"
)

// Store is the persistence seam: the append-only notification log.
type Store interface {
	Append(n domain.Notification) error
	Clear() error
	List() []domain.Notification
}

// EmailDispatcher pushes an alert to the email channel.
type EmailDispatcher interface {
	SendAlert(title, message, timestamp string) domain.DispatchResult
}

// MessagingDispatcher pushes an alert to the messaging channel.
type MessagingDispatcher interface {
	SendAlert(ctx context.Context, title, message, timestamp string) domain.DispatchResult
}

type Service interface {
	// Ingest normalizes, durably appends, then fans out to both alert
	// channels. Only the append can fail; dispatch outcomes are invisible
	// to the caller.
	Ingest(ctx context.Context, req domain.NotifyRequest) (domain.Notification, error)
	List(ctx context.Context) []domain.Notification
	Clear(ctx context.Context) error
}

type service struct {
	store     Store
	email     EmailDispatcher
	messaging MessagingDispatcher
	now       func() time.Time
}

func NewService(store Store, email EmailDispatcher, messaging MessagingDispatcher) Service {
	return &service{store: store, email: email, messaging: messaging, now: time.Now}
}

func (s *service) Ingest(ctx context.Context, req domain.NotifyRequest) (domain.Notification, error) {
	n := req.Normalize(s.now)

	// The append comes first and is the only hard requirement: losing a
	// push must never lose the audit record.
	if err := s.store.Append(n); err != nil {
		return domain.Notification{}, fmt.Errorf("append notification: %w", err)
	}

	emailRes := s.email.SendAlert(n.Title, n.Message, n.Time)
	msgRes := s.messaging.SendAlert(ctx, n.Title, n.Message, n.Time)

	slog.Info("notification ingested",
		"title", n.Title,
		"email", emailRes.Status,
		"messaging", msgRes.Status,
	)
	return n, nil
}

func (s *service) List(_ context.Context) []domain.Notification {
	return s.store.List()
}

func (s *service) Clear(_ context.Context) error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear notification log: %w", err)
	}
	slog.Info("notification log cleared")
	return nil
}

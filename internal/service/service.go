package service

import (
	"fmt"
	"time"

	"store-pos/internal/access"
	"store-pos/internal/ws"
	"store-pos/pkg/e"
)

// EventPublisher receives change notifications after they are committed.
type EventPublisher interface {
	Publish(ev ws.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(ws.Event) {}

// NoopPublisher discards every event.
var NoopPublisher EventPublisher = noopPublisher{}

type Clock func() time.Time

// StockError reports the first line item whose product lacked stock.
type StockError struct {
	Product   string
	Requested int
	Available int
}

func (s *StockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available quantity: %d", s.Product, s.Available)
}

func (s *StockError) Unwrap() error {
	return e.ErrInsufficientStock
}

func actorName(p *access.Principal) string {
	return p.AuditName()
}

// Package journal records one entry per remote call so that calls can be
// audited and reconciled later. Entries never contain card data or buyer
// details.
package journal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DanielPopoola/payline-gateway/internal/message"
)

type Entry struct {
	ID            uuid.UUID
	Method        string
	OrderRef      string
	TransactionID string
	ResultCode    string
	Successful    bool
	Error         string
	Duration      time.Duration
	CreatedAt     time.Time
}

type Store interface {
	Save(ctx context.Context, entry *Entry) error
}

// Client decorates a transport and journals every call through it. A
// failure to journal is logged and never changes the outcome of the call.
type Client struct {
	inner  message.RemoteClient
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewClient(inner message.RemoteClient, store Store, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		inner:  inner,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (c *Client) Call(ctx context.Context, method string, payload *message.Payload) (message.Tree, error) {
	start := c.now()
	tree, err := c.inner.Call(ctx, method, payload)

	entry := &Entry{
		ID:        uuid.New(),
		Method:    method,
		OrderRef:  payload.OrderRef(),
		Duration:  c.now().Sub(start),
		CreatedAt: start.UTC(),
	}
	if payload != nil {
		entry.TransactionID = payload.TransactionID
	}

	if err != nil {
		entry.Error = err.Error()
	} else {
		result := message.NewResult(tree)
		entry.ResultCode, _ = result.Code()
		entry.Successful = result.IsSuccessful()
		if id, idErr := result.TransactionID(); idErr == nil {
			entry.TransactionID = id
		}
	}

	// the caller may have given up already; the entry is still worth keeping
	if saveErr := c.store.Save(context.WithoutCancel(ctx), entry); saveErr != nil {
		c.logger.Error("failed to journal remote call",
			"method", method,
			"order_ref", entry.OrderRef,
			"error", saveErr,
		)
	}

	return tree, err
}

// MemoryStore keeps entries in process. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// Entries returns a copy of the journal in insertion order.
func (s *MemoryStore) Entries() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Keys of the local store.
const (
	KeyCourses         = "coursehub_courses"
	KeyReviews         = "coursehub_reviews"
	KeyReservations    = "coursehub_reservations"
	KeyUsers           = "coursehub_users"
	KeyCurrentUser     = "coursehub_user"
	KeyLoggedIn        = "isLoggedIn"
	KeyRememberedEmail = "coursehub_remembered_email"
)

var ErrInvalidRecord = errors.New("invalid record")

// Gateway is the only component that reads or writes the local store.
// Reads never fail: missing or malformed entries come back as an empty
// list or nil. Writes rejected by the store come back as *WriteError.
type Gateway struct {
	store    Store
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

type Option func(*Gateway)

func WithLogger(logger *zap.Logger) Option {
	return func(g *Gateway) {
		g.log = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		g.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(g *Gateway) {
		g.newID = newID
	}
}

func NewGateway(store Store, opts ...Option) *Gateway {
	g := &Gateway{
		store:    store,
		log:      zap.NewNop(),
		validate: validator.New(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Now is the gateway clock, exposed so flows stamp records consistently.
func (g *Gateway) Now() time.Time {
	return g.now()
}

func readList[T any](g *Gateway, key string) []T {
	raw, ok := g.get(key)
	if !ok {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		g.log.Warn("discarding malformed list", zap.String("key", key), zap.Error(err))
		return []T{}
	}

	valid := make([]T, 0, len(items))
	for i := range items {
		if err := g.validate.Struct(items[i]); err != nil {
			g.log.Warn("skipping invalid record", zap.String("key", key), zap.Int("index", i), zap.Error(err))
			continue
		}
		valid = append(valid, items[i])
	}
	return valid
}

func readOne[T any](g *Gateway, key string) *T {
	raw, ok := g.get(key)
	if !ok || raw == "null" {
		return nil
	}

	var item T
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		g.log.Warn("discarding malformed record", zap.String("key", key), zap.Error(err))
		return nil
	}
	if err := g.validate.Struct(item); err != nil {
		g.log.Warn("discarding invalid record", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &item
}

func (g *Gateway) get(key string) (string, bool) {
	raw, ok, err := g.store.Get(key)
	if err != nil {
		g.log.Warn("store read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return raw, ok
}

func (g *Gateway) write(op, key, message string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &WriteError{Op: op, Key: key, Message: message, Err: err}
	}
	return g.setRaw(op, key, message, string(data))
}

func (g *Gateway) setRaw(op, key, message, value string) error {
	if err := g.store.Set(key, value); err != nil {
		g.log.Error("store write failed", zap.String("op", op), zap.String("key", key), zap.Error(err))
		return &WriteError{Op: op, Key: key, Message: message, Err: err}
	}
	return nil
}

func (g *Gateway) remove(op, key, message string) error {
	if err := g.store.Remove(key); err != nil {
		g.log.Error("store remove failed", zap.String("op", op), zap.String("key", key), zap.Error(err))
		return &WriteError{Op: op, Key: key, Message: message, Err: err}
	}
	return nil
}

func (g *Gateway) check(record any) error {
	if err := g.validate.Struct(record); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}

package api

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/WIIN2602/Farm2Hand/internal/assistant"
	"github.com/WIIN2602/Farm2Hand/internal/cart"
	"github.com/WIIN2602/Farm2Hand/internal/catalog"
	"github.com/WIIN2602/Farm2Hand/internal/checkout"
	"github.com/WIIN2602/Farm2Hand/internal/models"
	"github.com/WIIN2602/Farm2Hand/internal/orders"
	"github.com/WIIN2602/Farm2Hand/internal/widget"
)

// ErrSessionNotFound is returned for unknown or evicted session ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionFactory builds widget sessions wired to the shared catalog, order
// registry, observer and assistant.
type SessionFactory struct {
	Catalog     catalog.Provider
	Orders      orders.Registry
	Coordinator *checkout.Coordinator
	Observer    widget.Observer
	Limits      widget.Limits
	ShippingFee decimal.Decimal
	SeedCart    bool
	// Responder answers forwarded intents when set.
	Responder *assistant.Responder
	History   int
	Logger    *zap.Logger
}

// New returns a session and the transcript its forwarded intents are written
// to. notify receives assistant replies. extra senders see every forwarded intent.
func (f *SessionFactory) New(id string, notify func(assistant.Entry), extra ...assistant.Sender) (*widget.Session, *assistant.Transcript) {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("session", id))

	transcript := assistant.NewTranscript(f.History)
	sink := assistant.Fanout{assistant.NewLogSink(logger, id), transcript}
	sink = append(sink, extra...)
	if f.Responder != nil {
		sink = append(sink, f.Responder.For(transcript, notify))
	}

	var initial []models.CartItem
	if f.SeedCart {
		initial = catalog.SeedCart()
	}

	opts := []widget.Option{
		widget.WithLedger(cart.NewLedger(f.ShippingFee, initial...)),
		widget.WithLogger(logger),
		widget.WithLimits(f.Limits),
	}
	if f.Catalog != nil {
		opts = append(opts, widget.WithCatalog(f.Catalog))
	}
	if f.Orders != nil {
		opts = append(opts, widget.WithOrders(f.Orders))
	}
	if f.Coordinator != nil {
		opts = append(opts, widget.WithCoordinator(f.Coordinator))
	}
	if f.Observer != nil {
		opts = append(opts, widget.WithObserver(f.Observer))
	}
	return widget.NewSession(sink, opts...), transcript
}

// SessionCounter is told when sessions enter and leave the store.
type SessionCounter interface {
	SessionOpened()
	SessionClosed()
}

// Entry is a stored session. Use Do to access the session.
type Entry struct {
	ID         string
	Created    time.Time
	Transcript *assistant.Transcript

	mu      sync.Mutex
	session *widget.Session
}

// Do runs fn with exclusive access to the session.
func (e *Entry) Do(fn func(s *widget.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// SessionStore keeps at most size sessions, evicting the least recently used.
type SessionStore struct {
	cache   *lru.Cache[string, *Entry]
	factory *SessionFactory
	counter SessionCounter
}

// NewSessionStore creates a store. counter may be nil.
func NewSessionStore(size int, factory *SessionFactory, counter SessionCounter) (*SessionStore, error) {
	if size <= 0 {
		size = 1024
	}
	s := &SessionStore{factory: factory, counter: counter}
	cache, err := lru.NewWithEvict[string, *Entry](size, func(string, *Entry) {
		if s.counter != nil {
			s.counter.SessionClosed()
		}
	})
	if err != nil {
		return nil, err
	}
	s.cache = cache
	return s, nil
}

// Factory returns the factory used for new sessions.
func (s *SessionStore) Factory() *SessionFactory { return s.factory }

// Create starts a new session under a fresh id.
func (s *SessionStore) Create() *Entry {
	id := uuid.NewString()
	session, transcript := s.factory.New(id, nil)
	e := &Entry{ID: id, Created: time.Now(), Transcript: transcript, session: session}
	if s.counter != nil {
		s.counter.SessionOpened()
	}
	s.cache.Add(id, e)
	return e
}

// Get looks up a session and marks it recently used.
func (s *SessionStore) Get(id string) (*Entry, error) {
	e, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// Delete removes a session. It reports whether the session existed.
func (s *SessionStore) Delete(id string) bool {
	return s.cache.Remove(id)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int { return s.cache.Len() }

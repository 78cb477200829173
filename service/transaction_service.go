package service

import (
	"sync"
	"time"

	"bigwallet-api/logger"
	"bigwallet-api/model"
	"bigwallet-api/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type FeedEventKind string

const (
	EventInitialized  FeedEventKind = "initialized"
	EventInserted     FeedEventKind = "inserted"
	EventQueryChanged FeedEventKind = "query_changed"
)

// FeedEvent tells subscribers that the visible list may have changed.
// FeedLength is the length right after the mutation that raised the event.
// RecordID is set only for EventInserted.
type FeedEvent struct {
	Kind       FeedEventKind
	FeedLength int
	Query      string
	RecordID   uuid.UUID
}

// QuickAddTemplate is the record the "add new transaction" action creates.
type QuickAddTemplate struct {
	SenderName   string
	ReceiverName string
	Amount       decimal.Decimal
}

type subscriber struct {
	id int
	fn func(FeedEvent)
}

// FeedService owns the feed store and the live query string, and derives the
// list a renderer should show from them.
type FeedService struct {
	repo     repository.ITransactionRepository
	filter   *SearchFilter
	quickAdd QuickAddTemplate
	now      func() time.Time

	// writeMu orders feed mutations with the length read that follows them.
	writeMu sync.Mutex

	mu          sync.RWMutex
	query       string
	subscribers []subscriber
	nextSubID   int
}

func NewFeedService(repo repository.ITransactionRepository, filter *SearchFilter, quickAdd QuickAddTemplate) *FeedService {
	return &FeedService{
		repo:     repo,
		filter:   filter,
		quickAdd: quickAdd,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to date new records.
func (s *FeedService) WithClock(now func() time.Time) *FeedService {
	s.now = now
	return s
}

// Now returns the current time of the service clock.
func (s *FeedService) Now() time.Time {
	return s.now()
}

// Initialize replaces the feed with seed.
func (s *FeedService) Initialize(seed []model.TransactionRecord) error {
	s.writeMu.Lock()
	if err := s.repo.Initialize(seed); err != nil {
		s.writeMu.Unlock()
		return err
	}
	length := s.repo.Len()
	s.writeMu.Unlock()

	s.notify(FeedEvent{Kind: EventInitialized, FeedLength: length, Query: s.Query()})
	return nil
}

// Insert prepends record to the feed.
func (s *FeedService) Insert(record model.TransactionRecord) error {
	s.writeMu.Lock()
	if err := s.repo.Insert(record); err != nil {
		s.writeMu.Unlock()
		return err
	}
	length := s.repo.Len()
	s.writeMu.Unlock()

	s.notify(FeedEvent{Kind: EventInserted, FeedLength: length, Query: s.Query(), RecordID: record.ID})
	return nil
}

// AddTransaction builds a record from req, dated now unless req has a date,
// and prepends it.
func (s *FeedService) AddTransaction(req model.CreateTransactionRequest) (model.TransactionRecord, error) {
	record, err := req.ToRecord(s.now())
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"sender_name":   req.SenderName,
			"receiver_name": req.ReceiverName,
		}).WithError(err).Warn("Could not build transaction record")
		return model.TransactionRecord{}, err
	}
	if err := s.Insert(record); err != nil {
		return model.TransactionRecord{}, err
	}
	return record, nil
}

// QuickAdd prepends a record built from the quick-add template, dated now.
func (s *FeedService) QuickAdd() (model.TransactionRecord, error) {
	record, err := model.NewTransactionRecord(s.quickAdd.SenderName, s.quickAdd.ReceiverName, s.quickAdd.Amount, s.now())
	if err != nil {
		return model.TransactionRecord{}, err
	}
	if err := s.Insert(record); err != nil {
		return model.TransactionRecord{}, err
	}
	return record, nil
}

// SetQuery updates the live search query. It is stored verbatim.
func (s *FeedService) SetQuery(q string) {
	s.mu.Lock()
	changed := s.query != q
	s.query = q
	s.mu.Unlock()

	if !changed {
		return
	}
	logger.Log.WithField("query", q).Debug("Search query changed")
	s.notify(FeedEvent{Kind: EventQueryChanged, FeedLength: s.repo.Len(), Query: q})
}

func (s *FeedService) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Snapshot returns the whole feed, ignoring the query.
func (s *FeedService) Snapshot() []model.TransactionRecord {
	return s.repo.Snapshot()
}

// Search returns the feed narrowed by q, leaving the live query untouched.
func (s *FeedService) Search(q string) []model.TransactionRecord {
	return s.filter.Apply(s.repo.Snapshot(), q)
}

// CurrentVisibleList returns the feed narrowed by the live query.
func (s *FeedService) CurrentVisibleList() []model.TransactionRecord {
	return s.filter.Apply(s.repo.Snapshot(), s.Query())
}

// Subscribe registers fn to be called after every feed mutation or query
// change. Callbacks run synchronously on the mutating goroutine.
// The returned function removes the subscription.
func (s *FeedService) Subscribe(fn func(FeedEvent)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *FeedService) notify(event FeedEvent) {
	s.mu.RLock()
	subs := append([]subscriber(nil), s.subscribers...)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(event)
	}
}

package repository

import (
	"sync"

	"bigwallet-api/logger"
	"bigwallet-api/model"

	"github.com/sirupsen/logrus"
)

// ITransactionRepository defines the contract for the transaction feed store.
type ITransactionRepository interface {
	Initialize(seed []model.TransactionRecord) error
	Insert(record model.TransactionRecord) error
	Snapshot() []model.TransactionRecord
	Len() int
}

// TransactionRepository is the in-memory owner of the transaction feed.
// The feed is ordered newest insert first. Internally entries are kept
// oldest-first so that a head insert is an append; Snapshot reverses them.
type TransactionRepository struct {
	mu      sync.RWMutex
	entries []model.TransactionRecord
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

// Initialize replaces the whole feed with seed, keeping seed's order.
// If any record is invalid the feed is left as it was.
func (r *TransactionRepository) Initialize(seed []model.TransactionRecord) error {
	log := logger.Log.WithField("seed_length", len(seed))

	for _, record := range seed {
		if err := record.Validate(); err != nil {
			log.WithError(err).Warn("Rejected seed containing an invalid record")
			return err
		}
	}

	entries := make([]model.TransactionRecord, len(seed))
	for i, record := range seed {
		entries[len(seed)-1-i] = record
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()

	log.Info("Transaction feed initialized")
	return nil
}

// Insert prepends record to the feed. Existing entries keep their relative order.
func (r *TransactionRepository) Insert(record model.TransactionRecord) error {
	log := logger.Log.WithFields(logrus.Fields{
		"record_id":     record.ID,
		"sender_name":   record.SenderName,
		"receiver_name": record.ReceiverName,
		"amount":        record.Amount.String(),
	})

	if err := record.Validate(); err != nil {
		log.WithError(err).Warn("Rejected invalid transaction record")
		return err
	}

	r.mu.Lock()
	r.entries = append(r.entries, record)
	length := len(r.entries)
	r.mu.Unlock()

	log.WithField("feed_length", length).Info("Transaction record inserted")
	return nil
}

// Snapshot returns the feed newest first. The slice is freshly allocated;
// changing it has no effect on the store.
func (r *TransactionRepository) Snapshot() []model.TransactionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.TransactionRecord, len(r.entries))
	for i, record := range r.entries {
		out[len(r.entries)-1-i] = record
	}
	return out
}

func (r *TransactionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

var _ ITransactionRepository = (*TransactionRepository)(nil)

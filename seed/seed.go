// Package seed supplies the records the feed is populated with at activation.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"bigwallet-api/model"

	"github.com/shopspring/decimal"
)

// referenceEpoch is the origin the sample dates are expressed against.
var referenceEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

func sinceReference(seconds int64) time.Time {
	return referenceEpoch.Add(time.Duration(seconds) * time.Second)
}

type sample struct {
	sender, receiver string
	amount           string
	seconds          int64
}

var samples = []sample{
	{"Alfred Lotsu", "Bob Johnson", "150.75", 779435161},
	{"Charlie Brown", "Alfred Lotsu", "25.00", 779590861},
	{"Eva Green", "Alfred Lotsu", "500.00", 778917961},
	{"Alfred Lotsu", "Harry Potter", "12.30", 779677261},
	{"Alfred Lotsu", "Jack Sparrow", "761.0", 779763661},
	{"Oscar Wilde", "Alfred Lotsu", "300.50", 779270461},
	{"Alfred Lotsu", "Rachel Ray", "88.20", 779184061},
	{"Steve Martin", "Alfred Lotsu", "75.00", 779097661},
	{"Ursula K. Le Guin", "Alfred Lotsu", "123.45", 778831561},
	{"Alfred Lotsu", "Xavier Niel", "99.99", 778745161},
}

// SampleTransactions returns the built-in sample feed. Every call generates
// new IDs, so two calls never share a record.
func SampleTransactions() []model.TransactionRecord {
	records := make([]model.TransactionRecord, 0, len(samples))
	for _, s := range samples {
		record, err := model.NewTransactionRecord(s.sender, s.receiver, decimal.RequireFromString(s.amount), sinceReference(s.seconds))
		if err != nil {
			panic(fmt.Sprintf("seed: invalid sample %s -> %s: %v", s.sender, s.receiver, err))
		}
		records = append(records, record)
	}
	return records
}

// LoadFile reads a JSON array of transactions from path. Entries without a
// date are stamped with now. The whole file is rejected if any entry is invalid.
func LoadFile(path string, now time.Time) ([]model.TransactionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read seed file: %w", err)
	}

	var entries []model.CreateTransactionRequest
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("could not decode seed file %s: %w", path, err)
	}

	records := make([]model.TransactionRecord, 0, len(entries))
	for i, entry := range entries {
		record, err := entry.ToRecord(now)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Load returns the records of path, or the built-in samples when path is empty.
func Load(path string, now time.Time) ([]model.TransactionRecord, error) {
	if path == "" {
		return SampleTransactions(), nil
	}
	return LoadFile(path, now)
}

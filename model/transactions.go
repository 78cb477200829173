package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bigwallet-api/common"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidRecord is matched by every *InvalidRecordError.
var ErrInvalidRecord = errors.New("invalid transaction record")

// InvalidRecordError reports the first field of a record that failed validation.
type InvalidRecordError struct {
	Field  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid transaction record: %s %s", e.Field, e.Reason)
}

func (e *InvalidRecordError) Unwrap() error {
	return ErrInvalidRecord
}

// TransactionRecord is one entry of the feed. It is treated as an immutable
// value: it is created by NewTransactionRecord and only ever copied afterwards.
// ID is a render key and carries no business meaning.
type TransactionRecord struct {
	ID           uuid.UUID       `json:"id" validate:"required"`
	SenderName   string          `json:"sender_name" validate:"required"`
	ReceiverName string          `json:"receiver_name" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date" validate:"required"`
}

// NewTransactionRecord builds a record with a freshly generated ID.
// Two calls with identical arguments never yield the same ID.
func NewTransactionRecord(senderName, receiverName string, amount decimal.Decimal, date time.Time) (TransactionRecord, error) {
	record := TransactionRecord{
		ID:           uuid.New(),
		SenderName:   senderName,
		ReceiverName: receiverName,
		Amount:       amount,
		Date:         date,
	}
	if err := record.Validate(); err != nil {
		return TransactionRecord{}, err
	}
	return record, nil
}

// Validate returns an *InvalidRecordError when a required field is missing.
// Amount is never checked: zero and negative values are legal.
func (r TransactionRecord) Validate() error {
	err := common.ValidateStruct(r)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return &InvalidRecordError{Field: fe.Field(), Reason: reasonFor(fe.Tag())}
	}
	return &InvalidRecordError{Field: "record", Reason: err.Error()}
}

func reasonFor(tag string) string {
	switch tag {
	case "required":
		return "is required"
	default:
		return "failed " + tag + " check"
	}
}

// ParseAmount parses a signed decimal amount such as "-12.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &InvalidRecordError{Field: "amount", Reason: "is required"}
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &InvalidRecordError{Field: "amount", Reason: "is not a valid decimal"}
	}
	return amount, nil
}

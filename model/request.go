// file: model/request.go

package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AmountText is an amount as the client wrote it. It decodes from a JSON
// string ("150.75") or a bare JSON number (150.75); parsing into a decimal
// happens later so a malformed string is reported against the amount field.
type AmountText string

func (a *AmountText) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountText(s)
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = AmountText(d.String())
	return nil
}

// CreateTransactionRequest is the inbound shape of a new feed entry.
// Amount accepts a JSON string or number and is parsed as a decimal, so no
// precision is lost to float conversion.
// Date is optional; when omitted the caller's clock supplies it.
type CreateTransactionRequest struct {
	SenderName   string     `json:"sender_name" validate:"required"`
	ReceiverName string     `json:"receiver_name" validate:"required"`
	Amount       AmountText `json:"amount" validate:"required" swaggertype:"string" example:"150.75"`
	Date         *time.Time `json:"date,omitempty"`
}

// ToRecord converts the request into a TransactionRecord with a fresh ID.
// now is used only when the request carries no date.
func (req CreateTransactionRequest) ToRecord(now time.Time) (TransactionRecord, error) {
	amount, err := ParseAmount(string(req.Amount))
	if err != nil {
		return TransactionRecord{}, err
	}
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	return NewTransactionRecord(req.SenderName, req.ReceiverName, amount, date)
}

// ReplaceFeedRequest carries a full seed set that replaces the feed.
type ReplaceFeedRequest struct {
	Transactions []CreateTransactionRequest `json:"transactions" validate:"dive"`
}

// UpdateQueryRequest sets the live search query. Any string is accepted,
// including the empty string which clears the search.
type UpdateQueryRequest struct {
	Query string `json:"query"`
}

package handler

import (
	"fmt"
	"time"

	"bigwallet-api/model"
)

// ViewOptions parameterizes how records are labeled for display.
type ViewOptions struct {
	CurrentUser    string
	CurrencySymbol string
	ReferenceLabel string
}

// TransactionView is one rendered feed entry. The *_label fields are for
// display only; sender_name and receiver_name are the stored values.
type TransactionView struct {
	ID            string `json:"id"`
	SenderName    string `json:"sender_name"`
	ReceiverName  string `json:"receiver_name"`
	SenderLabel   string `json:"sender_label"`
	ReceiverLabel string `json:"receiver_label"`
	Amount        string `json:"amount"`
	AmountLabel   string `json:"amount_label"`
	Date          string `json:"date"`
	Reference     string `json:"reference"`
}

// FeedResponse is the body returned for list requests.
type FeedResponse struct {
	Query        string            `json:"query"`
	Count        int               `json:"count"`
	Transactions []TransactionView `json:"transactions"`
}

// QueryResponse is the body returned for query reads and updates.
type QueryResponse struct {
	Query string `json:"query"`
}

func (o ViewOptions) displayName(name string) string {
	if o.CurrentUser != "" && name == o.CurrentUser {
		return "Me"
	}
	return name
}

func (o ViewOptions) render(record model.TransactionRecord) TransactionView {
	return TransactionView{
		ID:            record.ID.String(),
		SenderName:    record.SenderName,
		ReceiverName:  record.ReceiverName,
		SenderLabel:   o.displayName(record.SenderName),
		ReceiverLabel: o.displayName(record.ReceiverName),
		Amount:        record.Amount.String(),
		AmountLabel:   fmt.Sprintf("%s %s", o.CurrencySymbol, record.Amount.StringFixed(2)),
		Date:          record.Date.Format(time.RFC3339),
		Reference:     o.ReferenceLabel,
	}
}

func (o ViewOptions) renderFeed(query string, records []model.TransactionRecord) FeedResponse {
	views := make([]TransactionView, 0, len(records))
	for _, record := range records {
		views = append(views, o.render(record))
	}
	return FeedResponse{Query: query, Count: len(views), Transactions: views}
}

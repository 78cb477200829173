package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"bigwallet-api/common"
	"bigwallet-api/logger"
	"bigwallet-api/model"
	"bigwallet-api/service"

	"github.com/sirupsen/logrus"
)

// TransactionHandler holds dependencies for transaction feed handlers.
type TransactionHandler struct {
	service *service.FeedService
	view    ViewOptions
}

// NewTransactionHandler creates a new TransactionHandler with its dependencies.
func NewTransactionHandler(s *service.FeedService, view ViewOptions) *TransactionHandler {
	return &TransactionHandler{service: s, view: view}
}

// ListTransactions godoc
// @Summary      List the visible feed
// @Description  Returns the feed narrowed by the live search query, newest insert first. A `q` parameter, when present, filters this response instead; the live query is only changed through PUT /api/query.
// @Tags         transactions
// @Produce      json
// @Param        q   query     string  false  "Search text matched against sender and receiver names"
// @Success      200 {object}  handler.FeedResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) *common.AppError {
	var (
		query   string
		visible []model.TransactionRecord
	)
	if values := r.URL.Query(); values.Has("q") {
		query = values.Get("q")
		visible = h.service.Search(query)
	} else {
		query = h.service.Query()
		visible = h.service.CurrentVisibleList()
	}

	logger.Log.WithFields(logrus.Fields{
		"query":         query,
		"visible_count": len(visible),
	}).Debug("List transactions request served")

	writeJSON(w, http.StatusOK, h.view.renderFeed(query, visible))
	return nil
}

// SnapshotTransactions godoc
// @Summary      Show the whole feed
// @Description  Returns every record in feed order, ignoring the search query.
// @Tags         transactions
// @Produce      json
// @Success      200 {object}  handler.FeedResponse
// @Router       /api/transactions/snapshot [get]
func (h *TransactionHandler) SnapshotTransactions(w http.ResponseWriter, r *http.Request) *common.AppError {
	writeJSON(w, http.StatusOK, h.view.renderFeed("", h.service.Snapshot()))
	return nil
}

// CreateTransaction godoc
// @Summary      Add a transaction
// @Description  Builds a record with a fresh id and puts it at the head of the feed. The date defaults to now.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        transaction body model.CreateTransactionRequest true "Transaction to add"
// @Success      201 {object}  handler.TransactionView
// @Failure      400 {object}  common.AppError "Invalid request body or record"
// @Router       /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateTransactionRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	record, err := h.service.AddTransaction(req)
	if err != nil {
		return feedError(err, "Could not add transaction")
	}

	writeJSON(w, http.StatusCreated, h.view.render(record))
	return nil
}

// QuickAddTransaction godoc
// @Summary      Add the default transaction
// @Description  Prepends a record built from the configured quick-add template, dated now.
// @Tags         transactions
// @Produce      json
// @Success      201 {object}  handler.TransactionView
// @Failure      500 {object}  common.AppError
// @Router       /api/transactions/quick [post]
func (h *TransactionHandler) QuickAddTransaction(w http.ResponseWriter, r *http.Request) *common.AppError {
	record, err := h.service.QuickAdd()
	if err != nil {
		return feedError(err, "Could not add transaction")
	}

	writeJSON(w, http.StatusCreated, h.view.render(record))
	return nil
}

// ReplaceTransactions godoc
// @Summary      Replace the feed
// @Description  Replaces the whole feed with the given records, keeping their order. Nothing changes if any record is invalid.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        feed body model.ReplaceFeedRequest true "New feed contents"
// @Success      200 {object}  handler.FeedResponse
// @Failure      400 {object}  common.AppError "Invalid request body or record"
// @Router       /api/transactions [put]
func (h *TransactionHandler) ReplaceTransactions(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ReplaceFeedRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	now := h.service.Now()
	records := make([]model.TransactionRecord, 0, len(req.Transactions))
	for _, entry := range req.Transactions {
		record, err := entry.ToRecord(now)
		if err != nil {
			return feedError(err, "Could not replace feed")
		}
		records = append(records, record)
	}

	if err := h.service.Initialize(records); err != nil {
		return feedError(err, "Could not replace feed")
	}

	writeJSON(w, http.StatusOK, h.view.renderFeed("", h.service.Snapshot()))
	return nil
}

// GetQuery godoc
// @Summary      Show the live search query
// @Tags         query
// @Produce      json
// @Success      200 {object}  handler.QueryResponse
// @Router       /api/query [get]
func (h *TransactionHandler) GetQuery(w http.ResponseWriter, r *http.Request) *common.AppError {
	writeJSON(w, http.StatusOK, QueryResponse{Query: h.service.Query()})
	return nil
}

// SetQuery godoc
// @Summary      Set the live search query
// @Description  Stores the query verbatim; an empty query shows the whole feed.
// @Tags         query
// @Accept       json
// @Produce      json
// @Param        query body model.UpdateQueryRequest true "New query"
// @Success      200 {object}  handler.QueryResponse
// @Failure      400 {object}  common.AppError "Invalid request body"
// @Router       /api/query [put]
func (h *TransactionHandler) SetQuery(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.UpdateQueryRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	h.service.SetQuery(req.Query)
	writeJSON(w, http.StatusOK, QueryResponse{Query: h.service.Query()})
	return nil
}

// feedError maps service errors to HTTP errors.
func feedError(err error, fallback string) *common.AppError {
	if errors.Is(err, model.ErrInvalidRecord) {
		return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
	}
	return common.NewAppError(http.StatusInternalServerError, fallback, err)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

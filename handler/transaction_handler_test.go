// handler/transaction_handler_test.go
package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"bigwallet-api/handler"
	"bigwallet-api/logger"
	"bigwallet-api/model"
	"bigwallet-api/repository"
	"bigwallet-api/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Log.SetLevel(logrus.WarnLevel)
	os.Exit(m.Run())
}

var testNow = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

func setup(t *testing.T) (*handler.TransactionHandler, *service.FeedService) {
	t.Helper()
	filter, err := service.NewSearchFilter("en", false)
	require.NoError(t, err)
	svc := service.NewFeedService(repository.NewTransactionRepository(), filter, service.QuickAddTemplate{
		SenderName:   "Alfred Lotsu",
		ReceiverName: "BamBam",
		Amount:       decimal.RequireFromString("22.4782"),
	}).WithClock(func() time.Time { return testNow })

	h := handler.NewTransactionHandler(svc, handler.ViewOptions{
		CurrentUser:    "Alfred Lotsu",
		CurrencySymbol: "GH¢",
		ReferenceLabel: "lukatme",
	})
	return h, svc
}

func seedFeed(t *testing.T, svc *service.FeedService) []model.TransactionRecord {
	t.Helper()
	var records []model.TransactionRecord
	for _, names := range [][2]string{{"Alfred Lotsu", "Bob Johnson"}, {"Eva Green", "Oscar Wilde"}} {
		r, err := model.NewTransactionRecord(names[0], names[1], decimal.RequireFromString("150.75"), testNow)
		require.NoError(t, err)
		records = append(records, r)
	}
	require.NoError(t, svc.Initialize(records))
	return records
}

func decodeFeed(t *testing.T, rr *httptest.ResponseRecorder) handler.FeedResponse {
	t.Helper()
	var resp handler.FeedResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	h, svc := setup(t)
	records := seedFeed(t, svc)
	list := handler.ErrorHandlingMiddleware(h.ListTransactions)

	t.Run("renders labels", func(t *testing.T) {
		rr := httptest.NewRecorder()
		list(rr, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeFeed(t, rr)
		require.Equal(t, 2, resp.Count)
		first := resp.Transactions[0]
		assert.Equal(t, records[0].ID.String(), first.ID)
		assert.Equal(t, "Alfred Lotsu", first.SenderName)
		assert.Equal(t, "Me", first.SenderLabel)
		assert.Equal(t, "Bob Johnson", first.ReceiverLabel)
		assert.Equal(t, "150.75", first.Amount)
		assert.Equal(t, "GH¢ 150.75", first.AmountLabel)
		assert.Equal(t, "2025-06-02T09:30:00Z", first.Date)
		assert.Equal(t, "lukatme", first.Reference)
	})

	t.Run("q filters the response only", func(t *testing.T) {
		svc.SetQuery("alfred")
		defer svc.SetQuery("")

		rr := httptest.NewRecorder()
		list(rr, httptest.NewRequest(http.MethodGet, "/api/transactions?q=OSCAR", nil))

		resp := decodeFeed(t, rr)
		assert.Equal(t, "OSCAR", resp.Query)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, records[1].ID.String(), resp.Transactions[0].ID)
		assert.Equal(t, "alfred", svc.Query())
	})

	t.Run("empty q shows the whole feed", func(t *testing.T) {
		svc.SetQuery("alfred")
		defer svc.SetQuery("")

		rr := httptest.NewRecorder()
		list(rr, httptest.NewRequest(http.MethodGet, "/api/transactions?q=", nil))

		resp := decodeFeed(t, rr)
		assert.Equal(t, "", resp.Query)
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, "alfred", svc.Query())
	})

	t.Run("no match returns an empty list", func(t *testing.T) {
		rr := httptest.NewRecorder()
		list(rr, httptest.NewRequest(http.MethodGet, "/api/transactions?q=zzz", nil))

		assert.JSONEq(t, `{"query":"zzz","count":0,"transactions":[]}`, rr.Body.String())
		assert.Len(t, svc.Snapshot(), 2)
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	h, svc := setup(t)
	seedFeed(t, svc)
	create := handler.ErrorHandlingMiddleware(h.CreateTransaction)

	t.Run("success", func(t *testing.T) {
		body := `{"sender_name":"D","receiver_name":"E","amount":"-3.10"}`
		rr := httptest.NewRecorder()
		create(rr, httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var view handler.TransactionView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
		assert.Equal(t, "-3.1", view.Amount)
		assert.Equal(t, "GH¢ -3.10", view.AmountLabel)
		assert.Equal(t, view.ID, svc.Snapshot()[0].ID.String())
		assert.Len(t, svc.Snapshot(), 3)
	})

	t.Run("numeric amount", func(t *testing.T) {
		body := `{"sender_name":"D","receiver_name":"E","amount":10}`
		rr := httptest.NewRecorder()
		create(rr, httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rr.Code)
		var view handler.TransactionView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
		assert.Equal(t, "10", view.Amount)
		assert.Equal(t, "GH¢ 10.00", view.AmountLabel)
		assert.Len(t, svc.Snapshot(), 4)
	})

	t.Run("missing field", func(t *testing.T) {
		body := `{"sender_name":"D","amount":"3"}`
		rr := httptest.NewRecorder()
		create(rr, httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Len(t, svc.Snapshot(), 4)
	})

	t.Run("unparseable amount", func(t *testing.T) {
		body := `{"sender_name":"D","receiver_name":"E","amount":"three"}`
		rr := httptest.NewRecorder()
		create(rr, httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "amount is not a valid decimal")
		assert.Len(t, svc.Snapshot(), 4)
	})

	t.Run("malformed json", func(t *testing.T) {
		rr := httptest.NewRecorder()
		create(rr, httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTransactionHandler_QuickAddTransaction(t *testing.T) {
	h, svc := setup(t)
	rr := httptest.NewRecorder()

	handler.ErrorHandlingMiddleware(h.QuickAddTransaction)(rr, httptest.NewRequest(http.MethodPost, "/api/transactions/quick", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	var view handler.TransactionView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "Me", view.SenderLabel)
	assert.Equal(t, "BamBam", view.ReceiverName)
	assert.Equal(t, "GH¢ 22.48", view.AmountLabel)
	assert.Len(t, svc.Snapshot(), 1)
}

func TestTransactionHandler_ReplaceTransactions(t *testing.T) {
	h, svc := setup(t)
	before := seedFeed(t, svc)
	replace := handler.ErrorHandlingMiddleware(h.ReplaceTransactions)

	t.Run("invalid entry leaves feed unchanged", func(t *testing.T) {
		body := `{"transactions":[{"sender_name":"A","receiver_name":"B","amount":"1"},{"sender_name":"C","receiver_name":"D","amount":"x"}]}`
		rr := httptest.NewRecorder()
		replace(rr, httptest.NewRequest(http.MethodPut, "/api/transactions", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, before, svc.Snapshot())
	})

	t.Run("success keeps order", func(t *testing.T) {
		body := `{"transactions":[
			{"sender_name":"A","receiver_name":"B","amount":"10","date":"2025-05-01T08:00:00Z"},
			{"sender_name":"C","receiver_name":"A","amount":"5"}
		]}`
		rr := httptest.NewRecorder()
		replace(rr, httptest.NewRequest(http.MethodPut, "/api/transactions", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeFeed(t, rr)
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, "A", resp.Transactions[0].SenderName)
		assert.Equal(t, "2025-05-01T08:00:00Z", resp.Transactions[0].Date)
		assert.Equal(t, "C", resp.Transactions[1].SenderName)
		assert.Equal(t, "2025-06-02T09:30:00Z", resp.Transactions[1].Date)
	})
}

func TestTransactionHandler_Query(t *testing.T) {
	h, svc := setup(t)

	rr := httptest.NewRecorder()
	handler.ErrorHandlingMiddleware(h.SetQuery)(rr, httptest.NewRequest(http.MethodPut, "/api/query", strings.NewReader(`{"query":" Alf"}`)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"query":" Alf"}`, rr.Body.String())
	assert.Equal(t, " Alf", svc.Query())

	rr = httptest.NewRecorder()
	handler.ErrorHandlingMiddleware(h.GetQuery)(rr, httptest.NewRequest(http.MethodGet, "/api/query", nil))
	assert.JSONEq(t, `{"query":" Alf"}`, rr.Body.String())
}

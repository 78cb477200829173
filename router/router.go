package router

import (
	"net/http"

	_ "bigwallet-api/docs"
	"bigwallet-api/handler"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(transactionHandler *handler.TransactionHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.Handle("GET /api/transactions", handler.ErrorHandlingMiddleware(transactionHandler.ListTransactions))
	mux.Handle("POST /api/transactions", handler.ErrorHandlingMiddleware(transactionHandler.CreateTransaction))
	mux.Handle("PUT /api/transactions", handler.ErrorHandlingMiddleware(transactionHandler.ReplaceTransactions))
	mux.Handle("GET /api/transactions/snapshot", handler.ErrorHandlingMiddleware(transactionHandler.SnapshotTransactions))
	mux.Handle("POST /api/transactions/quick", handler.ErrorHandlingMiddleware(transactionHandler.QuickAddTransaction))

	mux.Handle("GET /api/query", handler.ErrorHandlingMiddleware(transactionHandler.GetQuery))
	mux.Handle("PUT /api/query", handler.ErrorHandlingMiddleware(transactionHandler.SetQuery))

	return handler.LoggingMiddleware(mux)
}

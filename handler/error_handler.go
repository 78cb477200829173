package handler

import (
	"net/http"

	"bigwallet-api/common"
	"bigwallet-api/logger"

	"github.com/sirupsen/logrus"
)

// ErrorHandlingMiddleware adapts a handler that returns *common.AppError.
// Client errors are logged here at warn level; AppError.Send logs any wrapped cause.
func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := next(w, r)
		if err == nil {
			return
		}
		if err.Code < http.StatusInternalServerError {
			logger.Log.WithFields(logrus.Fields{
				"path":        r.URL.Path,
				"status_code": err.Code,
			}).Warn(err.Message)
		}
		err.Send(w)
	}
}

package rest

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const loggerKey contextKey = "request-logger"

// RequestLogger builds a middleware that attaches a request-scoped logger, carrying
// a unique request identifier and the remote address, to the request's context.
func RequestLogger(base logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqUUID, err := uuid.NewV4()
			if err != nil {
				base.WithError(err).Error("can't generate a request UUID")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			var entry = base.WithFields(logrus.Fields{
				"reqid":     reqUUID.String(),
				"remote-ip": r.RemoteAddr,
			})
			entry.Debugf("%s %s", r.Method, r.URL.Path)

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), loggerKey, entry)))
		})
	}
}

// Logger returns the request-scoped logger, falling back to the standard one when the
// request never crossed the RequestLogger middleware, as in tests.
func Logger(r *http.Request) logrus.FieldLogger {
	if entry, ok := r.Context().Value(loggerKey).(logrus.FieldLogger); ok {
		return entry
	}
	return logrus.StandardLogger()
}

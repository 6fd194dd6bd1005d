package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// StatusClientClosed is logged for requests whose connection was dropped
// without a response.
const StatusClientClosed = 499

// Logger attaches a request-scoped zerolog logger to the context and writes
// one access-log event per request once the handler returns.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		reqLogger := log.With().Str("request_id", GetRequestID(r.Context())).Logger()
		r = r.WithContext(reqLogger.WithContext(r.Context()))

		defer func() {
			rvr := recover()

			status := ww.Status()
			switch {
			case rvr == http.ErrAbortHandler:
				status = StatusClientClosed
			case rvr != nil:
				status = http.StatusInternalServerError
			case status == 0:
				status = http.StatusOK
			}

			event := reqLogger.Info()
			if status >= 400 {
				event = reqLogger.Warn()
			}
			if status >= 500 {
				event = reqLogger.Error()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Int("status", status).
				Bool("aborted", rvr == http.ErrAbortHandler).
				Dur("latency", time.Since(start)).
				Str("client_ip", r.RemoteAddr).
				Int("body_size", ww.BytesWritten()).
				Msg("HTTP request")

			if rvr != nil {
				panic(rvr)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}

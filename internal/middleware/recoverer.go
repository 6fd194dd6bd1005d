package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"
)

// Recoverer turns a panic into a 500 {"error": ...} response.
// http.ErrAbortHandler is re-raised so net/http drops the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			log.Ctx(r.Context()).Error().
				Interface("error", rvr).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			writeError(w, http.StatusInternalServerError, fmt.Sprint(rvr))
		}()

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

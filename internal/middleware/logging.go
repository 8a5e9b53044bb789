package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"global-healthops/nexus/internal/auth"
	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/logging"
)

// Logging logs every request on arrival and on completion.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetRequestID(r.Context())
		client := common.ClientIP(r)

		logging.Info("Incoming request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"client", client,
		)

		lw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(lw, r)
		dur := time.Since(start)

		logging.Info("Request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", lw.statusCode,
			"duration_ms", dur.Milliseconds(),
			"client", client,
		)
	})
}

// Recoverer turns a panic into a 500 with the generic detail and logs the
// panic value and stack.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			userEmail := ""
			if user := auth.GetCurrentUser(r.Context()); user != nil {
				userEmail = user.Email
			}
			logging.WithRequest(GetRequestID(r.Context()), userEmail, r.URL.Path).Errorw("Unhandled panic",
				"panic", rec,
				"stack", string(debug.Stack()),
			)

			common.RespondError(w, http.StatusInternalServerError, constants.MsgInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

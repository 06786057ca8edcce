// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bardeals/happyhour/pkg/metrics"
)

// MetricsMiddleware records request count, latency and error class for each
// endpoint. Errors are classified from the response status code so handlers
// never report to the metrics layer themselves.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(rec, r)

		durationMs := float64(time.Since(start).Milliseconds())
		code := strconv.Itoa(rec.code)

		metrics.RecordHTTPRequest(endpoint, r.Method, code)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, code, durationMs)

		if rec.code >= http.StatusBadRequest {
			class := errorClass(rec.code)
			metrics.RecordErrorByEndpoint(endpoint, r.Method, class)
			metrics.RecordErrorByType(class, errorSeverity(rec.code))
			metrics.RecordErrorLatency("http", class, durationMs)
		}
	}
}

// errorClass maps a response status onto the error-class labels defined in
// errors.go. Backpressure surfaces as 429, bad queries as 400.
func errorClass(code int) string {
	switch {
	case code >= http.StatusInternalServerError:
		return errClassServer
	case code == http.StatusTooManyRequests:
		return errClassBackpressure
	case code == http.StatusNotFound:
		return errClassNotFound
	case code >= http.StatusBadRequest:
		return errClassClient
	default:
		return errClassUnknown
	}
}

func errorSeverity(code int) string {
	switch {
	case code >= http.StatusInternalServerError:
		return "high"
	case code >= http.StatusBadRequest:
		return "medium"
	default:
		return "low"
	}
}

// statusRecorder captures the status code a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.code = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}

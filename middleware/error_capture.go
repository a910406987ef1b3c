package middleware

import (
	"crypto/md5"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"fangbot/faillog"
)

// ErrorCaptureMiddleware recovers panics in HTTP handlers and records
// failures to the offline failure log. Repeated identical failures are
// cooldown-deduped so a flapping upstream doesn't flood the log file.
type ErrorCaptureMiddleware struct {
	capturedErrors  map[string]time.Time // hash -> last capture time
	mutex           sync.RWMutex
	captureCooldown time.Duration
}

func NewErrorCaptureMiddleware() *ErrorCaptureMiddleware {
	return &ErrorCaptureMiddleware{
		capturedErrors:  make(map[string]time.Time),
		captureCooldown: 10 * time.Minute,
	}
}

// HTTPMiddleware wraps HTTP handlers with panic recovery
func (m *ErrorCaptureMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer m.recoverAndCapture(w, fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

// CaptureError records a failure once per cooldown window
func (m *ErrorCaptureMiddleware) CaptureError(err error, context string) {
	errorMsg := fmt.Sprintf("%s: %v", context, err)

	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if lastCapture, exists := m.capturedErrors[hash]; exists {
		if time.Since(lastCapture) < m.captureCooldown {
			return
		}
	}

	faillog.Error("%s", errorMsg)
	m.capturedErrors[hash] = time.Now()
}

func (m *ErrorCaptureMiddleware) recoverAndCapture(w http.ResponseWriter, context string) {
	if r := recover(); r != nil {
		errorMsg := fmt.Sprintf("%s: PANIC - %v", context, r)
		log.Printf("❌ %s", errorMsg)
		faillog.Error("%s", errorMsg)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

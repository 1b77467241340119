package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 3)
	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.RemoteAddr = "10.0.0.1:50000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)
	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodPost, "/login", nil)
	first.RemoteAddr = "10.0.0.2:50000"
	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, first)
	assert.Equal(t, http.StatusOK, w1.Code)

	second := httptest.NewRequest(http.MethodPost, "/login", nil)
	second.RemoteAddr = "10.0.0.2:50001" // same IP, different port
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, second)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}

func TestRateLimiter_IsolatesClients(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)
	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	a := httptest.NewRequest(http.MethodPost, "/login", nil)
	a.RemoteAddr = "10.0.0.3:50000"
	wa := httptest.NewRecorder()
	h.ServeHTTP(wa, a)
	assert.Equal(t, http.StatusOK, wa.Code)

	b := httptest.NewRequest(http.MethodPost, "/login", nil)
	b.RemoteAddr = "10.0.0.4:50000"
	wb := httptest.NewRecorder()
	h.ServeHTTP(wb, b)
	assert.Equal(t, http.StatusOK, wb.Code)
}

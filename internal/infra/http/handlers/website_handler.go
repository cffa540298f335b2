package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/urbancruise/cruise-lms/internal/infra/http/middleware"
	"github.com/urbancruise/cruise-lms/internal/usecase"
)

// WebsiteHandler is the public contact-form endpoint. It is the only
// unauthenticated write path, hence the per-IP rate limit.
type WebsiteHandler struct {
	UC          *usecase.CreateWebsiteLeadUseCase
	rateLimiter *RateLimiter
}

func NewWebsiteHandler(uc *usecase.CreateWebsiteLeadUseCase) *WebsiteHandler {
	return &WebsiteHandler{
		UC:          uc,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

func (h *WebsiteHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		respondError(w, http.StatusTooManyRequests, "Rate limited", "Too many requests. Please try again later.")
		return
	}

	var input usecase.WebsiteLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}

	lead, err := h.UC.Execute(r.Context(), input)
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			status := http.StatusBadRequest
			if domainErr.Code == "DUPLICATE_LEAD" {
				status = http.StatusConflict
			}
			respondError(w, status, domainErr.Code, domainErr.Message)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to capture lead", err.Error())
		return
	}

	middleware.RecordIngest(lead.Source, 1, 0)
	respondData(w, http.StatusCreated, lead, "Lead created successfully")
}

// RateLimiter is a fixed-window per-IP counter.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

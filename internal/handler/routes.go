package handler

import "net/http"

// NewRouter registers every route and wraps the mux in the middleware chain.
// limiter may be nil to disable rate limiting on the contact endpoint.
func NewRouter(h *Handler, contactHandler *ContactHandler, limiter *RateLimiter) http.Handler {
	var submit http.Handler = http.HandlerFunc(contactHandler.Submit)
	if limiter != nil {
		submit = limiter.Middleware(submit)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("POST /api/contact", submit)
	// every other method on the contact path
	mux.HandleFunc("/api/contact", contactHandler.MethodNotAllowed)

	return RequestLogger(SecurityHeaders(h.CORS(mux)))
}

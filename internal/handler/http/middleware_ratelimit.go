// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net/http"
	"strconv"

	"github.com/MKhiriev/campus-ride/internal/logger"
	"github.com/MKhiriev/campus-ride/internal/ratelimit"
	"github.com/MKhiriev/campus-ride/internal/router"
	"github.com/MKhiriev/campus-ride/internal/utils"
)

// withRateLimit consumes one request from the budget of (client IP, path).
// Denied requests get 429 with Retry-After. When the limiter fails the
// request is let through.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision, err := h.limiter.Allow(r.Context(), ratelimit.Key(utils.ClientIP(r), r.URL.Path))
		if err != nil {
			logger.FromRequest(r).Warn().Err(err).Str("func", "*Handler.withRateLimit").Msg("rate limiter failed, request let through")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

			if err = router.WriteAppError(w, ErrTooManyRequests); err != nil {
				logger.FromRequest(r).Err(err).Str("func", "*Handler.withRateLimit").Msg("error writing error envelope")
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

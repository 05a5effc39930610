package main

import (
	"errors"
	"log"
	"net/http"
)

// GET /match
func matchesHandler(engine *MatchEngine) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		userID := r.Context().Value(userIDKey).(int)

		result, err := engine.ComputeMatches(r.Context(), userID)
		if errors.Is(err, ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		} else if err != nil {
			// Store failure is retryable, never reported as "no matches"
			log.Println("Match computation failed:", err)
			writeError(w, http.StatusServiceUnavailable, "matching_unavailable")
			return
		}
		writeJSON(w, http.StatusOK, result)
	})
}

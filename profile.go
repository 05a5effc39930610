package main

import (
	"encoding/json"
	"log"
	"net/http"
)

// GET /me
func meHandler(store *PostgresStore) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		userID := r.Context().Value(userIDKey).(int)

		user, err := store.GetUser(r.Context(), userID)
		if err == ErrUserNotFound {
			writeError(w, http.StatusNotFound, "not_found")
			return
		} else if err != nil {
			log.Println("Error loading user:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		writeJSON(w, http.StatusOK, sanitizeUser(user))
	})
}

// PUT /me/location
func locationHandler(store *PostgresStore) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		userID := r.Context().Value(userIDKey).(int)

		var point GeoPoint
		if err := json.NewDecoder(r.Body).Decode(&point); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if !point.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_coordinates")
			return
		}

		if err := store.UpdateLocation(r.Context(), userID, point); err != nil {
			log.Println("Error updating location:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"location": point})
	})
}

// PUT /me/distance-preferences
func distancePreferencesHandler(store *PostgresStore) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		userID := r.Context().Value(userIDKey).(int)

		type prefsRequest struct {
			UseDistanceMatching bool     `json:"use_distance_matching"`
			MaxMatchDistance    *float64 `json:"max_match_distance"`
		}
		var req prefsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}

		maxDistance := float64(defaultMatchDistanceKm)
		if req.MaxMatchDistance != nil {
			if !validMaxDistance(*req.MaxMatchDistance) {
				writeError(w, http.StatusBadRequest, "invalid_distance")
				return
			}
			maxDistance = *req.MaxMatchDistance
		}

		if err := store.UpdateDistancePreferences(r.Context(), userID, req.UseDistanceMatching, maxDistance); err != nil {
			log.Println("Error updating distance preferences:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"use_distance_matching": req.UseDistanceMatching,
			"max_match_distance":    maxDistance,
		})
	})
}

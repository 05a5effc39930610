package main

import (
	"encoding/json"
	"net/http"
)

// --- Response helpers ---
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// userResponse is the sanitized user record returned by auth, profile
// and skill endpoints. Password hashes and embeddings never leave the
// store through this shape.
type userResponse struct {
	ID                  int       `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	SkillsOffered       []string  `json:"skills_offered"`
	SkillsWanted        []string  `json:"skills_wanted"`
	Location            *GeoPoint `json:"location,omitempty"`
	UseDistanceMatching bool      `json:"use_distance_matching"`
	MaxMatchDistance    float64   `json:"max_match_distance"`
}

func sanitizeUser(u *User) userResponse {
	return userResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		SkillsOffered:       nonNil(u.SkillsOffered),
		SkillsWanted:        nonNil(u.SkillsWanted),
		Location:            u.Location,
		UseDistanceMatching: u.UseDistanceMatching,
		MaxMatchDistance:    u.MaxMatchDistance,
	}
}

package main

import "strings"

// User is the platform user record as seen by the matching core.
//
// SkillEmbeddings is a derived cache keyed by lower-cased skill label.
// It can lag behind SkillsOffered/SkillsWanted when a mutation skipped
// the embedding refresh, so lookups go through EmbeddingFor and labels
// without a vector are silently excluded from comparison.
type User struct {
	ID                  int
	Name                string
	Email               string
	SkillsOffered       []string
	SkillsWanted        []string
	SkillEmbeddings     map[string][]float32
	Location            *GeoPoint
	UseDistanceMatching bool
	MaxMatchDistance    float64
}

// GeoPoint is a geodesic coordinate pair.
type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Valid reports whether the point exists and lies inside the WGS84
// coordinate domain.
func (p *GeoPoint) Valid() bool {
	if p == nil {
		return false
	}
	return p.Longitude >= -180 && p.Longitude <= 180 &&
		p.Latitude >= -90 && p.Latitude <= 90
}

// EmbeddingFor returns the stored vector for a skill label, or nil when
// the label has no embedding (stale cache, failed fetch at mutation time).
func (u *User) EmbeddingFor(skill string) []float32 {
	return u.SkillEmbeddings[strings.ToLower(skill)]
}

// HasEmbeddings reports whether the user holds at least one skill vector.
func (u *User) HasEmbeddings() bool {
	return len(u.SkillEmbeddings) > 0
}

// MatchCandidate is the sanitized slice of a user exposed in match
// results: enough for a UI to render a "start conversation" card,
// never password hashes or raw embedding vectors.
type MatchCandidate struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
}

func toCandidate(u *User) MatchCandidate {
	return MatchCandidate{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		SkillsOffered: nonNil(u.SkillsOffered),
		SkillsWanted:  nonNil(u.SkillsWanted),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

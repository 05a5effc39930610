package main

import "strings"

// Distance preference domain in kilometers.
const (
	minMatchDistanceKm     = 1
	maxMatchDistanceKm     = 10000
	defaultMatchDistanceKm = 50
)

// parseSkills splits a comma-separated skill string, trimming spaces
// and dropping empty entries. Case is preserved for display.
func parseSkills(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if skill := strings.TrimSpace(part); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}

// validMaxDistance checks the [1, 10000] km domain bound.
func validMaxDistance(km float64) bool {
	return km >= minMatchDistanceKm && km <= maxMatchDistanceKm
}

// containsFold reports case-insensitive membership.
func containsFold(list []string, skill string) bool {
	for _, s := range list {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

// removeFold deletes every case-insensitive occurrence of skill.
func removeFold(list []string, skill string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if !strings.EqualFold(s, skill) {
			out = append(out, s)
		}
	}
	return out
}

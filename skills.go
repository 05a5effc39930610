package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

type skillRole string

const (
	roleOffered skillRole = "offered"
	roleWanted  skillRole = "wanted"
)

// skillsHandler serves POST (add) and DELETE (remove) for one skill
// list. Adding a skill fetches its embedding if none is stored yet;
// removing one purges the embedding once the label is no longer
// claimed in either list, so stale vectors can't keep matching a
// skill the user gave up.
func skillsHandler(store *PostgresStore, embedder Embedder, role skillRole) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		userID := r.Context().Value(userIDKey).(int)

		type skillRequest struct {
			Skill string `json:"skill"`
		}
		var req skillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		req.Skill = strings.TrimSpace(req.Skill)
		if req.Skill == "" {
			writeError(w, http.StatusBadRequest, "missing_skill")
			return
		}

		user, err := store.GetUser(r.Context(), userID)
		if err == ErrUserNotFound {
			writeError(w, http.StatusNotFound, "not_found")
			return
		} else if err != nil {
			log.Println("Error loading user:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}

		list := user.SkillsOffered
		if role == roleWanted {
			list = user.SkillsWanted
		}

		switch r.Method {
		case http.MethodPost:
			if !containsFold(list, req.Skill) {
				list = append(list, req.Skill)
			}
		case http.MethodDelete:
			list = removeFold(list, req.Skill)
		}

		if role == roleOffered {
			user.SkillsOffered = list
		} else {
			user.SkillsWanted = list
		}

		if err := store.UpdateSkills(r.Context(), userID, user.SkillsOffered, user.SkillsWanted); err != nil {
			log.Println("Error updating skills:", err)
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}

		switch r.Method {
		case http.MethodPost:
			refreshEmbeddings(r.Context(), store, embedder, user, []string{req.Skill})
		case http.MethodDelete:
			// Purge only when the label left both lists
			if !containsFold(user.SkillsOffered, req.Skill) && !containsFold(user.SkillsWanted, req.Skill) {
				if err := store.DeleteEmbedding(r.Context(), userID, req.Skill); err != nil {
					log.Printf("Error purging embedding for %q (user %d): %v", req.Skill, userID, err)
				}
			}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"user": sanitizeUser(user)})
	})
}

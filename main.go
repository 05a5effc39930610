package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// JWT secret from environment variable or fallback
func getJWTSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("your_secret_key_please_change_in_production")
}

var jwtSecret = getJWTSecret()

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("Warning: invalid %s=%q, using %v", key, v, fallback)
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}
	jwtSecret = getJWTSecret()

	db := initDB()
	store := NewPostgresStore(db)

	var embedder Embedder
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		embedder = newOpenAIEmbedder(apiKey)
	} else {
		log.Println("Warning: OPENAI_API_KEY not set, skill embeddings will not be computed")
	}

	engine := NewMatchEngine(store, MatchConfig{
		SimilarityThreshold: envFloat("MATCH_THRESHOLD", 0.5),
		DefaultRadiusKm:     envFloat("DEFAULT_RADIUS_KM", defaultMatchDistanceKm),
	})

	mux := http.NewServeMux()

	// Core auth & user endpoints
	mux.Handle("/register", registerHandler(store, embedder))
	mux.Handle("/login", loginHandler(store))
	mux.Handle("/me", meHandler(store))
	mux.Handle("/me/location", locationHandler(store))
	mux.Handle("/me/distance-preferences", distancePreferencesHandler(store))

	// Skill list mutations (embedding refresh happens here, never at match time)
	mux.Handle("/skills/offered", skillsHandler(store, embedder, roleOffered))
	mux.Handle("/skills/wanted", skillsHandler(store, embedder, roleWanted))

	// Semantic matching
	mux.Handle("/match", matchesHandler(engine))

	// WebSocket chat relay
	mux.Handle("/ws/chat", wsChatHandler())

	// Health check endpoint for Docker
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Starting SkillSwap backend on port " + port + "...")
	http.ListenAndServe(":"+port, withCORS(mux))
}

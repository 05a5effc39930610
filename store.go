package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresStore implements UserStore plus the mutation operations the
// handlers need. Location columns are plain doubles; radius filtering
// is brute-force haversine over users that hold embeddings, which is
// correct without a spatial index and cheap at this pool size.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, name, email, skills_offered, skills_wanted,
       location_lon, location_lat, use_distance_matching, max_match_distance`

func scanUser(row interface{ Scan(...interface{}) error }) (*User, error) {
	var u User
	var offered, wanted []byte
	var lon, lat sql.NullFloat64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &offered, &wanted,
		&lon, &lat, &u.UseDistanceMatching, &u.MaxMatchDistance)
	if err != nil {
		return nil, err
	}
	_ = json.Unmarshal(offered, &u.SkillsOffered)
	_ = json.Unmarshal(wanted, &u.SkillsWanted)
	if lon.Valid && lat.Valid {
		u.Location = &GeoPoint{Longitude: lon.Float64, Latitude: lat.Float64}
	}
	return &u, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id int) (*User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	embeddings, err := s.loadEmbeddings(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	u.SkillEmbeddings = embeddings[id]
	return u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (int, string, error) {
	var id int
	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, password_hash FROM users WHERE email = $1", email).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		return 0, "", ErrUserNotFound
	}
	return id, hash, err
}

// FetchUsersWithEmbeddings returns every other user that holds at least
// one skill embedding. When geo is set, users without a stored location
// or outside the radius are dropped before their embeddings are loaded.
func (s *PostgresStore) FetchUsersWithEmbeddings(ctx context.Context, excludeID int, geo *GeoFilter) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+userColumns+`
        FROM users u
        WHERE u.id <> $1
          AND EXISTS (SELECT 1 FROM skill_embeddings e WHERE e.user_id = u.id)
    `, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	var ids []int
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			continue
		}
		if geo != nil {
			if u.Location == nil {
				continue
			}
			d := haversine(geo.Latitude, geo.Longitude, u.Location.Latitude, u.Location.Longitude)
			if d > geo.MaxDistanceKm {
				continue
			}
		}
		users = append(users, *u)
		ids = append(ids, u.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return users, nil
	}

	embeddings, err := s.loadEmbeddings(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].SkillEmbeddings = embeddings[users[i].ID]
	}
	return users, nil
}

func (s *PostgresStore) loadEmbeddings(ctx context.Context, userIDs []int) (map[int]map[string][]float32, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, skill, embedding
        FROM skill_embeddings
        WHERE user_id = ANY($1)
    `, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]map[string][]float32, len(userIDs))
	for rows.Next() {
		var userID int
		var skill string
		var vec pgvector.Vector
		if err := rows.Scan(&userID, &skill, &vec); err != nil {
			continue
		}
		if out[userID] == nil {
			out[userID] = make(map[string][]float32)
		}
		out[userID][strings.ToLower(skill)] = vec.Slice()
	}
	return out, rows.Err()
}

func (s *PostgresStore) CreateUser(ctx context.Context, name, email, passwordHash string, offered, wanted []string) (int, error) {
	offeredJSON, _ := json.Marshal(nonNil(offered))
	wantedJSON, _ := json.Marshal(nonNil(wanted))

	var id int
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO users (name, email, password_hash, skills_offered, skills_wanted)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, name, email, passwordHash, offeredJSON, wantedJSON).Scan(&id)
	return id, err
}

func (s *PostgresStore) UpdateSkills(ctx context.Context, userID int, offered, wanted []string) error {
	offeredJSON, _ := json.Marshal(nonNil(offered))
	wantedJSON, _ := json.Marshal(nonNil(wanted))
	_, err := s.db.ExecContext(ctx, `
        UPDATE users SET skills_offered = $2, skills_wanted = $3 WHERE id = $1
    `, userID, offeredJSON, wantedJSON)
	return err
}

func (s *PostgresStore) UpsertEmbedding(ctx context.Context, userID int, skill string, vec []float32) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO skill_embeddings (user_id, skill, embedding)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, skill) DO UPDATE SET embedding = EXCLUDED.embedding
    `, userID, strings.ToLower(skill), pgvector.NewVector(vec))
	return err
}

func (s *PostgresStore) DeleteEmbedding(ctx context.Context, userID int, skill string) error {
	_, err := s.db.ExecContext(ctx, `
        DELETE FROM skill_embeddings WHERE user_id = $1 AND skill = $2
    `, userID, strings.ToLower(skill))
	return err
}

func (s *PostgresStore) UpdateLocation(ctx context.Context, userID int, p GeoPoint) error {
	_, err := s.db.ExecContext(ctx, `
        UPDATE users SET location_lon = $2, location_lat = $3 WHERE id = $1
    `, userID, p.Longitude, p.Latitude)
	return err
}

func (s *PostgresStore) UpdateDistancePreferences(ctx context.Context, userID int, useDistanceMatching bool, maxMatchDistance float64) error {
	_, err := s.db.ExecContext(ctx, `
        UPDATE users SET use_distance_matching = $2, max_match_distance = $3 WHERE id = $1
    `, userID, useDistanceMatching, maxMatchDistance)
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Match outcome kinds. Callers branch on MatchResult.Kind instead of
// probing for optional fields.
const (
	MatchKindMatched         = "matched"
	MatchKindNoEmbeddings    = "no_embeddings"
	MatchKindNoLocation      = "no_location"
	MatchKindInvalidLocation = "invalid_location"
)

// Matching modes reported in results.
const (
	MatchingGlobal   = "global"
	MatchingDistance = "distance"
)

// ErrUserNotFound marks a requester id that resolves to no record at
// all, which is distinct from a user with zero embeddings.
var ErrUserNotFound = errors.New("user not found")

// MatchConfig carries the engine tuning knobs. Passed in at
// construction time so tests can vary them per case.
type MatchConfig struct {
	SimilarityThreshold float64
	DefaultRadiusKm     float64
}

// GeoFilter restricts candidate retrieval to a radius around a point.
type GeoFilter struct {
	Longitude     float64
	Latitude      float64
	MaxDistanceKm float64
}

// UserStore is the query interface the match engine consumes.
// The engine only reads; it never mutates user state.
type UserStore interface {
	// GetUser resolves a user record with its skill embeddings, or
	// ErrUserNotFound.
	GetUser(ctx context.Context, id int) (*User, error)
	// FetchUsersWithEmbeddings returns every other user holding at
	// least one skill embedding, optionally restricted to a radius.
	FetchUsersWithEmbeddings(ctx context.Context, excludeID int, geo *GeoFilter) ([]User, error)
}

// MatchResult is the tagged outcome of one match computation.
type MatchResult struct {
	Kind            string           `json:"kind"`
	WantsMine       []MatchCandidate `json:"wants_mine"`
	OffersWhatINeed []MatchCandidate `json:"offers_what_i_need"`
	Mutual          []MatchCandidate `json:"mutual"`
	TotalCandidates int              `json:"total_candidates"`
	MatchingType    string           `json:"matching_type"`
	MaxDistanceKm   float64          `json:"max_distance_km,omitempty"`
	Message         string           `json:"message,omitempty"`
}

// MatchEngine scores the requester's offered/wanted skills against
// every eligible candidate's wanted/offered skills by embedding
// similarity. Each invocation is a stateless read over current data;
// there is no cached or incrementally updated match index.
type MatchEngine struct {
	store UserStore
	cfg   MatchConfig
}

func NewMatchEngine(store UserStore, cfg MatchConfig) *MatchEngine {
	if cfg.SimilarityThreshold == 0 {
		cfg.SimilarityThreshold = 0.5
	}
	if cfg.DefaultRadiusKm == 0 {
		cfg.DefaultRadiusKm = 50
	}
	return &MatchEngine{store: store, cfg: cfg}
}

// ComputeMatches resolves the requester and buckets candidates into
// wantsMine / offersWhatINeed / mutual. Expected, user-correctable
// states (no embeddings, no location) come back as result variants;
// only store failures surface as errors.
func (e *MatchEngine) ComputeMatches(ctx context.Context, requesterID int) (*MatchResult, error) {
	requester, err := e.store.GetUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if !requester.HasEmbeddings() {
		res := emptyResult(MatchKindNoEmbeddings, MatchingGlobal)
		res.Message = "Add some skills to your profile to get matches."
		return res, nil
	}

	candidates, early, err := e.selectCandidates(ctx, requester)
	if err != nil {
		return nil, fmt.Errorf("fetching candidates: %w", err)
	}
	if early != nil {
		return early, nil
	}

	flags, err := e.classify(ctx, requester, candidates)
	if err != nil {
		return nil, err
	}

	mode := MatchingGlobal
	if requester.UseDistanceMatching {
		mode = MatchingDistance
	}
	res := emptyResult(MatchKindMatched, mode)
	res.TotalCandidates = len(candidates)
	if mode == MatchingDistance {
		res.MaxDistanceKm = e.effectiveRadius(requester)
	}

	for i := range candidates {
		c := toCandidate(&candidates[i])
		if flags[i].wantsMine {
			res.WantsMine = append(res.WantsMine, c)
		}
		if flags[i].offersWhatINeed {
			res.OffersWhatINeed = append(res.OffersWhatINeed, c)
		}
		if flags[i].wantsMine && flags[i].offersWhatINeed {
			res.Mutual = append(res.Mutual, c)
		}
	}
	return res, nil
}

// selectCandidates produces the pool of users eligible for comparison.
// A non-nil *MatchResult means an early, empty-but-valid outcome
// (distance mode without a usable location fails closed, never falls
// open to global search).
func (e *MatchEngine) selectCandidates(ctx context.Context, requester *User) ([]User, *MatchResult, error) {
	if !requester.UseDistanceMatching {
		users, err := e.store.FetchUsersWithEmbeddings(ctx, requester.ID, nil)
		return users, nil, err
	}

	if requester.Location == nil {
		res := emptyResult(MatchKindNoLocation, MatchingDistance)
		res.MaxDistanceKm = e.effectiveRadius(requester)
		res.Message = "Distance matching is on but no location is stored. Share your location to find matches nearby."
		return nil, res, nil
	}
	if !requester.Location.Valid() {
		res := emptyResult(MatchKindInvalidLocation, MatchingDistance)
		res.MaxDistanceKm = e.effectiveRadius(requester)
		res.Message = "Stored location is outside valid coordinate bounds. Update your location to find matches nearby."
		return nil, res, nil
	}

	users, err := e.store.FetchUsersWithEmbeddings(ctx, requester.ID, &GeoFilter{
		Longitude:     requester.Location.Longitude,
		Latitude:      requester.Location.Latitude,
		MaxDistanceKm: e.effectiveRadius(requester),
	})
	return users, nil, err
}

func (e *MatchEngine) effectiveRadius(requester *User) float64 {
	if requester.MaxMatchDistance > 0 {
		return requester.MaxMatchDistance
	}
	return e.cfg.DefaultRadiusKm
}

type classification struct {
	wantsMine       bool
	offersWhatINeed bool
}

// classify runs both membership tests for every candidate. The nested
// existential scans are independent per candidate, so they fan out over
// a bounded errgroup; each goroutine writes only its own slot.
func (e *MatchEngine) classify(ctx context.Context, requester *User, candidates []User) ([]classification, error) {
	flags := make([]classification, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range candidates {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c := &candidates[i]
			flags[i] = classification{
				wantsMine:       e.anyPairMatches(requester, requester.SkillsOffered, c, c.SkillsWanted),
				offersWhatINeed: e.anyPairMatches(requester, requester.SkillsWanted, c, c.SkillsOffered),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return flags, nil
}

// anyPairMatches reports whether any (mine, theirs) skill pair scores
// at or above the threshold (inclusive boundary). Skills without a
// stored embedding are skipped, and the scan stops at the first
// qualifying pair: this is an existential test, not a best score.
func (e *MatchEngine) anyPairMatches(mine *User, mySkills []string, theirs *User, theirSkills []string) bool {
	for _, ms := range mySkills {
		mv := mine.EmbeddingFor(ms)
		if len(mv) == 0 {
			continue
		}
		for _, ts := range theirSkills {
			tv := theirs.EmbeddingFor(ts)
			if len(tv) == 0 {
				continue
			}
			if cosineSimilarity(mv, tv) >= e.cfg.SimilarityThreshold {
				return true
			}
		}
	}
	return false
}

func emptyResult(kind, mode string) *MatchResult {
	return &MatchResult{
		Kind:            kind,
		WantsMine:       []MatchCandidate{},
		OffersWhatINeed: []MatchCandidate{},
		Mutual:          []MatchCandidate{},
		MatchingType:    mode,
	}
}

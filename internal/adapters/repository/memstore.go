package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/pkg/metrics"
)

// defaultShardCount spreads players across shards to keep lock contention
// low under parallel frame workers.
const defaultShardCount = 8

// player holds one subject's accumulated state. results is append-only;
// unlocked is union-only.
type player struct {
	sessions []string
	results  []model.AnalysisResult
	unlocked map[model.AchievementID]struct{}
}

type shard struct {
	mu      sync.RWMutex
	players map[string]*player
}

// MemStore is a sharded in-memory Store implementation.
type MemStore struct {
	shards     []*shard
	shardCount int
}

// NewMemStore creates a MemStore with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{players: make(map[string]*player)}
	}
	return s
}

func (s *MemStore) shardFor(playerID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(playerID))
	return s.shards[h.Sum32()%uint32(s.shardCount)]
}

// StartSession records a new upload for the player, creating the player on
// first use.
func (s *MemStore) StartSession(_ context.Context, playerID string) (string, error) {
	if playerID == "" {
		return "", fmt.Errorf("%w: empty player id", ErrPlayerNotFound)
	}
	sh := s.shardFor(playerID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, ok := sh.players[playerID]
	if !ok {
		p = &player{unlocked: make(map[model.AchievementID]struct{})}
		sh.players[playerID] = p
	}
	sessionID := uuid.NewString()
	p.sessions = append(p.sessions, sessionID)
	return sessionID, nil
}

// AppendResult appends an immutable result to the player's history.
func (s *MemStore) AppendResult(_ context.Context, playerID, sessionID string, result model.AnalysisResult) error {
	sh := s.shardFor(playerID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, ok := sh.players[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if !contains(p.sessions, sessionID) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	p.results = append(p.results, result)
	metrics.RecordResultAppended()
	return nil
}

// Results returns the player's results ordered by frame index ascending.
// The returned slice is a copy; the stored history stays immutable.
func (s *MemStore) Results(_ context.Context, playerID string) ([]model.AnalysisResult, error) {
	sh := s.shardFor(playerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	p, ok := sh.players[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	out := make([]model.AnalysisResult, len(p.results))
	copy(out, p.results)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FrameIndex != out[j].FrameIndex {
			return out[i].FrameIndex < out[j].FrameIndex
		}
		return out[i].CapturedAt.Before(out[j].CapturedAt)
	})
	return out, nil
}

// SessionCount returns how many sessions the player has started.
func (s *MemStore) SessionCount(_ context.Context, playerID string) (int, error) {
	sh := s.shardFor(playerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	p, ok := sh.players[playerID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	return len(p.sessions), nil
}

// Achievements returns a copy of the player's unlocked set.
func (s *MemStore) Achievements(_ context.Context, playerID string) (map[model.AchievementID]struct{}, error) {
	sh := s.shardFor(playerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	p, ok := sh.players[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	out := make(map[model.AchievementID]struct{}, len(p.unlocked))
	for id := range p.unlocked {
		out[id] = struct{}{}
	}
	return out, nil
}

// UnlockAchievements merges ids into the unlocked set, union-only.
func (s *MemStore) UnlockAchievements(_ context.Context, playerID string, ids map[model.AchievementID]struct{}) (int, error) {
	sh := s.shardFor(playerID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, ok := sh.players[playerID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	var added int
	for id := range ids {
		if _, has := p.unlocked[id]; !has {
			p.unlocked[id] = struct{}{}
			added++
			metrics.RecordAchievementUnlocked()
		}
	}
	return added, nil
}

// PlayerCount returns the number of players tracked.
func (s *MemStore) PlayerCount(_ context.Context) int {
	var n int
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.players)
		sh.mu.RUnlock()
	}
	return n
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

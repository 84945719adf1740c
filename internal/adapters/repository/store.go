// Package repository defines the session store interface and errors.
package repository

import (
	"context"

	"github.com/baller70/BasketballAnalysisAssessmentApp-sub002/internal/domain/model"
)

// Store provides access to per-player session state. Sessions are
// append-only: a result, once appended, is never edited or removed, and a
// player's achievement set only ever grows.
type Store interface {
	// StartSession records the beginning of a new upload for the player
	// and returns its session ID. Creates the player on first use.
	StartSession(ctx context.Context, playerID string) (string, error)

	// AppendResult appends an immutable analysis result to the player's
	// history. The session must exist.
	AppendResult(ctx context.Context, playerID, sessionID string, result model.AnalysisResult) error

	// Results returns a copy of the player's results ordered by frame
	// index ascending (capture time breaking ties). Returns
	// ErrPlayerNotFound for unknown players.
	Results(ctx context.Context, playerID string) ([]model.AnalysisResult, error)

	// SessionCount returns how many sessions the player has started.
	SessionCount(ctx context.Context, playerID string) (int, error)

	// Achievements returns a copy of the player's unlocked set.
	Achievements(ctx context.Context, playerID string) (map[model.AchievementID]struct{}, error)

	// UnlockAchievements merges ids into the player's unlocked set. The
	// operation is union-only; nothing is ever removed. Returns the number
	// of achievements that were newly unlocked.
	UnlockAchievements(ctx context.Context, playerID string, ids map[model.AchievementID]struct{}) (int, error)

	// PlayerCount returns the number of players tracked.
	PlayerCount(ctx context.Context) int
}

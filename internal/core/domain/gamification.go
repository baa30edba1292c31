package domain

import (
	"math"
	"time"
)

const completionPoints = 10

// GamificationState is a user's point/level ledger. Points move in fixed
// steps of 10 on completion-state transitions; levels only ever go up.
type GamificationState struct {
	UserID            string    `json:"user_id"`
	Level             int       `json:"level"`
	Points            int       `json:"points"`
	PointsToNextLevel int       `json:"points_to_next_level"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewGamificationState(userID string) *GamificationState {
	return &GamificationState{
		UserID:            userID,
		Level:             1,
		Points:            0,
		PointsToNextLevel: PointsForLevel(1),
		UpdatedAt:         time.Now().UTC(),
	}
}

func PointsForLevel(level int) int {
	return int(math.Round(100 * math.Pow(float64(level), 1.5)))
}

// ApplyCompletion awards points for a false->true transition. The level
// increments at most once per event: the per-event gain is fixed, so a
// single award can never legitimately span two levels.
func (g *GamificationState) ApplyCompletion() {
	g.Points += completionPoints
	if g.Points >= g.PointsToNextLevel {
		g.Level++
		g.PointsToNextLevel = PointsForLevel(g.Level)
	}
	g.UpdatedAt = time.Now().UTC()
}

// ApplyRemoval deducts points for a true->false transition. Points floor
// at zero and the level never goes back down, even when points fall below
// the previous threshold.
func (g *GamificationState) ApplyRemoval() {
	g.Points -= completionPoints
	if g.Points < 0 {
		g.Points = 0
	}
	g.UpdatedAt = time.Now().UTC()
}

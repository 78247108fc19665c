// Package repository provides PostgreSQL access to race cards, history,
// historical runs and payouts.
package repository

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/racemarks/internal/config"
	"github.com/yourusername/racemarks/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Race    RaceRepository
	History HistoryRepository
	Stats   StatsRepository
	Outcome OutcomeRepository
}

// NewRepositories creates the repositories, wrapping history in a cache
func NewRepositories(db *database.DB, historyCfg config.HistoryConfig) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Race:    NewPostgresRaceRepository(db),
		History: NewCachedHistoryRepository(NewPostgresHistoryRepository(db), historyCfg.CacheTTL(), historyCfg.CacheMaxItems),
		Stats:   NewPostgresStatsRepository(db),
		Outcome: NewPostgresOutcomeRepository(db),
	}, nil
}

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// leadingInt reads the integer prefix of a raw column, 0 when there is none
func leadingInt(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// firstInt reads the first run of digits, for values like "芝1600"
func firstInt(raw string) int {
	s := strings.TrimSpace(raw)
	start := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return 0
	}
	return leadingInt(s[start:])
}

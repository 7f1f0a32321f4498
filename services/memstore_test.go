package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecoTrackAPI/internal/activity"
	"ecoTrackAPI/internal/apperrors"
	"ecoTrackAPI/internal/badge"
	"ecoTrackAPI/internal/goal"
	"ecoTrackAPI/internal/stats"
)

// In-memory store implementations for unit tests. They mirror the
// guarantees of the postgres stores: GetOrInit never reports absence,
// InsertIfAbsent enforces (user, badge) uniqueness, Update on a missing
// goal reports ErrNotFound.

type memActivityStore struct {
	mu         sync.Mutex
	activities []activity.Activity
	insertErr  error
	listErr    error
}

func (m *memActivityStore) Insert(_ context.Context, a *activity.Activity) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, *a)
	return nil
}

func (m *memActivityStore) ListByUser(_ context.Context, userID string) ([]activity.Activity, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []activity.Activity{}
	for _, a := range m.activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memActivityStore) ListByUserInRange(_ context.Context, userID string, start, end time.Time) ([]activity.Activity, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []activity.Activity{}
	for _, a := range m.activities {
		if a.UserID == userID && !a.Date.Before(start) && !a.Date.After(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memActivityStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.activities {
		if a.ID == id {
			m.activities = append(m.activities[:i], m.activities[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type memStatsStore struct {
	mu        sync.Mutex
	records   map[string]*stats.UserStats
	getErr    error
	upsertErr error
}

func newMemStatsStore() *memStatsStore {
	return &memStatsStore{records: make(map[string]*stats.UserStats)}
}

func (m *memStatsStore) GetOrInit(_ context.Context, userID string) (*stats.UserStats, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.records[userID]; ok {
		return cloneStats(s), nil
	}
	return stats.New(userID, activity.Categories), nil
}

func (m *memStatsStore) Upsert(_ context.Context, s *stats.UserStats) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[s.UserID] = cloneStats(s)
	return nil
}

func cloneStats(s *stats.UserStats) *stats.UserStats {
	c := *s
	c.CategoryStats = make(map[string]int, len(s.CategoryStats))
	for k, v := range s.CategoryStats {
		c.CategoryStats[k] = v
	}
	if s.LastActivityDate != nil {
		d := *s.LastActivityDate
		c.LastActivityDate = &d
	}
	return &c
}

type memBadgeStore struct {
	mu        sync.Mutex
	badges    []badge.Badge
	insertErr error
}

func (m *memBadgeStore) InsertIfAbsent(_ context.Context, b *badge.Badge) (bool, error) {
	if m.insertErr != nil {
		return false, m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, owned := range m.badges {
		if owned.UserID == b.UserID && owned.BadgeID == b.BadgeID {
			return false, nil
		}
	}
	m.badges = append(m.badges, *b)
	return true, nil
}

func (m *memBadgeStore) ListByUser(_ context.Context, userID string) ([]badge.Badge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []badge.Badge{}
	for _, b := range m.badges {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBadgeStore) ListRecentByUser(_ context.Context, userID string, limit int) ([]badge.Badge, error) {
	all, _ := m.ListByUser(context.Background(), userID)
	sort.Slice(all, func(i, j int) bool { return all[i].EarnedDate.After(all[j].EarnedDate) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memBadgeStore) LeaderboardTop(_ context.Context, n int) ([]badge.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byUser := make(map[string]*badge.LeaderboardEntry)
	for _, b := range m.badges {
		if !b.IsVisible {
			continue
		}
		e, ok := byUser[b.UserID]
		if !ok {
			e = &badge.LeaderboardEntry{UserID: b.UserID}
			byUser[b.UserID] = e
		}
		e.BadgeCount++
		switch b.Rarity {
		case badge.RarityRare:
			e.RareCount++
		case badge.RarityEpic:
			e.EpicCount++
		case badge.RarityLegendary:
			e.LegendaryCount++
		}
	}
	out := []badge.LeaderboardEntry{}
	for _, e := range byUser {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.LegendaryCount != b.LegendaryCount {
			return a.LegendaryCount > b.LegendaryCount
		}
		if a.EpicCount != b.EpicCount {
			return a.EpicCount > b.EpicCount
		}
		if a.RareCount != b.RareCount {
			return a.RareCount > b.RareCount
		}
		return a.BadgeCount > b.BadgeCount
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (m *memBadgeStore) has(userID, badgeID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.badges {
		if b.UserID == userID && b.BadgeID == badgeID {
			return true
		}
	}
	return false
}

type memGoalStore struct {
	mu        sync.Mutex
	goals     map[uuid.UUID]*goal.Goal
	insertErr error
	updateErr error
}

func newMemGoalStore() *memGoalStore {
	return &memGoalStore{goals: make(map[uuid.UUID]*goal.Goal)}
}

func (m *memGoalStore) Insert(_ context.Context, g *goal.Goal) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *g
	m.goals[g.ID] = &copied
	return nil
}

func (m *memGoalStore) GetByID(_ context.Context, id uuid.UUID) (*goal.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (m *memGoalStore) Update(_ context.Context, g *goal.Goal) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[g.ID]; !ok {
		return apperrors.ErrNotFound
	}
	copied := *g
	m.goals[g.ID] = &copied
	return nil
}

func (m *memGoalStore) ListActiveByUser(_ context.Context, userID string) ([]goal.Goal, error) {
	return m.list(userID, false), nil
}

func (m *memGoalStore) ListArchivedByUser(_ context.Context, userID string) ([]goal.Goal, error) {
	return m.list(userID, true), nil
}

func (m *memGoalStore) list(userID string, archived bool) []goal.Goal {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []goal.Goal{}
	for _, g := range m.goals {
		if g.UserID == userID && g.IsArchived == archived {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func (m *memGoalStore) ListUsersWithActiveGoals(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	users := []string{}
	for _, g := range m.goals {
		if !g.IsArchived && !seen[g.UserID] {
			seen[g.UserID] = true
			users = append(users, g.UserID)
		}
	}
	sort.Strings(users)
	return users, nil
}

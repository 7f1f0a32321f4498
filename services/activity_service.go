package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"ecoTrackAPI/internal/activity"
	"ecoTrackAPI/internal/apperrors"
	"ecoTrackAPI/internal/badge"
	"ecoTrackAPI/internal/stats"
	"ecoTrackAPI/store"
)

type ActivityService struct {
	activityStore store.ActivityStore
	badgeService  *BadgeService
}

func NewActivityService(activityStore store.ActivityStore, badgeService *BadgeService) *ActivityService {
	return &ActivityService{
		activityStore: activityStore,
		badgeService:  badgeService,
	}
}

// CreateActivity persists the activity fact, then runs the stats/badge
// side effects. The caller always learns whether the activity itself was
// saved; a failed side effect degrades to nil stats and an empty badge
// list instead of failing the request.
func (s *ActivityService) CreateActivity(ctx context.Context, userID string, req *activity.CreateActivityRequest) (*activity.Activity, *stats.UserStats, []badge.Badge, error) {
	if userID == "" {
		return nil, nil, nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ActivityName)
	if name == "" {
		return nil, nil, nil, fmt.Errorf("%w: activity name is required", apperrors.ErrInvalidInput)
	}
	if req.Points == nil {
		return nil, nil, nil, fmt.Errorf("%w: points are required", apperrors.ErrInvalidInput)
	}

	points := *req.Points
	kind := activity.TypeNegative
	if points > 0 {
		kind = activity.TypePositive
	}

	category := req.Category
	if category == "" {
		category = activity.DefaultCategory
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	a := &activity.Activity{
		ID:           uuid.New(),
		UserID:       userID,
		ActivityName: name,
		Type:         kind,
		Points:       points,
		Category:     category,
		Date:         date,
		CreatedAt:    time.Now(),
	}

	if err := s.activityStore.Insert(ctx, a); err != nil {
		return nil, nil, nil, err
	}

	us, newBadges, err := s.badgeService.RecordActivity(ctx, userID, a)
	if err != nil {
		// The activity write is committed; report success regardless.
		log.Printf("CreateActivity: stats update failed for %s: %v", userID, err)
		return a, nil, []badge.Badge{}, nil
	}

	return a, us, newBadges, nil
}

func (s *ActivityService) GetActivities(ctx context.Context, userID string) ([]activity.Activity, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return s.activityStore.ListByUser(ctx, userID)
}

func (s *ActivityService) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	return s.activityStore.DeleteByID(ctx, id)
}

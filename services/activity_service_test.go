package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoTrackAPI/internal/activity"
	"ecoTrackAPI/internal/apperrors"
)

func newTestActivityService() (*ActivityService, *memActivityStore, *memStatsStore) {
	activityStore := &memActivityStore{}
	statsStore := newMemStatsStore()
	badgeService := NewBadgeService(statsStore, &memBadgeStore{})
	return NewActivityService(activityStore, badgeService), activityStore, statsStore
}

func intPtr(n int) *int { return &n }

func TestCreateActivityValidation(t *testing.T) {
	svc, _, _ := newTestActivityService()
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		req    *activity.CreateActivityRequest
	}{
		{"missing user", "", &activity.CreateActivityRequest{ActivityName: "biked to work", Points: intPtr(5)}},
		{"missing name", "u1", &activity.CreateActivityRequest{ActivityName: "  ", Points: intPtr(5)}},
		{"missing points", "u1", &activity.CreateActivityRequest{ActivityName: "biked to work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := svc.CreateActivity(ctx, tt.userID, tt.req)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestCreateActivityTypeFromSign(t *testing.T) {
	svc, _, _ := newTestActivityService()
	ctx := context.Background()

	a, _, _, err := svc.CreateActivity(ctx, "u1", &activity.CreateActivityRequest{ActivityName: "biked to work", Points: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, activity.TypePositive, a.Type)

	a, _, _, err = svc.CreateActivity(ctx, "u1", &activity.CreateActivityRequest{ActivityName: "drove alone", Points: intPtr(-3)})
	require.NoError(t, err)
	assert.Equal(t, activity.TypeNegative, a.Type)

	a, _, _, err = svc.CreateActivity(ctx, "u1", &activity.CreateActivityRequest{ActivityName: "neutral", Points: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, activity.TypeNegative, a.Type, "zero points count as non-positive")
}

func TestCreateActivityDefaults(t *testing.T) {
	svc, _, _ := newTestActivityService()

	before := time.Now()
	a, _, _, err := svc.CreateActivity(context.Background(), "u1", &activity.CreateActivityRequest{ActivityName: "biked to work", Points: intPtr(5)})
	require.NoError(t, err)

	assert.Equal(t, activity.DefaultCategory, a.Category)
	assert.False(t, a.Date.Before(before))
}

func TestCreateActivityReturnsStatsAndBadges(t *testing.T) {
	svc, _, _ := newTestActivityService()

	a, us, newBadges, err := svc.CreateActivity(context.Background(), "u1", &activity.CreateActivityRequest{
		ActivityName: "installed LED bulbs",
		Points:       intPtr(10),
		Category:     "Energy",
	})
	require.NoError(t, err)

	assert.Equal(t, "installed LED bulbs", a.ActivityName)
	require.NotNil(t, us)
	assert.Equal(t, 1, us.TotalActivities)
	assert.Equal(t, 10, us.TotalPoints)
	require.Len(t, newBadges, 1)
	assert.Equal(t, "first_day", newBadges[0].BadgeID)
}

func TestCreateActivitySideEffectFailureDegrades(t *testing.T) {
	svc, _, statsStore := newTestActivityService()
	statsStore.getErr = assert.AnError

	a, us, newBadges, err := svc.CreateActivity(context.Background(), "u1", &activity.CreateActivityRequest{ActivityName: "biked to work", Points: intPtr(5)})
	require.NoError(t, err, "a failed stats update must not fail the request")
	require.NotNil(t, a)
	assert.Nil(t, us)
	assert.Empty(t, newBadges)
}

func TestCreateActivityInsertFailureSurfaces(t *testing.T) {
	svc, activityStore, _ := newTestActivityService()
	activityStore.insertErr = assert.AnError

	_, _, _, err := svc.CreateActivity(context.Background(), "u1", &activity.CreateActivityRequest{ActivityName: "biked to work", Points: intPtr(5)})
	assert.Error(t, err)
}

func TestGetAndDeleteActivities(t *testing.T) {
	svc, _, _ := newTestActivityService()
	ctx := context.Background()

	a, _, _, err := svc.CreateActivity(ctx, "u1", &activity.CreateActivityRequest{ActivityName: "biked to work", Points: intPtr(5)})
	require.NoError(t, err)

	list, err := svc.GetActivities(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteActivity(ctx, a.ID))
	assert.ErrorIs(t, svc.DeleteActivity(ctx, a.ID), apperrors.ErrNotFound)

	list, err = svc.GetActivities(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

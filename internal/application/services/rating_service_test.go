package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manganova/api/internal/application/dtos"
	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/application/services"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/domain/entities"
)

func ratedTitle() *MockTitleRepository {
	return &MockTitleRepository{
		FindByIDFunc: func(ctx context.Context, id int64) (*entities.Title, error) {
			return &entities.Title{ID: id, Name: "Berserk", ContentType: entities.ContentTypeManga}, nil
		},
	}
}

func TestRatingService_Rate_Upserts(t *testing.T) {
	var stored *entities.Rating
	ratings := &MockRatingRepository{
		UpsertFunc: func(ctx context.Context, rating *entities.Rating) error {
			stored = rating
			return nil
		},
	}
	svc := services.NewRatingService(ratings, ratedTitle())

	result, err := svc.Rate(context.Background(), 7, 3, dtos.RateTitleCommand{Value: 9})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(7), stored.UserID)
	assert.Equal(t, int64(3), stored.TitleID)
	assert.Equal(t, int16(9), stored.Value)
	assert.Equal(t, int16(9), result.Value)
}

func TestRatingService_Rate_UnknownTitle(t *testing.T) {
	svc := services.NewRatingService(&MockRatingRepository{}, &MockTitleRepository{})

	_, err := svc.Rate(context.Background(), 7, 404, dtos.RateTitleCommand{Value: 9})

	require.Error(t, err)
	assert.True(t, apierrors.Is(err, "TitleNotFoundError"))
}

func TestRatingService_Summary(t *testing.T) {
	ratings := &MockRatingRepository{
		SummaryFunc: func(ctx context.Context, titleID int64) (*entities.RatingSummary, error) {
			return &entities.RatingSummary{TitleID: titleID, Average: 7.5, Count: 2}, nil
		},
	}
	svc := services.NewRatingService(ratings, ratedTitle())

	result, err := svc.Summary(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TitleID)
	assert.InDelta(t, 7.5, result.Average, 0.001)
	assert.Equal(t, int64(2), result.Count)
}

func TestRatingService_Summary_UnratedTitleIsZero(t *testing.T) {
	svc := services.NewRatingService(&MockRatingRepository{}, ratedTitle())

	result, err := svc.Summary(context.Background(), 3)

	require.NoError(t, err)
	assert.Zero(t, result.Average)
	assert.Zero(t, result.Count)
}

func TestRatingService_Delete_NotFound(t *testing.T) {
	ratings := &MockRatingRepository{
		DeleteFunc: func(ctx context.Context, userID, titleID int64) error {
			return ports.ErrNotFound
		},
	}
	svc := services.NewRatingService(ratings, ratedTitle())

	err := svc.Delete(context.Background(), 7, 3)

	require.Error(t, err)
	assert.True(t, apierrors.Is(err, "RatingNotFoundError"))
}

func TestRatingService_Delete(t *testing.T) {
	var gotUser, gotTitle int64
	ratings := &MockRatingRepository{
		DeleteFunc: func(ctx context.Context, userID, titleID int64) error {
			gotUser, gotTitle = userID, titleID
			return nil
		},
	}
	svc := services.NewRatingService(ratings, ratedTitle())

	require.NoError(t, svc.Delete(context.Background(), 7, 3))
	assert.Equal(t, int64(7), gotUser)
	assert.Equal(t, int64(3), gotTitle)
}

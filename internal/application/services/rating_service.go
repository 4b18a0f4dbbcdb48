package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/manganova/api/internal/application/dtos"
	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/domain/entities"
)

// RatingService implements per-user title scoring. A user holds at most one
// rating per title; rating again replaces the value.
type RatingService struct {
	ratings ports.RatingRepository
	titles  ports.TitleRepository
}

// NewRatingService creates a RatingService.
func NewRatingService(ratings ports.RatingRepository, titles ports.TitleRepository) *RatingService {
	return &RatingService{ratings: ratings, titles: titles}
}

// Summary returns the title's average score and vote count. An unrated
// title reports average 0 and count 0.
func (s *RatingService) Summary(ctx context.Context, titleID int64) (*dtos.RatingSummaryDTO, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	summary, err := s.ratings.Summary(ctx, titleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rating summary: %w", err)
	}

	dto := dtos.ToRatingSummaryDTO(summary)
	return &dto, nil
}

// Rate records the caller's score for a title, replacing any earlier one.
func (s *RatingService) Rate(ctx context.Context, userID, titleID int64, cmd dtos.RateTitleCommand) (*dtos.RatingDTO, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	rating := &entities.Rating{
		UserID:  userID,
		TitleID: titleID,
		Value:   cmd.Value,
	}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to store rating: %w", err)
	}

	dto := dtos.ToRatingDTO(rating)
	return &dto, nil
}

// Delete removes the caller's rating for a title.
func (s *RatingService) Delete(ctx context.Context, userID, titleID int64) error {
	if err := s.ratings.Delete(ctx, userID, titleID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return apierrors.NewRatingNotFound(apierrors.F("titleId", titleID))
		}
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	return nil
}

func (s *RatingService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return apierrors.NewTitleNotFound(apierrors.F("titleId", titleID))
		}
		return fmt.Errorf("failed to load title: %w", err)
	}
	return nil
}

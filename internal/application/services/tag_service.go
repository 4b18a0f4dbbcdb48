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

// TagService implements tag CRUD. Deletion is soft: the tag drops out of
// default listings but stays reachable by id, so existing title
// associations keep resolving.
type TagService struct {
	tags ports.TagRepository
}

// NewTagService creates a TagService.
func NewTagService(tags ports.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// Get loads a tag by id, active or not.
func (s *TagService) Get(ctx context.Context, id int64) (*dtos.TagDTO, error) {
	tag, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := dtos.ToTagDTO(tag)
	return &dto, nil
}

// List returns tags ordered by name. Inactive tags are hidden unless asked
// for.
func (s *TagService) List(ctx context.Context, query dtos.ListTagsQuery) ([]dtos.TagDTO, error) {
	tags, err := s.tags.List(ctx, query.IncludeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return dtos.ToTagDTOList(tags), nil
}

// Create adds a tag.
func (s *TagService) Create(ctx context.Context, cmd dtos.CreateTagCommand) (*dtos.TagDTO, error) {
	tag := &entities.Tag{
		Name:     cmd.Name,
		Group:    entities.TagGroup(cmd.Group),
		IsActive: true,
	}
	if err := s.tags.Save(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to save tag: %w", err)
	}

	dto := dtos.ToTagDTO(tag)
	return &dto, nil
}

// Update patches a tag. A patch with no fields set is rejected.
func (s *TagService) Update(ctx context.Context, id int64, cmd dtos.UpdateTagCommand) (*dtos.TagDTO, error) {
	if cmd.Name == nil && cmd.Group == nil {
		return nil, apierrors.NewMissingParams()
	}

	tag, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		tag.Name = *cmd.Name
	}
	if cmd.Group != nil {
		tag.Group = entities.TagGroup(*cmd.Group)
	}

	if err := s.tags.Save(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	dto := dtos.ToTagDTO(tag)
	return &dto, nil
}

// Delete soft-deletes a tag.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return apierrors.NewTagNotFound(apierrors.F("tagId", id))
		}
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

func (s *TagService) find(ctx context.Context, id int64) (*entities.Tag, error) {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apierrors.NewTagNotFound(apierrors.F("tagId", id))
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}
	return tag, nil
}

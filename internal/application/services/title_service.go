package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/manganova/api/internal/application/dtos"
	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/domain/entities"
)

// allowedCoverTypes is the MIME allow-list for cover uploads. The type is
// sniffed from the bytes, never taken from the request headers.
var allowedCoverTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// TitleService implements the catalog CRUD, tag association and cover
// uploads.
type TitleService struct {
	titles  ports.TitleRepository
	tags    ports.TagRepository
	uow     ports.UnitOfWork
	storage ports.ObjectStorage
}

// NewTitleService creates a TitleService.
func NewTitleService(
	titles ports.TitleRepository,
	tags ports.TagRepository,
	uow ports.UnitOfWork,
	storage ports.ObjectStorage,
) *TitleService {
	return &TitleService{titles: titles, tags: tags, uow: uow, storage: storage}
}

// Get loads a title with its tags.
func (s *TitleService) Get(ctx context.Context, id int64) (*dtos.TitleDTO, error) {
	title, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := dtos.ToTitleDTO(title)
	return &dto, nil
}

// List returns titles matching the query, newest first.
func (s *TitleService) List(ctx context.Context, query dtos.ListTitlesQuery) ([]dtos.TitleDTO, error) {
	filter := ports.TitleFilter{
		Name:        query.Name,
		ContentType: entities.ContentType(query.ContentType),
		IncludeTags: query.IncludeTags,
		ExcludeTags: query.ExcludeTags,
		Offset:      query.Offset,
		Limit:       query.Limit,
	}

	titles, err := s.titles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}

	return dtos.ToTitleDTOList(titles), nil
}

// Create adds a work to the catalog, optionally with initial tags. The name
// must be unused and every referenced tag must exist.
func (s *TitleService) Create(ctx context.Context, cmd dtos.CreateTitleCommand) (*dtos.TitleDTO, error) {
	var created int64

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		taken, err := s.titles.ExistsByName(txCtx, cmd.Name)
		if err != nil {
			return fmt.Errorf("failed to check title name uniqueness: %w", err)
		}
		if taken {
			return apierrors.NewTitleNameAlreadyExists(apierrors.F("titleName", cmd.Name))
		}

		if err := s.requireTags(txCtx, cmd.TagIDs); err != nil {
			return err
		}

		title := &entities.Title{
			Name:        cmd.Name,
			Description: cmd.Description,
			ReleaseDate: cmd.ReleaseDate,
			ContentType: entities.ContentType(cmd.ContentType),
		}
		if err := s.titles.Save(txCtx, title); err != nil {
			return fmt.Errorf("failed to save title: %w", err)
		}

		if len(cmd.TagIDs) > 0 {
			if err := s.titles.AddTags(txCtx, title.ID, cmd.TagIDs); err != nil {
				if errors.Is(err, ports.ErrNotFound) {
					return apierrors.NewTagNotFound()
				}
				return fmt.Errorf("failed to attach tags: %w", err)
			}
		}

		created = title.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, created)
}

// Update patches a title. A patch with no fields set is rejected.
func (s *TitleService) Update(ctx context.Context, id int64, cmd dtos.UpdateTitleCommand) (*dtos.TitleDTO, error) {
	if cmd.Name == nil && cmd.Description == nil && cmd.ReleaseDate == nil && cmd.ContentType == nil {
		return nil, apierrors.NewMissingParams()
	}

	var result *dtos.TitleDTO

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		title, err := s.find(txCtx, id)
		if err != nil {
			return err
		}

		if cmd.Name != nil && *cmd.Name != title.Name {
			taken, err := s.titles.ExistsByName(txCtx, *cmd.Name)
			if err != nil {
				return fmt.Errorf("failed to check title name uniqueness: %w", err)
			}
			if taken {
				return apierrors.NewTitleNameAlreadyExists(apierrors.F("titleName", *cmd.Name))
			}
			title.Name = *cmd.Name
		}
		if cmd.Description != nil {
			title.Description = cmd.Description
		}
		if cmd.ReleaseDate != nil {
			title.ReleaseDate = cmd.ReleaseDate
		}
		if cmd.ContentType != nil {
			title.ContentType = entities.ContentType(*cmd.ContentType)
		}

		if err := s.titles.Save(txCtx, title); err != nil {
			return fmt.Errorf("failed to update title: %w", err)
		}

		dto := dtos.ToTitleDTO(title)
		result = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes a title. Tag associations and ratings cascade.
func (s *TitleService) Delete(ctx context.Context, id int64) error {
	if err := s.titles.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return apierrors.NewTitleNotFound(apierrors.F("titleId", id))
		}
		return fmt.Errorf("failed to delete title: %w", err)
	}
	return nil
}

// AddTags associates tags with a title. Already-associated tags are
// skipped.
func (s *TitleService) AddTags(ctx context.Context, id int64, cmd dtos.ModifyTitleTagsCommand) (*dtos.TitleDTO, error) {
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		if _, err := s.find(txCtx, id); err != nil {
			return err
		}
		if err := s.requireTags(txCtx, cmd.TagIDs); err != nil {
			return err
		}
		if err := s.titles.AddTags(txCtx, id, cmd.TagIDs); err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return apierrors.NewTagNotFound()
			}
			return fmt.Errorf("failed to attach tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// RemoveTags drops tag associations from a title. Absent associations are
// skipped.
func (s *TitleService) RemoveTags(ctx context.Context, id int64, cmd dtos.ModifyTitleTagsCommand) (*dtos.TitleDTO, error) {
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		if _, err := s.find(txCtx, id); err != nil {
			return err
		}
		if err := s.titles.RemoveTags(txCtx, id, cmd.TagIDs); err != nil {
			return fmt.Errorf("failed to detach tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// UploadCover stores a cover image for the title and records its storage
// key. The content type is sniffed from the upload bytes and must be on the
// image allow-list.
func (s *TitleService) UploadCover(ctx context.Context, id int64, data []byte) (*dtos.TitleDTO, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	mtype := mimetype.Detect(data)
	if _, ok := allowedCoverTypes[mtype.String()]; !ok {
		return nil, apierrors.NewInvalidMimeType(apierrors.F("mimeType", mtype.String()))
	}

	key := fmt.Sprintf("covers/%d%s", id, mtype.Extension())
	if err := s.storage.Put(ctx, key, data, mtype.String()); err != nil {
		return nil, fmt.Errorf("failed to store cover: %w", err)
	}

	if err := s.titles.SetCover(ctx, id, key); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apierrors.NewTitleNotFound(apierrors.F("titleId", id))
		}
		return nil, fmt.Errorf("failed to record cover: %w", err)
	}

	return s.Get(ctx, id)
}

// find loads a title or reports TitleNotFoundError.
func (s *TitleService) find(ctx context.Context, id int64) (*entities.Title, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apierrors.NewTitleNotFound(apierrors.F("titleId", id))
		}
		return nil, fmt.Errorf("failed to load title: %w", err)
	}
	return title, nil
}

// requireTags verifies every referenced tag exists.
func (s *TitleService) requireTags(ctx context.Context, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := s.tags.FindByID(ctx, tagID); err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return apierrors.NewTagNotFound(apierrors.F("tagId", tagID))
			}
			return fmt.Errorf("failed to load tag: %w", err)
		}
	}
	return nil
}

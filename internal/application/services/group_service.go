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

// GroupService implements groups, memberships and following. Follow and
// unfollow are idempotent, so repeating either changes nothing.
type GroupService struct {
	groups ports.GroupRepository
	uow    ports.UnitOfWork
}

// NewGroupService creates a GroupService.
func NewGroupService(groups ports.GroupRepository, uow ports.UnitOfWork) *GroupService {
	return &GroupService{groups: groups, uow: uow}
}

// Get loads a group with its follower count.
func (s *GroupService) Get(ctx context.Context, id int64) (*dtos.GroupDTO, error) {
	group, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := dtos.ToGroupDTO(group)
	return &dto, nil
}

// List returns groups ordered by name, optionally filtered by a name
// substring.
func (s *GroupService) List(ctx context.Context, name string) ([]dtos.GroupDTO, error) {
	groups, err := s.groups.List(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	result := make([]dtos.GroupDTO, len(groups))
	for i, group := range groups {
		result[i] = dtos.ToGroupDTO(group)
	}
	return result, nil
}

// Create stores the caller's group. The name must be unused; the one-group-
// per-owner rule is enforced by the schema.
func (s *GroupService) Create(ctx context.Context, ownerID int64, cmd dtos.CreateGroupCommand) (*dtos.GroupDTO, error) {
	var result *dtos.GroupDTO

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		taken, err := s.groups.ExistsByName(txCtx, cmd.Name)
		if err != nil {
			return fmt.Errorf("failed to check group name uniqueness: %w", err)
		}
		if taken {
			return apierrors.NewGroupNameAlreadyExists(apierrors.F("groupName", cmd.Name))
		}

		group := &entities.Group{
			Name:        cmd.Name,
			Description: cmd.Description,
			OwnerID:     ownerID,
		}
		if err := s.groups.Save(txCtx, group); err != nil {
			return fmt.Errorf("failed to save group: %w", err)
		}

		dto := dtos.ToGroupDTO(group)
		result = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Members returns the group's members ordered by username.
func (s *GroupService) Members(ctx context.Context, id int64) ([]dtos.UserDTO, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	members, err := s.groups.Members(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return dtos.ToUserDTOList(members), nil
}

// IsFollowing reports whether the user follows the group.
func (s *GroupService) IsFollowing(ctx context.Context, groupID, userID int64) (bool, error) {
	if _, err := s.find(ctx, groupID); err != nil {
		return false, err
	}

	following, err := s.groups.IsFollowing(ctx, groupID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow state: %w", err)
	}
	return following, nil
}

// Follow subscribes the user to the group. Following twice is a no-op.
func (s *GroupService) Follow(ctx context.Context, groupID, userID int64) error {
	if _, err := s.find(ctx, groupID); err != nil {
		return err
	}

	if err := s.groups.Follow(ctx, groupID, userID); err != nil {
		return fmt.Errorf("failed to follow group: %w", err)
	}
	return nil
}

// Unfollow removes the user's subscription. Unfollowing when not following
// is a no-op.
func (s *GroupService) Unfollow(ctx context.Context, groupID, userID int64) error {
	if _, err := s.find(ctx, groupID); err != nil {
		return err
	}

	if err := s.groups.Unfollow(ctx, groupID, userID); err != nil {
		return fmt.Errorf("failed to unfollow group: %w", err)
	}
	return nil
}

func (s *GroupService) find(ctx context.Context, id int64) (*entities.Group, error) {
	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apierrors.NewGroupNotFound(apierrors.F("groupId", id))
		}
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	return group, nil
}

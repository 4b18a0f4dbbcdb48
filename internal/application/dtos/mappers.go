package dtos

import "github.com/manganova/api/internal/domain/entities"

// ToUserDTO converts a User entity to its API representation.
func ToUserDTO(user *entities.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserDTOList converts a list of users.
func ToUserDTOList(users []*entities.User) []UserDTO {
	result := make([]UserDTO, len(users))
	for i, user := range users {
		result[i] = ToUserDTO(user)
	}
	return result
}

// ToTagDTO converts a Tag entity to its API representation.
func ToTagDTO(tag *entities.Tag) TagDTO {
	return TagDTO{
		ID:        tag.ID,
		Name:      tag.Name,
		Group:     string(tag.Group),
		IsActive:  tag.IsActive,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}

// ToTagDTOList converts a list of tags.
func ToTagDTOList(tags []*entities.Tag) []TagDTO {
	result := make([]TagDTO, len(tags))
	for i, tag := range tags {
		result[i] = ToTagDTO(tag)
	}
	return result
}

// ToTitleDTO converts a Title entity to its API representation. Tags come
// back as an empty array, never null.
func ToTitleDTO(title *entities.Title) TitleDTO {
	tags := make([]TagDTO, len(title.Tags))
	for i := range title.Tags {
		tags[i] = ToTagDTO(&title.Tags[i])
	}

	return TitleDTO{
		ID:          title.ID,
		Name:        title.Name,
		Description: title.Description,
		ReleaseDate: title.ReleaseDate,
		ContentType: string(title.ContentType),
		CoverKey:    title.CoverKey,
		Tags:        tags,
		CreatedAt:   title.CreatedAt,
		UpdatedAt:   title.UpdatedAt,
	}
}

// ToTitleDTOList converts a list of titles.
func ToTitleDTOList(titles []*entities.Title) []TitleDTO {
	result := make([]TitleDTO, len(titles))
	for i, title := range titles {
		result[i] = ToTitleDTO(title)
	}
	return result
}

// ToRatingDTO converts a Rating entity to its API representation.
func ToRatingDTO(rating *entities.Rating) RatingDTO {
	return RatingDTO{
		UserID:    rating.UserID,
		TitleID:   rating.TitleID,
		Value:     rating.Value,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

// ToRatingSummaryDTO converts a rating aggregate.
func ToRatingSummaryDTO(summary *entities.RatingSummary) RatingSummaryDTO {
	return RatingSummaryDTO{
		TitleID: summary.TitleID,
		Average: summary.Average,
		Count:   summary.Count,
	}
}

// ToGroupDTO converts a Group entity to its API representation.
func ToGroupDTO(group *entities.Group) GroupDTO {
	return GroupDTO{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		OwnerID:     group.OwnerID,
		Followers:   group.Followers,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
}

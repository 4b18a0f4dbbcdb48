package dtos

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manganova/api/internal/domain/entities"
)

func TestToUserDTO_OmitsPasswordHash(t *testing.T) {
	now := time.Now().UTC()
	user := &entities.User{
		ID:        1,
		CreatedAt: now,
		UpdatedAt: now,
		Username:  "reader",
		Email:     "reader@example.com",
		Password:  "$argon2id$secret",
	}

	dto := ToUserDTO(user)

	assert.Equal(t, int64(1), dto.ID)
	assert.Equal(t, "reader", dto.Username)
	assert.Equal(t, "reader@example.com", dto.Email)

	body, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "argon2id")
	assert.NotContains(t, string(body), "password")
}

func TestToTitleDTO_TagsNeverNull(t *testing.T) {
	title := &entities.Title{ID: 3, Name: "Berserk", ContentType: entities.ContentTypeManga}

	dto := ToTitleDTO(title)

	require.NotNil(t, dto.Tags)
	assert.Empty(t, dto.Tags)

	body, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"tags":[]`)
}

func TestToTitleDTO_CarriesTags(t *testing.T) {
	title := &entities.Title{
		ID:          3,
		Name:        "Berserk",
		ContentType: entities.ContentTypeManga,
		Tags: []entities.Tag{
			{ID: 1, Name: "Action", Group: entities.TagGroupGenre, IsActive: true},
			{ID: 2, Name: "Seinen", Group: entities.TagGroupTheme, IsActive: true},
		},
	}

	dto := ToTitleDTO(title)

	require.Len(t, dto.Tags, 2)
	assert.Equal(t, "Action", dto.Tags[0].Name)
	assert.Equal(t, "GENRE", dto.Tags[0].Group)
}

func TestToRatingSummaryDTO(t *testing.T) {
	dto := ToRatingSummaryDTO(&entities.RatingSummary{TitleID: 9, Average: 7.5, Count: 2})

	assert.Equal(t, int64(9), dto.TitleID)
	assert.InDelta(t, 7.5, dto.Average, 0.001)
	assert.Equal(t, int64(2), dto.Count)
}

func TestToGroupDTO(t *testing.T) {
	desc := "scanlation crew"
	group := &entities.Group{ID: 4, Name: "Scanlators", Description: &desc, OwnerID: 7, Followers: 12}

	dto := ToGroupDTO(group)

	assert.Equal(t, int64(4), dto.ID)
	assert.Equal(t, "Scanlators", dto.Name)
	require.NotNil(t, dto.Description)
	assert.Equal(t, desc, *dto.Description)
	assert.Equal(t, int64(7), dto.OwnerID)
	assert.Equal(t, int64(12), dto.Followers)
}

func TestToUserDTOList(t *testing.T) {
	users := []*entities.User{
		{ID: 1, Username: "a"},
		{ID: 2, Username: "b"},
	}

	list := ToUserDTOList(users)

	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Username)
	assert.Equal(t, "b", list[1].Username)
}

package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petmeet/petmeet/models"
)

func TestCanEditUser(t *testing.T) {
	alice := &models.User{ID: 1}
	bob := &models.User{ID: 2}

	assert.NoError(t, CanEditUser(alice, alice))
	assert.ErrorIs(t, CanEditUser(alice, bob), ErrForbidden)
	assert.ErrorIs(t, CanEditUser(nil, bob), ErrForbidden)
	assert.ErrorIs(t, CanEditUser(&models.User{}, &models.User{}), ErrForbidden)
}

func TestCanEditGroup(t *testing.T) {
	g := &models.Group{ID: 10, CreatorID: 1}

	assert.NoError(t, CanEditGroup(&models.User{ID: 1}, g))

	err := CanEditGroup(&models.User{ID: 2}, g)
	assert.ErrorIs(t, err, ErrNotGroupOwner)
	assert.Equal(t, "You are not the owner of the group", err.Error())
	assert.ErrorIs(t, CanEditGroup(nil, g), ErrNotGroupOwner)
}

func TestOwnedResources(t *testing.T) {
	owner := &models.User{ID: 1}
	stranger := &models.User{ID: 2}
	uid := uint(1)

	cases := []struct {
		name     string
		check    func(*models.User) error
		resource string
	}{
		{"post", func(u *models.User) error { return CanEditPost(u, &models.Post{UserID: 1}) }, "post"},
		{"meeting", func(u *models.User) error { return CanEditMeeting(u, &models.Meeting{CreatorID: 1}) }, "meeting"},
		{"comment", func(u *models.User) error { return CanEditComment(u, &models.Comment{UserID: &uid}) }, "comment"},
		{"animal", func(u *models.User) error { return CanEditAnimal(u, &models.Animal{UserID: 1}) }, "animal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, tc.check(owner))

			err := tc.check(stranger)
			assert.ErrorIs(t, err, ErrNotOwner)
			var noe *NotOwnerError
			if assert.True(t, errors.As(err, &noe)) {
				assert.Equal(t, tc.resource, noe.Resource)
			}
			assert.Equal(t, "You are not the owner of the "+tc.resource, err.Error())

			assert.ErrorIs(t, tc.check(nil), ErrNotOwner)
		})
	}
}

func TestCanEditComment_DetachedAuthor(t *testing.T) {
	assert.ErrorIs(t, CanEditComment(&models.User{ID: 1}, &models.Comment{}), ErrNotOwner)
}

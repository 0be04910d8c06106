// Package policy holds the ownership predicates applied before any mutation.
package policy

import (
	"errors"

	"github.com/petmeet/petmeet/models"
)

var (
	// ErrForbidden is returned when a user tries to modify another user's profile.
	ErrForbidden = errors.New("forbidden")
	// ErrNotGroupOwner is returned when someone other than the creator edits a group.
	ErrNotGroupOwner = errors.New("You are not the owner of the group")
	// ErrNotOwner matches every NotOwnerError through errors.Is.
	ErrNotOwner = errors.New("not the owner")
)

// NotOwnerError names the resource the principal does not own.
type NotOwnerError struct {
	Resource string
}

func (e *NotOwnerError) Error() string {
	return "You are not the owner of the " + e.Resource
}

func (e *NotOwnerError) Is(target error) bool {
	return target == ErrNotOwner
}

func notOwner(resource string) error {
	return &NotOwnerError{Resource: resource}
}

func sameUser(principal *models.User, id uint) bool {
	return principal != nil && principal.ID != 0 && principal.ID == id
}

// CanEditUser allows a user to modify only their own record.
func CanEditUser(principal, target *models.User) error {
	if target == nil || !sameUser(principal, target.ID) {
		return ErrForbidden
	}
	return nil
}

// CanEditGroup allows only the creator to rename or delete a group.
func CanEditGroup(principal *models.User, g *models.Group) error {
	if principal == nil || !g.IsCreatedBy(principal.ID) {
		return ErrNotGroupOwner
	}
	return nil
}

// CanEditPost allows only the post author.
func CanEditPost(principal *models.User, p *models.Post) error {
	if !sameUser(principal, p.UserID) {
		return notOwner("post")
	}
	return nil
}

// CanEditMeeting allows only the meeting creator.
func CanEditMeeting(principal *models.User, m *models.Meeting) error {
	if !sameUser(principal, m.CreatorID) {
		return notOwner("meeting")
	}
	return nil
}

// CanEditComment rejects comments whose author was detached.
func CanEditComment(principal *models.User, c *models.Comment) error {
	if principal == nil || !c.IsWrittenBy(principal.ID) {
		return notOwner("comment")
	}
	return nil
}

// CanEditAnimal allows only the animal owner.
func CanEditAnimal(principal *models.User, a *models.Animal) error {
	if !sameUser(principal, a.UserID) {
		return notOwner("animal")
	}
	return nil
}

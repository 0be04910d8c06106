// Package serializers turns models into the JSON shapes returned by the API.
// Nested shapes embed at most a UserNested; index and detail shapes build on them.
package serializers

import (
	"time"

	"github.com/petmeet/petmeet/models"
)

type UserNested struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AnimalNested struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Breed *string `json:"breed"`
	Type  string  `json:"type"`
}

type GroupNested struct {
	ID      uint        `json:"id"`
	Name    string      `json:"name"`
	Creator *UserNested `json:"creator"`
	City    string      `json:"city"`
}

type MeetingNested struct {
	ID       uint        `json:"id"`
	Title    string      `json:"title"`
	Location string      `json:"location"`
	Time     time.Time   `json:"time"`
	Creator  *UserNested `json:"creator"`
}

type PostNested struct {
	ID    uint        `json:"id"`
	Title string      `json:"title"`
	User  *UserNested `json:"user"`
}

type CommentNested struct {
	ID     uint        `json:"id"`
	Text   string      `json:"text"`
	Rating *string     `json:"rating"`
	User   *UserNested `json:"user"`
}

// NewUserNested returns nil for a missing relation so it encodes as null.
func NewUserNested(u *models.User) *UserNested {
	if u == nil {
		return nil
	}
	return &UserNested{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}

// NewAnimalNested shapes an animal for embedding.
func NewAnimalNested(a *models.Animal) AnimalNested {
	return AnimalNested{ID: a.ID, Name: a.Name, Breed: a.Breed, Type: a.Type}
}

// NewGroupNested shapes a group for embedding; nil stays nil.
func NewGroupNested(g *models.Group) *GroupNested {
	if g == nil {
		return nil
	}
	return &GroupNested{ID: g.ID, Name: g.Name, Creator: NewUserNested(g.Creator), City: g.City}
}

// NewMeetingNested shapes a meeting for embedding.
func NewMeetingNested(m *models.Meeting) MeetingNested {
	return MeetingNested{ID: m.ID, Title: m.Title, Location: m.Location, Time: m.Time, Creator: NewUserNested(m.Creator)}
}

// NewPostNested shapes a post for embedding; nil stays nil.
func NewPostNested(p *models.Post) *PostNested {
	if p == nil {
		return nil
	}
	return &PostNested{ID: p.ID, Title: p.Title, User: NewUserNested(p.User)}
}

// NewCommentNested shapes a comment for embedding.
func NewCommentNested(c *models.Comment) CommentNested {
	return CommentNested{ID: c.ID, Text: c.Text, Rating: c.Rating, User: NewUserNested(c.User)}
}

// mapSlice always returns a non-nil slice so empty lists encode as [].
func mapSlice[M any, S any](items []M, fn func(*M) S) []S {
	out := make([]S, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}

func usersNested(users []models.User) []UserNested {
	return mapSlice(users, func(u *models.User) UserNested { return *NewUserNested(u) })
}

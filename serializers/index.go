package serializers

import (
	"time"

	"github.com/petmeet/petmeet/models"
)

// Index shapes are used by list endpoints and create responses.
type (
	UserIndex    = UserNested
	GroupIndex   = GroupNested
	CommentIndex = CommentNested
	AnimalIndex  = AnimalNested
)

type MeetingIndex struct {
	ID       uint        `json:"id"`
	Title    string      `json:"title"`
	Time     time.Time   `json:"time"`
	Location string      `json:"location"`
	Creator  *UserNested `json:"creator"`
}

type PostIndex struct {
	ID    uint        `json:"id"`
	Title string      `json:"title"`
	Text  string      `json:"text"`
	User  *UserNested `json:"user"`
}

// NewUserIndex is the list shape of a user.
func NewUserIndex(u *models.User) UserIndex { return *NewUserNested(u) }

// NewGroupIndex is the list shape of a group.
func NewGroupIndex(g *models.Group) GroupIndex { return *NewGroupNested(g) }

// NewMeetingIndex is the list shape of a meeting.
func NewMeetingIndex(m *models.Meeting) MeetingIndex {
	return MeetingIndex{ID: m.ID, Title: m.Title, Time: m.Time, Location: m.Location, Creator: NewUserNested(m.Creator)}
}

// NewPostIndex is the list shape of a post.
func NewPostIndex(p *models.Post) PostIndex {
	return PostIndex{ID: p.ID, Title: p.Title, Text: p.Text, User: NewUserNested(p.User)}
}

// NewCommentIndex is the list shape of a comment.
func NewCommentIndex(c *models.Comment) CommentIndex { return NewCommentNested(c) }

// NewAnimalIndex is the list shape of an animal.
func NewAnimalIndex(a *models.Animal) AnimalIndex { return NewAnimalNested(a) }

// UserIndexList shapes a page of users.
func UserIndexList(users []models.User) []UserIndex {
	return mapSlice(users, NewUserIndex)
}

// GroupIndexList shapes a page of groups.
func GroupIndexList(groups []models.Group) []GroupIndex {
	return mapSlice(groups, NewGroupIndex)
}

// MeetingIndexList shapes a page of meetings.
func MeetingIndexList(meetings []models.Meeting) []MeetingIndex {
	return mapSlice(meetings, NewMeetingIndex)
}

// PostIndexList shapes a page of posts.
func PostIndexList(posts []models.Post) []PostIndex {
	return mapSlice(posts, NewPostIndex)
}

// CommentIndexList shapes a page of comments.
func CommentIndexList(comments []models.Comment) []CommentIndex {
	return mapSlice(comments, NewCommentIndex)
}

// AnimalIndexList shapes a page of animals.
func AnimalIndexList(animals []models.Animal) []AnimalIndex {
	return mapSlice(animals, NewAnimalIndex)
}

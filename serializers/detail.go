package serializers

import (
	"time"

	"github.com/petmeet/petmeet/models"
)

type UserDetail struct {
	ID                uint            `json:"id"`
	Email             string          `json:"email"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	AddressStreet     *string         `json:"address_street"`
	AddressCity       *string         `json:"address_city"`
	AddressCountry    *string         `json:"address_country"`
	PhoneNumber       *string         `json:"phone_number"`
	Bio               *string         `json:"bio"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Animals           []AnimalNested  `json:"animals"`
	CreatedGroups     []GroupNested   `json:"created_groups"`
	AttendingMeetings []MeetingNested `json:"attending_meetings"`
}

type GroupDetail struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	City      string          `json:"city"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Creator   *UserNested     `json:"creator"`
	Posts     []PostNested    `json:"posts"`
	Meetings  []MeetingNested `json:"meetings"`
}

type MeetingDetail struct {
	ID        uint         `json:"id"`
	Title     string       `json:"title"`
	Location  string       `json:"location"`
	Time      time.Time    `json:"time"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Group     *GroupNested `json:"group"`
	Creator   *UserNested  `json:"creator"`
	Attendees []UserNested `json:"attendees"`
}

type PostDetail struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	User      *UserNested     `json:"user"`
	Group     *GroupNested    `json:"group"`
	Comments  []CommentNested `json:"comments"`
}

type CommentDetail struct {
	ID        uint        `json:"id"`
	Text      string      `json:"text"`
	Rating    *string     `json:"rating"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	User      *UserNested `json:"user"`
	Post      *PostNested `json:"post"`
}

type AnimalDetail struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Breed     *string     `json:"breed"`
	Type      string      `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	User      *UserNested `json:"user"`
}

// NewUserDetail expects Animals, CreatedGroups and AttendingMeetings preloaded.
func NewUserDetail(u *models.User) UserDetail {
	return UserDetail{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		AddressStreet:     u.AddressStreet,
		AddressCity:       u.AddressCity,
		AddressCountry:    u.AddressCountry,
		PhoneNumber:       u.PhoneNumber,
		Bio:               u.Bio,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
		Animals:           mapSlice(u.Animals, NewAnimalNested),
		CreatedGroups:     mapSlice(u.CreatedGroups, func(g *models.Group) GroupNested { return *NewGroupNested(g) }),
		AttendingMeetings: mapSlice(u.AttendingMeetings, NewMeetingNested),
	}
}

// NewGroupDetail expects Creator, Posts and Meetings preloaded.
func NewGroupDetail(g *models.Group) GroupDetail {
	return GroupDetail{
		ID:        g.ID,
		Name:      g.Name,
		City:      g.City,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
		Creator:   NewUserNested(g.Creator),
		Posts:     mapSlice(g.Posts, func(p *models.Post) PostNested { return *NewPostNested(p) }),
		Meetings:  mapSlice(g.Meetings, NewMeetingNested),
	}
}

// NewMeetingDetail expects Group, Creator and Attendees preloaded.
func NewMeetingDetail(m *models.Meeting) MeetingDetail {
	return MeetingDetail{
		ID:        m.ID,
		Title:     m.Title,
		Location:  m.Location,
		Time:      m.Time,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Group:     NewGroupNested(m.Group),
		Creator:   NewUserNested(m.Creator),
		Attendees: usersNested(m.Attendees),
	}
}

// NewPostDetail expects User, Group and Comments preloaded.
func NewPostDetail(p *models.Post) PostDetail {
	return PostDetail{
		ID:        p.ID,
		Title:     p.Title,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		User:      NewUserNested(p.User),
		Group:     NewGroupNested(p.Group),
		Comments:  mapSlice(p.Comments, NewCommentNested),
	}
}

// NewCommentDetail expects User and Post preloaded.
func NewCommentDetail(c *models.Comment) CommentDetail {
	return CommentDetail{
		ID:        c.ID,
		Text:      c.Text,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		User:      NewUserNested(c.User),
		Post:      NewPostNested(c.Post),
	}
}

// NewAnimalDetail shapes an animal with its owner.
func NewAnimalDetail(a *models.Animal) AnimalDetail {
	return AnimalDetail{
		ID:        a.ID,
		Name:      a.Name,
		Breed:     a.Breed,
		Type:      a.Type,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		User:      NewUserNested(a.User),
	}
}

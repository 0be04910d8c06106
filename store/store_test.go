package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petmeet/petmeet/models"
	"github.com/petmeet/petmeet/store"
	"github.com/petmeet/petmeet/store/storetest"
)

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(storetest.NewDB(t))
}

func mustUser(t *testing.T, s *store.Store, email string) *models.User {
	t.Helper()
	u := &models.User{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "First",
		LastName:     "Last",
		AddressCity:  strPtr("Rome"),
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func mustGroup(t *testing.T, s *store.Store, creator *models.User, name string) *models.Group {
	t.Helper()
	g := &models.Group{Name: name, City: "Rome", CreatorID: creator.ID}
	require.NoError(t, s.CreateGroup(context.Background(), g))
	return g
}

func mustPost(t *testing.T, s *store.Store, author *models.User, g *models.Group) *models.Post {
	t.Helper()
	p := &models.Post{Title: "Walk", Text: "Anyone?", UserID: author.ID, GroupID: g.ID}
	require.NoError(t, s.CreatePost(context.Background(), p))
	return p
}

func mustMeeting(t *testing.T, s *store.Store, creator *models.User, g *models.Group) *models.Meeting {
	t.Helper()
	m := &models.Meeting{Title: "Park", Location: "Villa Borghese", Time: time.Now().Add(24 * time.Hour), GroupID: g.ID, CreatorID: creator.ID}
	require.NoError(t, s.CreateMeeting(context.Background(), m))
	return m
}

func mustComment(t *testing.T, s *store.Store, author *models.User, p *models.Post) *models.Comment {
	t.Helper()
	c := &models.Comment{Text: "Yes", Rating: strPtr("5"), PostID: uintPtr(p.ID), UserID: uintPtr(author.ID)}
	require.NoError(t, s.CreateComment(context.Background(), c))
	return c
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	mustUser(t, s, "a@x.com")

	dup := &models.User{Email: "A@x.com ", PasswordHash: "h", FirstName: "B", LastName: "B"}
	err := s.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	users, total, err := s.ListUsers(ctx, store.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, users, 1)
}

func TestCreateUser_ConcurrentDuplicates(t *testing.T) {
	const attempts = 8
	s := store.New(storetest.NewFileDB(t, attempts))
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		start     = make(chan struct{})
		succeeded int
		dupes     int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			u := &models.User{Email: "race@x.com", PasswordHash: "h", FirstName: fmt.Sprint(i), LastName: "L"}
			err := s.CreateUser(ctx, u)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, store.ErrDuplicateEmail):
				dupes++
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, dupes)
}

func TestGet_NotFound(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.GetUser(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetGroup(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.LoadPostDetail(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetMeeting(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetComment(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetAnimal(ctx, 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteGroup(ctx, 42), store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteComment(ctx, 42), store.ErrNotFound)
}

func TestDeleteGroup_Cascades(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	owner := mustUser(t, s, "owner@x.com")
	other := mustUser(t, s, "other@x.com")
	g := mustGroup(t, s, owner, "Dogs")
	keep := mustGroup(t, s, owner, "Cats")

	p := mustPost(t, s, other, g)
	c := mustComment(t, s, owner, p)
	m := mustMeeting(t, s, owner, g)
	require.NoError(t, s.AddAttendee(ctx, m.ID, other.ID))
	kept := mustPost(t, s, other, keep)

	require.NoError(t, s.DeleteGroup(ctx, g.ID))

	_, err := s.GetGroup(ctx, g.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetPost(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetComment(ctx, c.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetMeeting(ctx, m.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	var attendance int64
	require.NoError(t, s.DB().Model(&models.MeetingAttendee{}).Where("meeting_id = ?", m.ID).Count(&attendance).Error)
	assert.Zero(t, attendance)

	_, err = s.GetPost(ctx, kept.ID)
	assert.NoError(t, err)
	_, err = s.GetUser(ctx, other.ID)
	assert.NoError(t, err)
}

func TestDeleteUser_Cascades(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	gone := mustUser(t, s, "gone@x.com")
	stays := mustUser(t, s, "stays@x.com")

	ownGroup := mustGroup(t, s, gone, "Mine")
	foreignGroup := mustGroup(t, s, stays, "Theirs")

	postInOwnGroup := mustPost(t, s, stays, ownGroup)
	ownPost := mustPost(t, s, gone, foreignGroup)
	foreignPost := mustPost(t, s, stays, foreignGroup)
	commentOnOwnPost := mustComment(t, s, stays, ownPost)
	ownComment := mustComment(t, s, gone, foreignPost)

	ownMeeting := mustMeeting(t, s, gone, foreignGroup)
	foreignMeeting := mustMeeting(t, s, stays, foreignGroup)
	require.NoError(t, s.AddAttendee(ctx, foreignMeeting.ID, gone.ID))

	pet := &models.Animal{Name: "Rex", Type: models.AnimalTypeDog, UserID: gone.ID}
	require.NoError(t, s.CreateAnimal(ctx, pet))

	require.NoError(t, s.DeleteUser(ctx, gone.ID))

	for _, check := range []func() error{
		func() error { _, err := s.GetGroup(ctx, ownGroup.ID); return err },
		func() error { _, err := s.GetPost(ctx, postInOwnGroup.ID); return err },
		func() error { _, err := s.GetPost(ctx, ownPost.ID); return err },
		func() error { _, err := s.GetComment(ctx, commentOnOwnPost.ID); return err },
		func() error { _, err := s.GetComment(ctx, ownComment.ID); return err },
		func() error { _, err := s.GetMeeting(ctx, ownMeeting.ID); return err },
		func() error { _, err := s.GetAnimal(ctx, pet.ID); return err },
	} {
		assert.ErrorIs(t, check(), store.ErrNotFound)
	}

	_, err := s.GetPost(ctx, foreignPost.ID)
	assert.NoError(t, err)
	detail, err := s.LoadMeetingDetail(ctx, foreignMeeting.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Attendees)
}

func TestAttendance_Idempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "u@x.com")
	g := mustGroup(t, s, u, "Dogs")
	m := mustMeeting(t, s, u, g)

	require.NoError(t, s.AddAttendee(ctx, m.ID, u.ID))
	assert.ErrorIs(t, s.AddAttendee(ctx, m.ID, u.ID), store.ErrAlreadyAttending)

	detail, err := s.LoadMeetingDetail(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, detail.Attendees, 1)
	assert.Equal(t, u.ID, detail.Attendees[0].ID)

	require.NoError(t, s.RemoveAttendee(ctx, m.ID, u.ID))
	assert.ErrorIs(t, s.RemoveAttendee(ctx, m.ID, u.ID), store.ErrNotAttending)

	detail, err = s.LoadMeetingDetail(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Attendees)
}

func TestListGroups_CityFilterAndOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "u@x.com")
	first := mustGroup(t, s, u, "First")
	milan := &models.Group{Name: "North", City: "Milan", CreatorID: u.ID}
	require.NoError(t, s.CreateGroup(ctx, milan))
	second := mustGroup(t, s, u, "Second")

	all, total, err := s.ListGroups(ctx, nil, store.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[2].ID)
	require.NotNil(t, all[0].Creator)
	assert.Equal(t, u.ID, all[0].Creator.ID)

	rome, total, err := s.ListGroups(ctx, strPtr("Rome"), store.Page{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rome, 1)
	assert.Equal(t, second.ID, rome[0].ID)
}

func TestLoadUserDetail(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "u@x.com")
	g := mustGroup(t, s, u, "Dogs")
	m := mustMeeting(t, s, u, g)
	require.NoError(t, s.AddAttendee(ctx, m.ID, u.ID))
	require.NoError(t, s.CreateAnimal(ctx, &models.Animal{Name: "Tom", Type: models.AnimalTypeCat, UserID: u.ID}))

	detail, err := s.LoadUserDetail(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, detail.Animals, 1)
	require.Len(t, detail.CreatedGroups, 1)
	require.Len(t, detail.AttendingMeetings, 1)
	assert.Equal(t, u.ID, detail.CreatedGroups[0].Creator.ID)
	assert.Equal(t, u.ID, detail.AttendingMeetings[0].Creator.ID)
}

func TestUpdatePost_OverwritesFields(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "u@x.com")
	g := mustGroup(t, s, u, "Dogs")
	p := mustPost(t, s, u, g)
	before := p.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	p.Title = "Changed"
	p.Text = "New text"
	require.NoError(t, s.UpdatePost(ctx, p))

	got, err := s.LoadPostDetail(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", got.Title)
	assert.Equal(t, "New text", got.Text)
	assert.True(t, got.UpdatedAt.After(before))
	assert.Equal(t, g.ID, got.Group.ID)
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petmeet/petmeet/models"
	"github.com/petmeet/petmeet/policy"
	"github.com/petmeet/petmeet/serializers"
	"github.com/petmeet/petmeet/store"
	"github.com/petmeet/petmeet/utils"
)

// MeetingController handles meetings inside groups and attendance.
type MeetingController struct {
	store *store.Store
	pager Paginator
}

// NewMeetingController builds the meeting handlers.
func NewMeetingController(s *store.Store, pager Paginator) *MeetingController {
	return &MeetingController{store: s, pager: pager}
}

type createMeetingRequest struct {
	Title    string    `json:"title" binding:"required,max=80"`
	Location string    `json:"location" binding:"required,max=100"`
	Time     time.Time `json:"time" binding:"required"`
}

type updateMeetingRequest struct {
	Title    *string    `json:"title" binding:"omitempty,min=1,max=80"`
	Location *string    `json:"location" binding:"omitempty,min=1,max=100"`
	Time     *time.Time `json:"time"`
}

// ListMeetings lists the meetings of a group.
func (m *MeetingController) ListMeetings(ctx *gin.Context) {
	groupID, ok := parseID(ctx, "id", "group")
	if !ok {
		return
	}
	page, ok := m.pager.request(ctx)
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	if _, err := m.store.GetGroup(rctx, groupID); err != nil {
		respondError(ctx, err, "group")
		return
	}
	meetings, total, err := m.store.ListGroupMeetings(rctx, groupID, page.window())
	if err != nil {
		respondError(ctx, err, "meeting")
		return
	}
	writePage(ctx, page, total, serializers.MeetingIndexList(meetings))
}

// CreateMeeting schedules a meeting in a group; the caller becomes its creator.
func (m *MeetingController) CreateMeeting(ctx *gin.Context) {
	groupID, ok := parseID(ctx, "id", "group")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	if _, err := m.store.GetGroup(rctx, groupID); err != nil {
		respondError(ctx, err, "group")
		return
	}

	var req createMeetingRequest
	if !bindJSON(ctx, &req) {
		return
	}
	var c cleaner
	title := c.label("title", req.Title, 80)
	location := c.label("location", req.Location, 100)
	if !c.ok(ctx) {
		return
	}
	me := principal(ctx)
	meeting := &models.Meeting{
		Title:     title,
		Location:  location,
		Time:      req.Time.UTC(),
		GroupID:   groupID,
		CreatorID: me.ID,
	}
	if err := m.store.CreateMeeting(rctx, meeting); err != nil {
		respondError(ctx, err, "meeting")
		return
	}
	meeting.Creator = me
	utils.Created(ctx, serializers.NewMeetingIndex(meeting))
}

// GetMeeting returns one meeting with its group, creator and attendees.
func (m *MeetingController) GetMeeting(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "meeting")
	if !ok {
		return
	}
	meeting, err := m.store.LoadMeetingDetail(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "meeting")
		return
	}
	utils.Success(ctx, serializers.NewMeetingDetail(meeting))
}

// UpdateMeeting serves PUT and PATCH for the creator.
func (m *MeetingController) UpdateMeeting(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "meeting")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	meeting, err := m.store.GetMeeting(rctx, id)
	if err != nil {
		respondError(ctx, err, "meeting")
		return
	}
	if err := policy.CanEditMeeting(principal(ctx), meeting); err != nil {
		respondError(ctx, err, "meeting")
		return
	}

	var req updateMeetingRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !requireFull(ctx,
		field{"title", req.Title != nil},
		field{"location", req.Location != nil},
		field{"time", req.Time != nil},
	) {
		return
	}
	var c cleaner
	if req.Title != nil {
		meeting.Title = c.label("title", *req.Title, 80)
	}
	if req.Location != nil {
		meeting.Location = c.label("location", *req.Location, 100)
	}
	if !c.ok(ctx) {
		return
	}
	if req.Time != nil {
		meeting.Time = req.Time.UTC()
	}
	if err := m.store.UpdateMeeting(rctx, meeting); err != nil {
		respondError(ctx, err, "meeting")
		return
	}
	m.writeDetail(ctx, id)
}

// DeleteMeeting removes the meeting and its attendance rows.
func (m *MeetingController) DeleteMeeting(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "meeting")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	meeting, err := m.store.GetMeeting(rctx, id)
	if err != nil {
		respondError(ctx, err, "meeting")
		return
	}
	if err := policy.CanEditMeeting(principal(ctx), meeting); err != nil {
		respondError(ctx, err, "meeting")
		return
	}
	if err := m.store.DeleteMeeting(rctx, id); err != nil {
		respondError(ctx, err, "meeting")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Attend adds the caller to the attendee list.
func (m *MeetingController) Attend(ctx *gin.Context) {
	m.changeAttendance(ctx, m.store.AddAttendee)
}

// Unattend removes the caller from the attendee list.
func (m *MeetingController) Unattend(ctx *gin.Context) {
	m.changeAttendance(ctx, m.store.RemoveAttendee)
}

func (m *MeetingController) changeAttendance(ctx *gin.Context, change func(ctx context.Context, meetingID, userID uint) error) {
	id, ok := parseID(ctx, "id", "meeting")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	if _, err := m.store.GetMeeting(rctx, id); err != nil {
		respondError(ctx, err, "meeting")
		return
	}
	if err := change(rctx, id, principal(ctx).ID); err != nil {
		respondError(ctx, err, "meeting")
		return
	}
	m.writeDetail(ctx, id)
}

func (m *MeetingController) writeDetail(ctx *gin.Context, id uint) {
	detail, err := m.store.LoadMeetingDetail(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "meeting")
		return
	}
	utils.Success(ctx, serializers.NewMeetingDetail(detail))
}

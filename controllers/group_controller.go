package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petmeet/petmeet/models"
	"github.com/petmeet/petmeet/policy"
	"github.com/petmeet/petmeet/serializers"
	"github.com/petmeet/petmeet/store"
	"github.com/petmeet/petmeet/utils"
)

// GroupController manages groups. Only the creator may rename or delete one.
type GroupController struct {
	store *store.Store
	pager Paginator
}

// NewGroupController builds the group handlers.
func NewGroupController(s *store.Store, pager Paginator) *GroupController {
	return &GroupController{store: s, pager: pager}
}

type groupRequest struct {
	Name string `json:"name" binding:"required,max=80"`
}

// ListGroups supports an exact ?city= filter.
func (g *GroupController) ListGroups(ctx *gin.Context) {
	page, ok := g.pager.request(ctx)
	if !ok {
		return
	}
	var city *string
	if v, ok := ctx.GetQuery("city"); ok {
		city = &v
	}
	groups, total, err := g.store.ListGroups(ctx.Request.Context(), city, page.window())
	if err != nil {
		respondError(ctx, err, "group")
		return
	}
	writePage(ctx, page, total, serializers.GroupIndexList(groups))
}

// CreateGroup places the group in the creator's own city.
func (g *GroupController) CreateGroup(ctx *gin.Context) {
	var req groupRequest
	if !bindJSON(ctx, &req) {
		return
	}
	me := principal(ctx)
	if me.AddressCity == nil || *me.AddressCity == "" {
		utils.Error(ctx, http.StatusBadRequest, "address_city must be set on your profile to create a group")
		return
	}

	var c cleaner
	name := c.label("name", req.Name, 80)
	if !c.ok(ctx) {
		return
	}

	group := &models.Group{Name: name, City: *me.AddressCity, CreatorID: me.ID}
	if err := g.store.CreateGroup(ctx.Request.Context(), group); err != nil {
		respondError(ctx, err, "group")
		return
	}
	group.Creator = me
	utils.Created(ctx, serializers.NewGroupIndex(group))
}

// GetGroup returns one group with its posts and meetings.
func (g *GroupController) GetGroup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "group")
	if !ok {
		return
	}
	group, err := g.store.LoadGroupDetail(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "group")
		return
	}
	utils.Success(ctx, serializers.NewGroupDetail(group))
}

// UpdateGroup renames the group.
func (g *GroupController) UpdateGroup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "group")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	group, err := g.store.GetGroup(rctx, id)
	if err != nil {
		respondError(ctx, err, "group")
		return
	}
	if err := policy.CanEditGroup(principal(ctx), group); err != nil {
		respondError(ctx, err, "group")
		return
	}

	var req groupRequest
	if !bindJSON(ctx, &req) {
		return
	}
	var c cleaner
	group.Name = c.label("name", req.Name, 80)
	if !c.ok(ctx) {
		return
	}
	if err := g.store.UpdateGroup(rctx, group); err != nil {
		respondError(ctx, err, "group")
		return
	}

	detail, err := g.store.LoadGroupDetail(rctx, id)
	if err != nil {
		respondError(ctx, err, "group")
		return
	}
	utils.Success(ctx, gin.H{"success": true, "group": serializers.NewGroupDetail(detail)})
}

// DeleteGroup removes the group with its posts and meetings.
func (g *GroupController) DeleteGroup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "group")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	group, err := g.store.GetGroup(rctx, id)
	if err != nil {
		respondError(ctx, err, "group")
		return
	}
	if err := policy.CanEditGroup(principal(ctx), group); err != nil {
		respondError(ctx, err, "group")
		return
	}
	if err := g.store.DeleteGroup(rctx, id); err != nil {
		respondError(ctx, err, "group")
		return
	}
	utils.Success(ctx, gin.H{"success": true})
}

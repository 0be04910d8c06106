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

// PostController handles posts inside groups.
type PostController struct {
	store *store.Store
	pager Paginator
}

// NewPostController builds the post handlers.
func NewPostController(s *store.Store, pager Paginator) *PostController {
	return &PostController{store: s, pager: pager}
}

type createPostRequest struct {
	Title string `json:"title" binding:"required,max=80"`
	Text  string `json:"text" binding:"required"`
}

type updatePostRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1,max=80"`
	Text  *string `json:"text" binding:"omitempty,min=1"`
}

// ListPosts lists the posts of a group.
func (p *PostController) ListPosts(ctx *gin.Context) {
	groupID, ok := parseID(ctx, "id", "group")
	if !ok {
		return
	}
	page, ok := p.pager.request(ctx)
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	if _, err := p.store.GetGroup(rctx, groupID); err != nil {
		respondError(ctx, err, "group")
		return
	}
	posts, total, err := p.store.ListGroupPosts(rctx, groupID, page.window())
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	writePage(ctx, page, total, serializers.PostIndexList(posts))
}

// CreatePost publishes a post in a group on behalf of the caller.
func (p *PostController) CreatePost(ctx *gin.Context) {
	groupID, ok := parseID(ctx, "id", "group")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	if _, err := p.store.GetGroup(rctx, groupID); err != nil {
		respondError(ctx, err, "group")
		return
	}

	var req createPostRequest
	if !bindJSON(ctx, &req) {
		return
	}
	var c cleaner
	title := c.label("title", req.Title, 80)
	text := c.text("text", req.Text, 0)
	if !c.ok(ctx) {
		return
	}
	me := principal(ctx)
	post := &models.Post{
		Title:   title,
		Text:    text,
		UserID:  me.ID,
		GroupID: groupID,
	}
	if err := p.store.CreatePost(rctx, post); err != nil {
		respondError(ctx, err, "post")
		return
	}
	post.User = me
	utils.Created(ctx, serializers.NewPostIndex(post))
}

// GetPost returns one post with its group and comments.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "post")
	if !ok {
		return
	}
	post, err := p.store.LoadPostDetail(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	utils.Success(ctx, serializers.NewPostDetail(post))
}

// UpdatePost serves PUT (all fields) and PATCH (any subset) for the author.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "post")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	post, err := p.store.GetPost(rctx, id)
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	if err := policy.CanEditPost(principal(ctx), post); err != nil {
		respondError(ctx, err, "post")
		return
	}

	var req updatePostRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !requireFull(ctx, field{"title", req.Title != nil}, field{"text", req.Text != nil}) {
		return
	}
	var c cleaner
	if req.Title != nil {
		post.Title = c.label("title", *req.Title, 80)
	}
	if req.Text != nil {
		post.Text = c.text("text", *req.Text, 0)
	}
	if !c.ok(ctx) {
		return
	}
	if err := p.store.UpdatePost(rctx, post); err != nil {
		respondError(ctx, err, "post")
		return
	}

	detail, err := p.store.LoadPostDetail(rctx, id)
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	utils.Success(ctx, serializers.NewPostDetail(detail))
}

// DeletePost removes the post and its comments.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "post")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	post, err := p.store.GetPost(rctx, id)
	if err != nil {
		respondError(ctx, err, "post")
		return
	}
	if err := policy.CanEditPost(principal(ctx), post); err != nil {
		respondError(ctx, err, "post")
		return
	}
	if err := p.store.DeletePost(rctx, id); err != nil {
		respondError(ctx, err, "post")
		return
	}
	ctx.Status(http.StatusNoContent)
}

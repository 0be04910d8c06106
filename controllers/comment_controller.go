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

// CommentController handles comments on posts.
type CommentController struct {
	store *store.Store
	pager Paginator
}

// NewCommentController builds the comment handlers.
func NewCommentController(s *store.Store, pager Paginator) *CommentController {
	return &CommentController{store: s, pager: pager}
}

type createCommentRequest struct {
	Text   string  `json:"text" binding:"required"`
	Rating *string `json:"rating" binding:"omitempty,oneof=1 2 3 4 5"`
}

type updateCommentRequest struct {
	Text   *string `json:"text" binding:"omitempty,min=1"`
	Rating *string `json:"rating" binding:"omitempty,oneof=1 2 3 4 5"`
}

// ListComments lists the comments on a post.
func (c *CommentController) ListComments(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id", "post")
	if !ok {
		return
	}
	page, ok := c.pager.request(ctx)
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	if _, err := c.store.GetPost(rctx, postID); err != nil {
		respondError(ctx, err, "post")
		return
	}
	comments, total, err := c.store.ListPostComments(rctx, postID, page.window())
	if err != nil {
		respondError(ctx, err, "comment")
		return
	}
	writePage(ctx, page, total, serializers.CommentIndexList(comments))
}

// CreateComment adds a comment by the caller to a post.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id", "post")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	if _, err := c.store.GetPost(rctx, postID); err != nil {
		respondError(ctx, err, "post")
		return
	}

	var req createCommentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	var cl cleaner
	text := cl.text("text", req.Text, 0)
	if !cl.ok(ctx) {
		return
	}
	me := principal(ctx)
	comment := &models.Comment{
		Text:   text,
		Rating: req.Rating,
		PostID: &postID,
		UserID: &me.ID,
	}
	if err := c.store.CreateComment(rctx, comment); err != nil {
		respondError(ctx, err, "comment")
		return
	}
	comment.User = me
	utils.Created(ctx, serializers.NewCommentIndex(comment))
}

// GetComment returns one comment with its post and author.
func (c *CommentController) GetComment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "comment")
	if !ok {
		return
	}
	comment, err := c.store.LoadCommentDetail(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "comment")
		return
	}
	utils.Success(ctx, serializers.NewCommentDetail(comment))
}

// UpdateComment lets the author edit text and rating. A PUT without rating clears it.
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "comment")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	comment, err := c.store.GetComment(rctx, id)
	if err != nil {
		respondError(ctx, err, "comment")
		return
	}
	if err := policy.CanEditComment(principal(ctx), comment); err != nil {
		respondError(ctx, err, "comment")
		return
	}

	var req updateCommentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if !requireFull(ctx, field{"text", req.Text != nil}) {
		return
	}
	var cl cleaner
	if req.Text != nil {
		comment.Text = cl.text("text", *req.Text, 0)
	}
	if !cl.ok(ctx) {
		return
	}
	if req.Rating != nil || ctx.Request.Method == http.MethodPut {
		comment.Rating = req.Rating
	}
	if err := c.store.UpdateComment(rctx, comment); err != nil {
		respondError(ctx, err, "comment")
		return
	}

	detail, err := c.store.LoadCommentDetail(rctx, id)
	if err != nil {
		respondError(ctx, err, "comment")
		return
	}
	utils.Success(ctx, serializers.NewCommentDetail(detail))
}

// DeleteComment removes the caller's comment.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "comment")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	comment, err := c.store.GetComment(rctx, id)
	if err != nil {
		respondError(ctx, err, "comment")
		return
	}
	if err := policy.CanEditComment(principal(ctx), comment); err != nil {
		respondError(ctx, err, "comment")
		return
	}
	if err := c.store.DeleteComment(rctx, id); err != nil {
		respondError(ctx, err, "comment")
		return
	}
	ctx.Status(http.StatusNoContent)
}

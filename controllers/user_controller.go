package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/petmeet/petmeet/policy"
	"github.com/petmeet/petmeet/serializers"
	"github.com/petmeet/petmeet/store"
	"github.com/petmeet/petmeet/utils"
)

// UserController serves user listings, profiles and profile updates.
type UserController struct {
	store  *store.Store
	issuer *utils.TokenIssuer
	pager  Paginator
}

// NewUserController builds the user handlers.
func NewUserController(s *store.Store, issuer *utils.TokenIssuer, pager Paginator) *UserController {
	return &UserController{store: s, issuer: issuer, pager: pager}
}

// updateUserRequest replaces every writable profile field; email is fixed at sign-up.
type updateUserRequest struct {
	Password       string  `json:"password" binding:"required,max=128"`
	FirstName      string  `json:"first_name" binding:"required,max=50"`
	LastName       string  `json:"last_name" binding:"required,max=60"`
	AddressStreet  *string `json:"address_street" binding:"omitempty,max=100"`
	AddressCity    *string `json:"address_city" binding:"omitempty,max=100"`
	AddressCountry *string `json:"address_country" binding:"omitempty,max=100"`
	PhoneNumber    *string `json:"phone_number" binding:"omitempty,max=32"`
	Bio            *string `json:"bio"`
}

type updateUserResponse struct {
	serializers.UserDetail
	Tokens utils.TokenPair `json:"tokens"`
}

// ListUsers pages through all users.
func (u *UserController) ListUsers(ctx *gin.Context) {
	page, ok := u.pager.request(ctx)
	if !ok {
		return
	}
	users, total, err := u.store.ListUsers(ctx.Request.Context(), page.window())
	if err != nil {
		respondError(ctx, err, "user")
		return
	}
	writePage(ctx, page, total, serializers.UserIndexList(users))
}

// GetUser returns one user with animals, groups and meetings.
func (u *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "user")
	if !ok {
		return
	}
	user, err := u.store.LoadUserDetail(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err, "user")
		return
	}
	utils.Success(ctx, serializers.NewUserDetail(user))
}

// UpdateUser overwrites the caller's own profile and password. Earlier tokens
// stop working, so a fresh pair is returned with the profile.
func (u *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "user")
	if !ok {
		return
	}
	rctx := ctx.Request.Context()
	target, err := u.store.GetUser(rctx, id)
	if err != nil {
		respondError(ctx, err, "user")
		return
	}
	if err := policy.CanEditUser(principal(ctx), target); err != nil {
		respondError(ctx, err, "user")
		return
	}

	var req updateUserRequest
	if !bindJSON(ctx, &req) {
		return
	}
	var c cleaner
	firstName := c.label("first_name", req.FirstName, 50)
	lastName := c.label("last_name", req.LastName, 60)
	if !c.ok(ctx) {
		return
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(ctx, err, "user")
		return
	}

	target.PasswordHash = hash
	target.FirstName = firstName
	target.LastName = lastName
	target.AddressStreet = req.AddressStreet
	target.AddressCity = req.AddressCity
	target.AddressCountry = req.AddressCountry
	target.PhoneNumber = req.PhoneNumber
	target.Bio = utils.SanitizePtr(req.Bio)
	target.TokenVersion++
	if err := u.store.UpdateUser(rctx, target); err != nil {
		respondError(ctx, err, "user")
		return
	}

	detail, err := u.store.LoadUserDetail(rctx, id)
	if err != nil {
		respondError(ctx, err, "user")
		return
	}
	pair, err := u.issuer.IssuePair(detail)
	if err != nil {
		respondError(ctx, err, "user")
		return
	}
	utils.Success(ctx, updateUserResponse{UserDetail: serializers.NewUserDetail(detail), Tokens: pair})
}

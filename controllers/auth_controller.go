package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petmeet/petmeet/middleware"
	"github.com/petmeet/petmeet/models"
	"github.com/petmeet/petmeet/serializers"
	"github.com/petmeet/petmeet/store"
	"github.com/petmeet/petmeet/utils"
)

const badCredentials = "No active account found with the given credentials"

// AuthController handles sign-up, sign-in, token refresh and sign-out.
type AuthController struct {
	store       *store.Store
	issuer      *utils.TokenIssuer
	revocations *utils.RevocationList
	guard       *utils.SignInGuard
}

// NewAuthController wires sign-up, sign-in, refresh and sign-out.
func NewAuthController(s *store.Store, issuer *utils.TokenIssuer, revocations *utils.RevocationList, guard *utils.SignInGuard) *AuthController {
	return &AuthController{store: s, issuer: issuer, revocations: revocations, guard: guard}
}

type signUpRequest struct {
	Email          string  `json:"email" binding:"required,email,max=255"`
	Password       string  `json:"password" binding:"required,max=128"`
	FirstName      string  `json:"first_name" binding:"required,max=50"`
	LastName       string  `json:"last_name" binding:"required,max=60"`
	AddressStreet  *string `json:"address_street" binding:"omitempty,max=100"`
	AddressCity    *string `json:"address_city" binding:"omitempty,max=100"`
	AddressCountry *string `json:"address_country" binding:"omitempty,max=100"`
	PhoneNumber    *string `json:"phone_number" binding:"omitempty,max=32"`
	Bio            *string `json:"bio"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type signOutRequest struct {
	Refresh string `json:"refresh"`
}

// SignUp registers a new account and returns its detail shape.
func (a *AuthController) SignUp(ctx *gin.Context) {
	var req signUpRequest
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

	user := &models.User{
		Email:          models.NormalizeEmail(req.Email),
		PasswordHash:   hash,
		FirstName:      firstName,
		LastName:       lastName,
		AddressStreet:  req.AddressStreet,
		AddressCity:    req.AddressCity,
		AddressCountry: req.AddressCountry,
		PhoneNumber:    req.PhoneNumber,
		Bio:            utils.SanitizePtr(req.Bio),
	}
	if err := a.store.CreateUser(ctx.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			duplicateEmail(ctx, user.Email)
			return
		}
		respondError(ctx, err, "user")
		return
	}

	utils.Logger.Info("user signed up", zap.Uint("user_id", user.ID))
	utils.Created(ctx, serializers.NewUserDetail(user))
}

// SignIn exchanges credentials for an access and refresh token pair.
func (a *AuthController) SignIn(ctx *gin.Context) {
	rctx, ip := ctx.Request.Context(), ctx.ClientIP()
	if a.guard.IsBanned(rctx, ip) {
		utils.Error(ctx, http.StatusTooManyRequests, "Too many failed sign-in attempts. Try again later.")
		return
	}

	var req signInRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := a.store.GetUserByEmail(rctx, req.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.CheckPassword("", req.Password)
		a.guard.RecordFailure(rctx, ip)
		utils.Error(ctx, http.StatusUnauthorized, badCredentials)
		return
	case err != nil:
		respondError(ctx, err, "user")
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		a.guard.RecordFailure(rctx, ip)
		utils.Error(ctx, http.StatusUnauthorized, badCredentials)
		return
	}

	pair, err := a.issuer.IssuePair(user)
	if err != nil {
		respondError(ctx, err, "user")
		return
	}
	utils.Success(ctx, pair)
}

// Refresh issues a new access token for a valid refresh token.
func (a *AuthController) Refresh(ctx *gin.Context) {
	var req refreshRequest
	if !bindJSON(ctx, &req) {
		return
	}

	claims, err := a.issuer.Parse(req.Refresh, utils.RefreshToken)
	if err != nil || a.revocations.IsRevoked(ctx.Request.Context(), claims.ID) {
		utils.Error(ctx, http.StatusUnauthorized, "Token is invalid or expired")
		return
	}

	user, err := a.store.GetUser(ctx.Request.Context(), claims.UserID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.Error(ctx, http.StatusUnauthorized, "Token is invalid or expired")
		return
	case err != nil:
		respondError(ctx, err, "user")
		return
	}
	if user.TokenVersion != claims.Version {
		utils.Error(ctx, http.StatusUnauthorized, "Token is invalid or expired")
		return
	}

	access, err := a.issuer.IssueAccess(claims)
	if err != nil {
		respondError(ctx, err, "user")
		return
	}
	utils.Success(ctx, gin.H{"access": access})
}

// SignOut revokes the presented access token and, when supplied, the caller's refresh token.
func (a *AuthController) SignOut(ctx *gin.Context) {
	var req signOutRequest
	if ctx.Request.ContentLength > 0 && !bindJSON(ctx, &req) {
		return
	}

	rctx := ctx.Request.Context()
	access := middleware.AccessClaims(ctx)
	if err := a.revocations.Revoke(rctx, access.ID, access.ExpiresAt.Time); err != nil {
		respondError(ctx, err, "user")
		return
	}

	if req.Refresh != "" {
		refresh, err := a.issuer.Parse(req.Refresh, utils.RefreshToken)
		if err == nil && refresh.UserID == access.UserID {
			if err := a.revocations.Revoke(rctx, refresh.ID, refresh.ExpiresAt.Time); err != nil {
				respondError(ctx, err, "user")
				return
			}
		}
	}
	utils.Success(ctx, gin.H{"success": true})
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petmeet/petmeet/models"
	"github.com/petmeet/petmeet/store"
	"github.com/petmeet/petmeet/utils"
)

const (
	// ContextPrincipalKey is the key used to store the authenticated user in Gin context.
	ContextPrincipalKey = "principal"
	// ContextClaimsKey stores the verified access token claims.
	ContextClaimsKey = "claims"
)

// UserLoader resolves the user named by a token.
type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// AuthRequired ensures the request carries a valid access token whose user
// still exists at the same token version.
func AuthRequired(issuer *utils.TokenIssuer, revocations *utils.RevocationList, users UserLoader) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := bearerToken(ctx)
		if !ok {
			return
		}

		claims, err := issuer.Parse(tokenString, utils.AccessToken)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, "invalid token")
			return
		}
		if revocations.IsRevoked(ctx.Request.Context(), claims.ID) {
			utils.Error(ctx, http.StatusUnauthorized, "token revoked")
			return
		}

		user, err := users.GetUser(ctx.Request.Context(), claims.UserID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			utils.Error(ctx, http.StatusUnauthorized, "user not found")
			return
		case err != nil:
			utils.Logger.Error("load principal", zap.Uint("user_id", claims.UserID), zap.Error(err))
			utils.Error(ctx, http.StatusInternalServerError, "internal error")
			return
		}
		if user.TokenVersion != claims.Version {
			utils.Error(ctx, http.StatusUnauthorized, "token expired for this account")
			return
		}

		ctx.Set(ContextPrincipalKey, user)
		ctx.Set(ContextClaimsKey, claims)
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		utils.Error(ctx, http.StatusUnauthorized, "authorization header missing")
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		utils.Error(ctx, http.StatusUnauthorized, "invalid authorization header format")
		return "", false
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		utils.Error(ctx, http.StatusUnauthorized, "empty bearer token")
		return "", false
	}
	return tokenString, true
}

// Principal returns the authenticated user set by AuthRequired.
func Principal(ctx *gin.Context) *models.User {
	if v, ok := ctx.Get(ContextPrincipalKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// AccessClaims returns the verified access token claims set by AuthRequired.
func AccessClaims(ctx *gin.Context) *utils.Claims {
	if v, ok := ctx.Get(ContextClaimsKey); ok {
		if c, ok := v.(*utils.Claims); ok {
			return c
		}
	}
	return nil
}

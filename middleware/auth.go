package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hyeonss0417/bulletin-board/models"
	"github.com/hyeonss0417/bulletin-board/utils"
)

// ContextUserKey is the key used to store the resolved caller in the Gin context.
const ContextUserKey = "auth_user"

const loginRequiredMessage = "로그인이 필요합니다"

// AuthRequired ensures the request carries a valid bearer token whose subject
// still exists, and injects the resolved user as the caller identity.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := resolveCaller(ctx, db)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40101, loginRequiredMessage)
			ctx.Abort()
			return
		}
		ctx.Set(ContextUserKey, user)
		ctx.Next()
	}
}

// OptionalAuth resolves the caller when a valid bearer token is present but
// never rejects the request. Used on the GraphQL endpoint where individual
// mutations enforce authentication.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user, ok := resolveCaller(ctx, db); ok {
			ctx.Set(ContextUserKey, user)
		}
		ctx.Next()
	}
}

// CurrentUser returns the caller injected by AuthRequired or OptionalAuth.
func CurrentUser(ctx *gin.Context) (*models.User, bool) {
	v, ok := ctx.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func resolveCaller(ctx *gin.Context, db *gorm.DB) (*models.User, bool) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, false
	}

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return nil, false
	}

	var user models.User
	if err := db.WithContext(ctx.Request.Context()).First(&user, claims.UserID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

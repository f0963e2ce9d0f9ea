package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyeonss0417/bulletin-board/services"
	"github.com/hyeonss0417/bulletin-board/utils"
)

// UserController exposes signup, sign-in, and public user lookups over REST.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a new UserController instance.
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// SignUp registers a new user.
func (u *UserController) SignUp(ctx *gin.Context) {
	var in services.SignUpInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	user, err := u.users.SignUp(ctx.Request.Context(), in)
	if err != nil {
		fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:users:")
	utils.Created(ctx, user)
}

// SignIn verifies credentials and returns an access token.
func (u *UserController) SignIn(ctx *gin.Context) {
	var in services.LoginInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid request payload")
		return
	}

	token, err := u.users.Login(ctx.Request.Context(), in)
	if err != nil {
		fail(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"accessToken": token})
}

// ListUsers returns every user.
func (u *UserController) ListUsers(ctx *gin.Context) {
	users, err := u.users.FindAll(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": users})
}

// GetUser returns a single user by id.
func (u *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	cacheKey := "cache:users:" + ctx.Param("id")
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	user, err := u.users.FindOneOrFail(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: user}, time.Hour)
	utils.Success(ctx, user)
}

// GetUserPosts returns the posts authored by a user.
func (u *UserController) GetUserPosts(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	posts, err := u.users.GetPostsByUser(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": posts})
}

// GetUserComments returns the comments authored by a user.
func (u *UserController) GetUserComments(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	comments, err := u.users.GetCommentsByUser(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": comments})
}

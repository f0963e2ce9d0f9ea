package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyeonss0417/bulletin-board/middleware"
	"github.com/hyeonss0417/bulletin-board/services"
	"github.com/hyeonss0417/bulletin-board/utils"
)

// PostController manages CRUD operations for posts and comments over REST.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// ListPosts returns every post.
func (p *PostController) ListPosts(ctx *gin.Context) {
	cacheKey := "cache:posts:list"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := p.posts.FindAll(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}

	payload := gin.H{"items": posts}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// GetPost returns a single post by id.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	cacheKey := "cache:posts:" + ctx.Param("id")
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.posts.FindOneOrFail(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: post}, time.Hour)
	utils.Success(ctx, post)
}

// CreatePost allows the authenticated caller to create a new post.
func (p *PostController) CreatePost(ctx *gin.Context) {
	caller, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "로그인이 필요합니다")
		return
	}

	var in services.CreatePostInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	post, err := p.posts.Create(ctx.Request.Context(), caller.ID, in)
	if err != nil {
		fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Created(ctx, post)
}

// UpdatePost merges a patch over an existing post; only its writer may do so.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	caller, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "로그인이 필요합니다")
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var in services.UpdatePostInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}

	post, err := p.posts.Update(ctx.Request.Context(), caller.ID, id, in)
	if err != nil {
		fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Success(ctx, post)
}

// DeletePost deletes a post and its comments; only its writer may do so.
func (p *PostController) DeletePost(ctx *gin.Context) {
	caller, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "로그인이 필요합니다")
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	deleted, err := p.posts.Remove(ctx.Request.Context(), caller.ID, id)
	if err != nil {
		fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Success(ctx, gin.H{"deleted": deleted})
}

// ========== Comments ==========

// ListComments returns a page of a post's comments.
func (p *PostController) ListComments(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	comments, err := p.posts.FindCommentsAsPagination(ctx.Request.Context(), postID, parsePagination(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"items": comments})
}

// CreateComment adds a comment to an existing post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	caller, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "로그인이 필요합니다")
		return
	}
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var in services.CreateCommentInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	comment, err := p.posts.CreateComment(ctx.Request.Context(), caller.ID, postID, in)
	if err != nil {
		fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Created(ctx, comment)
}

// UpdateComment overwrites a comment's content; only its writer may do so.
func (p *PostController) UpdateComment(ctx *gin.Context) {
	caller, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "로그인이 필요합니다")
		return
	}
	commentID, ok := parseID(ctx, "commentId")
	if !ok {
		return
	}

	var in services.UpdateCommentInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid request payload")
		return
	}

	comment, err := p.posts.UpdateComment(ctx.Request.Context(), caller.ID, commentID, in)
	if err != nil {
		fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Success(ctx, comment)
}

// DeleteComment removes a comment; the comment writer or the post writer may do so.
func (p *PostController) DeleteComment(ctx *gin.Context) {
	caller, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "로그인이 필요합니다")
		return
	}
	commentID, ok := parseID(ctx, "commentId")
	if !ok {
		return
	}

	deleted, err := p.posts.RemoveComment(ctx.Request.Context(), caller.ID, commentID)
	if err != nil {
		fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	utils.Success(ctx, gin.H{"deleted": deleted})
}

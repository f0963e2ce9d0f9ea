package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hyeonss0417/bulletin-board/models"
	"github.com/hyeonss0417/bulletin-board/utils"
)

// CreatePostInput carries the fields of a new post.
type CreatePostInput struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostInput is a partial patch; nil fields keep their current value.
type UpdatePostInput struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// CreateCommentInput carries the body of a new comment.
type CreateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// UpdateCommentInput overwrites a comment's content.
type UpdateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// PaginateInput selects a 1-indexed window of comments.
type PaginateInput struct {
	Page     int `json:"page" form:"page" validate:"required,min=1"`
	PageSize int `json:"page_size" form:"pageSize" validate:"required,min=1,max=100"`
}

// PostService owns posts and comments: creation, update, deletion, pagination,
// and the rule that only the writer may mutate their own content.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a new PostService instance.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// FindAll returns every post.
func (s *PostService) FindAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindOneOrFail returns the post with the given id or a NotFound error.
func (s *PostService) FindOneOrFail(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("존재하지 않는 게시글입니다.")
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a new post authored by the caller.
func (s *PostService) Create(ctx context.Context, writerID uint, in CreatePostInput) (*models.Post, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	post := models.Post{
		WriterID: writerID,
		Title:    utils.Sanitize(strings.TrimSpace(in.Title)),
		Content:  utils.Sanitize(in.Content),
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update merges the patch over the existing post. Only the writer may update.
func (s *PostService) Update(ctx context.Context, callerID, postID uint, in UpdatePostInput) (*models.Post, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	post, err := s.FindOneOrFail(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.WriterID != callerID {
		return nil, NewUnauthorized("게시물 작성자만 수정할 수 있습니다.")
	}

	if in.Title != nil {
		post.Title = utils.Sanitize(strings.TrimSpace(*in.Title))
	}
	if in.Content != nil {
		post.Content = utils.Sanitize(*in.Content)
	}
	if err := s.db.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Remove deletes a post and its comments. Only the writer may delete.
func (s *PostService) Remove(ctx context.Context, callerID, postID uint) (bool, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Select("id", "writer_id").First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, NewNotFound("존재하지 않는 게시글입니다.")
		}
		return false, err
	}
	if post.WriterID != callerID {
		return false, NewUnauthorized("게시물 작성자만 삭제할 수 있습니다.")
	}

	// Comments are removed explicitly so the cascade holds on drivers migrated
	// without foreign key enforcement.
	if err := s.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return false, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Post{}, postID).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ========== Comments ==========

// FindCommentsAsPagination returns the page-th window of a post's comments,
// ordered by id so page contents stay stable across concurrent writes. Pages
// beyond the available data return an empty slice, never an error.
func (s *PostService) FindCommentsAsPagination(ctx context.Context, postID uint, in PaginateInput) ([]models.Comment, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	offset := (in.Page - 1) * in.PageSize
	comments := []models.Comment{}
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id ASC").
		Offset(offset).
		Limit(in.PageSize).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// FindOneCommentOrFail returns the comment with the given id or a NotFound error.
func (s *PostService) FindOneCommentOrFail(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("존재하지 않는 댓글입니다.")
		}
		return nil, err
	}
	return &comment, nil
}

// CreateComment persists a comment against an existing post. The existence
// check and the insert are two sequential operations with no atomicity
// guarantee between them.
func (s *PostService) CreateComment(ctx context.Context, writerID, postID uint, in CreateCommentInput) (*models.Comment, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	if _, err := s.FindOneOrFail(ctx, postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID:   postID,
		WriterID: writerID,
		Content:  utils.Sanitize(in.Content),
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment overwrites a comment's content. Only the writer may update.
func (s *PostService) UpdateComment(ctx context.Context, callerID, commentID uint, in UpdateCommentInput) (*models.Comment, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	comment, err := s.FindOneCommentOrFail(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.WriterID != callerID {
		return nil, NewUnauthorized("댓글 작성자만 수정할 수 있습니다.")
	}

	comment.Content = utils.Sanitize(in.Content)
	if err := s.db.WithContext(ctx).Save(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// RemoveComment deletes a comment. The writer of the comment or the writer of
// the parent post may delete it.
func (s *PostService) RemoveComment(ctx context.Context, callerID, commentID uint) (bool, error) {
	comment, err := s.FindOneCommentOrFail(ctx, commentID)
	if err != nil {
		return false, err
	}

	if comment.WriterID != callerID {
		var post models.Post
		err := s.db.WithContext(ctx).Select("id", "writer_id").First(&post, comment.PostID).Error
		if err != nil || post.WriterID != callerID {
			return false, NewUnauthorized("댓글 작성자 혹은 글 작성자만 삭제할 수 있습니다.")
		}
	}

	if err := s.db.WithContext(ctx).Delete(&models.Comment{}, commentID).Error; err != nil {
		return false, err
	}
	return true, nil
}

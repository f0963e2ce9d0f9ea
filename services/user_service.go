package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hyeonss0417/bulletin-board/config"
	"github.com/hyeonss0417/bulletin-board/models"
	"github.com/hyeonss0417/bulletin-board/utils"
)

// SignUpInput carries the fields required to register a new user.
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput carries sign-in credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserService owns signup, login, and user lookup.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService instance.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// FindAll returns every registered user.
func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindOneOrFail returns the user with the given id or a NotFound error.
func (s *UserService) FindOneOrFail(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("존재하지 않는 유저입니다.")
		}
		return nil, err
	}
	return &user, nil
}

// SignUp registers a new user. The password is replaced by its bcrypt hash
// before persistence; the unique email check is a case-sensitive exact match.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	var exists models.User
	err := s.db.WithContext(ctx).Select("id").Where("email = ?", in.Email).First(&exists).Error
	if err == nil {
		return nil, NewConflict("이미 가입된 이메일입니다")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{Email: in.Email, Password: hash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues a signed access token. The error
// message is identical whether the email is unknown or the password is wrong.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := ValidateInput(in); err != nil {
		return "", err
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", in.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", NewBadRequest("아이디와 비밀번호를 확인해주세요")
		}
		return "", err
	}

	if !utils.CheckPassword(user.Password, in.Password) {
		return "", NewBadRequest("아이디와 비밀번호를 확인해주세요")
	}

	ttl := time.Duration(config.Get().TokenTTLDays) * 24 * time.Hour
	return utils.GenerateToken(user.ID, user.Email, ttl)
}

// GetPostsByUser returns the posts authored by the given user.
func (s *UserService) GetPostsByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	if _, err := s.FindOneOrFail(ctx, userID); err != nil {
		return nil, err
	}
	var posts []models.Post
	if err := s.db.WithContext(ctx).Where("writer_id = ?", userID).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetCommentsByUser returns the comments authored by the given user.
func (s *UserService) GetCommentsByUser(ctx context.Context, userID uint) ([]models.Comment, error) {
	if _, err := s.FindOneOrFail(ctx, userID); err != nil {
		return nil, err
	}
	var comments []models.Comment
	if err := s.db.WithContext(ctx).Where("writer_id = ?", userID).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

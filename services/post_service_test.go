package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeonss0417/bulletin-board/models"
	"github.com/hyeonss0417/bulletin-board/services"
)

type fixture struct {
	users *services.UserService
	posts *services.PostService
	alice *models.User
	bob   *models.User
}

func newFixture(t *testing.T) (*fixture, context.Context) {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{
		users: services.NewUserService(db),
		posts: services.NewPostService(db),
	}
	ctx := context.Background()

	var err error
	f.alice, err = f.users.SignUp(ctx, services.SignUpInput{Email: "alice@x.com", Password: "p"})
	require.NoError(t, err)
	f.bob, err = f.users.SignUp(ctx, services.SignUpInput{Email: "bob@x.com", Password: "p"})
	require.NoError(t, err)
	return f, ctx
}

func TestPostService_Create(t *testing.T) {
	f, ctx := newFixture(t)

	post, err := f.posts.Create(ctx, f.alice.ID, services.CreatePostInput{Title: "  hello  ", Content: "world"})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, f.alice.ID, post.WriterID)
	assert.Equal(t, "hello", post.Title)
}

func TestPostService_Create_TitleTooLong(t *testing.T) {
	f, ctx := newFixture(t)

	long := ""
	for i := 0; i < 201; i++ {
		long += "a"
	}
	_, err := f.posts.Create(ctx, f.alice.ID, services.CreatePostInput{Title: long, Content: "c"})
	require.Error(t, err)
	assert.Equal(t, services.KindValidation, mustKind(t, err))
}

func TestPostService_FindOneOrFail_NotFound(t *testing.T) {
	f, ctx := newFixture(t)

	_, err := f.posts.FindOneOrFail(ctx, 999)
	require.Error(t, err)
	se, ok := services.AsError(err)
	require.True(t, ok)
	assert.Equal(t, services.KindNotFound, se.Kind)
	assert.Equal(t, "존재하지 않는 게시글입니다.", se.Message)
}

func TestPostService_Update_OnlyWriter(t *testing.T) {
	f, ctx := newFixture(t)

	post, err := f.posts.Create(ctx, f.alice.ID, services.CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	newTitle := "changed"
	_, err = f.posts.Update(ctx, f.bob.ID, post.ID, services.UpdatePostInput{Title: &newTitle})
	require.Error(t, err)
	assert.Equal(t, services.KindUnauthorized, mustKind(t, err))

	updated, err := f.posts.Update(ctx, f.alice.ID, post.ID, services.UpdatePostInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "changed", updated.Title)
	assert.Equal(t, "c", updated.Content) // untouched field keeps its value
}

func TestPostService_Remove_OnlyWriter(t *testing.T) {
	f, ctx := newFixture(t)

	post, err := f.posts.Create(ctx, f.alice.ID, services.CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = f.posts.Remove(ctx, f.bob.ID, post.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindUnauthorized, mustKind(t, err))

	deleted, err := f.posts.Remove(ctx, f.alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = f.posts.FindOneOrFail(ctx, post.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindNotFound, mustKind(t, err))
}

func TestPostService_Remove_CascadesComments(t *testing.T) {
	f, ctx := newFixture(t)

	post, err := f.posts.Create(ctx, f.alice.ID, services.CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	comment, err := f.posts.CreateComment(ctx, f.bob.ID, post.ID, services.CreateCommentInput{Content: "hi"})
	require.NoError(t, err)

	_, err = f.posts.Remove(ctx, f.alice.ID, post.ID)
	require.NoError(t, err)

	_, err = f.posts.FindOneCommentOrFail(ctx, comment.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindNotFound, mustKind(t, err))
}

func TestPostService_CreateComment_PostMustExist(t *testing.T) {
	f, ctx := newFixture(t)

	_, err := f.posts.CreateComment(ctx, f.alice.ID, 999, services.CreateCommentInput{Content: "hi"})
	require.Error(t, err)
	assert.Equal(t, services.KindNotFound, mustKind(t, err))

	// No write happened
	comments, err := f.posts.FindCommentsAsPagination(ctx, 999, services.PaginateInput{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestPostService_CommentPagination(t *testing.T) {
	f, ctx := newFixture(t)

	post, err := f.posts.Create(ctx, f.alice.ID, services.CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := f.posts.CreateComment(ctx, f.bob.ID, post.ID, services.CreateCommentInput{
			Content: fmt.Sprintf("comment-%d", i),
		})
		require.NoError(t, err)
	}

	page1, err := f.posts.FindCommentsAsPagination(ctx, post.ID, services.PaginateInput{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "comment-0", page1[0].Content)
	assert.Equal(t, "comment-1", page1[1].Content)

	page2, err := f.posts.FindCommentsAsPagination(ctx, post.ID, services.PaginateInput{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "comment-2", page2[0].Content)

	page3, err := f.posts.FindCommentsAsPagination(ctx, post.ID, services.PaginateInput{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page3, 1)

	// Page beyond the available data returns an empty collection, never an error.
	beyond, err := f.posts.FindCommentsAsPagination(ctx, post.ID, services.PaginateInput{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestPostService_UpdateComment_OnlyWriter(t *testing.T) {
	f, ctx := newFixture(t)

	post, err := f.posts.Create(ctx, f.alice.ID, services.CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	comment, err := f.posts.CreateComment(ctx, f.bob.ID, post.ID, services.CreateCommentInput{Content: "hi"})
	require.NoError(t, err)

	// Even the post writer may not edit someone else's comment.
	_, err = f.posts.UpdateComment(ctx, f.alice.ID, comment.ID, services.UpdateCommentInput{Content: "nope"})
	require.Error(t, err)
	assert.Equal(t, services.KindUnauthorized, mustKind(t, err))

	updated, err := f.posts.UpdateComment(ctx, f.bob.ID, comment.ID, services.UpdateCommentInput{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestPostService_RemoveComment_WriterOrPostWriter(t *testing.T) {
	f, ctx := newFixture(t)

	post, err := f.posts.Create(ctx, f.alice.ID, services.CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	// A third party may not delete.
	carol, err := f.users.SignUp(ctx, services.SignUpInput{Email: "carol@x.com", Password: "p"})
	require.NoError(t, err)

	byBob, err := f.posts.CreateComment(ctx, f.bob.ID, post.ID, services.CreateCommentInput{Content: "one"})
	require.NoError(t, err)
	_, err = f.posts.RemoveComment(ctx, carol.ID, byBob.ID)
	require.Error(t, err)
	assert.Equal(t, services.KindUnauthorized, mustKind(t, err))

	// The comment writer may delete.
	deleted, err := f.posts.RemoveComment(ctx, f.bob.ID, byBob.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// The parent post's writer may also delete.
	again, err := f.posts.CreateComment(ctx, f.bob.ID, post.ID, services.CreateCommentInput{Content: "two"})
	require.NoError(t, err)
	deleted, err = f.posts.RemoveComment(ctx, f.alice.ID, again.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestPostService_CommentContentBounds(t *testing.T) {
	f, ctx := newFixture(t)

	post, err := f.posts.Create(ctx, f.alice.ID, services.CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}
	_, err = f.posts.CreateComment(ctx, f.bob.ID, post.ID, services.CreateCommentInput{Content: string(long)})
	require.Error(t, err)
	assert.Equal(t, services.KindValidation, mustKind(t, err))

	_, err = f.posts.CreateComment(ctx, f.bob.ID, post.ID, services.CreateCommentInput{Content: ""})
	require.Error(t, err)
	assert.Equal(t, services.KindValidation, mustKind(t, err))
}

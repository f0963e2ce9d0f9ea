package routes_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hyeonss0417/bulletin-board/models"
	"github.com/hyeonss0417/bulletin-board/routes"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))

	r, err := routes.SetupRouter(db)
	require.NoError(t, err)
	return r
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func signUp(t *testing.T, r *gin.Engine, email string) uint {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/users", "", fmt.Sprintf(`{"email":%q,"password":"p"}`, email))
	require.Equal(t, http.StatusCreated, w.Code)

	var user struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	return user.ID
}

func signIn(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/users/sign-in", "", fmt.Sprintf(`{"email":%q,"password":"p"}`, email))
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestSignUpAndSignInScenario(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/users", "", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(env.Data), `"a@x.com"`)
	assert.Contains(t, string(env.Data), `"id"`)
	assert.NotContains(t, w.Body.String(), `"password"`)

	// Same email again -> 409
	w, env = do(t, r, http.MethodPost, "/users", "", `{"email":"a@x.com","password":"p"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "이미 가입된 이메일입니다", env.Message)

	// Wrong password -> 400 with the combined message
	w, env = do(t, r, http.MethodPost, "/users/sign-in", "", `{"email":"a@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "아이디와 비밀번호를 확인해주세요", env.Message)

	// Correct credentials -> token
	token := signIn(t, r, "a@x.com")
	assert.NotEmpty(t, token)
}

func TestPostLifecycleOverREST(t *testing.T) {
	r := newTestRouter(t)

	signUp(t, r, "alice@x.com")
	signUp(t, r, "bob@x.com")
	alice := signIn(t, r, "alice@x.com")
	bob := signIn(t, r, "bob@x.com")

	// Unauthenticated create is rejected.
	w, _ := do(t, r, http.MethodPost, "/posts", "", `{"title":"t","content":"c"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := do(t, r, http.MethodPost, "/posts", alice, `{"title":"hello","content":"world"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var post struct {
		ID       uint `json:"id"`
		WriterID uint `json:"writer_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.NotZero(t, post.WriterID)

	// Public reads.
	w, _ = do(t, r, http.MethodGet, "/posts", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodGet, fmt.Sprintf("/posts/%d", post.ID), "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Only the writer may update.
	w, _ = do(t, r, http.MethodPatch, fmt.Sprintf("/posts/%d", post.ID), bob, `{"title":"stolen"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, env = do(t, r, http.MethodPatch, fmt.Sprintf("/posts/%d", post.ID), alice, `{"title":"renamed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"renamed"`)

	// Comments: create, paginate, delete by post writer.
	w, env = do(t, r, http.MethodPost, fmt.Sprintf("/posts/%d/comments", post.ID), bob, `{"content":"first"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var comment struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &comment))

	w, _ = do(t, r, http.MethodGet, fmt.Sprintf("/posts/%d/comments?page=1&pageSize=10", post.ID), "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"first"`)

	w, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/posts/%d/comments/%d", post.ID, comment.ID), alice, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Deleting the post cascades to its remaining comments.
	w, _ = do(t, r, http.MethodPost, fmt.Sprintf("/posts/%d/comments", post.ID), bob, `{"content":"second"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/posts/%d", post.ID), alice, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodGet, fmt.Sprintf("/posts/%d/comments", post.ID), "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"second"`)
}

func TestPublicUserEndpoints(t *testing.T) {
	r := newTestRouter(t)

	id := signUp(t, r, "alice@x.com")
	alice := signIn(t, r, "alice@x.com")

	w, _ := do(t, r, http.MethodPost, "/posts", alice, `{"title":"t","content":"c"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = do(t, r, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"password"`)

	w, _ = do(t, r, http.MethodGet, fmt.Sprintf("/users/%d", id), "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, fmt.Sprintf("/users/%d/posts", id), "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"t"`)

	w, _ = do(t, r, http.MethodGet, fmt.Sprintf("/users/%d/comments", id), "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/users/999", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidationShortCircuits(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/users", "", `{"email":"nope","password":"p"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(env.Data), "올바른 이메일을 입력해주세요")

	// No user was created by the failed attempt.
	w, _ = do(t, r, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "nope")
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	w, _ := do(t, r, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

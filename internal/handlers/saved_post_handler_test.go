package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korvo-dev/echofeed/backend/internal/models"
	"github.com/korvo-dev/echofeed/backend/validators"
)

// fakeSavedStore mimics the repository's idempotent semantics: one record
// per content hash, set membership per user.
type fakeSavedStore struct {
	mu          sync.Mutex
	records     map[string]models.SavedPostRecord
	collections map[uuid.UUID][]int64
	failWith    error
}

func newFakeSavedStore() *fakeSavedStore {
	return &fakeSavedStore{
		records:     make(map[string]models.SavedPostRecord),
		collections: make(map[uuid.UUID][]int64),
	}
}

func (f *fakeSavedStore) SavePost(ctx context.Context, record *models.SavedPostRecord, userID uuid.UUID) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.records[record.Hash]; !exists {
		f.records[record.Hash] = *record
	}
	for _, id := range f.collections[userID] {
		if id == record.PostID {
			return nil
		}
	}
	f.collections[userID] = append(f.collections[userID], record.PostID)
	return nil
}

func (f *fakeSavedStore) ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedPostRecord, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.SavedPostRecord
	for _, id := range f.collections[userID] {
		for _, rec := range f.records {
			if rec.PostID == id {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

func newSaveContext(t *testing.T, method, path, body string, userID *uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user", &models.TokenClaims{UserID: *userID})
	}
	return c, rec
}

const validPayload = `{"id":"8863","title":"My YC app: Dropbox","author":"pg","url":"https://example.com","timestamp":"1175714200"}`

func TestSavePost_Unauthorized(t *testing.T) {
	store := newFakeSavedStore()
	h := NewSavedPostHandler(store, zerolog.Nop())

	c, rec := newSaveContext(t, http.MethodPost, "/auth-actions/save", validPayload, nil)
	require.NoError(t, h.SavePost(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, store.records, "persistence must not run without identity")
}

func TestSavePost_InvalidNumericFields(t *testing.T) {
	store := newFakeSavedStore()
	h := NewSavedPostHandler(store, zerolog.Nop())
	userID := uuid.New()

	for _, body := range []string{
		`{"id":"abc","title":"t","author":"a","url":"","timestamp":"123"}`,
		`{"id":"123","title":"t","author":"a","url":"","timestamp":"later"}`,
		`{"title":"t","author":"a"}`,
	} {
		c, _ := newSaveContext(t, http.MethodPost, "/auth-actions/save", body, &userID)
		err := h.SavePost(c)
		require.Error(t, err, "body %s", body)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	}
	assert.Empty(t, store.records)
}

func TestSavePost_Success(t *testing.T) {
	store := newFakeSavedStore()
	h := NewSavedPostHandler(store, zerolog.Nop())
	userID := uuid.New()

	c, rec := newSaveContext(t, http.MethodPost, "/auth-actions/save", validPayload, &userID)
	require.NoError(t, h.SavePost(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ">Saved</button>")
	assert.Len(t, store.records, 1)
	assert.Equal(t, []int64{8863}, store.collections[userID])
}

func TestSavePost_Idempotent(t *testing.T) {
	store := newFakeSavedStore()
	h := NewSavedPostHandler(store, zerolog.Nop())
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		c, rec := newSaveContext(t, http.MethodPost, "/auth-actions/save", validPayload, &userID)
		require.NoError(t, h.SavePost(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Len(t, store.records, 1, "one content-addressed row")
	assert.Equal(t, []int64{8863}, store.collections[userID], "one membership")
}

func TestSavePost_ConcurrentSameItem(t *testing.T) {
	store := newFakeSavedStore()
	h := NewSavedPostHandler(store, zerolog.Nop())
	userID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, _ := newSaveContext(t, http.MethodPost, "/auth-actions/save", validPayload, &userID)
			_ = h.SavePost(c)
		}()
	}
	wg.Wait()

	assert.Len(t, store.records, 1)
	assert.Equal(t, []int64{8863}, store.collections[userID])
}

func TestSavePost_SameContentTwoUsersShareRecord(t *testing.T) {
	store := newFakeSavedStore()
	h := NewSavedPostHandler(store, zerolog.Nop())
	alice, bob := uuid.New(), uuid.New()

	for _, id := range []uuid.UUID{alice, bob} {
		uid := id
		c, _ := newSaveContext(t, http.MethodPost, "/auth-actions/save", validPayload, &uid)
		require.NoError(t, h.SavePost(c))
	}

	assert.Len(t, store.records, 1, "identical content maps to one row")
	assert.Equal(t, []int64{8863}, store.collections[alice])
	assert.Equal(t, []int64{8863}, store.collections[bob])
}

func TestGetSavedPosts_RoundTrip(t *testing.T) {
	store := newFakeSavedStore()
	h := NewSavedPostHandler(store, zerolog.Nop())
	userID := uuid.New()

	c, _ := newSaveContext(t, http.MethodPost, "/auth-actions/save", validPayload, &userID)
	require.NoError(t, h.SavePost(c))

	c, rec := newSaveContext(t, http.MethodPost, "/auth-actions/saved", "", &userID)
	require.NoError(t, h.GetSavedPosts(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "My YC app: Dropbox")
	assert.Contains(t, rec.Body.String(), "Author: pg")
}

func TestGetSavedPosts_Unauthorized(t *testing.T) {
	h := NewSavedPostHandler(newFakeSavedStore(), zerolog.Nop())

	c, rec := newSaveContext(t, http.MethodPost, "/auth-actions/saved", "", nil)
	require.NoError(t, h.GetSavedPosts(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

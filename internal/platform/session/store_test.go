package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type mapKV struct {
	data map[string]string
}

func newMapKV() *mapKV {
	return &mapKV{data: make(map[string]string)}
}

func (m *mapKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mapKV) Del(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestStore() (*Store, *mapKV) {
	kv := newMapKV()
	return NewStore(kv, "test_session", []byte("test-secret"), time.Hour), kv
}

func requestWithCookie(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestStore_CreateThenResolve(t *testing.T) {
	store, kv := newTestStore()
	rec := httptest.NewRecorder()

	require.NoError(t, store.Create(context.Background(), rec, "lan"))
	require.Len(t, kv.data, 1)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "test_session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	username, ok := store.Username(context.Background(), requestWithCookie(rec))
	require.True(t, ok)
	require.Equal(t, "lan", username)
}

func TestStore_TamperedCookieNotResolved(t *testing.T) {
	store, _ := newTestStore()
	rec := httptest.NewRecorder()
	require.NoError(t, store.Create(context.Background(), rec, "lan"))

	original := rec.Result().Cookies()[0]

	for _, tampered := range []string{
		original.Value[:len(original.Value)-1] + "x", // broken signature
		strings.Replace(original.Value, original.Value[:4], "zzzz", 1), // altered id
		"no-separator",
		"",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "test_session", Value: tampered})
		_, ok := store.Username(context.Background(), req)
		require.False(t, ok, "value %q must not resolve", tampered)
	}
}

func TestStore_MissingCookieNotResolved(t *testing.T) {
	store, _ := newTestStore()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := store.Username(context.Background(), req)
	require.False(t, ok)
}

func TestStore_DestroyRemovesRecordAndClearsCookie(t *testing.T) {
	store, kv := newTestStore()
	rec := httptest.NewRecorder()
	require.NoError(t, store.Create(context.Background(), rec, "lan"))

	req := requestWithCookie(rec)
	out := httptest.NewRecorder()
	store.Destroy(context.Background(), out, req)

	require.Empty(t, kv.data)
	cleared := out.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Equal(t, -1, cleared[0].MaxAge)

	_, ok := store.Username(context.Background(), req)
	require.False(t, ok)
}

func TestStore_SignatureBoundToID(t *testing.T) {
	store, _ := newTestStore()
	recA := httptest.NewRecorder()
	recB := httptest.NewRecorder()
	require.NoError(t, store.Create(context.Background(), recA, "lan"))
	require.NoError(t, store.Create(context.Background(), recB, "mayl"))

	valueA := recA.Result().Cookies()[0].Value
	valueB := recB.Result().Cookies()[0].Value
	idA, _, _ := strings.Cut(valueA, ".")
	_, sigB, _ := strings.Cut(valueB, ".")

	// Splicing one session's id onto another's signature must fail.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: idA + "." + sigB})
	_, ok := store.Username(context.Background(), req)
	require.False(t, ok)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/todo-app/apiserver/config"
	"github.com/todo-app/apiserver/internal/auth"
	"github.com/todo-app/apiserver/internal/services"
	"github.com/todo-app/apiserver/internal/store"
	"github.com/todo-app/apiserver/types"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]types.User)}
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[username]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[user.Username]; exists {
		return types.User{}, store.ErrDuplicate
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.Username] = user
	return user, nil
}

type fakeItemRepo struct {
	mu        sync.Mutex
	nextID    int
	items     []types.Item
	mutations int
}

func (f *fakeItemRepo) List(ctx context.Context) ([]types.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]types.Item, len(f.items))
	copy(items, f.items)
	return items, nil
}

func (f *fakeItemRepo) Create(ctx context.Context, item types.Item) (types.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	item.ID = f.nextID
	f.items = append(f.items, item)
	f.mutations++
	return item, nil
}

func (f *fakeItemRepo) Update(ctx context.Context, item types.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i] = item
			f.mutations++
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeItemRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			f.mutations++
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeItemRepo) mutationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mutations
}

func testTokenIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer(config.AuthConfig{
		Secret:   "handlers-test-secret",
		Issuer:   "TodoApi",
		Audience: "TodoApiUsers",
		TokenTTL: time.Hour,
	})
}

func newTestRouter(t *testing.T) (*chi.Mux, *auth.TokenIssuer, *fakeItemRepo) {
	t.Helper()

	tokens := testTokenIssuer()
	userRepo := newFakeUserRepo()
	itemRepo := &fakeItemRepo{}
	log := zap.NewNop()

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, services.NewUserService(userRepo), tokens, log)
	})
	router.Route("/items", func(r chi.Router) {
		ItemRouter(r, services.NewItemService(itemRepo), RequireAuth(tokens), log)
	})

	return router, tokens, itemRepo
}

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder, value any) {
	t.Helper()
	if err := json.NewDecoder(recorder.Body).Decode(value); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

package api

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/pomodoro-api/internal/config"
	"github.com/phrazzld/pomodoro-api/internal/domain"
	"github.com/phrazzld/pomodoro-api/internal/service/auth"
	"github.com/phrazzld/pomodoro-api/internal/service/task"
	"github.com/phrazzld/pomodoro-api/internal/store"
)

const testJWTSecret = "test-secret-key-thats-long-enough-for-hs256"

// fakeUserStore is an in-memory store.UserStore.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[int64]*domain.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
		if u.Email != nil && user.Email != nil && *u.Email == *user.Email {
			return store.ErrEmailExists
		}
	}
	user.ID = s.nextID
	s.nextID++
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// fakeTaskStore is an in-memory store.TaskStore.
type fakeTaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*domain.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{nextID: 1, tasks: make(map[int64]*domain.Task)}
}

func (s *fakeTaskStore) Create(ctx context.Context, t *domain.Task) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tasks {
		if existing.Name == t.Name && existing.UserID == t.UserID {
			return 0, store.ErrTaskNameExists
		}
	}
	id := s.nextID
	s.nextID++
	cp := *t
	cp.ID = id
	s.tasks[id] = &cp
	return id, nil
}

func (s *fakeTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTaskStore) GetByName(ctx context.Context, name string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *domain.Task
	for _, t := range s.tasks {
		if t.Name == name && (best == nil || t.ID < best.ID) {
			best = t
		}
	}
	if best == nil {
		return nil, store.ErrTaskNotFound
	}
	cp := *best
	return &cp, nil
}

func (s *fakeTaskStore) GetAll(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, 0, len(s.tasks))
	for id := int64(1); id < s.nextID; id++ {
		if t, ok := s.tasks[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *fakeTaskStore) GetForUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, 0)
	for id := int64(1); id < s.nextID; id++ {
		if t, ok := s.tasks[id]; ok && t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *fakeTaskStore) UpdateName(ctx context.Context, id int64, name string, ownerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.UserID != ownerID {
		return 0, nil
	}
	t.Name = name
	return 1, nil
}

func (s *fakeTaskStore) Delete(ctx context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return 0, nil
	}
	delete(s.tasks, id)
	return 1, nil
}

// fakeTaskCache is an always-miss store.TaskCache; handler tests exercise
// the HTTP surface, not cache behavior.
type fakeTaskCache struct{}

func (fakeTaskCache) GetTasks(ctx context.Context) ([]domain.Task, error) {
	return nil, store.ErrCacheMiss
}

func (fakeTaskCache) SetTasks(ctx context.Context, tasks []domain.Task) error { return nil }

func (fakeTaskCache) GetUserTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	return nil, store.ErrCacheMiss
}

func (fakeTaskCache) SetUserTasks(ctx context.Context, userID int64, tasks []domain.Task) error {
	return nil
}

func (fakeTaskCache) DeleteTask(ctx context.Context, taskID int64) error { return nil }

// fakeCategoryStore is an in-memory store.CategoryStore.
type fakeCategoryStore struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]*domain.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{nextID: 1, categories: make(map[int64]*domain.Category)}
}

func (s *fakeCategoryStore) Create(ctx context.Context, c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

func (s *fakeCategoryStore) GetAll(ctx context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, 0, len(s.categories))
	for id := int64(1); id < s.nextID; id++ {
		if c, ok := s.categories[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeCategoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                  testJWTSecret,
		AccessTokenLifetimeMinutes: 15,
		RefreshTokenLifetimeDays:   30,
	})
	require.NoError(t, err)
	return svc
}

func newTestAuthService(t *testing.T, users store.UserStore) *auth.AuthService {
	t.Helper()
	return auth.NewAuthService(
		users,
		newTestJWTService(t),
		auth.NewBcryptHasher(),
		auth.NewBcryptVerifier(),
		nil,
	)
}

func newTestTaskService(tasks store.TaskStore) *task.Service {
	return task.NewService(tasks, fakeTaskCache{}, nil)
}

// registerTestUser creates an active account and returns it with its tokens.
func registerTestUser(t *testing.T, svc *auth.AuthService, username, password string) (*domain.User, *auth.TokenPair) {
	t.Helper()
	user, pair, err := svc.Register(context.Background(), username, password, nil)
	require.NoError(t, err)
	return user, pair
}

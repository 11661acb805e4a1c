package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/eventdesk/backend/domain"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
	for _, user := range users {
		repo.byEmail[user.Email] = user
		repo.byID[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) List(context.Context) ([]domain.User, error) { return nil, nil }

func (f *fakeUserRepo) Create(context.Context, *domain.User) error { return nil }

func (f *fakeUserRepo) UpdateRole(context.Context, string, domain.Role) error { return nil }

func (f *fakeUserRepo) SetBan(context.Context, string, string) error { return nil }

func (f *fakeUserRepo) Delete(context.Context, string) error { return nil }

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
	saveErr  error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	if session, ok := f.sessions[id]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (f *fakeSessionRepo) Save(_ context.Context, session *domain.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func testUser(t *testing.T, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &domain.User{
		ID:           "user-1",
		Name:         "Tester",
		Email:        email,
		Role:         domain.RoleStaff,
		PasswordHash: string(hash),
	}
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	cfg := Config{JWTSecret: "test-secret", JWTIssuer: "test", SessionTTL: time.Hour}

	t.Run("valid credentials open a session", func(t *testing.T) {
		sessions := newFakeSessionRepo()
		uc := New(newFakeUserRepo(testUser(t, "a@b.com", "hunter22")), sessions, cfg, nil)

		login, err := uc.SignIn(ctx, "a@b.com", "hunter22")
		if err != nil {
			t.Fatalf("SignIn: %v", err)
		}
		if login.Token == "" {
			t.Error("expected a signed token")
		}
		if login.Session == nil || login.Session.UserID != "user-1" {
			t.Errorf("unexpected session: %+v", login.Session)
		}
		if _, ok := sessions.sessions[login.Session.ID]; !ok {
			t.Error("session was not persisted")
		}
	})

	t.Run("wrong password yields bad credentials", func(t *testing.T) {
		uc := New(newFakeUserRepo(testUser(t, "a@b.com", "hunter22")), newFakeSessionRepo(), cfg, nil)

		if _, err := uc.SignIn(ctx, "a@b.com", "wrong"); !errors.Is(err, domain.ErrBadCredentials) {
			t.Errorf("got %v, want ErrBadCredentials", err)
		}
	})

	t.Run("unknown email yields bad credentials, not not-found", func(t *testing.T) {
		uc := New(newFakeUserRepo(), newFakeSessionRepo(), cfg, nil)

		if _, err := uc.SignIn(ctx, "nobody@b.com", "whatever"); !errors.Is(err, domain.ErrBadCredentials) {
			t.Errorf("got %v, want ErrBadCredentials", err)
		}
	})

	t.Run("suspended account is refused even with the right password", func(t *testing.T) {
		user := testUser(t, "a@b.com", "hunter22")
		user.BanDuration = "none"
		uc := New(newFakeUserRepo(user), newFakeSessionRepo(), cfg, nil)

		if _, err := uc.SignIn(ctx, "a@b.com", "hunter22"); !errors.Is(err, domain.ErrUserSuspended) {
			t.Errorf("got %v, want ErrUserSuspended", err)
		}
	})

	t.Run("session store failure surfaces as unavailable", func(t *testing.T) {
		sessions := newFakeSessionRepo()
		sessions.saveErr = errors.New("redis down")
		uc := New(newFakeUserRepo(testUser(t, "a@b.com", "hunter22")), sessions, cfg, nil)

		_, err := uc.SignIn(ctx, "a@b.com", "hunter22")
		if !domain.IsDomainError(err, domain.ErrCodeUnavailable) {
			t.Errorf("got %v, want UNAVAILABLE", err)
		}
	})
}

func TestCurrentSession(t *testing.T) {
	ctx := context.Background()
	cfg := Config{JWTSecret: "test-secret", SessionTTL: time.Hour}

	t.Run("valid session is returned", func(t *testing.T) {
		sessions := newFakeSessionRepo()
		sessions.sessions["s1"] = &domain.Session{
			ID:        "s1",
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		uc := New(newFakeUserRepo(), sessions, cfg, nil)

		session, err := uc.CurrentSession(ctx, "s1")
		if err != nil {
			t.Fatalf("CurrentSession: %v", err)
		}
		if session.UserID != "user-1" {
			t.Errorf("unexpected session: %+v", session)
		}
	})

	t.Run("expired session is dropped and reported missing", func(t *testing.T) {
		sessions := newFakeSessionRepo()
		sessions.sessions["s1"] = &domain.Session{
			ID:        "s1",
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		uc := New(newFakeUserRepo(), sessions, cfg, nil)

		if _, err := uc.CurrentSession(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("got %v, want ErrSessionNotFound", err)
		}
		if _, ok := sessions.sessions["s1"]; ok {
			t.Error("expired session should have been deleted")
		}
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	cfg := Config{JWTSecret: "test-secret", SessionTTL: time.Hour}

	t.Run("new expiry is written to the store", func(t *testing.T) {
		originalExpiry := time.Now().Add(10 * time.Minute)
		sessions := newFakeSessionRepo()
		sessions.sessions["s1"] = &domain.Session{
			ID:        "s1",
			CreatedAt: time.Now(),
			ExpiresAt: originalExpiry,
		}
		uc := New(newFakeUserRepo(), sessions, cfg, nil)

		session, err := uc.Refresh(ctx, "s1")
		if err != nil {
			t.Fatalf("Refresh: %v", err)
		}

		// The stored payload is what the next CurrentSession reads; it must
		// carry the new expiry, not only the returned copy.
		stored := sessions.sessions["s1"]
		if !stored.ExpiresAt.After(originalExpiry) {
			t.Errorf("stored expiry %v was not pushed past %v", stored.ExpiresAt, originalExpiry)
		}
		if stored.IsExpired(originalExpiry.Add(time.Minute)) {
			t.Error("session read after the original expiry should still be valid")
		}
		if !stored.ExpiresAt.Equal(session.ExpiresAt) {
			t.Errorf("stored expiry %v diverges from returned %v", stored.ExpiresAt, session.ExpiresAt)
		}
	})

	t.Run("store failure surfaces and keeps the old expiry visible", func(t *testing.T) {
		sessions := newFakeSessionRepo()
		sessions.sessions["s1"] = &domain.Session{
			ID:        "s1",
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}
		uc := New(newFakeUserRepo(), sessions, cfg, nil)
		sessions.saveErr = errors.New("redis down")

		if _, err := uc.Refresh(ctx, "s1"); !domain.IsDomainError(err, domain.ErrCodeUnavailable) {
			t.Errorf("got %v, want UNAVAILABLE", err)
		}
	})
}

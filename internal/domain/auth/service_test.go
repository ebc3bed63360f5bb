package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nojast/nojast-api/internal/domain/user"
	"github.com/nojast/nojast-api/internal/pkg/jwt"
)

type fakeUserRepo struct {
	user.Repository
	byEmail map[string]*user.User
	byID    map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[uuid.UUID]*user.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	for _, existing := range f.byEmail {
		if existing.Username == u.Username {
			return user.ErrUsernameTaken
		}
	}
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.byID[id], nil
}

func newTestService(repo user.Repository) *Service {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, jwtService, nil, 7*24*time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo)

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "Ali@Example.com",
		Password: "correct horse battery",
		FullName: "Ali Tester",
		Username: "ali_tester",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("Register() returned empty tokens")
	}
	if resp.User.Email != "ali@example.com" {
		t.Errorf("email = %q, want lowercased", resp.User.Email)
	}

	login, err := service.Login(context.Background(), &LoginRequest{
		Email:    "ALI@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Error("Login() returned a different user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo)

	req := &RegisterRequest{
		Email:    "ali@example.com",
		Password: "correct horse battery",
		FullName: "Ali Tester",
		Username: "ali_tester",
	}
	if _, err := service.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	req.Username = "someone_else"
	_, err := service.Register(context.Background(), req)
	if err != ErrEmailAlreadyExists {
		t.Errorf("second Register() error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo)

	service.Register(context.Background(), &RegisterRequest{
		Email:    "ali@example.com",
		Password: "correct horse battery",
		FullName: "Ali Tester",
		Username: "ali_tester",
	})

	_, err := service.Login(context.Background(), &LoginRequest{
		Email:    "ali@example.com",
		Password: "wrong password here",
	})
	if err != ErrInvalidCredentials {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service := newTestService(newFakeUserRepo())

	_, err := service.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever password",
	})
	if err != ErrInvalidCredentials {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginBannedUser(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo)

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "ali@example.com",
		Password: "correct horse battery",
		FullName: "Ali Tester",
		Username: "ali_tester",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	repo.byID[resp.User.ID].IsBanned = true

	_, err = service.Login(context.Background(), &LoginRequest{
		Email:    "ali@example.com",
		Password: "correct horse battery",
	})
	if err != ErrUserBanned {
		t.Errorf("Login() error = %v, want ErrUserBanned", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo)

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "sara@example.com",
		Password: "correct horse battery",
		FullName: "Sara Tester",
		Username: "sara_tester",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	first := resp.Tokens.RefreshToken
	rotated, err := service.Refresh(context.Background(), first)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if rotated.Tokens.RefreshToken == "" || rotated.Tokens.RefreshToken == first {
		t.Error("Refresh() did not rotate the refresh token")
	}

	// The consumed token is gone.
	if _, err := service.Refresh(context.Background(), first); err != ErrInvalidRefreshToken {
		t.Errorf("reused token error = %v, want ErrInvalidRefreshToken", err)
	}

	// The rotated token still works.
	if _, err := service.Refresh(context.Background(), rotated.Tokens.RefreshToken); err != nil {
		t.Errorf("rotated token Refresh() error = %v", err)
	}
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo)

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Email:    "reza@example.com",
		Password: "correct horse battery",
		FullName: "Reza Tester",
		Username: "reza_tester",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := service.Logout(context.Background(), resp.Tokens.RefreshToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if _, err := service.Refresh(context.Background(), resp.Tokens.RefreshToken); err != ErrInvalidRefreshToken {
		t.Errorf("Refresh() after logout error = %v, want ErrInvalidRefreshToken", err)
	}
}

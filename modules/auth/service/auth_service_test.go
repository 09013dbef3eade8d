package service

import (
	"context"
	stderrors "errors"
	"testing"

	"meteocal/core/config"
	"meteocal/core/constants"
	"meteocal/core/errors"
	"meteocal/modules/auth/dto"
	"meteocal/modules/storetest"

	"github.com/google/uuid"
)

type hookRecorder struct {
	calls []uuid.UUID
	err   error
}

func (h *hookRecorder) AfterLogin(_ context.Context, userID uuid.UUID) error {
	h.calls = append(h.calls, userID)
	return h.err
}

func newAuthService(t *testing.T) (*AuthService, *storetest.Cache) {
	t.Helper()
	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})
	t.Cleanup(func() { config.Set(nil) })

	cache := storetest.NewCache()
	return NewAuthService(storetest.New().Users(), cache), cache
}

func register(t *testing.T, svc *AuthService) *dto.UserResponse {
	t.Helper()
	user, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     " Ada@Example.com ",
		Password:  "analytical-engine",
	})
	if appErr != nil {
		t.Fatalf("Register() error = %v", appErr)
	}
	return user
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthService(t)

	user := register(t, svc)
	if user.Email != "ada@example.com" || user.UserGroup != constants.UserGroupUsers {
		t.Fatalf("user = %+v", user)
	}

	_, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "ADA@example.com",
		Password:  "another-password",
	})
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("duplicate Register() error = %v, want already exists", appErr)
	}
}

func TestLoginRunsHooks(t *testing.T) {
	svc, _ := newAuthService(t)
	user := register(t, svc)

	ok := &hookRecorder{}
	failing := &hookRecorder{err: stderrors.New("alert failed")}
	svc.AddLoginHook(failing)
	svc.AddLoginHook(ok)

	res, appErr := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "analytical-engine"})
	if appErr != nil {
		t.Fatalf("Login() error = %v", appErr)
	}
	if res.AccessToken == "" || res.RefreshToken == "" || res.AccessToken == res.RefreshToken {
		t.Fatalf("tokens = %+v", res)
	}
	for _, h := range []*hookRecorder{failing, ok} {
		if len(h.calls) != 1 || h.calls[0] != user.ID {
			t.Fatalf("hook calls = %v, want [%s]", h.calls, user.ID)
		}
	}
}

func TestLoginBlocksAfterRepeatedFailures(t *testing.T) {
	svc, cache := newAuthService(t)
	register(t, svc)
	hook := &hookRecorder{}
	svc.AddLoginHook(hook)
	ctx := context.Background()

	for i := 0; i < constants.MaxLoginAttempts; i++ {
		_, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
		if appErr == nil || appErr.Code != errors.ErrUnauthorized {
			t.Fatalf("attempt %d error = %v, want unauthorized", i+1, appErr)
		}
	}
	if got := cache.Attempts("ada@example.com"); got != constants.MaxLoginAttempts {
		t.Fatalf("attempts = %d, want %d", got, constants.MaxLoginAttempts)
	}

	_, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "analytical-engine"})
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("blocked Login() error = %v, want unauthorized", appErr)
	}
	if len(hook.calls) != 0 {
		t.Fatal("hook ran for a blocked login")
	}
}

func TestLoginResetsAttemptsOnSuccess(t *testing.T) {
	svc, cache := newAuthService(t)
	register(t, svc)
	ctx := context.Background()

	_, _ = svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	if _, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "ADA@example.com", Password: "analytical-engine"}); appErr != nil {
		t.Fatalf("Login() error = %v", appErr)
	}
	if got := cache.Attempts("ada@example.com"); got != 0 {
		t.Fatalf("attempts = %d, want reset", got)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	_, appErr := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("error = %v, want unauthorized", appErr)
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, cache := newAuthService(t)
	register(t, svc)
	ctx := context.Background()

	res, appErr := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "analytical-engine"})
	if appErr != nil {
		t.Fatalf("Login() error = %v", appErr)
	}
	if appErr := svc.Logout(ctx, res.AccessToken); appErr != nil {
		t.Fatalf("Logout() error = %v", appErr)
	}
	blacklisted, _ := cache.IsTokenBlacklisted(ctx, res.AccessToken)
	if !blacklisted {
		t.Fatal("token not blacklisted")
	}

	if appErr := svc.Logout(ctx, "not-a-token"); appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("Logout(garbage) error = %v, want unauthorized", appErr)
	}
}

func TestListUsersExcept(t *testing.T) {
	svc, _ := newAuthService(t)
	ada := register(t, svc)
	if _, appErr := svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "Bob", LastName: "Marley", Email: "bob@example.com", Password: "one-love-123",
	}); appErr != nil {
		t.Fatalf("Register() error = %v", appErr)
	}

	users, appErr := svc.ListUsersExcept(context.Background(), ada.ID)
	if appErr != nil {
		t.Fatalf("ListUsersExcept() error = %v", appErr)
	}
	if len(users) != 1 || users[0].Email != "bob@example.com" {
		t.Fatalf("users = %+v", users)
	}

	if _, appErr := svc.GetUserByID(context.Background(), uuid.New()); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("GetUserByID() error = %v, want not found", appErr)
	}
}

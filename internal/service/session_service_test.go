package service

import (
	"context"
	"errors"
	"testing"

	"reef_backend/internal/repository/memory"
)

func newSessions(t *testing.T) *SessionService {
	t.Helper()
	store := memory.NewStore()
	return NewSessionService(store, nil, NewAuditService(store), "test-secret", 60)
}

func TestRegisterLoginAuthenticate(t *testing.T) {
	svc := newSessions(t)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw123", nil)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if user.Code == "" {
		t.Fatal("код пользователя пустой")
	}
	if !user.WaterDrops.IsZero() || !user.Pearls.IsZero() {
		t.Fatal("новый пользователь должен стартовать с нулевыми балансами")
	}

	token, _, err := svc.Login(context.Background(), "alice", "pw123")
	if err != nil {
		t.Fatalf("не удалось войти: %v", err)
	}

	got, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("не удалось разрешить токен: %v", err)
	}
	if got.Code != user.Code {
		t.Fatalf("токен разрешился в другого пользователя: %s", got.Code)
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	svc := newSessions(t)

	if _, err := svc.Register(context.Background(), "alice", "", "pw", nil); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "", "pw2", nil); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("ожидалась ErrUsernameTaken, получено %v", err)
	}
}

func TestRegister_UnknownReferrerRejected(t *testing.T) {
	svc := newSessions(t)

	missing := "nobody"
	if _, err := svc.Register(context.Background(), "bob", "", "pw", &missing); !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидалась ErrValidation, получено %v", err)
	}
}

func TestRegister_ValidReferrerStored(t *testing.T) {
	svc := newSessions(t)

	ref, err := svc.Register(context.Background(), "alice", "", "pw", nil)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	user, err := svc.Register(context.Background(), "bob", "", "pw", &ref.Code)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if user.ReferrerCode == nil || *user.ReferrerCode != ref.Code {
		t.Fatal("код пригласившего не сохранился")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newSessions(t)

	if _, err := svc.Register(context.Background(), "alice", "", "pw123", nil); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ожидалась ErrInvalidCredentials, получено %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ожидалась ErrInvalidCredentials, получено %v", err)
	}
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	svc := newSessions(t)

	if _, err := svc.Authenticate(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ожидалась ErrInvalidToken, получено %v", err)
	}
}

func TestAuthenticate_TokenSignedWithOtherSecret(t *testing.T) {
	svc := newSessions(t)
	other := newSessions(t)

	if _, err := other.Register(context.Background(), "alice", "", "pw", nil); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	token, _, err := other.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("не удалось войти: %v", err)
	}

	// оба сервиса используют одинаковый секрет в тестах, подменяем
	svc.secret = []byte("another-secret")
	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ожидалась ErrInvalidToken, получено %v", err)
	}
}

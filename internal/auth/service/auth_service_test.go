package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fairwaylabs/launchpoint/internal/common/clock"
	commoncrypto "github.com/fairwaylabs/launchpoint/internal/common/crypto"
	"github.com/fairwaylabs/launchpoint/internal/common/logger"
	userrepo "github.com/fairwaylabs/launchpoint/internal/user/repository"
)

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(storedHash, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hash:" + password, nil
}

func (m *mockHasher) Compare(storedHash, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(storedHash, password)
	}
	if storedHash != "hash:"+password {
		return commoncrypto.ErrPasswordMismatch
	}
	return nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "critical")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func newTestAuthService(t *testing.T, mockClock *clock.MockClock) (*AuthService, *userrepo.MemRepository, *TokenIssuer) {
	t.Helper()
	repo := userrepo.NewMemRepository()
	issuer := NewTokenIssuer(testSecret, 30*24*time.Hour, mockClock)
	svc := NewAuthService(repo, &mockHasher{}, issuer, mockClock, 30*24*time.Hour, newTestLogger(t))
	return svc, repo, issuer
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		FullName: "Alice Smith",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mockClock := clock.NewMockClock(start)
	svc, _, issuer := newTestAuthService(t, mockClock)

	user, token, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if user.ID == 0 {
		t.Error("expected user id to be assigned")
	}
	if user.Username != "alice" {
		t.Errorf("expected username alice, got %s", user.Username)
	}
	if user.CurrentStep != 1 {
		t.Errorf("expected onboarding to start at step 1, got %d", user.CurrentStep)
	}
	if !user.TrialActive {
		t.Error("expected trial to be active")
	}
	if !user.TrialStartDate.Equal(start) {
		t.Errorf("expected trial start %v, got %v", start, user.TrialStartDate)
	}
	if !user.TrialEndDate.Equal(start.Add(30 * 24 * time.Hour)) {
		t.Errorf("expected trial end 30 days after start, got %v", user.TrialEndDate)
	}
	if user.PaymentAdded {
		t.Error("expected paymentAdded to be false")
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("expected issued token to verify, got %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("expected token user id %d, got %d", user.ID, claims.UserID)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc, repo, _ := newTestAuthService(t, mockClock)

	if _, _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	second := validRegisterInput()
	second.Email = "other@example.com"

	if _, _, err := svc.Register(context.Background(), second); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	if _, err := repo.FindByEmail(context.Background(), "other@example.com"); !errors.Is(err, userrepo.ErrUserNotFound) {
		t.Error("expected no partial record for the rejected registration")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc, repo, _ := newTestAuthService(t, mockClock)

	if _, _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	second := validRegisterInput()
	second.Username = "bob"

	if _, _, err := svc.Register(context.Background(), second); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := repo.FindByUsername(context.Background(), "bob"); !errors.Is(err, userrepo.ErrUserNotFound) {
		t.Error("expected no partial record for the rejected registration")
	}
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc, _, _ := newTestAuthService(t, mockClock)

	testCases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"short username", func(in *RegisterInput) { in.Username = "ab" }},
		{"long username", func(in *RegisterInput) { in.Username = "a-very-long-username-way-past-the-limit" }},
		{"username with spaces", func(in *RegisterInput) { in.Username = "a lice" }},
		{"empty email", func(in *RegisterInput) { in.Email = "" }},
		{"invalid email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *RegisterInput) { in.Password = "short" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(&input)

			if _, _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc, _, issuer := newTestAuthService(t, mockClock)

	registered, _, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, token, err := svc.Login(context.Background(), "alice", "password123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user id %d, got %d", registered.ID, user.ID)
	}

	if _, err := issuer.Parse(token); err != nil {
		t.Errorf("expected issued token to verify, got %v", err)
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc, _, _ := newTestAuthService(t, mockClock)

	if _, _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, _, wrongPassword := svc.Login(context.Background(), "alice", "wrong-password")
	_, _, unknownUser := svc.Login(context.Background(), "nosuchuser", "password123")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Error("expected identical error for unknown user and wrong password")
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc, _, _ := newTestAuthService(t, mockClock)

	registered, token, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user id %d, got %d", registered.ID, user.ID)
	}
}

func TestAuthService_Authenticate_NoToken(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc, _, _ := newTestAuthService(t, mockClock)

	if _, err := svc.Authenticate(context.Background(), ""); !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestAuthService_Authenticate_InvalidToken(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc, _, _ := newTestAuthService(t, mockClock)

	if _, err := svc.Authenticate(context.Background(), "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Authenticate_Expired(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc, _, _ := newTestAuthService(t, mockClock)

	_, token, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	mockClock.Advance(31 * 24 * time.Hour)

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	svc, _, issuer := newTestAuthService(t, mockClock)

	_, token, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Same signing key, empty store: the signature still verifies but the
	// user record is gone.
	emptyRepo := userrepo.NewMemRepository()
	orphaned := NewAuthService(emptyRepo, &mockHasher{}, issuer, mockClock, 30*24*time.Hour, newTestLogger(t))

	if _, err := orphaned.Authenticate(context.Background(), token); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

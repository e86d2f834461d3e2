package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainHasher struct{}

func (plainHasher) GenerateSalt() (string, error) { return "salt", nil }

func (plainHasher) Hash(salt, password string) (string, error) { return salt + ":" + password, nil }

func (plainHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type stubIssuer struct{}

func (stubIssuer) Issue(userID, username string, expiry time.Duration) (string, error) {
	return "token-" + userID + "-" + username, nil
}

func newAuthFixture() (domain.AuthService, *memStore, *fakeEmailService) {
	m := newMemStore()
	mail := &fakeEmailService{failFor: map[string]bool{}}
	return NewAuthService(fakeUserRepo{m}, plainHasher{}, stubIssuer{}, mail, time.Hour, discardLogger()), m, mail
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	svc, m, mail := newAuthFixture()

	token, user, err := svc.Register(ctx, " alice ", "Alice@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "token-"+user.ID+"-alice", token)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "salt:password123", m.users[user.ID].PasswordHash)
	require.Len(t, mail.welcomes, 1)
	assert.Equal(t, "alice", mail.welcomes[0].Username)

	_, _, err = svc.Register(ctx, "alice", "other@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, m, _ := newAuthFixture()

	_, _, err := svc.Register(context.Background(), "", "bad", "short")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.Empty(t, m.users)
}

func TestAuthService_Register_WelcomeFailureIsIgnored(t *testing.T) {
	svc, _, mail := newAuthFixture()
	mail.welcomeErr = errors.New("smtp down")

	_, user, err := svc.Register(context.Background(), "bob", "bob@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthFixture()
	_, user, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "token-"+user.ID+"-alice", token)

	_, err = svc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

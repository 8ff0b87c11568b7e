package service

import (
	"context"
	"testing"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(env *testEnv) UserService {
	return NewUserService(repository.NewUserRepository(env.db))
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "alice",
		Password: "correct-horse",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.True(t, created.MustChangePassword)

	for i := 0; i < maxFailedLogins; i++ {
		_, err = svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	}

	// the right password no longer helps once the account is locked
	_, err = svc.Login(ctx, LoginRequest{Username: "alice", Password: "correct-horse"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	unlocked := false
	_, err = svc.UpdateUser(ctx, created.ID.String(), UpdateUserRequest{IsLocked: &unlocked})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginResetsFailedAttemptsOnSuccess(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "bob",
		Password: "secret-pw",
		Role:     model.RoleEmployee,
	})
	require.NoError(t, err)

	for i := 0; i < maxFailedLogins-1; i++ {
		_, err = svc.Login(ctx, LoginRequest{Username: "bob", Password: "nope"})
		require.Error(t, err)
	}

	_, err = svc.Login(ctx, LoginRequest{Username: "bob", Password: "secret-pw"})
	require.NoError(t, err)

	// the counter started over, one more miss must not lock the account
	_, err = svc.Login(ctx, LoginRequest{Username: "bob", Password: "nope"})
	require.Error(t, err)
	_, err = svc.Login(ctx, LoginRequest{Username: "bob", Password: "secret-pw"})
	require.NoError(t, err)
}

func TestChangePasswordClearsMustChangeFlag(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "carol",
		Password: "initial-pw",
		Role:     model.RoleVerifier,
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, created.ID.String(), ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "fresh-pw",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	err = svc.ChangePassword(ctx, created.ID.String(), ChangePasswordRequest{
		CurrentPassword: "initial-pw",
		NewPassword:     "fresh-pw",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Username: "carol", Password: "fresh-pw"})
	require.NoError(t, err)
	assert.False(t, resp.MustChangePassword)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "dave",
		Password: "secret-pw",
		Role:     "superuser",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

// internal/membership/implementation_test.go
package membership

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUser(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	user, err := svc.AddUser(ctx, "user1", "user1pass", RoleUser, SubscriptionMonth)
	require.NoError(t, err)
	assert.Equal(t, "user1", user.Username)
	assert.Equal(t, RoleUser, user.Role)
	require.NotNil(t, user.SubscriptionEnd)
	assert.Zero(t, user.Fines)

	// The stored credential is a salted hash, never the password itself.
	assert.NotEqual(t, "user1pass", user.PasswordHash)
	assert.NotEmpty(t, user.Salt)
}

func TestAddUserDuplicate(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "user1", "user1pass", RoleUser, SubscriptionNone)
	require.NoError(t, err)

	_, err = svc.AddUser(ctx, "user1", "other", RoleAdmin, SubscriptionNone)
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestAddUserWithoutSubscription(t *testing.T) {
	svc := NewService()

	user, err := svc.AddUser(context.Background(), "user1", "user1pass", RoleUser, SubscriptionNone)
	require.NoError(t, err)
	assert.Nil(t, user.SubscriptionEnd)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc := NewService()

	err := svc.UpdateUser(context.Background(), "ghost", "pass", RoleUser, SubscriptionNone)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserRenewsSubscription(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "user1", "user1pass", RoleUser, SubscriptionNone)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateUser(ctx, "user1", "newpass", RoleUser, SubscriptionYear))

	user, err := svc.GetUser(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, user.SubscriptionEnd)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 365), *user.SubscriptionEnd, time.Minute)

	_, err = svc.Authenticate(ctx, "user1", "newpass")
	require.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "user1", "user1pass", RoleUser, SubscriptionNone)
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "user1", "user1pass")
	require.NoError(t, err)
	assert.Equal(t, "user1", user.Username)
}

func TestAuthenticateDistinguishesFailures(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "user1", "user1pass", RoleUser, SubscriptionNone)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "unknown user")

	_, err = svc.Authenticate(ctx, "user1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "wrong password")
}

func TestFineBalance(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "user1", "user1pass", RoleUser, SubscriptionNone)
	require.NoError(t, err)

	require.NoError(t, svc.RecordFines(ctx, "user1", 7.00))
	user, err := svc.GetUser(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, 7.00, user.Fines)

	require.NoError(t, svc.SettleFines(ctx, "user1"))
	user, err = svc.GetUser(ctx, "user1")
	require.NoError(t, err)
	assert.Zero(t, user.Fines)
}

func TestRecordFinesRejectsNegative(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	_, err := svc.AddUser(ctx, "user1", "user1pass", RoleUser, SubscriptionNone)
	require.NoError(t, err)

	assert.Error(t, svc.RecordFines(ctx, "user1", -1))
}

func TestSubscriptionDurationDays(t *testing.T) {
	assert.Equal(t, 0, SubscriptionNone.Days())
	assert.Equal(t, 30, SubscriptionMonth.Days())
	assert.Equal(t, 90, SubscriptionQuarter.Days())
	assert.Equal(t, 180, SubscriptionHalfYear.Days())
	assert.Equal(t, 365, SubscriptionYear.Days())
}

func TestListUsersPreservesOrder(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	for _, name := range []string{"admin", "user1", "user2"} {
		_, err := svc.AddUser(ctx, name, name+"pass", RoleUser, SubscriptionNone)
		require.NoError(t, err)
	}

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, "user2", users[2].Username)
}

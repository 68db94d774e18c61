package services_test

import (
	"testing"

	"github.com/solarwatch/backend/internal/db/models"
	"github.com/solarwatch/backend/internal/services"
	"github.com/solarwatch/backend/internal/testutil"
	"github.com/solarwatch/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserSetup(t *testing.T) (*testutil.TestSetup, *services.UserService) {
	ts := testutil.NewTestSetup(t)
	t.Cleanup(ts.Cleanup)
	ts.SetupTestDatabase()

	svc := services.NewUserService(
		ts.Repos.User(),
		services.NewPasswordStrengthService(),
		&ts.Config.JWT,
		testLogger(),
	)
	return ts, svc
}

func testUser(email string) *models.User {
	return &models.User{
		Email:     email,
		FirstName: "Jordan",
		LastName:  "Lee",
		Active:    true,
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	_, svc := newUserSetup(t)

	err := svc.Register(testUser("jordan@example.com"), "password123")
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	_, svc := newUserSetup(t)

	user := testUser("jordan@example.com")
	require.NoError(t, svc.Register(user, "Tr7$kWm2xQ"))
	assert.Equal(t, models.RoleUser, user.Role)

	authenticated, tokens, err := svc.Authenticate("jordan@example.com", "Tr7$kWm2xQ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authenticated.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, 3600, tokens.ExpiresIn)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	_, svc := newUserSetup(t)

	user := testUser("jordan@example.com")
	require.NoError(t, svc.Register(user, "Tr7$kWm2xQ"))

	_, _, err := svc.Authenticate("jordan@example.com", "WrongPass9$")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	_, svc := newUserSetup(t)

	_, _, err := svc.Authenticate("nobody@example.com", "Tr7$kWm2xQ")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, svc := newUserSetup(t)

	require.NoError(t, svc.Register(testUser("jordan@example.com"), "Tr7$kWm2xQ"))
	err := svc.Register(testUser("jordan@example.com"), "Tr7$kWm2xQ")
	assert.ErrorIs(t, err, utils.ErrAlreadyExists)
}

func TestRefreshIssuesNewTokenPair(t *testing.T) {
	_, svc := newUserSetup(t)

	user := testUser("jordan@example.com")
	require.NoError(t, svc.Register(user, "Tr7$kWm2xQ"))

	_, tokens, err := svc.Authenticate("jordan@example.com", "Tr7$kWm2xQ")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	_, svc := newUserSetup(t)

	user := testUser("jordan@example.com")
	require.NoError(t, svc.Register(user, "Tr7$kWm2xQ"))

	_, tokens, err := svc.Authenticate("jordan@example.com", "Tr7$kWm2xQ")
	require.NoError(t, err)

	// An access token is signed with a different secret
	_, err = svc.Refresh(tokens.AccessToken)
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	_, svc := newUserSetup(t)

	user := testUser("jordan@example.com")
	require.NoError(t, svc.Register(user, "Tr7$kWm2xQ"))

	err := svc.ChangePassword(user.ID, "WrongPass9$", "Nv4!pZr8bT")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	err = svc.ChangePassword(user.ID, "Tr7$kWm2xQ", "weak")
	assert.ErrorIs(t, err, utils.ErrValidation)

	require.NoError(t, svc.ChangePassword(user.ID, "Tr7$kWm2xQ", "Nv4!pZr8bT"))

	_, _, err = svc.Authenticate("jordan@example.com", "Nv4!pZr8bT")
	assert.NoError(t, err)
}

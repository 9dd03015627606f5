package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prop-server/models"
)

var testUser = models.User{ID: "17", FullName: "Asha Rao", Email: "asha@example.com", PhoneNumber: "9876543210"}

func TestNewService(t *testing.T) {
	service := NewService("secret", 0)

	assert.NotEmpty(t, service.jwtSecret)
	assert.Equal(t, 7*24*time.Hour, service.tokenExp)
}

func TestService_IssueAndParse(t *testing.T) {
	service := NewService("secret", 0)

	token, err := service.Issue(testUser)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	user, err := service.Parse("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, testUser, *user)
}

func TestService_ExpiresAfterSevenDays(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	service := NewService("secret", 0)
	service.now = func() time.Time { return now }

	token, err := service.Issue(testUser)
	require.NoError(t, err)

	now = now.Add(7*24*time.Hour - time.Minute)
	_, err = service.Parse(token)
	assert.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = service.Parse(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestService_RejectsTamperedTokens(t *testing.T) {
	service := NewService("secret", time.Hour)
	other := NewService("other-secret", time.Hour)

	token, err := other.Issue(testUser)
	require.NoError(t, err)

	tests := []string{
		"",
		"Bearer ",
		"not-a-jwt",
		token,
		token + "x",
	}
	for _, tt := range tests {
		_, err := service.Parse(tt)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tt)
	}
}

package services_test

import (
	"testing"

	"butik/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestSessionService_IssueAndValidate(t *testing.T) {
	service := services.NewSessionService("test_session_secret")

	sessionID, token, err := service.IssueToken()
	assert.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.NotEmpty(t, token)

	parsedID, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, sessionID, parsedID)
}

func TestSessionService_EachTokenIsUnique(t *testing.T) {
	service := services.NewSessionService("test_session_secret")

	firstID, _, err := service.IssueToken()
	assert.NoError(t, err)
	secondID, _, err := service.IssueToken()
	assert.NoError(t, err)

	assert.NotEqual(t, firstID, secondID)
}

func TestSessionService_RejectsGarbageToken(t *testing.T) {
	service := services.NewSessionService("test_session_secret")

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestSessionService_RejectsTokenFromOtherSecret(t *testing.T) {
	issuer := services.NewSessionService("secret_one")
	verifier := services.NewSessionService("secret_two")

	_, token, err := issuer.IssueToken()
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

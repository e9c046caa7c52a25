package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken("ana@example.com", "Ana")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", claims.Email)
	require.Equal(t, "Ana", claims.Name)
	require.Equal(t, StageSession, claims.Stage)
}

func TestValidateStage_RejectsWrongStage(t *testing.T) {
	temp, err := GenerateTempToken("ana@example.com")
	require.NoError(t, err)

	// A temp token is not a session, and a session is not a temp token.
	_, err = ValidateStage(temp, StageSession)
	require.Error(t, err)
	_, err = ValidateStage(temp, StageAwait2FA)
	require.NoError(t, err)

	session, err := GenerateSessionToken("ana@example.com", "Ana")
	require.NoError(t, err)
	_, err = ValidateStage(session, StageAwait2FA)
	require.Error(t, err)
}

func TestValidateToken_Invalid(t *testing.T) {
	_, err := ValidateToken("invalid.token")
	require.Error(t, err)
}

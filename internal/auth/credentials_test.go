package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func bcryptHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestParseUsers(t *testing.T) {
	hash := bcryptHash(t, "secret")
	raw := "ana@example.com:Ana:" + hash + ":JBSWY3DPEHPK3PXP; tiago@example.com:Tiago:" + hash + ":JBSWY3DPEHPK3PXQ"

	creds, err := ParseUsers(raw)
	require.NoError(t, err)

	user, ok := creds.Lookup("ana@example.com")
	require.True(t, ok)
	require.Equal(t, "Ana", user.Name)
	require.True(t, user.CheckPassword("secret"))
	require.False(t, user.CheckPassword("wrong"))

	// Lookup is case-insensitive on the email.
	_, ok = creds.Lookup("ANA@example.com")
	require.True(t, ok)

	_, ok = creds.Lookup("nobody@example.com")
	require.False(t, ok)
}

func TestParseUsers_Malformed(t *testing.T) {
	_, err := ParseUsers("not-a-record")
	require.Error(t, err)
}

func TestParseUsers_Empty(t *testing.T) {
	creds, err := ParseUsers("")
	require.NoError(t, err)
	_, ok := creds.Lookup("anyone@example.com")
	require.False(t, ok)
}

func TestProvisioningQR(t *testing.T) {
	uri := ProvisioningURI("ana@example.com", "JBSWY3DPEHPK3PXP")
	require.True(t, strings.HasPrefix(uri, "otpauth://totp/"))
	require.Contains(t, uri, "secret=JBSWY3DPEHPK3PXP")

	qr, err := ProvisioningQR("ana@example.com", "JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(qr, "data:image/png;base64,"))
}

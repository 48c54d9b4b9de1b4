package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, now time.Time) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager("test-secret", time.Minute)
	require.NoError(t, err)
	tm.now = func() time.Time { return now }
	return tm
}

func TestNewTokenManager_Validation(t *testing.T) {
	_, err := NewTokenManager("", time.Minute)
	require.Error(t, err)

	_, err = NewTokenManager("secret", 0)
	require.Error(t, err)
}

func TestIssueAndParse(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tm := newTestManager(t, now)

	token, err := tm.Issue("663a1f0c2b4e5d6f7a8b9c0d", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "663a1f0c2b4e5d6f7a8b9c0d", claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, now.Add(time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestTokensDifferPerUser(t *testing.T) {
	tm := newTestManager(t, time.Now())

	a, err := tm.Issue("663a1f0c2b4e5d6f7a8b9c0d", "alice")
	require.NoError(t, err)
	b, err := tm.Issue("663a1f0c2b4e5d6f7a8b9c0e", "bob")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestParse_Expired(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	tm := newTestManager(t, issuedAt)

	token, err := tm.Issue("663a1f0c2b4e5d6f7a8b9c0d", "alice")
	require.NoError(t, err)

	tm.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = tm.Parse(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestParse_WrongSecret(t *testing.T) {
	now := time.Now()
	tm := newTestManager(t, now)
	token, err := tm.Issue("663a1f0c2b4e5d6f7a8b9c0d", "alice")
	require.NoError(t, err)

	other, err := NewTokenManager("other-secret", time.Minute)
	require.NoError(t, err)
	_, err = other.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	tm := newTestManager(t, time.Now())

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "663a1f0c2b4e5d6f7a8b9c0d"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	tm := newTestManager(t, time.Now())
	_, err := tm.Parse("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

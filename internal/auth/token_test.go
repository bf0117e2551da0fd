package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	testJWTSecret = []byte("0123456789abcdef0123456789abcdef")
	testPasetoKey = []byte("fedcba9876543210fedcba9876543210")
)

func tokenBackends(t *testing.T) map[string]TokenService {
	t.Helper()

	jwtSvc, err := NewJWTService(testJWTSecret)
	require.NoError(t, err)
	pasetoSvc, err := NewPasetoService(testPasetoKey)
	require.NoError(t, err)

	return map[string]TokenService{
		"jwt":    jwtSvc,
		"paseto": pasetoSvc,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	for name, svc := range tokenBackends(t) {
		t.Run(name, func(t *testing.T) {
			id := uuid.New()
			before := time.Now()

			token, err := svc.CreateToken(id, "a@x.com", 24*time.Hour)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := svc.VerifyToken(token)
			require.NoError(t, err)
			require.Equal(t, id.String(), claims.AccountID)
			require.Equal(t, "a@x.com", claims.Email)

			// Expiry sits 24h after issuance
			require.WithinDuration(t, before.Add(24*time.Hour), claims.ExpiresAt, 5*time.Second)
		})
	}
}

func TestTokenExpired(t *testing.T) {
	for name, svc := range tokenBackends(t) {
		t.Run(name, func(t *testing.T) {
			token, err := svc.CreateToken(uuid.New(), "a@x.com", -time.Minute)
			require.NoError(t, err)

			_, err = svc.VerifyToken(token)
			require.Error(t, err)
		})
	}
}

func TestTokenMalformed(t *testing.T) {
	for name, svc := range tokenBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := svc.VerifyToken("not-a-token")
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTWrongKeyRejected(t *testing.T) {
	svc, err := NewJWTService(testJWTSecret)
	require.NoError(t, err)
	other, err := NewJWTService([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New(), "a@x.com", time.Hour)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTTamperedRejected(t *testing.T) {
	svc, err := NewJWTService(testJWTSecret)
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New(), "a@x.com", time.Hour)
	require.NoError(t, err)

	// Flip a character in the payload segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = svc.VerifyToken(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTExpiredSentinel(t *testing.T) {
	svc, err := NewJWTService(testJWTSecret)
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New(), "a@x.com", -2*time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestNewJWTServiceShortSecret(t *testing.T) {
	_, err := NewJWTService([]byte("short"))
	require.Error(t, err)
}

func TestNewPasetoServiceBadKeyLength(t *testing.T) {
	_, err := NewPasetoService([]byte("short"))
	require.Error(t, err)
}

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodec_EmptySecret(t *testing.T) {
	_, err := NewCodec("", DefaultTokenTTL)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	codec, err := NewCodec("test-secret", DefaultTokenTTL)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := codec.Sign(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.NotNil(t, claims.ExpiresAt)
	assert.NotNil(t, claims.IssuedAt)
}

func TestVerify_WrongSecret(t *testing.T) {
	signer, err := NewCodec("secret-one", DefaultTokenTTL)
	require.NoError(t, err)
	verifier, err := NewCodec("secret-two", DefaultTokenTTL)
	require.NoError(t, err)

	token, err := signer.Sign(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TamperedSignature(t *testing.T) {
	codec, err := NewCodec("test-secret", DefaultTokenTTL)
	require.NoError(t, err)

	token, err := codec.Sign(uuid.New())
	require.NoError(t, err)

	// Flip one character of the signature segment.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = codec.Verify(string(tampered))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	codec, err := NewCodec("test-secret", DefaultTokenTTL)
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestVerify_Expired(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Nanosecond)
	require.NoError(t, err)

	token, err := codec.Sign(uuid.New())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

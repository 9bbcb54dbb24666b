package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)

	tok, err := iss.Issue("t2_alice", "alice")
	require.NoError(t, err)

	claims, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "t2_alice", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseRejectsOtherSecret(t *testing.T) {
	tok, err := NewIssuer("one", time.Hour).Issue("t2_alice", "alice")
	require.NoError(t, err)

	_, err = NewIssuer("two", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseExpired(t *testing.T) {
	iss := NewIssuer("s3cret", -time.Minute)
	iss.ttl = -time.Minute

	tok, err := iss.Issue("t2_alice", "alice")
	require.NoError(t, err)

	_, err = iss.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseGarbage(t *testing.T) {
	_, err := NewIssuer("s3cret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionContext(t *testing.T) {
	_, ok := SessionFrom(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), &Session{UID: "uid-1", Email: "a@b.c"})
	s, ok := SessionFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "uid-1", s.UID)

	_, ok = SessionFrom(WithSession(context.Background(), &Session{}))
	assert.False(t, ok, "empty uid is anonymous")

	_, ok = SessionFrom(WithSession(context.Background(), nil))
	assert.False(t, ok)
}

func TestDevVerifier(t *testing.T) {
	s, err := DevVerifier{}.Verify(context.Background(), " alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", s.UID)
	assert.Equal(t, "alice@firebase.local", s.Email)

	_, err = DevVerifier{}.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmptyTokenIsInvalid(t *testing.T) {
	dir := NewRedisDirectory(nil, time.Hour)

	_, err := dir.Resolve(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

package oss

import (
	"context"
	"io"
	"strings"
	"testing"

	"ShortVideo.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, "a.mp4", strings.NewReader("frames"), 6, "video/mp4"))

	rc, size, err := s.Get(ctx, "a.mp4")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, int64(6), size)
	assert.Equal(t, "frames", string(body))

	require.NoError(t, s.Delete(ctx, "a.mp4"))
	_, _, err = s.Get(ctx, "a.mp4")
	assert.ErrorIs(t, err, errno.NotFoundErr)
}

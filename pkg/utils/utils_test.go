package utils

import (
	"sync"
	"testing"

	"ShortVideo.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDUnique(t *testing.T) {
	const n = 1000
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		ids = make(map[int64]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := GenerateID()
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, ids, n)
}

func TestParseId(t *testing.T) {
	id, err := ParseId("video_id", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err = ParseId("video_id", bad)
		assert.ErrorIs(t, err, errno.InvalidArgumentErr, bad)
	}
}

func TestParseIntDefault(t *testing.T) {
	n, err := ParseIntDefault("", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	n, err = ParseIntDefault("3", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParseIntDefault("x", 10)
	assert.Error(t, err)
}

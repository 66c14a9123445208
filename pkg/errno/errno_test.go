package errno

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	t.Run("nil is success", func(t *testing.T) {
		assert.Equal(t, Success, ConvertErr(nil))
	})

	t.Run("wrapped errno keeps its code", func(t *testing.T) {
		err := errors.WithMessage(NotFoundErr.WithMessage("video 7 not found"), "service.ToggleLike")
		got := ConvertErr(err)
		assert.Equal(t, int64(NotFoundErrCode), got.ErrCode)
		assert.Equal(t, "video 7 not found", got.ErrMsg)
	})

	t.Run("plain error becomes service error", func(t *testing.T) {
		got := ConvertErr(errors.New("boom"))
		assert.Equal(t, int64(ServiceErrCode), got.ErrCode)
		assert.Equal(t, "boom", got.ErrMsg)
	})
}

func TestIsComparesCode(t *testing.T) {
	err := errors.WithMessage(ConflictErr.WithMessage("already reported"), "dao")
	assert.True(t, errors.Is(err, ConflictErr))
	assert.False(t, errors.Is(err, NotFoundErr))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[ErrNo]int{
		Success:             200,
		NotFoundErr:         404,
		ForbiddenErr:        403,
		ConflictErr:         409,
		InvalidArgumentErr:  400,
		InvalidOperationErr: 422,
		TokenInvalidErr:     401,
		MysqlErr:            500,
	}
	for e, want := range cases {
		assert.Equal(t, want, HTTPStatus(e), e.ErrMsg)
	}
}

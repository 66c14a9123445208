package errno

import "github.com/cloudwego/hertz/pkg/protocol/consts"

// HTTPStatus 将错误码映射为HTTP状态码
func HTTPStatus(err ErrNo) int {
	switch err.ErrCode {
	case SuccessCode:
		return consts.StatusOK
	case NotFoundErrCode:
		return consts.StatusNotFound
	case ForbiddenErrCode:
		return consts.StatusForbidden
	case ConflictErrCode:
		return consts.StatusConflict
	case InvalidArgumentErrCode, ParamErrCode, BindErrCode:
		return consts.StatusBadRequest
	case InvalidOperationErrCode:
		return consts.StatusUnprocessableEntity
	case TokenInvalidErrCode:
		return consts.StatusUnauthorized
	case TooManyRequestsErrCode:
		return consts.StatusTooManyRequests
	default:
		return consts.StatusInternalServerError
	}
}

package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode             = 0
	ServiceErrCode          = 10001
	ParamErrCode            = 10002
	BindErrCode             = 10003
	MysqlErrCode            = 10004
	RedisErrCode            = 10005
	OssErrCode              = 10006
	MqErrCode               = 10007
	TokenInvalidErrCode     = 10008
	NotFoundErrCode         = 20001
	ForbiddenErrCode        = 20002
	ConflictErrCode         = 20003
	InvalidArgumentErrCode  = 20004
	InvalidOperationErrCode = 20005
	TooManyRequestsErrCode  = 20006
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

// Is 只比较错误码 WithMessage之后依然可以用errors.Is判断错误类型
func (e ErrNo) Is(target error) bool {
	var t ErrNo
	if !errors.As(target, &t) {
		return false
	}
	return e.ErrCode == t.ErrCode
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success             = NewErrNo(SuccessCode, "Success")
	ServiceErr          = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	RequestErr          = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	ErrBind             = NewErrNo(BindErrCode, "Error occurred while binding the request body to the struct")
	MysqlErr            = NewErrNo(MysqlErrCode, "Mysql operation failed")
	RedisErr            = NewErrNo(RedisErrCode, "Redis operation failed")
	OssErr              = NewErrNo(OssErrCode, "Object storage operation failed")
	MqErr               = NewErrNo(MqErrCode, "Message queue operation failed")
	TokenInvalidErr     = NewErrNo(TokenInvalidErrCode, "Token is invalid")
	NotFoundErr         = NewErrNo(NotFoundErrCode, "Resource not found")
	ForbiddenErr        = NewErrNo(ForbiddenErrCode, "Permission denied")
	ConflictErr         = NewErrNo(ConflictErrCode, "Resource already exists")
	InvalidArgumentErr  = NewErrNo(InvalidArgumentErrCode, "Invalid argument")
	InvalidOperationErr = NewErrNo(InvalidOperationErrCode, "Operation not allowed in current state")
	TooManyRequestsErr  = NewErrNo(TooManyRequestsErrCode, "Too many requests")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}

	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}

// IsErrNo 判断err是否携带业务错误码
func IsErrNo(err error) bool {
	var e ErrNo
	return errors.As(err, &e)
}

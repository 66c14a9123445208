package utils

import (
	"strconv"
	"strings"

	"ShortVideo.com/pkg/errno"
)

// ParseId 解析路径中的正整数ID
func ParseId(name, v string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || id <= 0 {
		return 0, errno.InvalidArgumentErr.WithMessage("invalid " + name)
	}
	return id, nil
}

// ParseIntDefault 解析查询参数 为空时返回默认值
func ParseIntDefault(v string, def int) (int, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errno.InvalidArgumentErr.WithMessage("invalid number " + v)
	}
	return n, nil
}

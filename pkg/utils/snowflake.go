package utils

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// InitSnowflake 初始化全局雪花节点 workerID取值范围0-1023
func InitSnowflake(workerID int64) error {
	n, err := snowflake.NewNode(workerID)
	if err != nil {
		return errors.Wrapf(err, "snowflake.NewNode(%d) failed", workerID)
	}
	node = n
	return nil
}

// GenerateID 生成唯一ID 未初始化时使用节点1
func GenerateID() int64 {
	nodeOnce.Do(func() {
		if node == nil {
			_ = InitSnowflake(1)
		}
	})
	return node.Generate().Int64()
}

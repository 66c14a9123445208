package utils

import (
	"strings"

	"ShortVideo.com/config"
)

func GetMysqlDsn() string {
	//生成数据库的dsn
	params := config.ConfigInfo.Mysql.Params
	if params == "" {
		params = "parseTime=True&loc=Local"
	}
	dsn := strings.Join([]string{config.ConfigInfo.Mysql.Username, ":",
		config.ConfigInfo.Mysql.Password, "@tcp(", config.ConfigInfo.Mysql.Addr, ")/",
		config.ConfigInfo.Mysql.Database, "?charset=" + config.ConfigInfo.Mysql.Charset + "&" + params}, "") //nolint:lll

	return dsn
}

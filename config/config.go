package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// Init 读取config.yml 环境变量可以覆盖同名配置 例如 MYSQL_ADDR
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, falling back to defaults: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
			return
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	load()

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	if ConfigInfo.Redis.Addr == "" {
		logrus.Warn("No redis address configured, toggles fall back to in-process locks")
	}
}

func setDefaults() {
	viper.SetDefault("server.addr", "0.0.0.0:8888")
	viper.SetDefault("server.worker_id", 1)
	viper.SetDefault("mysql.charset", "utf8mb4")
	viper.SetDefault("minio.bucket", "videos")
	viper.SetDefault("jwt.issuer", "ShortVideo")
	viper.SetDefault("jaeger.service_name", "ShortVideo")
	viper.SetDefault("sentinel.feed_qps", 200)
	viper.SetDefault("engine.comments_per_minute", 10)
	viper.SetDefault("engine.lock_expiry_seconds", 5)
}

// 手动从viper获取配置值，避免Unmarshal问题
func load() {
	ConfigInfo.Server.Addr = viper.GetString("server.addr")
	ConfigInfo.Server.PprofAddr = viper.GetString("server.pprof_addr")
	ConfigInfo.Server.WorkerId = viper.GetInt64("server.worker_id")

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")
	ConfigInfo.Mysql.Params = viper.GetString("mysql.params")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")

	ConfigInfo.RabbitMq.Addr = viper.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = viper.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = viper.GetString("rabbitmq.password")

	ConfigInfo.Minio.Endpoint = viper.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = viper.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = viper.GetString("minio.secret_key")
	ConfigInfo.Minio.Bucket = viper.GetString("minio.bucket")
	ConfigInfo.Minio.UseSSL = viper.GetBool("minio.use_ssl")

	ConfigInfo.Jwt.Secret = viper.GetString("jwt.secret")
	ConfigInfo.Jwt.Issuer = viper.GetString("jwt.issuer")

	ConfigInfo.Jaeger.Enable = viper.GetBool("jaeger.enable")
	ConfigInfo.Jaeger.ServiceName = viper.GetString("jaeger.service_name")

	ConfigInfo.Sentinel.FeedQps = viper.GetFloat64("sentinel.feed_qps")

	ConfigInfo.Engine.CommentsPerMinute = viper.GetInt64("engine.comments_per_minute")
	ConfigInfo.Engine.LockExpirySeconds = viper.GetInt64("engine.lock_expiry_seconds")
}

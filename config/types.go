package config

type config struct {
	Server   server   `yaml:"server" mapstructure:"server"`
	Mysql    mysql    `yaml:"mysql" mapstructure:"mysql"`
	Redis    redis    `yaml:"redis" mapstructure:"redis"`
	RabbitMq rabbitmq `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Minio    minio    `yaml:"minio" mapstructure:"minio"`
	Jwt      jwt      `yaml:"jwt" mapstructure:"jwt"`
	Jaeger   jaeger   `yaml:"jaeger" mapstructure:"jaeger"`
	Sentinel sentinel `yaml:"sentinel" mapstructure:"sentinel"`
	Engine   engine   `yaml:"engine" mapstructure:"engine"`
}

type server struct {
	Addr      string `yaml:"addr"`
	PprofAddr string `yaml:"pprof_addr" mapstructure:"pprof_addr"`
	WorkerId  int64  `yaml:"worker_id" mapstructure:"worker_id"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
	Params   string `yaml:"params"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
}

type jwt struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

type jaeger struct {
	Enable      bool   `yaml:"enable"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}

type sentinel struct {
	FeedQps float64 `yaml:"feed_qps" mapstructure:"feed_qps"`
}

type engine struct {
	CommentsPerMinute int64 `yaml:"comments_per_minute" mapstructure:"comments_per_minute"`
	LockExpirySeconds int64 `yaml:"lock_expiry_seconds" mapstructure:"lock_expiry_seconds"`
}

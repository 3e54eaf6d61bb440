package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Logstash  LogstashConfig  `mapstructure:"logstash"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	Recaptcha RecaptchaConfig `mapstructure:"recaptcha"`
	Board     BoardConfig     `mapstructure:"board"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig Mongo配置，审核操作流水落在这里
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置，缩略图存储桶
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKey       string `mapstructure:"access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	ThumbnailBucket string `mapstructure:"thumbnail_bucket"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// DiscordConfig Discord Webhook 配置
type DiscordConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

// RecaptchaConfig reCAPTCHA 校验配置
type RecaptchaConfig struct {
	Secret    string `mapstructure:"secret"`
	VerifyURL string `mapstructure:"verify_url"`
}

// BoardConfig 站点信息，RSS 与缩略图会用到
type BoardConfig struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	SiteURL     string `mapstructure:"site_url"`
	FeedURL     string `mapstructure:"feed_url"`
}

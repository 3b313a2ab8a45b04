package config

// Config 配置主体
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	WS      WSConfig      `mapstructure:"ws"`
	Ops     OpsConfig     `mapstructure:"ops"`
	Session SessionConfig `mapstructure:"session"`
	Paging  PagingConfig  `mapstructure:"paging"`
	Cron    CronConfig    `mapstructure:"cron"`
	LogSink LogSinkConfig `mapstructure:"log_sink"`
}

// APIConfig 后端 REST 接入配置
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	RetryCount     int    `mapstructure:"retry_count"`
}

// WSConfig 实时事件流接入配置
type WSConfig struct {
	URL               string `mapstructure:"url"`
	HandshakeTimeout  int    `mapstructure:"handshake_timeout"`
	PingInterval      int    `mapstructure:"ping_interval"`
	ReadTimeout       int    `mapstructure:"read_timeout"`
	MaxBackoffSeconds int    `mapstructure:"max_backoff_seconds"`
}

// OpsConfig 本地运维端点配置
type OpsConfig struct {
	Addr string `mapstructure:"addr"`
}

// SessionConfig 会话凭据配置；Token 为空时用账号密码登录
type SessionConfig struct {
	Token    string `mapstructure:"token"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// PagingConfig 各分页大小
type PagingConfig struct {
	HistoryPageSize int `mapstructure:"history_page_size"`
	RoomPageSize    int `mapstructure:"room_page_size"`
	ContactPageSize int `mapstructure:"contact_page_size"`
}

// CronConfig 定时任务周期
type CronConfig struct {
	TokenRefreshSpec string `mapstructure:"token_refresh_spec"`
	RoomSyncSpec     string `mapstructure:"room_sync_spec"`
}

// LogSinkConfig 远端日志收集配置，Address 为空则仅输出到 stdout
type LogSinkConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

package models

// MConfig Structure
type MConfig struct {
	Name       string            `yaml:"name"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	LogLevel   string            `yaml:"log_level"`
	Storage    MStorageConfig    `yaml:"storage"`
	Network    MNetworkConfig    `yaml:"network"`
	MarketData MMarketDataConfig `yaml:"market_data"`
	Server     MServerConfig     `yaml:"server"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	UserAgent      string `yaml:"user_agent"`
}

// MMarketDataConfig controls the live-provider throttle and retry policy.
type MMarketDataConfig struct {
	MinRequestIntervalSeconds int `yaml:"min_request_interval_seconds"`
	MaxRetries                int `yaml:"max_retries"`
	RetryBaseDelaySeconds     int `yaml:"retry_base_delay_seconds"`
	RetryDelayStepSeconds     int `yaml:"retry_delay_step_seconds"`
}

type MServerConfig struct {
	BroadcastIntervalSeconds int `yaml:"broadcast_interval_seconds"`
}

package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"hexint-tracker/types"
)

type BotConfig struct {
	AlertBotToken string   `toml:"alert_bot_token"`
	AlertChatID   int64    `toml:"alert_chat_id"`
	ValidUsers    []string `toml:"valid_users"`
}

type ServerConfig struct {
	HttpPort int `toml:"http_port"`
}

type NetConfig struct {
	RPCEndpoint string `toml:"rpc_endpoint"`
	Timeout     int    `toml:"timeout_seconds"`
	RetryCount  int    `toml:"retry_count"`
}

type LogConfig struct {
	Path  string `toml:"log_path"`
	File  string `toml:"log_file"`
	Level string `toml:"log_level"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	DB       string `toml:"db"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	StartNum uint64 `toml:"start_num"`
}

// WatchConfig is one tracked account. Threshold is written as a hex
// quantity, e.g. threshold = "0x5f5e100".
type WatchConfig struct {
	Name      string          `toml:"name"`
	Address   string          `toml:"address"`
	Threshold types.HexBigInt `toml:"threshold"`
}

type TrackerConfig struct {
	PollInterval int           `toml:"poll_interval_seconds"`
	ReportCron   string        `toml:"report_cron"`
	Watch        []WatchConfig `toml:"watch"`
}

func (c *TrackerConfig) Interval() time.Duration {
	if c.PollInterval <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.PollInterval) * time.Second
}

type Config struct {
	Bot     BotConfig     `toml:"bot"`
	Server  ServerConfig  `toml:"server"`
	Net     NetConfig     `toml:"net"`
	Log     LogConfig     `toml:"log"`
	DB      DBConfig      `toml:"database"`
	Tracker TrackerConfig `toml:"tracker"`
}

func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	config.setDefaults()
	return &config, nil
}

func (c *Config) setDefaults() {
	if c.Server.HttpPort == 0 {
		c.Server.HttpPort = 8080
	}
	if c.Net.RPCEndpoint == "" {
		c.Net.RPCEndpoint = "http://localhost:8545/jsonrpc"
	}
	if c.Net.Timeout == 0 {
		c.Net.Timeout = 10
	}
	if c.Tracker.ReportCron == "" {
		c.Tracker.ReportCron = "0 */10 * * * *"
	}
}

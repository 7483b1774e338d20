package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "HTTP_FOLDER"
	EnvRootDir = EnvPrefix + "_ROOT_DIR"
	EnvPort    = EnvPrefix + "_PORT"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type ServerConfig struct {
	RootDir         string        `mapstructure:"root_dir"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	QPS             int           `mapstructure:"qps"`           // 每秒请求数限制，0为不限制
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"` // 单次上传大小限制，0为不限制
	CORS            bool          `mapstructure:"cors"`
	ShowQRCode      bool          `mapstructure:"show_qr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"`
	Format    string `mapstructure:"format"`
	FilePath  string `mapstructure:"file_path"`
	Colorize  bool   `mapstructure:"colorize"`
	AddSource bool   `mapstructure:"add_source"`
}

type TelegramConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	BotToken string  `mapstructure:"bot_token"`
	ChatIDs  []int64 `mapstructure:"chat_ids"`
}

type SchedulerConfig struct {
	UsageReportCron string `mapstructure:"usage_report_cron"` // 标准5字段cron表达式，为空则不启用
}

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// MaxUploadBytes 上传大小限制（字节），0为不限制
func (s ServerConfig) MaxUploadBytes() int64 {
	if s.MaxUploadMB <= 0 {
		return 0
	}
	return s.MaxUploadMB * 1024 * 1024
}

// LoadConfig 加载配置
// 优先级: 位置参数 > 环境变量 > 配置文件 > 默认值
// 位置参数: [root_dir] [port]
func LoadConfig(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("http-folder", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to config file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 兼容 HTTP_FOLDER_ROOT_DIR / HTTP_FOLDER_PORT
	_ = v.BindEnv("server.root_dir", EnvRootDir, EnvPrefix+"_SERVER_ROOT_DIR")
	_ = v.BindEnv("server.port", EnvPort, EnvPrefix+"_SERVER_PORT")

	if err := v.BindPFlag("log.level", flags.Lookup("log-level")); err != nil {
		return nil, err
	}

	positional := flags.Args()
	if len(positional) > 0 && positional[0] != "" {
		v.Set("server.root_dir", positional[0])
	}
	if len(positional) > 1 && positional[1] != "" {
		v.Set("server.port", positional[1])
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	root, err := filepath.Abs(cfg.Server.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}
	cfg.Server.RootDir = filepath.Clean(root)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.root_dir", defaultRootDir())
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.qps", 0)
	v.SetDefault("server.max_upload_mb", 0)
	v.SetDefault("server.cors", false)
	v.SetDefault("server.show_qr", true)
	v.SetDefault("server.read_timeout", time.Duration(0))
	v.SetDefault("server.write_timeout", time.Duration(0))
	v.SetDefault("server.idle_timeout", time.Duration(0))
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file_path", "./logs/http-folder.log")
	v.SetDefault("log.colorize", true)
	v.SetDefault("log.add_source", false)

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_ids", []int64{})

	v.SetDefault("scheduler.usage_report_cron", "")
}

// defaultRootDir 默认根目录为可执行文件所在目录，无法获取时使用工作目录
func defaultRootDir() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Validate 校验配置
func (c *Config) Validate() error {
	info, err := os.Stat(c.Server.RootDir)
	if err != nil {
		return fmt.Errorf("invalid root directory %s: %w", c.Server.RootDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid root directory %s: not a directory", c.Server.RootDir)
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port: %q", c.Server.Port)
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server mode: %q", c.Server.Mode)
	}

	if c.Server.QPS < 0 {
		return fmt.Errorf("invalid qps: %d", c.Server.QPS)
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if len(c.Telegram.ChatIDs) == 0 {
			return fmt.Errorf("telegram.chat_ids is required when telegram is enabled")
		}
	}

	if c.Scheduler.UsageReportCron != "" {
		if _, err := cron.ParseStandard(c.Scheduler.UsageReportCron); err != nil {
			return fmt.Errorf("invalid usage report cron expression: %w", err)
		}
	}

	return nil
}

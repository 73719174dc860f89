package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config 定义整个配置的结构
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Checker CheckerConfig `mapstructure:"checker"`
	Lark    LarkConfig    `mapstructure:"lark"`
}

// CheckerConfig 余额筛查配置
type CheckerConfig struct {
	RpcURL           string `mapstructure:"rpc_url"`
	TokenAddress     string `mapstructure:"token_address"`
	MulticallAddress string `mapstructure:"multicall_address"`
	DefaultSymbol    string `mapstructure:"default_symbol"`
	ChunkSize        int    `mapstructure:"chunk_size"`
	RetryAttempts    int    `mapstructure:"retry_attempts"`
	RetryBaseDelayMs int    `mapstructure:"retry_base_delay_ms"`
	RateLimit        int    `mapstructure:"rate_limit"` // 每分钟RPC请求上限，0为不限
	OutCSV           string `mapstructure:"out_csv"`
	OutJSON          string `mapstructure:"out_json"`
}

// LarkConfig Lark 配置
type LarkConfig struct {
	Webhook string `mapstructure:"webhook"`
	Timeout int    `mapstructure:"timeout"`
}

// LogConfig Log 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// 默认查Base链上的USDC，Multicall3在各链地址相同
const (
	DefaultRpcURL           = "https://mainnet.base.org"
	DefaultTokenAddress     = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
	DefaultMulticallAddress = "0xcA11bde05977b3631167028862bE2a173976CA11"
	DefaultSymbol           = "USDC"
	DefaultChunkSize        = 250
	DefaultRetryAttempts    = 6
	DefaultRetryBaseDelayMs = 400
)

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("checker.rpc_url", DefaultRpcURL)
	viper.SetDefault("checker.token_address", DefaultTokenAddress)
	viper.SetDefault("checker.multicall_address", DefaultMulticallAddress)
	viper.SetDefault("checker.default_symbol", DefaultSymbol)
	viper.SetDefault("checker.chunk_size", DefaultChunkSize)
	viper.SetDefault("checker.retry_attempts", DefaultRetryAttempts)
	viper.SetDefault("checker.retry_base_delay_ms", DefaultRetryBaseDelayMs)
	viper.SetDefault("checker.rate_limit", 0)
	viper.SetDefault("checker.out_csv", "")
	viper.SetDefault("checker.out_json", "")
	viper.SetDefault("lark.webhook", "")
	viper.SetDefault("lark.timeout", 10)
}

// InitConfig 解析配置，优先级: 命令行flag > 环境变量 > 配置文件 > 默认值
func InitConfig(flags *pflag.FlagSet) Config {
	var config Config

	// 清掉上一次的绑定，重复调用时不受残留状态影响
	viper.Reset()
	setDefaults()

	// BASE_RPC_URL与原脚本约定保持一致
	_ = viper.BindEnv("checker.rpc_url", "BASE_RPC_URL")

	if flags != nil {
		bindFlag(flags, "checker.rpc_url", "rpc")
		bindFlag(flags, "checker.chunk_size", "chunk")
		bindFlag(flags, "checker.out_csv", "out")
		bindFlag(flags, "checker.out_json", "json")
	}

	// --config指定文件时必须可读，否则走默认路径且缺失不报错
	if path := configFilePath(flags); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("fatal error config file: %s", err))
		}
	} else {
		viper.SetConfigName("config.checker")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config/")

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				panic(fmt.Errorf("fatal error config file: %s", err))
			}
		}
	}

	if err := mapstructure.Decode(viper.AllSettings(), &config); err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	return config
}

func bindFlag(flags *pflag.FlagSet, key, name string) {
	if f := flags.Lookup(name); f != nil && f.Changed {
		_ = viper.BindPFlag(key, f)
	}
}

func configFilePath(flags *pflag.FlagSet) string {
	if flags == nil {
		return ""
	}
	if f := flags.Lookup("config"); f != nil && f.Changed {
		return f.Value.String()
	}
	return ""
}

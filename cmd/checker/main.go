package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"usdc-holders/internal/checker/config"
	"usdc-holders/internal/checker/loader"
	"usdc-holders/internal/checker/notify"
	"usdc-holders/internal/checker/report"
	"usdc-holders/internal/checker/repository"
	"usdc-holders/internal/checker/service"
	"usdc-holders/pkg/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// 一次性任务：筛出持有非零USDC余额的地址

func main() {
	startTime := time.Now()

	flags := pflag.NewFlagSet("checker", pflag.ExitOnError)
	flags.String("rpc", config.DefaultRpcURL, "Base RPC URL")
	flags.Int("chunk", config.DefaultChunkSize, "Multicall chunk size")
	flags.String("out", "", "Optional CSV output path")
	flags.String("json", "", "Optional JSON output path")
	flags.String("config", "", "Optional config file path (default ./config/config.checker.yaml)")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: checker [flags] <addresses_file>\n\nFilter addresses that have non-zero USDC balance.\n\nFlags:\n")
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	if flags.NArg() < 1 {
		flags.Usage()
		os.Exit(1)
	}
	addressesFile := flags.Arg(0)

	// 初始化配置文件
	cfg := config.InitConfig(flags)

	// 初始化 trace provider
	logger.InitTrace("usdc-holders", "checker")
	// 启动主 span
	ctx, span := logger.StartSpan(context.Background(), "main", "main")
	defer span.End()

	// 创建 root logger 并注入 trace 上下文
	rootLogger := logger.NewLogger("checker")
	logger.SetLogLevel(cfg.Log.Level)
	tl := logger.WithTrace(ctx, rootLogger)

	// 初始化 repository，RPC不可达时用退出码2区分
	repo, err := repository.New(cfg, tl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Could not connect to RPC: %s\n", cfg.Checker.RpcURL)
		os.Exit(2)
	}
	defer repo.Close()

	if err := repo.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Could not connect to RPC: %s\n", cfg.Checker.RpcURL)
		os.Exit(2)
	}

	rawAddrs, err := loader.LoadAddresses(addressesFile)
	if err != nil {
		tl.Error("Failed to load addresses", zap.String("file", addressesFile), zap.Error(err))
		os.Exit(1)
	}

	addrs, bad := loader.ChecksumAddresses(rawAddrs, tl)
	if len(bad) > 0 {
		tl.Warn("Skipped invalid addresses", zap.Int("count", len(bad)))
	}

	scan := service.NewHolderScan(cfg.Checker, repo.GetEvmClient(), tl)

	meta, err := scan.TokenMeta(ctx)
	if err != nil {
		tl.Error("Failed to fetch token meta", zap.Error(err))
		os.Exit(1)
	}

	records, err := scan.NonZeroBalances(ctx, addrs, meta)
	if err != nil {
		tl.Error("Failed to scan balances", zap.Error(err))
		os.Exit(1)
	}

	reporter := report.NewReporter(os.Stdout)
	reporter.PrintRecords(records)

	if cfg.Checker.OutCSV != "" {
		if err := reporter.WriteCSV(cfg.Checker.OutCSV, records); err != nil {
			tl.Error("Failed to write csv", zap.String("path", cfg.Checker.OutCSV), zap.Error(err))
			os.Exit(1)
		}
	}
	if cfg.Checker.OutJSON != "" {
		if err := reporter.WriteJSON(cfg.Checker.OutJSON, records); err != nil {
			tl.Error("Failed to write json", zap.String("path", cfg.Checker.OutJSON), zap.Error(err))
			os.Exit(1)
		}
	}

	// 可选的Lark通知，失败不影响退出码
	notifier := notify.NewLarkNotifier(cfg.Lark, tl)
	if notifier.Enabled() {
		summary := notify.RunSummary{
			TokenSymbol:  meta.Symbol,
			TotalInput:   len(rawAddrs),
			InvalidCount: len(bad),
			NonZeroCount: len(records),
			Duration:     time.Since(startTime),
		}
		if err := notifier.SendSummary(ctx, summary); err != nil {
			tl.Warn("Failed to send lark summary", zap.Error(err))
		}
	}

	tl.Info("Task completed successfully",
		zap.Int("input", len(rawAddrs)),
		zap.Int("invalid", len(bad)),
		zap.Int("nonzero", len(records)),
		zap.Duration("taken_time", time.Since(startTime)))
}

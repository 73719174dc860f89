package notify

import (
	"context"
	"fmt"
	"time"

	"usdc-holders/internal/checker/config"
	"usdc-holders/pkg/httpclient"

	"go.uber.org/zap"
)

// RunSummary 一次run的统计，发到Lark群
type RunSummary struct {
	TokenSymbol  string
	TotalInput   int
	InvalidCount int
	NonZeroCount int
	Duration     time.Duration
}

type LarkNotifier struct {
	webhook    string
	httpClient *httpclient.HTTPClient
	logger     *zap.Logger
}

func NewLarkNotifier(cfg config.LarkConfig, logger *zap.Logger) *LarkNotifier {
	httpCfg := httpclient.HTTPClientConfig{
		Timeout:    time.Duration(cfg.Timeout) * time.Second,
		MaxRetries: 3,
	}

	return &LarkNotifier{
		webhook:    cfg.Webhook,
		httpClient: httpclient.NewHTTPClient(httpCfg, logger),
		logger:     logger,
	}
}

// Enabled webhook未配置时整个通知链路跳过
func (n *LarkNotifier) Enabled() bool {
	return n.webhook != ""
}

// SendSummary 推送run结果摘要，失败只记日志不影响退出码
func (n *LarkNotifier) SendSummary(ctx context.Context, summary RunSummary) error {
	body := map[string]interface{}{
		"msg_type": "text",
		"content": map[string]string{
			"text": FormatSummary(summary),
		},
	}

	var resp map[string]interface{}
	if err := n.httpClient.PostJSON(ctx, n.webhook, body, nil, &resp); err != nil {
		return fmt.Errorf("send lark summary error: %w", err)
	}
	return nil
}

func FormatSummary(summary RunSummary) string {
	return fmt.Sprintf(
		"[usdc-holders] %s scan done\ninput: %d, invalid: %d, nonzero: %d\ntaken: %s",
		summary.TokenSymbol,
		summary.TotalInput,
		summary.InvalidCount,
		summary.NonZeroCount,
		summary.Duration.Round(time.Millisecond),
	)
}

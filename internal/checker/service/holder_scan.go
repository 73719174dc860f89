package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"usdc-holders/internal/checker/config"
	"usdc-holders/internal/checker/model"
	"usdc-holders/pkg/multicall"
	"usdc-holders/pkg/utils"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ContractCaller 只读合约调用，*ethclient.Client天然满足
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// HolderScan 按批次查询token余额，过滤出非零持仓
type HolderScan struct {
	cfg       config.CheckerConfig
	caller    ContractCaller
	logger    *zap.Logger
	limiter   *rate.Limiter
	retrier   *utils.Retrier
	token     common.Address
	multicall common.Address
}

func NewHolderScan(cfg config.CheckerConfig, caller ContractCaller, logger *zap.Logger) *HolderScan {
	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = config.DefaultRetryAttempts
	}
	baseDelayMs := cfg.RetryBaseDelayMs
	if baseDelayMs <= 0 {
		baseDelayMs = config.DefaultRetryBaseDelayMs
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimit)/60), 1)
	}

	return &HolderScan{
		cfg:       cfg,
		caller:    caller,
		logger:    logger,
		limiter:   limiter,
		retrier:   utils.NewRetrier(attempts, time.Duration(baseDelayMs)*time.Millisecond),
		token:     common.HexToAddress(cfg.TokenAddress),
		multicall: common.HexToAddress(cfg.MulticallAddress),
	}
}

const callTimeout = 30 * time.Second

// call 带重试和限流的eth_call，单次请求30秒超时
func (s *HolderScan) call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	return utils.Retry(ctx, s.retrier, func() ([]byte, error) {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		defer cancel()
		return s.caller.CallContract(callCtx, ethereum.CallMsg{To: &to, Data: data}, nil)
	})
}

// TokenMeta 取一次token元数据
// decimals取不到直接报错终止，symbol取不到退回默认值继续跑
func (s *HolderScan) TokenMeta(ctx context.Context) (model.TokenMeta, error) {
	ret, err := s.call(ctx, s.token, multicall.DecimalsCallData())
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("fetch token decimals error: %w", err)
	}
	decimals, err := multicall.ParseUint8Result(ret)
	if err != nil {
		return model.TokenMeta{}, fmt.Errorf("parse token decimals error: %w", err)
	}

	symbol, err := s.fetchSymbol(ctx)
	if err != nil {
		s.logger.Warn("fetch token symbol failed, use default",
			zap.String("default", s.cfg.DefaultSymbol), zap.Error(err))
		symbol = s.cfg.DefaultSymbol
	}

	return model.TokenMeta{
		Address:  s.token.Hex(),
		Decimals: decimals,
		Symbol:   symbol,
	}, nil
}

func (s *HolderScan) fetchSymbol(ctx context.Context) (string, error) {
	ret, err := s.call(ctx, s.token, multicall.SymbolCallData())
	if err != nil {
		return "", err
	}
	return multicall.ParseStringResult(ret)
}

// NonZeroBalances 分批聚合查询余额，只返回余额大于0的地址
// 批次按输入顺序串行执行，一次只有一个RPC在途
func (s *HolderScan) NonZeroBalances(ctx context.Context, addrs []common.Address, meta model.TokenMeta) ([]model.BalanceRecord, error) {
	chunkSize := s.cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = config.DefaultChunkSize
	}

	var records []model.BalanceRecord
	for i, batch := range utils.Chunk(addrs, chunkSize) {
		calls := make([]multicall.Call, 0, len(batch))
		for _, addr := range batch {
			calls = append(calls, multicall.Call{
				Target:       s.token,
				AllowFailure: true, // 单个地址查询失败不拖垮整批
				CallData:     multicall.BalanceOfCallData(addr),
			})
		}

		callData, err := multicall.PackAggregate3(calls)
		if err != nil {
			return nil, err
		}

		output, err := s.call(ctx, s.multicall, callData)
		if err != nil {
			return nil, fmt.Errorf("aggregate3 batch %d error: %w", i, err)
		}

		results, err := multicall.UnpackAggregate3(output)
		if err != nil {
			return nil, fmt.Errorf("decode aggregate3 batch %d error: %w", i, err)
		}
		if len(results) != len(batch) {
			return nil, fmt.Errorf("aggregate3 batch %d result count mismatch: got %d want %d", i, len(results), len(batch))
		}

		for j, result := range results {
			// 子调用失败或空返回按无余额处理
			if !result.Success || len(result.ReturnData) == 0 {
				continue
			}
			raw, err := multicall.ParseBalanceResult(result.ReturnData)
			if err != nil {
				continue
			}
			if raw.Sign() <= 0 {
				continue
			}
			records = append(records, model.BalanceRecord{
				Address: batch[j].Hex(),
				Raw:     raw,
				Human:   utils.AdjustDecimals(raw, meta.Decimals).String(),
				Symbol:  meta.Symbol,
			})
		}

		s.logger.Debug("batch done",
			zap.Int("batch", i),
			zap.Int("size", len(batch)),
			zap.Int("nonzero_total", len(records)))
	}

	return records, nil
}

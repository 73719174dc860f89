package repository

import (
	"context"
	"sync"

	"usdc-holders/internal/checker/config"
	"usdc-holders/pkg/evm_client"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

type Repository interface {
	GetEvmClient() *ethclient.Client
	Ping(ctx context.Context) error
	Close() error
}

var once sync.Once
var r *repositoryImpl
var initErr error

// New 初始化外部依赖，RPC地址无法建立client时返回错误而不是panic，
// 让上层可以用单独的退出码报告连接失败
func New(cfg config.Config, logger *zap.Logger) (Repository, error) {
	once.Do(func() {
		r = &repositoryImpl{
			cfg:    cfg,
			logger: logger,
		}
		initErr = r.init()
	})
	if initErr != nil {
		return nil, initErr
	}
	return r, nil
}

type repositoryImpl struct {
	cfg       config.Config
	logger    *zap.Logger
	evmClient *ethclient.Client
}

func (r *repositoryImpl) init() error {
	var err error
	r.evmClient, err = evm_client.Init(r.cfg.Checker.RpcURL)
	if err != nil {
		return err
	}
	return nil
}

// Ping 启动时确认RPC可达
func (r *repositoryImpl) Ping(ctx context.Context) error {
	return evm_client.Ping(ctx, r.evmClient)
}

func (r *repositoryImpl) GetEvmClient() *ethclient.Client {
	return r.evmClient
}

func (r *repositoryImpl) Close() error {
	if r.evmClient != nil {
		r.evmClient.Close()
	}
	return nil
}

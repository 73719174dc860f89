package evm_client

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Init evm client
func Init(rawurl string) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("init evm client error: %w", err)
	}

	return client, nil
}

// Ping 通过查询chain id确认节点可达
func Ping(ctx context.Context, client *ethclient.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := client.ChainID(ctx); err != nil {
		return fmt.Errorf("rpc endpoint unreachable: %w", err)
	}
	return nil
}

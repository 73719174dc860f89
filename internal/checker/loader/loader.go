package loader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"usdc-holders/pkg/utils"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// LoadAddresses 逐行读取地址文件
// 跳过空行和#注释行，允许csv格式（取第一列作为地址）
func LoadAddresses(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open addresses file error: %w", err)
	}
	defer file.Close()

	var addrs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addr := strings.TrimSpace(strings.SplitN(line, ",", 2)[0])
		addrs = append(addrs, addr)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read addresses file error: %w", err)
	}

	return addrs, nil
}

// ChecksumAddresses 校验地址并转换为EIP-55格式，返回合法地址与非法原始串
func ChecksumAddresses(raws []string, logger *zap.Logger) ([]common.Address, []string) {
	var (
		ok  []common.Address
		bad []string
	)
	for _, raw := range raws {
		if utils.IsEvmAddress(raw) {
			ok = append(ok, common.HexToAddress(utils.ChecksumAddress(raw)))
		} else {
			logger.Debug("skip invalid address", zap.String("address", raw))
			bad = append(bad, raw)
		}
	}
	return ok, bad
}

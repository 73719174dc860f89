package utils

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// IsEvmAddress 检查是否为合法的EVM地址（0x + 40位hex，大小写不限）
func IsEvmAddress(addr string) bool {
	return common.IsHexAddress(strings.TrimSpace(addr))
}

// ChecksumAddress 将 EVM 地址转换为 EIP-55 Checksum 格式
func ChecksumAddress(addr string) string {
	if addr == "" {
		return ""
	}

	// 去掉前缀，统一小写处理
	addr = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(addr)), "0x")
	return common.HexToAddress("0x" + addr).Hex()
}

// AdjustDecimals 调整精度显示
// 直接移指数而不是做除法，Div会按DivisionPrecision舍入，18位精度的token会丢尾数
func AdjustDecimals(value *big.Int, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(value, -int32(decimals))
}

// Chunk 按固定大小切分，保持原顺序，最后一组可能不足size
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end])
	}
	return chunks
}

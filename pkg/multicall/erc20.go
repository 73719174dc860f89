package multicall

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ERC20只用到三个只读方法，直接用method id拼calldata，不走反射编码
var (
	balanceOfMethodID = []byte{0x70, 0xa0, 0x82, 0x31} // balanceOf(address)
	decimalsMethodID  = []byte{0x31, 0x3c, 0xe5, 0x67} // decimals()
	symbolMethodID    = []byte{0x95, 0xd8, 0x9b, 0x41} // symbol()
)

// BalanceOfCallData 构建balanceOf函数调用数据
func BalanceOfCallData(owner common.Address) []byte {
	// 填充地址参数(32字节)
	paddedAddr := common.LeftPadBytes(owner.Bytes(), 32)
	return append(append([]byte{}, balanceOfMethodID...), paddedAddr...)
}

// DecimalsCallData 构建decimals函数调用数据
func DecimalsCallData() []byte {
	return append([]byte{}, decimalsMethodID...)
}

// SymbolCallData 构建symbol函数调用数据
func SymbolCallData() []byte {
	return append([]byte{}, symbolMethodID...)
}

// ParseBalanceResult 解析合约调用的余额结果，取最后32字节作为big-endian整数
func ParseBalanceResult(data []byte) (*big.Int, error) {
	if len(data) < 32 {
		return nil, fmt.Errorf("invalid balance data length: %d", len(data))
	}

	balance := new(big.Int).SetBytes(data[len(data)-32:])
	return balance, nil
}

// ParseUint8Result 解析uint8返回值（decimals）
func ParseUint8Result(data []byte) (uint8, error) {
	if len(data) < 32 {
		return 0, fmt.Errorf("invalid uint8 data length: %d", len(data))
	}

	value := new(big.Int).SetBytes(data[len(data)-32:])
	if !value.IsUint64() || value.Uint64() > 255 {
		return 0, fmt.Errorf("uint8 value out of range: %s", value.String())
	}
	return uint8(value.Uint64()), nil
}

// ParseStringResult 解析标准ABI string返回值（symbol）
// 布局: 32字节offset + 32字节长度 + 数据
func ParseStringResult(data []byte) (string, error) {
	if len(data) < 64 {
		return "", fmt.Errorf("invalid string data length: %d", len(data))
	}

	// 减法比较而不是加法，offset/length接近uint64上限时加法会回绕绕过检查
	total := uint64(len(data))
	offset := new(big.Int).SetBytes(data[:32])
	if !offset.IsUint64() || offset.Uint64() > total-32 {
		return "", fmt.Errorf("string offset out of range: %s", offset.String())
	}

	start := offset.Uint64()
	length := new(big.Int).SetBytes(data[start : start+32])
	if !length.IsUint64() || length.Uint64() > total-32-start {
		return "", fmt.Errorf("string length out of range: %s", length.String())
	}

	return string(data[start+32 : start+32+length.Uint64()]), nil
}

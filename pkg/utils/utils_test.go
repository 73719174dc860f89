package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumAddress(t *testing.T) {
	// EIP-55测试向量
	checksummed := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	assert.Equal(t, checksummed, ChecksumAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.Equal(t, checksummed, ChecksumAddress("0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED"))
	assert.Equal(t, checksummed, ChecksumAddress(" 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed "))

	// 归一化应当幂等
	once := ChecksumAddress("0x833589fcd6edb6e08f4c7c32d4f71b54bda02913")
	assert.Equal(t, once, ChecksumAddress(once))

	assert.Equal(t, "", ChecksumAddress(""))
}

func TestIsEvmAddress(t *testing.T) {
	assert.True(t, IsEvmAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	assert.True(t, IsEvmAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))

	assert.False(t, IsEvmAddress("not_an_address"))
	assert.False(t, IsEvmAddress("0x5aaeb6"))                                    // 长度不对
	assert.False(t, IsEvmAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaezz")) // 非hex字符
	assert.False(t, IsEvmAddress(""))
}

func TestAdjustDecimals(t *testing.T) {
	// 1500000 / 10^6 = 1.5，不能有浮点误差
	result := AdjustDecimals(big.NewInt(1500000), 6)
	assert.Equal(t, "1.5", result.String())

	assert.Equal(t, "0.000001", AdjustDecimals(big.NewInt(1), 6).String())
	assert.Equal(t, "1000000", AdjustDecimals(big.NewInt(1000000), 0).String())

	// 18位精度不能被除法精度截断
	big18, ok := new(big.Int).SetString("123456789012345678901", 10)
	require.True(t, ok)
	assert.Equal(t, "123.456789012345678901", AdjustDecimals(big18, 18).String())
	assert.Equal(t, "0.000000000000000001", AdjustDecimals(big.NewInt(1), 18).String())
}

func TestChunk(t *testing.T) {
	items := make([]int, 600)
	for i := range items {
		items[i] = i
	}

	chunks := Chunk(items, 250)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 250)
	assert.Len(t, chunks[1], 250)
	assert.Len(t, chunks[2], 100)

	// 顺序保持
	assert.Equal(t, 0, chunks[0][0])
	assert.Equal(t, 250, chunks[1][0])
	assert.Equal(t, 599, chunks[2][99])

	assert.Nil(t, Chunk([]int{}, 250))
	assert.Nil(t, Chunk(items, 0))

	exact := Chunk(make([]int, 500), 250)
	require.Len(t, exact, 2)
	assert.Len(t, exact[1], 250)
}

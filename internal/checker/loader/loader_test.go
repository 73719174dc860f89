package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "addresses.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAddresses(t *testing.T) {
	path := writeTempFile(t, `# 注释行要跳过
0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed

0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359,some,extra,columns
  0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB
not_an_address
`)

	addrs, err := LoadAddresses(path)
	require.NoError(t, err)

	// 顺序保持，空行和注释被跳过，csv只取第一列
	require.Len(t, addrs, 4)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", addrs[0])
	assert.Equal(t, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359", addrs[1])
	assert.Equal(t, "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB", addrs[2])
	assert.Equal(t, "not_an_address", addrs[3])
}

func TestLoadAddressesMissingFile(t *testing.T) {
	_, err := LoadAddresses(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestChecksumAddresses(t *testing.T) {
	raws := []string{
		"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", // 全小写，应归一化
		"not_an_address",
		"0xFB6916095CA1DF60BB79CE92CE3EA74C37C5D359", // 全大写
		"0x5aaeb6", // 长度不对
	}

	ok, bad := ChecksumAddresses(raws, zap.NewNop())

	require.Len(t, ok, 2)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", ok[0].Hex())
	assert.Equal(t, "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359", ok[1].Hex())

	require.Len(t, bad, 2)
	assert.Equal(t, "not_an_address", bad[0])
	assert.Equal(t, "0x5aaeb6", bad[1])
}

func TestChecksumAddressesIdempotent(t *testing.T) {
	raws := []string{"0x833589fcd6edb6e08f4c7c32d4f71b54bda02913"}

	once, bad := ChecksumAddresses(raws, zap.NewNop())
	require.Empty(t, bad)
	require.Len(t, once, 1)

	twice, bad := ChecksumAddresses([]string{once[0].Hex()}, zap.NewNop())
	require.Empty(t, bad)
	assert.Equal(t, once[0], twice[0])
}

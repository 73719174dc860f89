package model

import "math/big"

// BalanceRecord 非零余额记录，Human为按精度缩放后的十进制字符串
type BalanceRecord struct {
	Address string   `json:"address"`
	Raw     *big.Int `json:"raw"`
	Human   string   `json:"human"`
	Symbol  string   `json:"symbol"`
}

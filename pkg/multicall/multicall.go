package multicall

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Multicall3 aggregate3 的最小ABI
const aggregate3ABI = `[{
	"name": "aggregate3",
	"type": "function",
	"stateMutability": "payable",
	"inputs": [{
		"name": "calls",
		"type": "tuple[]",
		"components": [
			{"name": "target", "type": "address"},
			{"name": "allowFailure", "type": "bool"},
			{"name": "callData", "type": "bytes"}
		]
	}],
	"outputs": [{
		"name": "returnData",
		"type": "tuple[]",
		"components": [
			{"name": "success", "type": "bool"},
			{"name": "returnData", "type": "bytes"}
		]
	}]
}]`

var mc3ABI = mustParseABI(aggregate3ABI)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("parse multicall3 abi error: %v", err))
	}
	return parsed
}

// Call aggregate3 的子调用
type Call struct {
	Target       common.Address
	AllowFailure bool
	CallData     []byte
}

// Result aggregate3 的子调用结果
type Result struct {
	Success    bool
	ReturnData []byte
}

// PackAggregate3 编码一批子调用为aggregate3的calldata
func PackAggregate3(calls []Call) ([]byte, error) {
	data, err := mc3ABI.Pack("aggregate3", calls)
	if err != nil {
		return nil, fmt.Errorf("pack aggregate3 error: %w", err)
	}
	return data, nil
}

// UnpackAggregate3Calls 从aggregate3的calldata还原子调用列表
func UnpackAggregate3Calls(input []byte) ([]Call, error) {
	method := mc3ABI.Methods["aggregate3"]
	if len(input) < 4 {
		return nil, fmt.Errorf("aggregate3 calldata too short: %d", len(input))
	}
	values, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, fmt.Errorf("unpack aggregate3 calls error: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected aggregate3 input values: %d", len(values))
	}

	calls := *abi.ConvertType(values[0], new([]Call)).(*[]Call)
	return calls, nil
}

// PackAggregate3Output 编码aggregate3的返回数据
func PackAggregate3Output(results []Result) ([]byte, error) {
	method := mc3ABI.Methods["aggregate3"]
	data, err := method.Outputs.Pack(results)
	if err != nil {
		return nil, fmt.Errorf("pack aggregate3 output error: %w", err)
	}
	return data, nil
}

// UnpackAggregate3 解码aggregate3的返回数据
func UnpackAggregate3(output []byte) ([]Result, error) {
	values, err := mc3ABI.Unpack("aggregate3", output)
	if err != nil {
		return nil, fmt.Errorf("unpack aggregate3 error: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected aggregate3 output values: %d", len(values))
	}

	results := *abi.ConvertType(values[0], new([]Result)).(*[]Result)
	return results, nil
}

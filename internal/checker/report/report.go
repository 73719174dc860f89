package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"usdc-holders/internal/checker/model"

	"github.com/bytedance/sonic"
)

// Reporter 输出非零余额结果，stdout为主，CSV/JSON可选
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

// PrintRecords 按输入顺序输出 address,human SYMBOL
func (r *Reporter) PrintRecords(records []model.BalanceRecord) {
	for _, record := range records {
		fmt.Fprintf(r.out, "%s,%s %s\n", record.Address, record.Human, record.Symbol)
	}
}

// WriteCSV 写出CSV文件，表头与原始脚本保持一致
func (r *Reporter) WriteCSV(path string, records []model.BalanceRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file error: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"address", "usdc_raw", "usdc", "symbol"}); err != nil {
		return fmt.Errorf("write csv header error: %w", err)
	}
	for _, record := range records {
		row := []string{record.Address, record.Raw.String(), record.Human, record.Symbol}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row error: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSON 写出JSON文件
func (r *Reporter) WriteJSON(path string, records []model.BalanceRecord) error {
	if records == nil {
		records = []model.BalanceRecord{}
	}
	data, err := sonic.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records error: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write json file error: %w", err)
	}
	return nil
}

package extract

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/dvloznov/statement-sync/internal/domain"
)

// expectedHeader is the exact CSV header the model is instructed to emit.
// Comparison is strict: order-sensitive, no trimming.
var expectedHeader = []string{"Transaction Date", "Product Name", "Price", "Category"}

// fencedBlock returns the content of the first ``` code fence in the
// message, or the whole message when no complete fence is present.
func fencedBlock(message string) string {
	start := strings.Index(message, "```\n")
	if start == -1 {
		return strings.TrimSpace(message)
	}
	end := strings.Index(message[start+4:], "```")
	if end == -1 {
		return strings.TrimSpace(message)
	}
	return strings.TrimSpace(message[start+4 : start+4+end])
}

// parseTransactionsCSV parses the model's CSV output into transactions.
// The header row must match expectedHeader exactly. Ragged data rows are
// padded or truncated to four fields so a single malformed row does not
// abort the batch.
func parseTransactionsCSV(content string) ([]domain.Transaction, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parseTransactionsCSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parseTransactionsCSV: empty CSV content")
	}

	header := records[0]
	if len(header) != len(expectedHeader) {
		return nil, fmt.Errorf("parseTransactionsCSV: CSV headers do not match expected format, found %v", header)
	}
	for i, name := range expectedHeader {
		if header[i] != name {
			return nil, fmt.Errorf("parseTransactionsCSV: CSV headers do not match expected format, found %v", header)
		}
	}

	transactions := make([]domain.Transaction, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]string, 4)
		copy(row, record)
		transactions = append(transactions, domain.Transaction{
			TransactionDate: row[0],
			ProductName:     row[1],
			Price:           row[2],
			Category:        row[3],
		})
	}

	return transactions, nil
}

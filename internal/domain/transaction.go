package domain

import "strings"

// Transaction is one statement line item as produced by the model.
// Fields hold the raw CSV cell values; the uploader validates and
// coerces them before anything is written to Notion.
type Transaction struct {
	TransactionDate string
	ProductName     string
	Price           string
	Category        string
}

// Complete reports whether every field carries a non-whitespace value.
// Incomplete rows are dropped before upload.
func (t Transaction) Complete() bool {
	return strings.TrimSpace(t.TransactionDate) != "" &&
		strings.TrimSpace(t.ProductName) != "" &&
		strings.TrimSpace(t.Price) != "" &&
		strings.TrimSpace(t.Category) != ""
}

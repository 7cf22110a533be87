package notion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/statement-sync/internal/domain"
	"github.com/dvloznov/statement-sync/internal/logger"
)

// Uploader writes transactions into a destination database one page per
// row. Rows that fail validation are skipped individually so one bad row
// never blocks the rest of a statement.
type Uploader struct {
	svc Service
}

// NewUploader creates an Uploader backed by the given Notion service.
func NewUploader(svc Service) *Uploader {
	return &Uploader{svc: svc}
}

// Upload writes the given transactions into the database. It returns the
// number of pages created and the number of rows skipped; it never fails
// the batch as a whole.
func (u *Uploader) Upload(ctx context.Context, transactions []domain.Transaction, databaseID string) (uploaded, skipped int) {
	log := logger.FromContext(ctx)

	for _, t := range transactions {
		date, err := NormalizeDate(t.TransactionDate)
		if err != nil {
			log.Warn().
				Err(err).
				Str("transaction_date", t.TransactionDate).
				Str("product_name", t.ProductName).
				Msg("Skipping row with unparseable date")
			skipped++
			continue
		}

		t.ProductName = strings.TrimSpace(t.ProductName)
		t.Category = strings.TrimSpace(t.Category)
		t.Price = strings.TrimSpace(t.Price)
		if t.ProductName == "" || t.Category == "" || t.Price == "" {
			log.Warn().
				Str("transaction_date", t.TransactionDate).
				Str("product_name", t.ProductName).
				Msg("Skipping row with missing fields")
			skipped++
			continue
		}

		price, err := ParsePrice(t.Price)
		if err != nil {
			log.Warn().
				Err(err).
				Str("price", t.Price).
				Str("product_name", t.ProductName).
				Msg("Skipping row with unparseable price")
			skipped++
			continue
		}

		if _, err := u.svc.CreatePage(ctx, databaseID, transactionProperties(t, date, price)); err != nil {
			log.Warn().
				Err(err).
				Str("product_name", t.ProductName).
				Msg("Failed to create transaction page")
			skipped++
			continue
		}

		uploaded++
	}

	return uploaded, skipped
}

// NormalizeDate parses a date written in any common textual or numeric
// format and truncates it to the day. Ambiguous numeric dates like
// 09/08/2022 read month-first.
func NormalizeDate(s string) (time.Time, error) {
	cleaned := strings.TrimSpace(s)
	// dateparse knows "Sep" but not the four-letter abbreviation.
	cleaned = strings.ReplaceAll(cleaned, "Sept ", "Sep ")
	cleaned = strings.ReplaceAll(cleaned, "Sept. ", "Sep ")

	parsed, err := dateparse.ParseAny(cleaned)
	if err != nil {
		return time.Time{}, fmt.Errorf("NormalizeDate: %w", err)
	}

	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParsePrice parses a monetary amount, tolerating a leading currency
// symbol and thousands separators.
func ParsePrice(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.TrimPrefix(cleaned, "£")
	cleaned = strings.TrimPrefix(cleaned, "€")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("ParsePrice: %w", err)
	}

	return price, nil
}

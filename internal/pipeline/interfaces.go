package pipeline

import (
	"context"

	"github.com/dvloznov/statement-sync/internal/domain"
	"github.com/dvloznov/statement-sync/internal/notion"
)

// SourceScanner finds unprocessed statement attachments and marks source
// records done.
type SourceScanner interface {
	Scan(ctx context.Context, sourceDatabaseID string) ([]notion.PDFEntry, error)
	MarkProcessed(ctx context.Context, pageID string) error
}

// DatabaseResolver maps a respondent to a destination database id.
type DatabaseResolver interface {
	Resolve(ctx context.Context, respondent notion.Respondent) (string, error)
}

// RowUploader writes transactions into a destination database.
type RowUploader interface {
	Upload(ctx context.Context, transactions []domain.Transaction, databaseID string) (uploaded, skipped int)
}

// TextExtractor downloads a statement file and returns its plain text.
type TextExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// TransactionExtractor parses statement text into transactions, degrading
// to an empty result when extraction fails.
type TransactionExtractor interface {
	Extract(ctx context.Context, statementText string) []domain.Transaction
}

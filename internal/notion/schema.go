package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/statement-sync/internal/logger"
)

// Property names of the schema shared by the source database and every
// per-respondent destination database.
const (
	PropTransactionDate = "Transaction Date"
	PropProductName     = "Product Name"
	PropPrice           = "Price"
	PropCategory        = "Category"
	PropProcessed       = "Processed"
)

// RequiredProperties returns the property schema every database this system
// writes to must carry.
func RequiredProperties() notionapi.PropertyConfigs {
	return notionapi.PropertyConfigs{
		PropTransactionDate: notionapi.DatePropertyConfig{
			Type: notionapi.PropertyConfigTypeDate,
		},
		PropProductName: notionapi.TitlePropertyConfig{
			Type: notionapi.PropertyConfigTypeTitle,
		},
		PropPrice: notionapi.NumberPropertyConfig{
			Type: notionapi.PropertyConfigTypeNumber,
			Number: notionapi.NumberFormat{
				Format: notionapi.FormatDollar,
			},
		},
		PropCategory: notionapi.RichTextPropertyConfig{
			Type: notionapi.PropertyConfigTypeRichText,
		},
		PropProcessed: notionapi.CheckboxPropertyConfig{
			Type: notionapi.PropertyConfigTypeCheckbox,
		},
	}
}

// EnsureDatabaseProperties adds any missing required properties to the
// database. Existing properties are never modified or removed. Both the
// source database and every destination database go through this before
// the first write of a run.
func EnsureDatabaseProperties(ctx context.Context, svc Service, databaseID string) error {
	log := logger.FromContext(ctx)

	db, err := svc.GetDatabase(ctx, databaseID)
	if err != nil {
		return fmt.Errorf("EnsureDatabaseProperties: retrieve database: %w", err)
	}

	missing := notionapi.PropertyConfigs{}
	for name, schema := range RequiredProperties() {
		if _, ok := db.Properties[name]; !ok {
			missing[name] = schema
		}
	}

	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}

	if _, err := svc.UpdateDatabase(ctx, databaseID, &notionapi.DatabaseUpdateRequest{
		Properties: missing,
	}); err != nil {
		return fmt.Errorf("EnsureDatabaseProperties: add properties: %w", err)
	}

	log.Info().
		Str("database_id", databaseID).
		Strs("properties", names).
		Msg("Added missing properties to database")

	return nil
}

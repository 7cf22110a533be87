package notion

import (
	"time"

	"github.com/jomei/notionapi"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/statement-sync/internal/domain"
)

// transactionProperties maps a transaction onto the destination database
// schema. The date and price arrive pre-validated so mapping cannot fail.
func transactionProperties(t domain.Transaction, date time.Time, price decimal.Decimal) notionapi.Properties {
	d := notionapi.Date(date)
	amount, _ := price.Float64()

	return notionapi.Properties{
		PropProductName: notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: t.ProductName,
					},
				},
			},
		},
		PropTransactionDate: notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: &d,
			},
		},
		PropPrice: notionapi.NumberProperty{
			Number: amount,
		},
		PropCategory: notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: t.Category,
					},
				},
			},
		},
	}
}

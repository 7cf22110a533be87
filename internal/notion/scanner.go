package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/statement-sync/internal/logger"
)

const (
	// AttachmentProperty is the files property on the source database that
	// respondents upload their statements into. The name is fixed by the
	// intake form and matched verbatim.
	AttachmentProperty = "upload your bank statement"

	// RespondentProperty carries the identity of the person who filled in
	// the row, via its created_by attribute.
	RespondentProperty = "Respondent"

	// UnknownRespondent is used when a row carries no usable identity.
	// This is a policy decision, not an error.
	UnknownRespondent = "Unknown Respondent"
)

// Respondent identifies who a statement belongs to. Key is durable (the
// Notion user id when available, the display name otherwise) and drives
// destination-database resolution; Name is what gets shown as the
// database title.
type Respondent struct {
	Key  string
	Name string
}

// PDFEntry is one unprocessed statement attachment found on the source
// database.
type PDFEntry struct {
	PageID     string
	Name       string
	URL        string
	Respondent Respondent
}

// Scanner finds unprocessed PDF attachments on the source database and
// flips their Processed flag once they have been handled.
type Scanner struct {
	svc Service
}

// NewScanner creates a Scanner backed by the given service.
func NewScanner(svc Service) *Scanner {
	return &Scanner{svc: svc}
}

// Scan returns every PDF attachment on rows whose Processed checkbox is
// false or absent. All rows are enumerated, following the query cursor
// until the service reports no more pages.
func (s *Scanner) Scan(ctx context.Context, sourceDatabaseID string) ([]PDFEntry, error) {
	log := logger.FromContext(ctx)

	pages, err := s.queryAllPages(ctx, sourceDatabaseID)
	if err != nil {
		return nil, fmt.Errorf("Scan: %w", err)
	}

	var entries []PDFEntry
	for _, page := range pages {
		files, ok := page.Properties[AttachmentProperty].(*notionapi.FilesProperty)
		if !ok {
			continue
		}

		if processed(page) {
			log.Debug().
				Str("page_id", string(page.ID)).
				Msg("Skipping already processed record")
			continue
		}

		respondent := respondentFromPage(page)
		for _, file := range files.Files {
			url := fileURL(file)
			if url == "" {
				continue
			}
			entries = append(entries, PDFEntry{
				PageID:     string(page.ID),
				Name:       file.Name,
				URL:        url,
				Respondent: respondent,
			})
			log.Info().
				Str("page_id", string(page.ID)).
				Str("pdf", file.Name).
				Str("respondent", respondent.Name).
				Msg("Found unprocessed PDF")
		}
	}

	return entries, nil
}

// MarkProcessed sets the Processed checkbox on a source record.
func (s *Scanner) MarkProcessed(ctx context.Context, pageID string) error {
	_, err := s.svc.UpdatePage(ctx, pageID, notionapi.Properties{
		PropProcessed: notionapi.CheckboxProperty{
			Checkbox: true,
		},
	})
	if err != nil {
		return fmt.Errorf("MarkProcessed: %w", err)
	}

	return nil
}

// queryAllPages queries all pages of a database, handling pagination.
func (s *Scanner) queryAllPages(ctx context.Context, databaseID string) ([]notionapi.Page, error) {
	var allPages []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := s.svc.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("queryAllPages: %w", err)
		}

		allPages = append(allPages, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return allPages, nil
}

func processed(page notionapi.Page) bool {
	if cb, ok := page.Properties[PropProcessed].(*notionapi.CheckboxProperty); ok {
		return cb.Checkbox
	}
	return false
}

func respondentFromPage(page notionapi.Page) Respondent {
	prop, ok := page.Properties[RespondentProperty].(*notionapi.CreatedByProperty)
	if !ok {
		return Respondent{Key: UnknownRespondent, Name: UnknownRespondent}
	}

	name := prop.CreatedBy.Name
	if name == "" {
		name = UnknownRespondent
	}
	key := string(prop.CreatedBy.ID)
	if key == "" {
		key = name
	}

	return Respondent{Key: key, Name: name}
}

func fileURL(file notionapi.File) string {
	if file.File != nil {
		return file.File.URL
	}
	if file.External != nil {
		return file.External.URL
	}
	return ""
}

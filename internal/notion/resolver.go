package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/statement-sync/internal/logger"
)

// The respondent index is a small bookkeeping database under the target
// page. It pins each respondent key to the destination database that was
// created for it, so resolution does not depend on fragile title-string
// search once a database exists.
// The respondent key lives in a rich_text property so index rows can be
// queried with a text filter; the title holds the display name.
const (
	IndexDatabaseTitle = "Respondent Index"

	indexNameProperty     = "Respondent"
	indexKeyProperty      = "Respondent Key"
	indexDatabaseProperty = "Database ID"
)

// Resolver maps a respondent to exactly one destination database under the
// target page, creating the database with the required schema when none
// exists. Resolutions are memoized for the lifetime of the Resolver, so a
// respondent seen twice within one run resolves to the same database id
// without another round trip.
type Resolver struct {
	svc          Service
	targetPageID string

	indexDBID string
	cache     map[string]string
}

// NewResolver creates a Resolver that places destination databases under
// the given target page.
func NewResolver(svc Service, targetPageID string) *Resolver {
	return &Resolver{
		svc:          svc,
		targetPageID: targetPageID,
		cache:        make(map[string]string),
	}
}

// Resolve returns the destination database id for a respondent. Lookup
// order: per-run cache, respondent index, exact-title search under the
// target page, then lazy creation. Databases found by title are recorded
// in the index and have their schema healed additively before reuse.
func (r *Resolver) Resolve(ctx context.Context, respondent Respondent) (string, error) {
	log := logger.FromContext(ctx)

	if id, ok := r.cache[respondent.Key]; ok {
		return id, nil
	}

	indexID, err := r.ensureIndex(ctx)
	if err != nil {
		return "", fmt.Errorf("Resolve: %w", err)
	}

	id, err := r.lookupIndex(ctx, indexID, respondent.Key)
	if err != nil {
		return "", fmt.Errorf("Resolve: %w", err)
	}
	if id != "" {
		if err := EnsureDatabaseProperties(ctx, r.svc, id); err != nil {
			return "", fmt.Errorf("Resolve: %w", err)
		}
		log.Info().
			Str("respondent", respondent.Name).
			Str("database_id", id).
			Msg("Resolved database from respondent index")
		r.cache[respondent.Key] = id
		return id, nil
	}

	// Legacy path: databases created before the index existed are only
	// reachable by exact title equality under the target page.
	id, err = r.findByTitle(ctx, respondent.Name)
	if err != nil {
		return "", fmt.Errorf("Resolve: %w", err)
	}
	if id != "" {
		if err := EnsureDatabaseProperties(ctx, r.svc, id); err != nil {
			return "", fmt.Errorf("Resolve: %w", err)
		}
		if err := r.recordIndex(ctx, indexID, respondent, id); err != nil {
			return "", fmt.Errorf("Resolve: %w", err)
		}
		log.Info().
			Str("respondent", respondent.Name).
			Str("database_id", id).
			Msg("Found existing database by title")
		r.cache[respondent.Key] = id
		return id, nil
	}

	id, err = r.createDatabase(ctx, respondent.Name, RequiredProperties())
	if err != nil {
		return "", fmt.Errorf("Resolve: %w", err)
	}
	if err := r.recordIndex(ctx, indexID, respondent, id); err != nil {
		return "", fmt.Errorf("Resolve: %w", err)
	}
	log.Info().
		Str("respondent", respondent.Name).
		Str("database_id", id).
		Msg("Created new respondent database")
	r.cache[respondent.Key] = id
	return id, nil
}

// ensureIndex finds or creates the respondent index database.
func (r *Resolver) ensureIndex(ctx context.Context) (string, error) {
	if r.indexDBID != "" {
		return r.indexDBID, nil
	}

	id, err := r.findByTitle(ctx, IndexDatabaseTitle)
	if err != nil {
		return "", fmt.Errorf("ensureIndex: %w", err)
	}
	if id == "" {
		id, err = r.createDatabase(ctx, IndexDatabaseTitle, notionapi.PropertyConfigs{
			indexNameProperty: notionapi.TitlePropertyConfig{
				Type: notionapi.PropertyConfigTypeTitle,
			},
			indexKeyProperty: notionapi.RichTextPropertyConfig{
				Type: notionapi.PropertyConfigTypeRichText,
			},
			indexDatabaseProperty: notionapi.RichTextPropertyConfig{
				Type: notionapi.PropertyConfigTypeRichText,
			},
		})
		if err != nil {
			return "", fmt.Errorf("ensureIndex: %w", err)
		}
	}

	r.indexDBID = id
	return id, nil
}

// lookupIndex returns the database id recorded for a respondent key, or
// empty string if the key has never been seen.
func (r *Resolver) lookupIndex(ctx context.Context, indexID, key string) (string, error) {
	resp, err := r.svc.QueryDatabase(ctx, indexID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: indexKeyProperty,
			RichText: &notionapi.TextFilterCondition{
				Equals: key,
			},
		},
		PageSize: 1,
	})
	if err != nil {
		return "", fmt.Errorf("lookupIndex: %w", err)
	}

	for _, page := range resp.Results {
		if id := richTextValue(page, indexDatabaseProperty); id != "" {
			return id, nil
		}
	}

	return "", nil
}

// recordIndex writes one index row pinning the respondent key to its
// database id.
func (r *Resolver) recordIndex(ctx context.Context, indexID string, respondent Respondent, databaseID string) error {
	_, err := r.svc.CreatePage(ctx, indexID, notionapi.Properties{
		indexNameProperty: notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: respondent.Name,
					},
				},
			},
		},
		indexKeyProperty: notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: respondent.Key,
					},
				},
			},
		},
		indexDatabaseProperty: notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: databaseID,
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("recordIndex: %w", err)
	}

	return nil
}

// findByTitle searches for a database with exactly the given title parented
// under the target page. Title equality is strict: no trimming, no case
// folding.
func (r *Resolver) findByTitle(ctx context.Context, title string) (string, error) {
	databases, err := r.svc.SearchDatabases(ctx, title)
	if err != nil {
		return "", fmt.Errorf("findByTitle: %w", err)
	}

	for _, db := range databases {
		if db.Parent.Type != notionapi.ParentTypePageID {
			continue
		}
		if string(db.Parent.PageID) != r.targetPageID {
			continue
		}
		if databaseTitle(db) == title {
			return string(db.ID), nil
		}
	}

	return "", nil
}

// createDatabase creates a database under the target page.
func (r *Resolver) createDatabase(ctx context.Context, title string, properties notionapi.PropertyConfigs) (string, error) {
	db, err := r.svc.CreateDatabase(ctx, &notionapi.DatabaseCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(r.targetPageID),
		},
		Title: []notionapi.RichText{
			{
				Type: notionapi.ObjectTypeText,
				Text: &notionapi.Text{
					Content: title,
				},
			},
		},
		Properties: properties,
	})
	if err != nil {
		return "", fmt.Errorf("createDatabase: %w", err)
	}

	return string(db.ID), nil
}

// databaseTitle extracts the plain title of a database.
func databaseTitle(db *notionapi.Database) string {
	if len(db.Title) == 0 {
		return ""
	}
	t := db.Title[0]
	if t.PlainText != "" {
		return t.PlainText
	}
	if t.Text != nil {
		return t.Text.Content
	}
	return ""
}

// richTextValue extracts the first rich-text value of a page property.
func richTextValue(page notionapi.Page, property string) string {
	prop, ok := page.Properties[property].(*notionapi.RichTextProperty)
	if !ok || len(prop.RichText) == 0 {
		return ""
	}
	if prop.RichText[0].PlainText != "" {
		return prop.RichText[0].PlainText
	}
	if prop.RichText[0].Text != nil {
		return prop.RichText[0].Text.Content
	}
	return ""
}

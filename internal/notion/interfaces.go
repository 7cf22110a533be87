package notion

import (
	"context"

	"github.com/jomei/notionapi"
)

// Service defines the interface for interacting with the Notion API.
// This interface enables mocking and testing of Notion operations.
type Service interface {
	// SearchDatabases returns every database whose title matches the query.
	// Pagination is handled internally; all matches are returned.
	SearchDatabases(ctx context.Context, query string) ([]*notionapi.Database, error)

	// CreateDatabase creates a new database from the given request.
	CreateDatabase(ctx context.Context, req *notionapi.DatabaseCreateRequest) (*notionapi.Database, error)

	// GetDatabase retrieves a database, including its property schema.
	GetDatabase(ctx context.Context, databaseID string) (*notionapi.Database, error)

	// UpdateDatabase updates a database, typically to add schema properties.
	UpdateDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseUpdateRequest) (*notionapi.Database, error)

	// QueryDatabase queries a database with the given filter.
	QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)

	// CreatePage creates a new page in a database with the given properties.
	CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)

	// UpdatePage updates an existing page with the given properties.
	UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error)
}

package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
)

// Client is the concrete implementation of Service using the Notion SDK.
type Client struct {
	client *notionapi.Client
}

// NewClient creates a new Client with the provided API token.
func NewClient(token string) *Client {
	return &Client{
		client: notionapi.NewClient(notionapi.Token(token)),
	}
}

// SearchDatabases searches for databases matching the query, following the
// cursor until the service reports no more pages.
func (n *Client) SearchDatabases(ctx context.Context, query string) ([]*notionapi.Database, error) {
	var databases []*notionapi.Database
	var cursor notionapi.Cursor

	for {
		req := &notionapi.SearchRequest{
			Query: query,
			Filter: notionapi.SearchFilter{
				Property: "object",
				Value:    "database",
			},
			PageSize: 100,
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := n.client.Search.Do(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("SearchDatabases: %w", err)
		}

		for _, result := range resp.Results {
			if db, ok := result.(*notionapi.Database); ok {
				databases = append(databases, db)
			}
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}

	return databases, nil
}

// CreateDatabase creates a new database from the given request.
func (n *Client) CreateDatabase(ctx context.Context, req *notionapi.DatabaseCreateRequest) (*notionapi.Database, error) {
	db, err := n.client.Database.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("CreateDatabase: %w", err)
	}

	return db, nil
}

// GetDatabase retrieves a database by id.
func (n *Client) GetDatabase(ctx context.Context, databaseID string) (*notionapi.Database, error) {
	db, err := n.client.Database.Get(ctx, notionapi.DatabaseID(databaseID))
	if err != nil {
		return nil, fmt.Errorf("GetDatabase: %w", err)
	}

	return db, nil
}

// UpdateDatabase updates a database by id.
func (n *Client) UpdateDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseUpdateRequest) (*notionapi.Database, error) {
	db, err := n.client.Database.Update(ctx, notionapi.DatabaseID(databaseID), req)
	if err != nil {
		return nil, fmt.Errorf("UpdateDatabase: %w", err)
	}

	return db, nil
}

// QueryDatabase queries a database with the given filter.
func (n *Client) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	resp, err := n.client.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
	if err != nil {
		return nil, fmt.Errorf("QueryDatabase: %w", err)
	}

	return resp, nil
}

// CreatePage creates a new page in a database with the given properties.
func (n *Client) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: properties,
	}

	page, err := n.client.Page.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("CreatePage: %w", err)
	}

	return page, nil
}

// UpdatePage updates an existing page with the given properties.
func (n *Client) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error) {
	req := &notionapi.PageUpdateRequest{
		Properties: properties,
	}

	page, err := n.client.Page.Update(ctx, notionapi.PageID(pageID), req)
	if err != nil {
		return nil, fmt.Errorf("UpdatePage: %w", err)
	}

	return page, nil
}

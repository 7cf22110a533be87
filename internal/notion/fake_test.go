package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
)

// fakeService implements Service with overridable behavior per method.
type fakeService struct {
	SearchDatabasesFunc func(ctx context.Context, query string) ([]*notionapi.Database, error)
	CreateDatabaseFunc  func(ctx context.Context, req *notionapi.DatabaseCreateRequest) (*notionapi.Database, error)
	GetDatabaseFunc     func(ctx context.Context, databaseID string) (*notionapi.Database, error)
	UpdateDatabaseFunc  func(ctx context.Context, databaseID string, req *notionapi.DatabaseUpdateRequest) (*notionapi.Database, error)
	QueryDatabaseFunc   func(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
	CreatePageFunc      func(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)
	UpdatePageFunc      func(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error)
}

func (f *fakeService) SearchDatabases(ctx context.Context, query string) ([]*notionapi.Database, error) {
	if f.SearchDatabasesFunc == nil {
		return nil, nil
	}
	return f.SearchDatabasesFunc(ctx, query)
}

func (f *fakeService) CreateDatabase(ctx context.Context, req *notionapi.DatabaseCreateRequest) (*notionapi.Database, error) {
	if f.CreateDatabaseFunc == nil {
		return nil, fmt.Errorf("unexpected CreateDatabase call")
	}
	return f.CreateDatabaseFunc(ctx, req)
}

func (f *fakeService) GetDatabase(ctx context.Context, databaseID string) (*notionapi.Database, error) {
	if f.GetDatabaseFunc == nil {
		return nil, fmt.Errorf("unexpected GetDatabase call")
	}
	return f.GetDatabaseFunc(ctx, databaseID)
}

func (f *fakeService) UpdateDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseUpdateRequest) (*notionapi.Database, error) {
	if f.UpdateDatabaseFunc == nil {
		return nil, fmt.Errorf("unexpected UpdateDatabase call")
	}
	return f.UpdateDatabaseFunc(ctx, databaseID, req)
}

func (f *fakeService) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	if f.QueryDatabaseFunc == nil {
		return &notionapi.DatabaseQueryResponse{}, nil
	}
	return f.QueryDatabaseFunc(ctx, databaseID, req)
}

func (f *fakeService) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	if f.CreatePageFunc == nil {
		return nil, fmt.Errorf("unexpected CreatePage call")
	}
	return f.CreatePageFunc(ctx, databaseID, properties)
}

func (f *fakeService) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error) {
	if f.UpdatePageFunc == nil {
		return nil, fmt.Errorf("unexpected UpdatePage call")
	}
	return f.UpdatePageFunc(ctx, pageID, properties)
}

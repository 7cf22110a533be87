package notion

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
)

func TestEnsureDatabasePropertiesAddsOnlyMissing(t *testing.T) {
	existing := notionapi.PropertyConfigs{
		PropProductName: notionapi.TitlePropertyConfig{Type: notionapi.PropertyConfigTypeTitle},
		PropPrice: notionapi.NumberPropertyConfig{
			Type:   notionapi.PropertyConfigTypeNumber,
			Number: notionapi.NumberFormat{Format: notionapi.FormatDollar},
		},
	}

	var updated *notionapi.DatabaseUpdateRequest
	svc := &fakeService{
		GetDatabaseFunc: func(ctx context.Context, databaseID string) (*notionapi.Database, error) {
			return &notionapi.Database{ID: "db-1", Properties: existing}, nil
		},
		UpdateDatabaseFunc: func(ctx context.Context, databaseID string, req *notionapi.DatabaseUpdateRequest) (*notionapi.Database, error) {
			updated = req
			return &notionapi.Database{}, nil
		},
	}

	if err := EnsureDatabaseProperties(context.Background(), svc, "db-1"); err != nil {
		t.Fatalf("EnsureDatabaseProperties failed: %v", err)
	}
	if updated == nil {
		t.Fatal("expected an update request")
	}
	for _, name := range []string{PropTransactionDate, PropCategory, PropProcessed} {
		if _, ok := updated.Properties[name]; !ok {
			t.Errorf("expected %s to be added", name)
		}
	}
	for name := range existing {
		if _, ok := updated.Properties[name]; ok {
			t.Errorf("existing property %s must not be touched", name)
		}
	}
}

func TestEnsureDatabasePropertiesNoopWhenComplete(t *testing.T) {
	svc := &fakeService{
		GetDatabaseFunc: func(ctx context.Context, databaseID string) (*notionapi.Database, error) {
			return &notionapi.Database{ID: "db-1", Properties: RequiredProperties()}, nil
		},
		UpdateDatabaseFunc: func(ctx context.Context, databaseID string, req *notionapi.DatabaseUpdateRequest) (*notionapi.Database, error) {
			t.Fatal("unexpected UpdateDatabase call")
			return nil, nil
		},
	}

	if err := EnsureDatabaseProperties(context.Background(), svc, "db-1"); err != nil {
		t.Fatalf("EnsureDatabaseProperties failed: %v", err)
	}
}


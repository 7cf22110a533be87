// Package pipeline orchestrates one full sync run: scan the source
// database for unprocessed statements, extract transactions from each PDF,
// and upload them into per-respondent databases.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dvloznov/statement-sync/internal/logger"
	"github.com/dvloznov/statement-sync/internal/notion"
)

// Summary reports what one run did.
type Summary struct {
	PDFsFound     int
	PDFsProcessed int
	PDFsSkipped   int
	GroupsAborted int
	RowsUploaded  int
	RowsSkipped   int
}

// Orchestrator wires the pipeline stages together. All collaborators are
// injected so runs are testable without live services.
type Orchestrator struct {
	svc          notion.Service
	scanner      SourceScanner
	resolver     DatabaseResolver
	uploader     RowUploader
	text         TextExtractor
	transactions TransactionExtractor

	sourceDatabaseID string
}

// NewOrchestrator assembles a pipeline over the given collaborators.
func NewOrchestrator(
	svc notion.Service,
	scanner SourceScanner,
	resolver DatabaseResolver,
	uploader RowUploader,
	text TextExtractor,
	transactions TransactionExtractor,
	sourceDatabaseID string,
) *Orchestrator {
	return &Orchestrator{
		svc:              svc,
		scanner:          scanner,
		resolver:         resolver,
		uploader:         uploader,
		text:             text,
		transactions:     transactions,
		sourceDatabaseID: sourceDatabaseID,
	}
}

// Run executes one sync pass. Failures below the run level are contained:
// a PDF that cannot be fetched is skipped and left unmarked for the next
// run, and a respondent whose database cannot be resolved aborts only that
// respondent's statements.
func (o *Orchestrator) Run(ctx context.Context) (Summary, error) {
	log := logger.FromContext(ctx).With().
		Str("run_id", uuid.New().String()).
		Logger()
	ctx = logger.WithContext(ctx, log)

	var summary Summary

	if err := notion.EnsureDatabaseProperties(ctx, o.svc, o.sourceDatabaseID); err != nil {
		log.Warn().Err(err).Msg("Could not verify source database schema, continuing")
	}

	entries, err := o.scanner.Scan(ctx, o.sourceDatabaseID)
	if err != nil {
		return summary, fmt.Errorf("Run: %w", err)
	}
	summary.PDFsFound = len(entries)
	log.Info().Int("pdfs", len(entries)).Msg("Scan finished")

	for _, group := range groupByRespondent(entries) {
		o.processGroup(ctx, group, &summary)
	}

	log.Info().
		Int("pdfs_found", summary.PDFsFound).
		Int("pdfs_processed", summary.PDFsProcessed).
		Int("pdfs_skipped", summary.PDFsSkipped).
		Int("groups_aborted", summary.GroupsAborted).
		Int("rows_uploaded", summary.RowsUploaded).
		Int("rows_skipped", summary.RowsSkipped).
		Msg("Sync run finished")

	return summary, nil
}

// processGroup handles all statements belonging to one respondent.
func (o *Orchestrator) processGroup(ctx context.Context, group []notion.PDFEntry, summary *Summary) {
	respondent := group[0].Respondent
	log := logger.FromContext(ctx).With().
		Str("respondent", respondent.Name).
		Logger()
	ctx = logger.WithContext(ctx, log)

	databaseID, err := o.resolver.Resolve(ctx, respondent)
	if err != nil {
		log.Error().Err(err).Msg("Could not resolve respondent database, skipping group")
		summary.GroupsAborted++
		summary.PDFsSkipped += len(group)
		return
	}

	for _, entry := range group {
		o.processEntry(ctx, entry, databaseID, summary)
	}
}

// processEntry runs one statement end to end. The source record is marked
// processed even when extraction produced no transactions; only a failed
// download or unreadable file leaves it unmarked for the next run.
func (o *Orchestrator) processEntry(ctx context.Context, entry notion.PDFEntry, databaseID string, summary *Summary) {
	log := logger.FromContext(ctx)

	text, err := o.text.Extract(ctx, entry.URL)
	if err != nil {
		log.Warn().
			Err(err).
			Str("file", entry.Name).
			Msg("Could not read statement file, will retry next run")
		summary.PDFsSkipped++
		return
	}

	transactions := o.transactions.Extract(ctx, text)

	complete := transactions[:0]
	for _, t := range transactions {
		if t.Complete() {
			complete = append(complete, t)
		} else {
			log.Warn().
				Str("file", entry.Name).
				Str("product_name", t.ProductName).
				Msg("Skipping row with missing fields")
			summary.RowsSkipped++
		}
	}

	uploaded, skipped := o.uploader.Upload(ctx, complete, databaseID)
	summary.RowsUploaded += uploaded
	summary.RowsSkipped += skipped

	if err := o.scanner.MarkProcessed(ctx, entry.PageID); err != nil {
		log.Error().
			Err(err).
			Str("page_id", entry.PageID).
			Msg("Failed to mark record processed, it will be re-scanned next run")
	}

	summary.PDFsProcessed++
	log.Info().
		Str("file", entry.Name).
		Int("uploaded", uploaded).
		Int("skipped", skipped).
		Msg("Statement processed")
}

// groupByRespondent groups entries by respondent key, preserving the order
// respondents first appear in the scan.
func groupByRespondent(entries []notion.PDFEntry) [][]notion.PDFEntry {
	index := make(map[string]int)
	var groups [][]notion.PDFEntry

	for _, entry := range entries {
		i, ok := index[entry.Respondent.Key]
		if !ok {
			i = len(groups)
			index[entry.Respondent.Key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], entry)
	}

	return groups
}

package export

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"hftrending/internal/scrapers/huggingface"
	"strings"
	"time"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:embed schema.sql
var Schema string

var tracer = otel.Tracer("hftrending/export")

// NewRunID returns a random identifier for one run of the pipelines.
func NewRunID() (string, error) {
	return random.String(12)
}

// schemaStatements splits Schema into single statements, not every driver
// accepts more than one statement per Exec.
func schemaStatements() []string {
	var statements []string
	for _, stmt := range strings.Split(Schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullInt(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

// WriteSnapshot replaces whatever snapshot db holds with the given records. The
// tables are dropped, recreated and filled in one transaction, a failure leaves
// the previous snapshot in place.
func WriteSnapshot(ctx context.Context, db *sql.DB, runID string, models []huggingface.ModelRecord, papers []huggingface.PaperRecord) error {
	ctx, span := tracer.Start(ctx, "WriteSnapshot", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("models", len(models)),
		attribute.Int("papers", len(papers)),
	))
	defer span.End()

	err := writeSnapshot(ctx, db, runID, models, papers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write snapshot")
		return err
	}
	return nil
}

func writeSnapshot(ctx context.Context, db *sql.DB, runID string, models []huggingface.ModelRecord, papers []huggingface.PaperRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements() {
		_, err = tx.ExecContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("recreate tables: %w", err)
		}
	}

	_, err = tx.ExecContext(
		ctx,
		"insert into snapshot(run_id, created_at, model_count, paper_count) values (?, ?, ?, ?)",
		runID, time.Now().Unix(), len(models), len(papers),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	for i, m := range models {
		_, err = tx.ExecContext(
			ctx,
			`insert into models(run_id, position, model_id, url, task, parameters, updated, downloads, likes)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, m.ModelID, m.Url,
			nullString(m.Task), nullString(m.Parameters), nullString(m.Updated),
			nullInt(m.Downloads), nullInt(m.Likes),
		)
		if err != nil {
			return fmt.Errorf("insert model %s: %w", m.Url, err)
		}
	}

	for i, p := range papers {
		_, err = tx.ExecContext(
			ctx,
			`insert into papers(run_id, position, title, abstract, url, github, arxiv, upvotes, published, github_stars)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, p.Title, p.Abstract, p.Url,
			nullString(p.Github), nullString(p.Arxiv), nullInt(p.Upvotes),
			nullString(p.Published), nullInt(p.GithubStars),
		)
		if err != nil {
			return fmt.Errorf("insert paper %s: %w", p.Url, err)
		}
	}

	return tx.Commit()
}

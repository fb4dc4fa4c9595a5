package export

import (
	"bytes"
	"context"
	"database/sql"
	"hftrending/internal/normalize"
	"hftrending/internal/scrapers/huggingface"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var testModels = []huggingface.ModelRecord{
	{
		ModelID:    "meta-llama/Llama-3.1-8B-Instruct",
		Url:        "https://huggingface.co/meta-llama/Llama-3.1-8B-Instruct",
		Task:       normalize.Ptr("Text Generation"),
		Parameters: normalize.Ptr("8B"),
		Updated:    normalize.Ptr("2024-09-25"),
		Downloads:  normalize.Ptr[int64](5_310_000),
		Likes:      normalize.Ptr[int64](3_960),
	},
	{
		ModelID: "FLUX.1-dev",
		Url:     "https://huggingface.co/black-forest-labs/FLUX.1-dev",
	},
}

var testPapers = []huggingface.PaperRecord{
	{
		Title:       "Self-Correct, via \"RL\"",
		Abstract:    "Línea uno, línea dos",
		Url:         "https://huggingface.co/papers/2409.12917",
		Github:      normalize.Ptr("https://github.com/google-deepmind/self-correct"),
		Upvotes:     normalize.Ptr[int64](142),
		Published:   normalize.Ptr("2024-09-19"),
		GithubStars: normalize.Ptr[int64](2_700),
	},
	{
		Title:    huggingface.NotAvailable,
		Abstract: huggingface.NotAvailable,
		Url:      "https://huggingface.co/papers/2409.11402",
	},
}

func TestWriteModelsCSV(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WriteModelsCSV(&buffer, testModels))

	expected := "model_id,url,task,parameters,updated,downloads,likes\n" +
		"meta-llama/Llama-3.1-8B-Instruct,https://huggingface.co/meta-llama/Llama-3.1-8B-Instruct,Text Generation,8B,2024-09-25,5310000,3960\n" +
		"FLUX.1-dev,https://huggingface.co/black-forest-labs/FLUX.1-dev,,,,,\n"
	require.Equal(t, expected, buffer.String())
}

func TestWritePapersCSV(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WritePapersCSV(&buffer, testPapers))

	expected := "title,abstract,url,github,arxiv,upvotes,published,github_stars\n" +
		"\"Self-Correct, via \"\"RL\"\"\",\"Línea uno, línea dos\",https://huggingface.co/papers/2409.12917,https://github.com/google-deepmind/self-correct,,142,2024-09-19,2700\n" +
		"N/A,N/A,https://huggingface.co/papers/2409.11402,,,,,\n"
	require.Equal(t, expected, buffer.String())
}

func TestWriteEmptyCSV(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WriteModelsCSV(&buffer, nil))
	require.Equal(t, "model_id,url,task,parameters,updated,downloads,likes\n", buffer.String())
}

func openMemoryDB(t testing.TB) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a different database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWriteSnapshot(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	require.NoError(t, WriteSnapshot(ctx, db, "first", testModels, testPapers))
	require.NoError(t, WriteSnapshot(ctx, db, "second", testModels[:1], nil))

	var runID string
	var modelCount, paperCount int
	err := db.QueryRow("select run_id, model_count, paper_count from snapshot").Scan(&runID, &modelCount, &paperCount)
	require.NoError(t, err)
	require.Equal(t, "second", runID)
	require.Equal(t, 1, modelCount)
	require.Equal(t, 0, paperCount)

	var rows int
	require.NoError(t, db.QueryRow("select count(*) from models").Scan(&rows))
	require.Equal(t, 1, rows)
	require.NoError(t, db.QueryRow("select count(*) from papers").Scan(&rows))
	require.Equal(t, 0, rows)
}

func TestWriteSnapshotNulls(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	require.NoError(t, WriteSnapshot(ctx, db, "run", testModels, testPapers))

	var task sql.NullString
	var downloads sql.NullInt64
	err := db.QueryRow("select task, downloads from models where position = 1").Scan(&task, &downloads)
	require.NoError(t, err)
	require.False(t, task.Valid)
	require.False(t, downloads.Valid)

	err = db.QueryRow("select task, downloads from models where position = 0").Scan(&task, &downloads)
	require.NoError(t, err)
	require.Equal(t, "Text Generation", task.String)
	require.Equal(t, int64(5_310_000), downloads.Int64)

	var title string
	var stars sql.NullInt64
	err = db.QueryRow("select title, github_stars from papers where run_id = ? and position = 0", "run").Scan(&title, &stars)
	require.NoError(t, err)
	require.Equal(t, testPapers[0].Title, title)
	require.Equal(t, int64(2_700), stars.Int64)
}

func TestOpenDBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	config := SQLite{File: path}
	require.True(t, config.Enabled())

	db, err := config.OpenDB()
	require.NoError(t, err)
	defer db.Close()

	runID, err := NewRunID()
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	require.NoError(t, WriteSnapshot(context.Background(), db, runID, testModels, testPapers))

	var stored string
	require.NoError(t, db.QueryRow("select run_id from snapshot").Scan(&stored))
	require.Equal(t, runID, stored)
}

func TestOpenDBUnconfigured(t *testing.T) {
	config := SQLite{}
	require.False(t, config.Enabled())
	_, err := config.OpenDB()
	require.Error(t, err)
}

package export

import (
	"encoding/csv"
	"hftrending/internal/scrapers/huggingface"
	"io"
	"strconv"
)

var (
	modelColumns = []string{"model_id", "url", "task", "parameters", "updated", "downloads", "likes"}
	paperColumns = []string{"title", "abstract", "url", "github", "arxiv", "upvotes", "published", "github_stars"}
)

func optionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func optionalInt(value *int64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatInt(*value, 10)
}

// WriteModelsCSV writes a header row followed by one row per model. Absent values
// are empty cells.
func WriteModelsCSV(w io.Writer, models []huggingface.ModelRecord) error {
	out := csv.NewWriter(w)
	err := out.Write(modelColumns)
	if err != nil {
		return err
	}
	for _, m := range models {
		err = out.Write([]string{
			m.ModelID,
			m.Url,
			optionalString(m.Task),
			optionalString(m.Parameters),
			optionalString(m.Updated),
			optionalInt(m.Downloads),
			optionalInt(m.Likes),
		})
		if err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// WritePapersCSV is WriteModelsCSV for papers.
func WritePapersCSV(w io.Writer, papers []huggingface.PaperRecord) error {
	out := csv.NewWriter(w)
	err := out.Write(paperColumns)
	if err != nil {
		return err
	}
	for _, p := range papers {
		err = out.Write([]string{
			p.Title,
			p.Abstract,
			p.Url,
			optionalString(p.Github),
			optionalString(p.Arxiv),
			optionalInt(p.Upvotes),
			optionalString(p.Published),
			optionalInt(p.GithubStars),
		})
		if err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

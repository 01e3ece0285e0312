package docstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-skillhub-backend/internal/docstore"
)

func doc(id string, data map[string]any) docstore.Doc {
	return docstore.Doc{ID: id, Path: "c/" + id, Data: data}
}

func TestCompare(t *testing.T) {
	t.Run("Should compare numbers across native and JSON decoded forms", func(t *testing.T) {
		assert.Equal(t, 0, docstore.Compare(2, float64(2)))
		assert.Equal(t, -1, docstore.Compare(1, float64(2)))
		assert.Equal(t, 1, docstore.Compare(float64(3), 2))
	})

	t.Run("Should compare timestamps stored as strings or time values", func(t *testing.T) {
		earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		later := "2024-06-01T00:00:00Z"
		assert.Equal(t, -1, docstore.Compare(earlier, later))
		assert.Equal(t, 1, docstore.Compare(later, earlier))
	})

	t.Run("Should treat unrelated types as equal", func(t *testing.T) {
		assert.Equal(t, 0, docstore.Compare("abc", 5))
	})
}

func TestApplyQuery(t *testing.T) {
	docs := []docstore.Doc{
		doc("a", map[string]any{"order": float64(2), "created_at": "2024-02-01T00:00:00Z"}),
		doc("b", map[string]any{"order": 1, "created_at": "2024-03-01T00:00:00Z"}),
		doc("c", map[string]any{"order": 3}),
	}

	t.Run("Should order mixed numeric encodings correctly", func(t *testing.T) {
		out := docstore.ApplyQuery(docs, docstore.Query{OrderBy: "order"})
		assert.Equal(t, []string{"b", "a", "c"}, ids(out))
	})

	t.Run("Should sort documents missing the field as the minimum", func(t *testing.T) {
		out := docstore.ApplyQuery(docs, docstore.Query{OrderBy: "created_at", Dir: docstore.Descending})
		// "c" has no timestamp and sinks to the end of a newest-first list.
		assert.Equal(t, []string{"b", "a", "c"}, ids(out))
	})

	t.Run("Should filter with range operators over JSON numbers", func(t *testing.T) {
		out := docstore.ApplyQuery(docs, docstore.Query{
			Filters: []docstore.Filter{docstore.Where("order", docstore.OpGreater, 1)},
			OrderBy: "order",
			Dir:     docstore.Descending,
		})
		assert.Equal(t, []string{"c", "a"}, ids(out))
	})

	t.Run("Should not equate values of unrelated types", func(t *testing.T) {
		out := docstore.ApplyQuery(docs, docstore.Query{
			Filters: []docstore.Filter{docstore.Where("order", docstore.OpEqual, "2")},
		})
		assert.Empty(t, out)
	})

	t.Run("Should apply the limit after ordering", func(t *testing.T) {
		out := docstore.ApplyQuery(docs, docstore.Query{OrderBy: "order", Limit: 2})
		assert.Equal(t, []string{"b", "a"}, ids(out))
	})
}

func ids(docs []docstore.Doc) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}

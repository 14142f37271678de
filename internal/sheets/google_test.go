package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

type fakeSheetsAPI struct {
	title   string
	values  [][]interface{}
	updates map[string][][]interface{}
	query   []string
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	const valuesPrefix = "/v4/spreadsheets/doc123/values/"
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/v4/spreadsheets/doc123":
		fmt.Fprintf(w, `{"sheets": [{"properties": {"title": %q}}]}`, f.title)

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, valuesPrefix):
		json.NewEncoder(w).Encode(map[string]interface{}{
			"range":  strings.TrimPrefix(r.URL.Path, valuesPrefix),
			"values": f.values,
		})

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, valuesPrefix):
		var body sheetsapi.ValueRange
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rng := strings.TrimPrefix(r.URL.Path, valuesPrefix)
		f.updates[rng] = body.Values
		f.query = append(f.query, r.URL.Query().Get("valueInputOption"))
		fmt.Fprintf(w, `{"updatedRange": %q}`, rng)

	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": {"code": 404, "message": "not found"}}`)
	}
}

func newFakeService(t *testing.T, api http.Handler) *sheetsapi.Service {
	t.Helper()

	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	service, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return service
}

func TestGoogleWorksheetRecords(t *testing.T) {
	api := &fakeSheetsAPI{
		title: "Form Responses 1",
		values: [][]interface{}{
			{"github_url", "full_name", "email"},
			{"https://github.com/Alice", "Alice", "alice@example.com"},
			{"bob", "Bob"},
		},
	}
	opener := NewOpenerWithService(newFakeService(t, api))

	worksheet, err := opener.Open(context.Background(), "https://docs.google.com/spreadsheets/d/doc123/edit")
	require.NoError(t, err)

	records, err := worksheet.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0]["full_name"])
	assert.Equal(t, "", records[1]["email"])
}

func TestGoogleWorksheetUpdateRange(t *testing.T) {
	api := &fakeSheetsAPI{
		title:   "Points",
		updates: make(map[string][][]interface{}),
	}
	worksheet, err := OpenGoogleWorksheet(context.Background(), newFakeService(t, api), "doc123")
	require.NoError(t, err)

	err = worksheet.UpdateRange(context.Background(), "A2:D2", []interface{}{"Alice", "alice@example.com", "https://github.com/alice", 10})
	require.NoError(t, err)

	written, ok := api.updates["'Points'!A2:D2"]
	require.True(t, ok, "update should target the first worksheet by title")
	require.Len(t, written, 1)
	assert.Equal(t, []interface{}{"Alice", "alice@example.com", "https://github.com/alice", float64(10)}, written[0])
	assert.Equal(t, []string{"RAW"}, api.query)
}

func TestGoogleWorksheetMissingDocument(t *testing.T) {
	service := newFakeService(t, &fakeSheetsAPI{})

	_, err := OpenGoogleWorksheet(context.Background(), service, "nope")
	assert.Error(t, err)
}

func TestGoogleWorksheetQualify(t *testing.T) {
	w := &GoogleWorksheet{title: "Bob's sheet"}

	assert.Equal(t, "'Bob''s sheet'", w.qualify(""))
	assert.Equal(t, "'Bob''s sheet'!A2:D2", w.qualify("A2:D2"))
}

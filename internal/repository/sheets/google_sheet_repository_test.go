package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

type recordedCall struct {
	method string
	path   string
	values [][]interface{}
}

func newTestRepository(t *testing.T) (*GoogleSheetRepository, *[]recordedCall) {
	t.Helper()

	var (
		mu    sync.Mutex
		calls []recordedCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := recordedCall{method: r.Method, path: r.URL.Path}
		var body sheetsapi.ValueRange
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			call.values = body.Values
		}
		mu.Lock()
		calls = append(calls, call)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	service, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	return &GoogleSheetRepository{service: service, spreadsheetID: "sheet-1", logger: zap.NewNop()}, &calls
}

func TestReplaceRange(t *testing.T) {
	repo, calls := newTestRepository(t)

	rows := [][]interface{}{{"Name", "Wage"}, {"Ana", 500.0}}
	require.NoError(t, repo.ReplaceRange(context.Background(), "Employees!A:B", rows))

	require.Len(t, *calls, 2)
	clear, update := (*calls)[0], (*calls)[1]
	assert.Equal(t, http.MethodPost, clear.method)
	assert.True(t, strings.HasSuffix(clear.path, ":clear"), clear.path)
	assert.Equal(t, http.MethodPut, update.method)
	assert.Contains(t, update.path, "sheet-1")
	assert.Equal(t, []interface{}{"Ana", 500.0}, update.values[1])
}

func TestReplaceRange_EmptyRowsOnlyClears(t *testing.T) {
	repo, calls := newTestRepository(t)

	require.NoError(t, repo.ReplaceRange(context.Background(), "Groups!A:C", nil))
	assert.Len(t, *calls, 1)
}

func TestAppendRow(t *testing.T) {
	repo, calls := newTestRepository(t)

	require.NoError(t, repo.AppendRow(context.Background(), "Weekly!A:D", []interface{}{"2025-10-13", 4, 35.5, 1200.0}))
	require.Len(t, *calls, 1)
	assert.True(t, strings.HasSuffix((*calls)[0].path, ":append"), (*calls)[0].path)

	require.Error(t, repo.AppendRow(context.Background(), "", nil))
	require.Error(t, repo.ReplaceRange(context.Background(), "", nil))
}

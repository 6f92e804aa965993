package tools

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagnerlima/designdata-mcp/internal/models"
	"github.com/wagnerlima/designdata-mcp/internal/session"
	"github.com/wagnerlima/designdata-mcp/internal/store"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", res.Content[0])
	return tc.Text
}

func TestAddSchemaField_ConcurrentCallsKeepEveryField(t *testing.T) {
	st := store.New()
	require.Equal(t, store.Applied, st.AddDataLineage(models.DataLineage{ID: "d1", Name: "flow", Schema: []models.SchemaField{}}))
	sess := session.New(st)
	defer sess.Close()
	lt := &LineageTools{Store: st, Session: sess}

	const n = 300
	var wg sync.WaitGroup
	errs := make(chan string, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _, err := lt.AddSchemaField(context.Background(), nil, AddSchemaFieldInput{
				LineageID: "d1",
				Name:      fmt.Sprintf("field%d", i),
				Type:      "string",
			})
			if err != nil || res.IsError {
				errs <- fmt.Sprintf("field%d: err=%v", i, err)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
	l, ok := st.State().Lineage("d1")
	require.True(t, ok)
	assert.Len(t, l.Schema, n)
}

func TestAddSchemaField_DuplicateAndMissing(t *testing.T) {
	st := store.New()
	require.Equal(t, store.Applied, st.AddDataLineage(models.DataLineage{ID: "d1", Name: "flow"}))
	sess := session.New(st)
	defer sess.Close()
	lt := &LineageTools{Store: st, Session: sess}
	ctx := context.Background()

	res, _, err := lt.AddSchemaField(ctx, nil, AddSchemaFieldInput{LineageID: "d1", Name: "email", Type: "string"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "d1", sess.Lineage())

	res, _, err = lt.AddSchemaField(ctx, nil, AddSchemaFieldInput{LineageID: "d1", Name: "email", Type: "number"})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "already exists")

	res, _, err = lt.AddSchemaField(ctx, nil, AddSchemaFieldInput{LineageID: "nope", Name: "email", Type: "string"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Nothing to do")
}

func TestSetProfile_ConcurrentCallsShareOneUserID(t *testing.T) {
	st := store.New()
	sess := session.New(st)
	defer sess.Close()
	settings := &SettingsTools{Store: st, Session: sess}

	const n = 100
	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _, err := settings.SetProfile(context.Background(), nil, SetProfileInput{
				Name:  fmt.Sprintf("User %d", i),
				Email: fmt.Sprintf("u%d@example.com", i),
			})
			if err == nil && !res.IsError {
				ids <- st.State().CurrentUser.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	first := st.State().CurrentUser.ID
	require.NotEmpty(t, first)
	count := 0
	for id := range ids {
		count++
		assert.Equal(t, first, id)
	}
	assert.Equal(t, n, count)
}

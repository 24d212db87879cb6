package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/petasbytes/genie-annotate/internal/config"
	"github.com/petasbytes/genie-annotate/internal/genie"
	"github.com/petasbytes/genie-annotate/internal/space"
	"github.com/petasbytes/genie-annotate/internal/updater"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const bakehouseEnvelope = `{"space_id":"s1","title":"Bakehouse","serialized_space":"{\"data_sources\":{\"tables\":[{\"identifier\":\"samples.bakehouse.sales_customers\",\"column_configs\":[{\"column_name\":\"customerID\"}]}]}}"}`

type fakeClient struct {
	envelope  string
	getErr    error
	updateErr error
	spaces    []genie.SpaceSummary

	gets, updates, lists int
	patchedID            string
	patched              *genie.Space
}

func (f *fakeClient) GetSpace(_ context.Context, id string) (*genie.Space, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return genie.NewSpace([]byte(f.envelope))
}

func (f *fakeClient) UpdateSpace(_ context.Context, id string, sp *genie.Space) error {
	f.updates++
	f.patchedID, f.patched = id, sp
	return f.updateErr
}

func (f *fakeClient) ListSpaces(context.Context) ([]genie.SpaceSummary, error) {
	f.lists++
	return f.spaces, nil
}

func (f *fakeClient) FirstSpaceID(ctx context.Context) (string, error) {
	spaces, _ := f.ListSpaces(ctx)
	if len(spaces) == 0 {
		return "", genie.ErrNoSpaces
	}
	return spaces[0].ID, nil
}

type harness struct {
	client       *fakeClient
	clientBuilds int
	out, errOut  bytes.Buffer
	newLogger    func(level string, verbose bool) (*zap.Logger, error)
}

func (h *harness) run(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	a := &app{
		newClient: func(*config.Config) (spaceClient, error) {
			h.clientBuilds++
			return h.client, nil
		},
		newLogger: h.newLogger,
	}
	root := newRootCmd(a)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&h.out)
	root.SetErr(&h.errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	return execRoot(context.Background(), a, root)
}

// syncCounter is a WriteSyncer that counts flushes.
type syncCounter struct {
	bytes.Buffer
	syncs atomic.Int32
}

func (s *syncCounter) Sync() error {
	s.syncs.Add(1)
	return nil
}

func patchedDescription(t *testing.T, sp *genie.Space) []string {
	t.Helper()
	require.NotNil(t, sp)
	text, ok := sp.SerializedSpace()
	require.True(t, ok)
	doc, err := space.Decode(text)
	require.NoError(t, err)
	return doc.Tables()[0].ColumnConfigs[0].Description
}

func TestAnnotate_PromptsForInput(t *testing.T) {
	h := &harness{client: &fakeClient{envelope: bakehouseEnvelope}}
	stdin := "s1\n samples.bakehouse.sales_customers \ncustomerID\nDate of Review\n"

	require.NoError(t, h.run(t, stdin, "annotate"))
	assert.Equal(t, "s1", h.client.patchedID)
	assert.Equal(t, []string{"Date of Review"}, patchedDescription(t, h.client.patched))
	assert.Contains(t, h.out.String(), "Success!")
	assert.Contains(t, h.out.String(), `["Date of Review"]`)
	assert.Contains(t, h.out.String(), "Space updated successfully")
	assert.NotContains(t, h.out.String(), "Applying changes", "no progress line after the patch has been sent")
}

func TestAnnotate_BlankInputMakesNoCalls(t *testing.T) {
	inputs := map[string]string{
		"space_id":    "\nt\nc\nd\n",
		"table":       "s1\n   \nc\nd\n",
		"column":      "s1\nt\n\nd\n",
		"description": "s1\nt\nc\n",
	}
	for name, stdin := range inputs {
		t.Run(name, func(t *testing.T) {
			h := &harness{client: &fakeClient{envelope: bakehouseEnvelope}}
			err := h.run(t, stdin, "annotate")
			require.Error(t, err)
			assert.ErrorIs(t, err, updater.ErrMissingInput)
			assert.Zero(t, h.clientBuilds, "client must not be built")
			assert.Zero(t, h.client.gets+h.client.updates+h.client.lists)
		})
	}
}

func TestAnnotate_FlagsSkipPrompts(t *testing.T) {
	h := &harness{client: &fakeClient{envelope: bakehouseEnvelope}}
	err := h.run(t, "", "annotate",
		"--space-id", "s1",
		"--table", "samples.bakehouse.sales_customers",
		"--column", "customerID",
		"--description", "Date of Review")
	require.NoError(t, err)
	assert.Equal(t, 1, h.client.updates)
}

func TestAnnotate_MissWarnsAndStillPatches(t *testing.T) {
	h := &harness{client: &fakeClient{envelope: bakehouseEnvelope}}
	err := h.run(t, "", "annotate", "--space-id", "s1", "--table", "t", "--column", "c", "--description", "d")
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Could not find table 't' or column 'c'")
	assert.Equal(t, 1, h.client.updates)
	assert.Empty(t, patchedDescription(t, h.client.patched))
}

func TestAnnotate_FetchErrorMeansNoPatch(t *testing.T) {
	h := &harness{client: &fakeClient{getErr: &genie.APIError{StatusCode: 404, Message: "missing"}}}
	err := h.run(t, "", "annotate", "--space-id", "nope", "--table", "t", "--column", "c", "--description", "d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find or access Space ID 'nope'")
	assert.True(t, genie.IsNotFound(err))
	assert.Zero(t, h.client.updates)
}

func TestAnnotate_PersistErrorIsReported(t *testing.T) {
	args := []string{"annotate", "--space-id", "s1", "--table", "samples.bakehouse.sales_customers", "--column", "customerID", "--description", "d"}

	h := &harness{client: &fakeClient{envelope: bakehouseEnvelope, updateErr: errors.New("boom")}}
	require.NoError(t, h.run(t, "", args...))
	assert.Contains(t, h.errOut.String(), "Failed to patch Genie space s1")
	assert.NotContains(t, h.out.String(), "updated successfully")
	assert.NotContains(t, h.out.String(), "Applying changes")

	h = &harness{client: &fakeClient{envelope: bakehouseEnvelope, updateErr: errors.New("boom")}}
	err := h.run(t, "", append(args, "--strict")...)
	require.Error(t, err)
	assert.Equal(t, updater.StepPersist, updater.StepOf(err))
}

func TestAnnotate_SpaceIDAndFirstSpaceExclusive(t *testing.T) {
	h := &harness{client: &fakeClient{}}
	err := h.run(t, "", "annotate", "--space-id", "s1", "--first-space")
	require.Error(t, err)
	assert.Zero(t, h.clientBuilds)
}

func TestSample_UsesFirstSpaceAndFixedTarget(t *testing.T) {
	h := &harness{client: &fakeClient{
		envelope: bakehouseEnvelope,
		spaces:   []genie.SpaceSummary{{ID: "s1", Title: "Bakehouse"}, {ID: "s2"}},
	}}
	require.NoError(t, h.run(t, "", "sample"))
	assert.Equal(t, "s1", h.client.patchedID)
	assert.Equal(t, []string{sampleDescription}, patchedDescription(t, h.client.patched))
	assert.Contains(t, h.out.String(), "Target Space ID: s1")
}

func TestSample_NoSpaces(t *testing.T) {
	h := &harness{client: &fakeClient{}}
	err := h.run(t, "", "sample")
	require.Error(t, err)
	assert.ErrorIs(t, err, genie.ErrNoSpaces)
	assert.Zero(t, h.client.gets+h.client.updates)
}

func TestList_PrintsSpaces(t *testing.T) {
	h := &harness{client: &fakeClient{spaces: []genie.SpaceSummary{{ID: "s1", Title: "Bakehouse"}, {ID: "s2", Title: "Sales"}}}}
	require.NoError(t, h.run(t, "", "list"))
	out := h.out.String()
	for _, want := range []string{"SPACE ID", "s1", "Bakehouse", "s2", "Sales"} {
		assert.Contains(t, out, want)
	}
}

func TestColumns_JSON(t *testing.T) {
	h := &harness{client: &fakeClient{envelope: bakehouseEnvelope}}
	require.NoError(t, h.run(t, "", "columns", "s1", "--json"))
	assert.Contains(t, h.out.String(), `"identifier": "samples.bakehouse.sales_customers"`)
	assert.Contains(t, h.out.String(), `"column_name": "customerID"`)
	assert.Zero(t, h.client.updates)
}

func TestColumns_EventsCarryRunID(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GENIE_OBSERVE_JSON", "1")
	t.Setenv("GENIE_EVENTS_DIR", dir)

	h := &harness{client: &fakeClient{envelope: bakehouseEnvelope}}
	require.NoError(t, h.run(t, "", "columns", "s1"))

	data, err := os.ReadFile(filepath.Join(dir, "events.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ev))
	assert.Equal(t, "space_fetched", ev["event"])
	assert.NotEmpty(t, ev["run_id"])
}

func TestExecRoot_SyncsLoggerOnError(t *testing.T) {
	ws := &syncCounter{}
	h := &harness{client: &fakeClient{getErr: &genie.APIError{StatusCode: 404, Message: "missing"}}}
	h.newLogger = func(string, bool) (*zap.Logger, error) {
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		return zap.New(zapcore.NewCore(enc, ws, zapcore.DebugLevel)), nil
	}
	err := h.run(t, "", "annotate", "--space-id", "nope", "--table", "t", "--column", "c", "--description", "d")
	require.Error(t, err)
	assert.Positive(t, ws.syncs.Load(), "logger must be flushed when the command fails")
	assert.Contains(t, ws.String(), "nope")
}

func TestSchema_PrintsDocumentShape(t *testing.T) {
	h := &harness{client: &fakeClient{}}
	require.NoError(t, h.run(t, "", "schema"))
	assert.Contains(t, h.out.String(), `"data_sources"`)
	assert.Contains(t, h.out.String(), `"column_configs"`)
	assert.Zero(t, h.clientBuilds)
}

func TestBuildLogger(t *testing.T) {
	l, err := buildLogger("", false)
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = buildLogger("chatty", false)
	assert.Error(t, err)

	l, err = buildLogger("", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1), "verbose enables debug")
}

package updater

import (
	"context"
	"fmt"
	"strings"

	"github.com/petasbytes/genie-annotate/internal/genie"
	"github.com/petasbytes/genie-annotate/internal/metrics"
	"github.com/petasbytes/genie-annotate/internal/space"
	"github.com/petasbytes/genie-annotate/internal/telemetry"
	"go.uber.org/zap"
)

// SpaceAPI is the subset of the Genie client the updater needs.
type SpaceAPI interface {
	GetSpace(ctx context.Context, id string) (*genie.Space, error)
	UpdateSpace(ctx context.Context, id string, sp *genie.Space) error
	FirstSpaceID(ctx context.Context) (string, error)
}

// Request names the column to annotate. SpaceID may be empty when FirstSpace is set.
type Request struct {
	SpaceID     string
	Table       string
	Column      string
	Description string
	// FirstSpace resolves SpaceID from the first entry of the list endpoint.
	FirstSpace bool
}

// Validate reports every blank required field in one ErrMissingInput.
func (r Request) Validate() error {
	var missing []string
	if !r.FirstSpace && strings.TrimSpace(r.SpaceID) == "" {
		missing = append(missing, "space id")
	}
	if strings.TrimSpace(r.Table) == "" {
		missing = append(missing, "table")
	}
	if strings.TrimSpace(r.Column) == "" {
		missing = append(missing, "column")
	}
	if strings.TrimSpace(r.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMissingInput, strings.Join(missing, ", "))
	}
	return nil
}

// Result is what a run did. Matches is empty when the column was not found.
type Result struct {
	SpaceID string
	Matches []space.Match
	Patched bool
}

// Found reports whether at least one column was updated.
func (r *Result) Found() bool { return r != nil && len(r.Matches) > 0 }

type Updater struct {
	API    SpaceAPI
	Logger *zap.Logger
}

func New(api SpaceAPI, logger *zap.Logger) *Updater {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Updater{API: api, Logger: logger}
}

// Fetch retrieves the space and decodes its serialized document.
func (u *Updater) Fetch(ctx context.Context, id string) (*genie.Space, *space.Document, error) {
	u.Logger.Debug("Fetching space", zap.String("space_id", id))
	sp, err := u.API.GetSpace(ctx, id)
	if err != nil {
		return nil, nil, &StepError{Step: StepFetch, Err: err}
	}
	text, ok := sp.SerializedSpace()
	if !ok {
		return nil, nil, &StepError{Step: StepDecode, Err: space.ErrNoSerializedSpace}
	}
	doc, err := space.Decode(text)
	if err != nil {
		return nil, nil, &StepError{Step: StepDecode, Err: err}
	}

	telemetry.EmitRun(ctx, "space_fetched", map[string]any{
		"space_id": id,
		"document": metrics.CountDocument(doc.Tables()),
	})
	return sp, doc, nil
}

// Run validates req, then fetches, mutates and patches the space.
//
// On a persist failure the returned Result still lists the matches that were
// applied in memory; the error carries StepPersist.
func (u *Updater) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, &StepError{Step: StepInput, Err: err}
	}

	id := req.SpaceID
	if req.FirstSpace {
		first, err := u.API.FirstSpaceID(ctx)
		if err != nil {
			return nil, &StepError{Step: StepResolve, Err: err}
		}
		id = first
		u.Logger.Info("Resolved first space", zap.String("space_id", id))
	}

	sp, doc, err := u.Fetch(ctx, id)
	if err != nil {
		u.Logger.Warn("Fetch failed", zap.String("space_id", id), zap.String("code", string(Classify(err))), zap.Error(err))
		return nil, err
	}

	matches, err := doc.AppendColumnDescription(req.Table, req.Column, req.Description)
	if err != nil {
		return nil, &StepError{Step: StepMutate, Err: err}
	}
	res := &Result{SpaceID: id, Matches: matches}

	telemetry.EmitRun(ctx, "description_appended", map[string]any{
		"space_id":    id,
		"matches":     len(matches),
		"description": metrics.CountText(req.Description),
	})
	if len(matches) == 0 {
		u.Logger.Warn("Column not found; patching unchanged document",
			zap.String("table", req.Table), zap.String("column", req.Column))
	} else {
		u.Logger.Info("Appended description",
			zap.String("table", req.Table), zap.String("column", req.Column), zap.Int("matches", len(matches)))
	}

	text, err := doc.Encode()
	if err != nil {
		return res, &StepError{Step: StepEncode, Err: err}
	}
	next, err := sp.WithSerializedSpace(text)
	if err != nil {
		return res, &StepError{Step: StepEncode, Err: err}
	}

	if err := u.API.UpdateSpace(ctx, id, next); err != nil {
		perr := &StepError{Step: StepPersist, Err: err}
		telemetry.EmitRun(ctx, "space_patched", map[string]any{"space_id": id, "ok": false, "code": string(Classify(perr))})
		u.Logger.Error("Patch failed", zap.String("space_id", id), zap.Error(err))
		return res, perr
	}
	res.Patched = true
	telemetry.EmitRun(ctx, "space_patched", map[string]any{"space_id": id, "ok": true})
	return res, nil
}

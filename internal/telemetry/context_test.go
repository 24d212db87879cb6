package telemetry_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/petasbytes/genie-annotate/internal/telemetry"
)

func TestRunID_RoundTrip(t *testing.T) {
	ctx := telemetry.WithRunID(context.Background(), "run-123")
	got, ok := telemetry.RunIDFromContext(ctx)
	if !ok || got != "run-123" {
		t.Fatalf("want run-123,true; got %q,%v", got, ok)
	}
}

func TestRunID_NilParent(t *testing.T) {
	var parent context.Context
	ctx := telemetry.WithRunID(parent, "r1")
	got, ok := telemetry.RunIDFromContext(ctx)
	if !ok || got != "r1" {
		t.Fatalf("want r1,true; got %q,%v", got, ok)
	}
}

func TestRunID_EmptyIDRejectedOnRead(t *testing.T) {
	ctx := telemetry.WithRunID(context.Background(), "")
	got, ok := telemetry.RunIDFromContext(ctx)
	if ok || got != "" {
		t.Fatalf("want empty,false; got %q,%v", got, ok)
	}
}

func TestRunID_Missing(t *testing.T) {
	if _, ok := telemetry.RunIDFromContext(context.Background()); ok {
		t.Fatal("expected no run id on a bare context")
	}
}

func TestNewRunID_IsUUID(t *testing.T) {
	a, b := telemetry.NewRunID(), telemetry.NewRunID()
	if a == b {
		t.Fatalf("run ids should differ: %s", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("run id %q is not a UUID: %v", a, err)
	}
}

package renderer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/objx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func stubHandler(body string) Handler {
	return func(res *Response, _ any, _ objx.Map) (bool, error) {
		res.SetBodyString(body)
		return true, nil
	}
}

func TestNewRegistry_Builtins(t *testing.T) {
	reg := NewRegistry()

	want := []string{JS, JSON, Update, XML}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("builtin names mismatch (-want +got):\n%s", diff)
	}

	snapshot := reg.Snapshot().Names()
	if diff := cmp.Diff([]string{JSON, JS, XML, Update}, snapshot); diff != "" {
		t.Fatalf("snapshot order mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRegistry_WithoutBuiltins(t *testing.T) {
	reg := NewRegistry(WithoutBuiltins())
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %v", reg.List())
	}
}

func TestRegister_ReplacesExistingHandler(t *testing.T) {
	reg := NewRegistry(WithoutBuiltins())
	reg.MustRegister("csv", stubHandler("first"))
	reg.MustRegister("csv", stubHandler("second"))

	if reg.Len() != 1 {
		t.Fatalf("expected registry size 1 after re-registration, got %d", reg.Len())
	}

	handler, err := reg.Get("csv")
	if err != nil {
		t.Fatalf("get csv: %v", err)
	}
	res := NewResponse(nil)
	if _, err := handler(res, nil, nil); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if got := string(res.Body); got != "second" {
		t.Fatalf("expected latest handler to win, got %q", got)
	}
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	reg := NewRegistry(WithoutBuiltins())

	if err := reg.Register("  ", stubHandler("x")); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if err := reg.Register("csv", nil); err == nil {
		t.Fatalf("expected error for nil handler")
	}
	if reg.Len() != 0 {
		t.Fatalf("invalid registrations must not be stored, got %v", reg.List())
	}
}

func TestGet_UnknownRenderer(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("pdf")
	if !errors.Is(err, ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
	var unknown *UnknownRendererError
	if !errors.As(err, &unknown) || unknown.Name != "pdf" {
		t.Fatalf("expected UnknownRendererError for pdf, got %#v", err)
	}
}

func TestAdd_Chains(t *testing.T) {
	reg := Add(Add(NewRegistry(WithoutBuiltins()), "csv", stubHandler("csv")), "ics", stubHandler("ics"))

	if !reg.Has("csv") || !reg.Has("ics") {
		t.Fatalf("expected chained registrations, got %v", reg.List())
	}
}

func TestRegister_LogsReplacement(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	reg := NewRegistry(WithoutBuiltins(), WithLogger(zap.New(core)))

	reg.MustRegister("csv", stubHandler("a"))
	reg.MustRegister("csv", stubHandler("b"))

	entries := logs.FilterMessage("renderer registered").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 registration logs, got %d", len(entries))
	}
	if replaced := entries[1].ContextMap()["replaced"]; replaced != true {
		t.Fatalf("expected second registration to log replaced=true, got %v", replaced)
	}
}

package renderer

import (
	"testing"

	"github.com/stretchr/objx"
)

func TestApplyResponseOptions(t *testing.T) {
	ctrl := NewController("api", NewRegistry(), WithProcessOptions(ApplyResponseOptions)).MustUseRenderers(JSON)

	res := NewResponse(nil)
	options := objx.Map{
		JSON:              map[string]any{"id": 1},
		StatusOption:      201,
		ContentTypeOption: "application/vnd.api+json",
		LocationOption:    "/items/1",
	}
	if err := ctrl.RenderToBody(res, options); err != nil {
		t.Fatalf("render: %v", err)
	}

	if res.Status != 201 {
		t.Fatalf("expected status 201, got %d", res.Status)
	}
	if res.ContentType != "application/vnd.api+json" {
		t.Fatalf("json must keep the explicit content type, got %q", res.ContentType)
	}
	if got := res.Header.Get("Location"); got != "/items/1" {
		t.Fatalf("expected location header, got %q", got)
	}
}

func TestApplyResponseOptions_InvalidStatus(t *testing.T) {
	cases := []struct {
		name   string
		status any
	}{
		{name: "not a number", status: "created"},
		{name: "below range", status: 42},
		{name: "above range", status: 1000},
		{name: "numeric string out of range", status: "7"},
		{name: "unsupported type", status: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctrl := NewController("api", NewRegistry(), WithProcessOptions(ApplyResponseOptions)).MustUseRenderers(JSON)

			res := NewResponse(nil)
			err := ctrl.RenderToBody(res, objx.Map{JSON: 1, StatusOption: tc.status})
			if err == nil {
				t.Fatalf("expected invalid status error for %v", tc.status)
			}
			if res.Status != 0 {
				t.Fatalf("status must stay unset, got %d", res.Status)
			}
		})
	}
}

func TestApplyResponseOptions_SkippedWithoutMatch(t *testing.T) {
	ctrl := NewController("api", NewRegistry(),
		WithProcessOptions(ApplyResponseOptions),
		WithBase(func(*Response, objx.Map) error { return nil }),
	).MustUseRenderers(JSON)

	res := NewResponse(nil)
	if err := ctrl.RenderToBody(res, objx.Map{StatusOption: 404}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Status != 0 {
		t.Fatalf("hook must only run for a matched renderer, got status %d", res.Status)
	}
}

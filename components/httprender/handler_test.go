package httprender

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/objx"

	"github.com/goliatone/go-respond/pkg/renderer"
	"github.com/goliatone/go-respond/pkg/renderer/template/gotemplate"
)

func apiController() *renderer.Controller {
	return renderer.NewController("api", renderer.NewRegistry(),
		renderer.WithProcessOptions(renderer.ApplyResponseOptions),
	).MustUseRenderers(renderer.JSON, renderer.XML, renderer.Update)
}

func TestHandler_RendersJSON(t *testing.T) {
	h := Handler(apiController(), func(r *http.Request) (objx.Map, error) {
		return objx.Map{renderer.JSON: map[string]any{"q": r.URL.Query().Get("q")}}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/items?q=tea", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != renderer.MimeJSON {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	var payload map[string]string
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["q"] != "tea" {
		t.Fatalf("unexpected payload %#v", payload)
	}
}

func TestHandler_StatusAndLocationOptions(t *testing.T) {
	h := Handler(apiController(), func(*http.Request) (objx.Map, error) {
		return objx.Map{
			renderer.XML:            "<item id=\"9\"/>",
			renderer.StatusOption:   http.StatusCreated,
			renderer.LocationOption: "/items/9",
		}, nil
	}, WithMethods(http.MethodPost))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/items/9" {
		t.Fatalf("expected location header, got %q", got)
	}
	if rec.Body.String() != "<item id=\"9\"/>" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestHandler_UpdateUsesViewAndEngine(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	h := Handler(apiController(), func(*http.Request) (objx.Map, error) {
		return objx.Map{renderer.Update: func(page *renderer.JSGenerator) error {
			html, err := page.Template("{{ count }} items", nil)
			if err != nil {
				return err
			}
			page.ReplaceHTML("cart-count", html)
			return nil
		}}, nil
	},
		WithEngine(engine),
		WithViewFunc(func(*http.Request) map[string]any { return map[string]any{"count": 3} }),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != renderer.MimeJS {
		t.Fatalf("expected JS content-type, got %q", ct)
	}
	if got := rec.Body.String(); got != `Element.update("cart-count", "3 items");` {
		t.Fatalf("unexpected script %q", got)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := Handler(apiController(), func(*http.Request) (objx.Map, error) { return nil, nil })

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/items", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestHandler_HeadOmitsBody(t *testing.T) {
	h := Handler(apiController(), func(*http.Request) (objx.Map, error) {
		return objx.Map{renderer.JSON: []int{1, 2, 3}}, nil
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/items", nil))

	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200, got %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Content-Length") != "7" {
		t.Fatalf("expected content length of the json body, got %q", rec.Header().Get("Content-Length"))
	}
}

func TestHandler_Errors(t *testing.T) {
	cases := []struct {
		name   string
		action ActionFunc
		want   int
	}{
		{
			name:   "unmatched options",
			action: func(*http.Request) (objx.Map, error) { return objx.Map{"text": "hi"}, nil },
			want:   http.StatusNotAcceptable,
		},
		{
			name: "status error",
			action: func(*http.Request) (objx.Map, error) {
				return nil, StatusError{Code: http.StatusNotFound, Err: errors.New("missing")}
			},
			want: http.StatusNotFound,
		},
		{
			name: "out of range status",
			action: func(*http.Request) (objx.Map, error) {
				return objx.Map{renderer.JSON: 1, renderer.StatusOption: 42}, nil
			},
			want: http.StatusInternalServerError,
		},
		{
			name:   "plain error",
			action: func(*http.Request) (objx.Map, error) { return nil, errors.New("boom") },
			want:   http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			Handler(apiController(), tc.action).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), http.StatusText(tc.want)) {
				t.Fatalf("expected status text in body, got %q", rec.Body.String())
			}
		})
	}
}

func TestHandler_CustomErrorHandler(t *testing.T) {
	var captured error
	h := Handler(apiController(), func(*http.Request) (objx.Map, error) {
		return objx.Map{"text": "hi"}, nil
	}, WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
		captured = err
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot || !renderer.IsNotRendered(captured) {
		t.Fatalf("expected custom handler with ErrNotRendered, got %d %v", rec.Code, captured)
	}
}

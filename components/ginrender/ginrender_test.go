package ginrender

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/objx"

	"github.com/goliatone/go-respond/pkg/renderer"
	"github.com/goliatone/go-respond/pkg/renderer/template/gotemplate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newController() *renderer.Controller {
	return renderer.NewController("api", renderer.NewRegistry(),
		renderer.WithProcessOptions(renderer.ApplyResponseOptions),
	).MustUseRenderers(renderer.JSON, renderer.Update)
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHandlerFunc_RendersJSON(t *testing.T) {
	router := gin.New()
	router.GET("/items/:id", HandlerFunc(newController(), func(c *gin.Context) (objx.Map, error) {
		return objx.Map{
			renderer.JSON:         map[string]string{"id": c.Param("id")},
			renderer.StatusOption: http.StatusAccepted,
		}, nil
	}))

	rec := serve(router, http.MethodGet, "/items/7")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != renderer.MimeJSON {
		t.Fatalf("unexpected content type %q", ct)
	}
	if rec.Body.String() != `{"id":"7"}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestRender_UsesContextKeysAsView(t *testing.T) {
	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user", "ana")
		c.Next()
	})
	router.GET("/greet", func(c *gin.Context) {
		_ = Render(c, newController(), objx.Map{
			renderer.Update: renderer.UpdateFunc(func(page *renderer.JSGenerator) error {
				msg, err := page.Template("hi {{ user }}", nil)
				if err != nil {
					return err
				}
				page.Alert(msg)
				return nil
			}),
		}, WithEngine(engine))
	})

	rec := serve(router, http.MethodGet, "/greet")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != `alert("hi ana");` {
		t.Fatalf("unexpected script %q", got)
	}
}

func TestRender_Errors(t *testing.T) {
	var captured []error
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Next()
		for _, e := range c.Errors {
			captured = append(captured, e.Err)
		}
	})
	router.GET("/none", HandlerFunc(newController(), func(*gin.Context) (objx.Map, error) {
		return objx.Map{"text": "plain"}, nil
	}))
	router.GET("/fail", HandlerFunc(newController(), func(*gin.Context) (objx.Map, error) {
		return nil, errors.New("boom")
	}))

	if rec := serve(router, http.MethodGet, "/none"); rec.Code != http.StatusNotAcceptable {
		t.Fatalf("expected 406 for unmatched options, got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/fail"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for action error, got %d", rec.Code)
	}
	if len(captured) != 2 || !renderer.IsNotRendered(captured[0]) {
		t.Fatalf("unexpected captured errors %v", captured)
	}
}

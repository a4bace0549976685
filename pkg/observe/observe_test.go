package observe

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/wayfind-dev/wayfind/pkg/route"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func testRouter(t *testing.T, defs ...*route.Definition) *router.Router {
	t.Helper()
	routes := make(map[string]*route.Definition, len(defs))
	for _, def := range defs {
		routes[def.Path] = def
	}
	r, err := router.New(router.Config{Routes: routes})
	if err != nil {
		t.Fatalf("router.New: %v", err)
	}
	return r
}

func simpleDef(t *testing.T, path string) *route.Definition {
	t.Helper()
	return buildDef(t, path, route.PageOptions{Component: "page:" + path})
}

func buildDef(t *testing.T, path string, page route.PageOptions) *route.Definition {
	t.Helper()
	var b *route.Builder
	var err error
	if path == "/" {
		b, err = route.New(nil, "/")
	} else {
		parent := &route.Definition{Path: "/"}
		b, err = route.New(parent, path[1:])
	}
	if err != nil {
		t.Fatalf("route.New: %v", err)
	}
	def, err := b.Layout(route.LayoutOptions{Component: "layout"}).Page(page)
	if err != nil {
		t.Fatalf("building %q: %v", path, err)
	}
	return def
}

// findMetric locates one metric family sample by name and label values.
func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	sample:
		for _, m := range fam.GetMetric() {
			got := make(map[string]string)
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue sample
				}
			}
			return m
		}
	}
	return nil
}

func TestMetricsRecordsNavigation(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := testRouter(t, simpleDef(t, "/"), simpleDef(t, "/about"))
	Metrics(WithRegistry(reg)).Attach(r)

	if _, err := r.Navigate(context.Background(), "/about"); err != nil {
		t.Fatal(err)
	}

	m := findMetric(t, reg, "wayfind_navigations_total",
		map[string]string{"route": "/about", "status": "success"})
	if m == nil {
		t.Fatal("navigations_total sample not found")
	}
	if got := m.GetCounter().GetValue(); got != 1 {
		t.Errorf("navigations_total = %v, want 1", got)
	}

	d := findMetric(t, reg, "wayfind_navigation_duration_seconds",
		map[string]string{"route": "/about"})
	if d == nil {
		t.Fatal("duration sample not found")
	}
	if got := d.GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("duration sample count = %v, want 1", got)
	}
}

func TestMetricsRecordsErrorCode(t *testing.T) {
	reg := prometheus.NewRegistry()

	failing := buildDef(t, "/broken", route.PageOptions{
		Component: "page",
		Load: func(ctx context.Context, args route.LoadArgs) error {
			return fmt.Errorf("backend down")
		},
	})
	r := testRouter(t, simpleDef(t, "/"), failing)
	Metrics(WithRegistry(reg)).Attach(r)

	if _, err := r.Navigate(context.Background(), "/broken"); err != nil {
		t.Fatal(err)
	}

	m := findMetric(t, reg, "wayfind_navigation_errors_total",
		map[string]string{"route": "/broken", "code": "N003"})
	if m == nil {
		t.Fatal("errors_total sample not found")
	}
	if got := m.GetCounter().GetValue(); got != 1 {
		t.Errorf("errors_total = %v, want 1", got)
	}

	s := findMetric(t, reg, "wayfind_navigations_total",
		map[string]string{"route": "/broken", "status": "error"})
	if s == nil || s.GetCounter().GetValue() != 1 {
		t.Error("errored navigation not counted")
	}
}

func TestMetricsCustomNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := testRouter(t, simpleDef(t, "/"), simpleDef(t, "/a"))
	Metrics(WithRegistry(reg), WithNamespace("myapp"), WithSubsystem("nav")).Attach(r)

	if _, err := r.Navigate(context.Background(), "/a"); err != nil {
		t.Fatal(err)
	}

	if findMetric(t, reg, "myapp_nav_navigations_total", nil) == nil {
		t.Error("namespaced metric not found")
	}
}

func TestPairDetach(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := testRouter(t, simpleDef(t, "/"), simpleDef(t, "/a"), simpleDef(t, "/b"))

	detach := Metrics(WithRegistry(reg)).Attach(r)
	if _, err := r.Navigate(context.Background(), "/a"); err != nil {
		t.Fatal(err)
	}
	detach()
	if _, err := r.Navigate(context.Background(), "/b"); err != nil {
		t.Fatal(err)
	}

	if findMetric(t, reg, "wayfind_navigations_total",
		map[string]string{"route": "/b"}) != nil {
		t.Error("detached pair still recorded a navigation")
	}
}

func TestInflightSweep(t *testing.T) {
	var swept []string
	f := newInflight[string](10*time.Millisecond, func(v string) {
		swept = append(swept, v)
	})

	f.put("a", "first")
	time.Sleep(20 * time.Millisecond)
	f.put("b", "second")

	if len(swept) != 1 || swept[0] != "first" {
		t.Errorf("swept = %v, want the stale entry", swept)
	}
	if _, ok := f.take("a"); ok {
		t.Error("stale entry still present")
	}
	if v, ok := f.take("b"); !ok || v != "second" {
		t.Errorf("take(b) = %q, %v", v, ok)
	}
}

func TestTracingHooksRun(t *testing.T) {
	// The global provider defaults to a no-op tracer; the pair must still
	// pass navigations through untouched.
	r := testRouter(t, simpleDef(t, "/"), simpleDef(t, "/a"))
	Tracing(WithIncludeHref(true)).Attach(r)

	to, err := r.Navigate(context.Background(), "/a")
	if err != nil {
		t.Fatal(err)
	}
	if to.Path != "/a" || to.Errored() {
		t.Errorf("navigation altered by tracing: %+v", to)
	}
}

func TestTracingFilter(t *testing.T) {
	r := testRouter(t, simpleDef(t, "/"), simpleDef(t, "/skip"))
	Tracing(WithFilter(func(nav router.Nav) bool {
		return nav.To.Path != "/skip"
	})).Attach(r)

	if _, err := r.Navigate(context.Background(), "/skip"); err != nil {
		t.Fatal(err)
	}
}

package seeder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/raushankrgupta/storefront-seeder/api"
	"github.com/raushankrgupta/storefront-seeder/client"
	"github.com/raushankrgupta/storefront-seeder/config"
	"github.com/raushankrgupta/storefront-seeder/generator"
	"github.com/raushankrgupta/storefront-seeder/models"
	"go.uber.org/zap"
)

// backend is a mock storefront that counts calls and can fail chosen product posts
type backend struct {
	t      *testing.T
	server *api.Server
	ts     *httptest.Server

	mu           sync.Mutex
	calls        map[string]int
	productPosts int
	failPosts    map[int]bool // 1-based product POST numbers answered with 500
	loginStatus  int          // forced login status, 0 = real login
	categoryFail bool
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	s, err := api.NewServer(api.NewStore(api.DefaultCategories), "admin", "admintest", []byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	b := &backend{t: t, server: s, calls: map[string]int{}, failPosts: map[int]bool{}}
	routes := s.Routes("/api")

	b.ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		key := r.Method + " " + r.URL.Path
		b.calls[key]++
		fail := false
		if key == "POST /api/products" {
			b.productPosts++
			fail = b.failPosts[b.productPosts]
		}
		loginStatus, categoryFail := b.loginStatus, b.categoryFail
		b.mu.Unlock()

		switch {
		case key == "POST /api/auth/login" && loginStatus != 0:
			w.WriteHeader(loginStatus)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
		case key == "GET /api/categories" && categoryFail:
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`upstream unavailable`))
		case fail:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"database error"}`))
		default:
			routes.ServeHTTP(w, r)
		}
	}))
	t.Cleanup(b.ts.Close)
	return b
}

func (b *backend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[key]
}

func newTestRunner(b *backend) (*Runner, *[]time.Duration) {
	cfg := config.FromEnv(func(string) string { return "" })
	cfg.APIURL = b.ts.URL + "/api"
	cfg.RandomSeed = 1

	r := NewRunner(cfg, client.New(cfg.APIURL, 5*time.Second), generator.NewSeeded(cfg.RandomSeed))
	r.Logger = zap.NewNop().Sugar()

	var sleeps []time.Duration
	r.Sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return r, &sleeps
}

func TestRunAllCreated(t *testing.T) {
	b := newBackend(t)
	r, sleeps := newTestRunner(b)

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := b.count("POST /api/products"); got != 60 {
		t.Errorf("product posts = %d, want 60", got)
	}
	if report.Created != 60 || report.Failed != 0 || report.Expected != 60 {
		t.Errorf("tally = %d created, %d failed, %d expected", report.Created, report.Failed, report.Expected)
	}
	if len(*sleeps) != 60 {
		t.Errorf("paced %d times, want 60", len(*sleeps))
	}
	for _, d := range *sleeps {
		if d != config.Pace {
			t.Fatalf("paced %v, want %v", d, config.Pace)
		}
	}

	for _, c := range api.DefaultCategories {
		products := b.server.Store.Products(c.Slug)
		if len(products) != 20 {
			t.Errorf("%s: %d products, want 20", c.Slug, len(products))
		}
		for _, p := range products {
			if p.Category != c.Slug || !strings.HasPrefix(p.Name, c.Name+" ") {
				t.Errorf("%s: product %q in category %q", c.Slug, p.Name, p.Category)
			}
		}
	}
}

func TestRunCategoryOrder(t *testing.T) {
	b := newBackend(t)
	r, _ := newTestRunner(b)

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := b.server.Store.Categories()
	if len(report.Categories) != len(want) {
		t.Fatalf("categories = %v", report.Categories)
	}
	for i, c := range want {
		if report.Categories[i] != c.Slug {
			t.Errorf("categories[%d] = %q, want %q", i, report.Categories[i], c.Slug)
		}
	}

	// products are created category by category in fetch order
	all := b.server.Store.Products("")
	for i, p := range all {
		if p.Category != want[i/20].Slug {
			t.Fatalf("product %d in %q, want %q", i, p.Category, want[i/20].Slug)
		}
	}
}

func TestRunLoginFailure(t *testing.T) {
	b := newBackend(t)
	b.loginStatus = http.StatusUnauthorized
	r, sleeps := newTestRunner(b)

	report, err := r.Run(context.Background())
	if !errors.Is(err, ErrLogin) {
		t.Fatalf("err = %v, want ErrLogin", err)
	}
	if report != nil {
		t.Error("no report expected on login failure")
	}
	if !strings.Contains(err.Error(), "Invalid credentials") {
		t.Errorf("error %q should contain the response body", err)
	}
	if got := b.count("GET /api/categories"); got != 0 {
		t.Errorf("category calls = %d, want 0", got)
	}
	if got := b.count("POST /api/products"); got != 0 {
		t.Errorf("product calls = %d, want 0", got)
	}
	if len(*sleeps) != 0 {
		t.Errorf("paced %d times, want 0", len(*sleeps))
	}
}

func TestRunLoginGarbledBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer ts.Close()

	cfg := config.FromEnv(func(string) string { return "" })
	r := NewRunner(cfg, client.New(ts.URL, time.Second), generator.NewSeeded(1))
	r.Logger = zap.NewNop().Sugar()

	_, err := r.Run(context.Background())
	if !errors.Is(err, ErrLogin) {
		t.Fatalf("err = %v, want ErrLogin", err)
	}
	if !strings.Contains(err.Error(), "<html>maintenance</html>") {
		t.Errorf("error %q should contain the response body", err)
	}
}

func TestRunWrongPassword(t *testing.T) {
	b := newBackend(t)
	r, _ := newTestRunner(b)
	r.Password = "nope"

	if _, err := r.Run(context.Background()); !errors.Is(err, ErrLogin) {
		t.Fatalf("err = %v, want ErrLogin", err)
	}
	if got := b.count("POST /api/products"); got != 0 {
		t.Errorf("product calls = %d, want 0", got)
	}
}

func TestRunCategoryFailure(t *testing.T) {
	b := newBackend(t)
	b.categoryFail = true
	r, _ := newTestRunner(b)

	_, err := r.Run(context.Background())
	if !errors.Is(err, ErrCategories) {
		t.Fatalf("err = %v, want ErrCategories", err)
	}
	if !strings.Contains(err.Error(), "upstream unavailable") {
		t.Errorf("error %q should contain the response body", err)
	}
	if got := b.count("POST /api/products"); got != 0 {
		t.Errorf("product calls = %d, want 0", got)
	}
}

func TestRunOneFailurePerCategory(t *testing.T) {
	b := newBackend(t)
	// the 5th product of the first category fails
	b.failPosts[5] = true
	r, sleeps := newTestRunner(b)

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if got := b.count("POST /api/products"); got != 60 {
		t.Errorf("product posts = %d, want 60", got)
	}
	if report.Created != 59 || report.Failed != 1 {
		t.Errorf("tally = %d created, %d failed, want 59/1", report.Created, report.Failed)
	}
	if len(*sleeps) != 60 {
		t.Errorf("paced %d times, want 60 (failures are paced too)", len(*sleeps))
	}

	first := report.Categories[0]
	if len(report.Failures) != 1 {
		t.Fatalf("failures = %+v", report.Failures)
	}
	f := report.Failures[0]
	if f.Category != first || f.Index != 5 || f.StatusCode != http.StatusInternalServerError {
		t.Errorf("failure = %+v", f)
	}
	if !strings.Contains(f.Message, "database error") {
		t.Errorf("failure message = %q", f.Message)
	}
	if got := len(b.server.Store.Products(first)); got != 19 {
		t.Errorf("%s has %d products, want 19", first, got)
	}
	if got := len(b.server.Store.Products(report.Categories[1])); got != 20 {
		t.Errorf("%s has %d products, want 20", report.Categories[1], got)
	}
}

func TestRunTwiceDuplicates(t *testing.T) {
	b := newBackend(t)

	for i := 0; i < 2; i++ {
		r, _ := newTestRunner(b)
		if _, err := r.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(b.server.Store.Products("")); got != 120 {
		t.Errorf("store has %d products after two runs, want 120", got)
	}
}

// fakeAPI drives the runner without HTTP
type fakeAPI struct {
	categories []models.Category
	created    []models.Product
	failWith   error
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (string, error) {
	return "opaque-token", nil
}

func (f *fakeAPI) Categories(ctx context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, token string, p models.Product) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.created = append(f.created, p)
	return nil
}

func fakeRunner(f *fakeAPI) *Runner {
	cfg := config.FromEnv(func(string) string { return "" })
	r := NewRunner(cfg, f, generator.NewSeeded(3))
	r.Logger = zap.NewNop().Sugar()
	r.Pace = 0
	return r
}

func TestRunNoCategories(t *testing.T) {
	r := fakeRunner(&fakeAPI{})

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Expected != 0 || report.Created != 0 || report.Failed != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestRunTransportErrors(t *testing.T) {
	f := &fakeAPI{
		categories: []models.Category{{Name: "Men", Slug: "men"}},
		failWith:   errors.New("connection reset by peer"),
	}
	report, err := fakeRunner(f).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Failed != 20 || report.Created != 0 {
		t.Errorf("tally = %d created, %d failed", report.Created, report.Failed)
	}
	if report.Failures[0].StatusCode != 0 || report.Failures[0].Message != "connection reset by peer" {
		t.Errorf("failure = %+v", report.Failures[0])
	}
}

type stubDescriber struct {
	fail bool
}

func (d stubDescriber) Describe(ctx context.Context, c models.Category, p models.Product) (string, error) {
	if d.fail {
		return "", errors.New("quota exceeded")
	}
	return "وصف " + p.Brand, nil
}

func TestRunDescriber(t *testing.T) {
	men := models.Category{Name: "Men", Slug: "men"}

	f := &fakeAPI{categories: []models.Category{men}}
	r := fakeRunner(f)
	r.Describer = stubDescriber{}
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := f.created[0].Description; got != "وصف "+f.created[0].Brand {
		t.Errorf("description = %q", got)
	}

	f = &fakeAPI{categories: []models.Category{men}}
	r = fakeRunner(f)
	r.Describer = stubDescriber{fail: true}
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Created != 20 {
		t.Errorf("created = %d, describer errors must not fail products", report.Created)
	}
	if f.created[0].Description != generator.Description(men) {
		t.Errorf("description = %q, want template", f.created[0].Description)
	}
}

type recordingSink struct {
	name    string
	reports []*models.RunReport
	err     error
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Record(ctx context.Context, r *models.RunReport) error {
	s.reports = append(s.reports, r)
	return s.err
}

func TestRunSinks(t *testing.T) {
	failing := &recordingSink{name: "broken", err: errors.New("down")}
	ok := &recordingSink{name: "ok"}

	r := fakeRunner(&fakeAPI{categories: []models.Category{{Name: "Men", Slug: "men"}}})
	r.Sinks = []Sink{failing, ok}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.Now = func() time.Time {
		tick++
		return start.Add(time.Duration(tick) * time.Second)
	}

	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(failing.reports) != 1 || len(ok.reports) != 1 {
		t.Fatalf("sinks called %d/%d times, want 1/1", len(failing.reports), len(ok.reports))
	}
	if ok.reports[0] != report {
		t.Error("sink got a different report")
	}
	if !report.FinishedAt.After(report.StartedAt) {
		t.Errorf("started %v finished %v", report.StartedAt, report.FinishedAt)
	}
	if report.ID.IsZero() {
		t.Error("report has no id")
	}
}

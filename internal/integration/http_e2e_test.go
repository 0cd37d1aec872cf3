//go:build integration || !unit

package integration

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	httpserver "millcreek_parks/internal/adapters/http_server"
	"millcreek_parks/internal/adapters/mymemory"
	redisad "millcreek_parks/internal/adapters/redis"
	"millcreek_parks/internal/app"
	"millcreek_parks/internal/domain"
	"millcreek_parks/internal/langid"
	"millcreek_parks/internal/sentiment"
	"millcreek_parks/internal/shared"
	mysqlrepo "millcreek_parks/internal/storage/mysql"
)

// ---------- helpers ----------
func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------
func TestHTTP_EndToEnd_SubmitAndAggregate(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=parks",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "parks")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Apply the real migrations
	applyMigrations(t, db)

	// Translation endpoint stub so the pipeline runs without outbound traffic.
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("langpair"); got != "es|en" {
			t.Errorf("unexpected langpair %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responseData":{"translatedText":"Beautiful park with wonderful trails"},"responseStatus":200}`))
	}))
	defer stub.Close()

	mr := miniredis.RunT(t)

	repo := mysqlrepo.New(db)
	cache := redisad.New(mr.Addr(), "", 0)
	translator := mymemory.New(stub.URL, "test-agent", 10)
	hub := app.NewHub()
	ing := app.NewIngestionService(langid.New(), translator, repo, cache, hub)
	q := app.NewQueryService(repo, cache, 10*time.Second, sentiment.FiveBucket, shared.Parks)

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Q: q, Ing: ing, Hub: hub})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// Submit a Spanish review through the full pipeline.
	payload := []byte(`{"user":"Ana","rating":5,"comment":"Un parque precioso con senderos maravillosos"}`)
	res, err := http.Post(ts.URL+"/v1/parks/mcp/reviews", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	var saved domain.Review
	if err := json.NewDecoder(res.Body).Decode(&saved); err != nil {
		t.Fatalf("decode review: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status %d", res.StatusCode)
	}
	if saved.ID == 0 {
		t.Fatalf("expected assigned id: %+v", saved)
	}
	if saved.Language == nil || *saved.Language != "es" {
		t.Fatalf("expected detected language es: %+v", saved)
	}
	if saved.TranslatedComment == nil || *saved.TranslatedComment != "Beautiful park with wonderful trails" {
		t.Fatalf("expected stub translation: %+v", saved)
	}
	if saved.NeedsManualReview {
		t.Fatalf("review should not be flagged: %+v", saved)
	}

	// The park surface must reflect the new review.
	res, err = http.Get(ts.URL + "/v1/parks/mcp")
	if err != nil {
		t.Fatalf("GET park: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("park status %d", res.StatusCode)
	}
	if et := res.Header.Get("ETag"); et == "" {
		t.Fatalf("expected ETag header")
	}
	var view domain.ParkView
	if err := json.NewDecoder(res.Body).Decode(&view); err != nil {
		t.Fatalf("decode park view: %v", err)
	}
	if view.ID != "mcp" || view.ReviewCount != 1 {
		t.Fatalf("unexpected park view: %+v", view)
	}
	if view.Category == "" || view.Color == "" {
		t.Fatalf("aggregates not computed: %+v", view)
	}

	// And the review listing round-trips through the repo.
	res, err = http.Get(ts.URL + "/v1/parks/mcp/reviews")
	if err != nil {
		t.Fatalf("GET reviews: %v", err)
	}
	defer res.Body.Close()
	var page domain.ReviewsPage
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		t.Fatalf("decode reviews: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].OriginalComment != "Un parque precioso con senderos maravillosos" {
		t.Fatalf("unexpected listing: %+v", page)
	}
}

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nizram/ping-monitor/internal/config"
	"github.com/nizram/ping-monitor/internal/domain"
	"github.com/nizram/ping-monitor/internal/monitor"
	"github.com/nizram/ping-monitor/internal/probe"
)

// ---- test helpers ----

type alwaysUp struct{}

func (alwaysUp) Check(_ context.Context, _ domain.Target) probe.Result {
	return probe.Result{Success: true, Elapsed: time.Millisecond}
}

func newTestEngine(t *testing.T) *monitor.Engine {
	t.Helper()
	eng := monitor.New(zap.NewNop(), monitor.Options{
		Interval: time.Hour,
		NewChecker: func(domain.Protocol, time.Duration) (probe.Checker, error) {
			return alwaysUp{}, nil
		},
	})
	t.Cleanup(func() { _ = eng.Close(context.Background()) })
	return eng
}

func setup(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "config.yml"))

	settings := config.Settings{
		APIKeys:   []string{"pub_test"},
		AdminKeys: []string{"adm_test"},
	}
	srv := NewServer(zap.NewNop(), newTestEngine(t), cfg, settings)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func request(t *testing.T, method, url, key string, body []byte) *http.Response {
	t.Helper()
	var rd *bytes.Reader
	if body == nil {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

// ---- tests ----

func TestTargets_AddListGetDelete(t *testing.T) {
	cfg := &config.Config{CheckInterval: "30s", ProbeTimeout: "5s"}
	ts := setup(t, cfg)

	// add
	body := []byte(`{"name":"router","host":"192.168.1.1","port":443,"protocol":"tcp","enabled":true}`)
	resp := request(t, http.MethodPost, ts.URL+"/api/targets", "adm_test", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add: want 201, got %d", resp.StatusCode)
	}
	var created domain.Status
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	resp.Body.Close()
	if created.ID == "" || created.Target.Name != "router" || created.Target.Port != 443 {
		t.Fatalf("created status: %+v", created)
	}

	// change is persisted to the config file
	saved, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if len(saved.Targets) != 1 || saved.Targets[0].Name != "router" {
		t.Fatalf("saved targets: %+v", saved.Targets)
	}

	// list
	resp = request(t, http.MethodGet, ts.URL+"/api/targets", "pub_test", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: want 200, got %d", resp.StatusCode)
	}
	var list []domain.Status
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	resp.Body.Close()
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list: %+v", list)
	}

	// get one
	resp = request(t, http.MethodGet, ts.URL+"/api/targets/"+string(created.ID), "pub_test", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: want 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// delete
	resp = request(t, http.MethodDelete, ts.URL+"/api/targets/"+string(created.ID), "adm_test", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: want 204, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// gone from engine and file
	resp = request(t, http.MethodGet, ts.URL+"/api/targets/"+string(created.ID), "pub_test", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: want 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
	saved, err = config.LoadConfig()
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if len(saved.Targets) != 0 {
		t.Fatalf("targets still in file: %+v", saved.Targets)
	}

	// deleting again is a 404, not an error
	resp = request(t, http.MethodDelete, ts.URL+"/api/targets/"+string(created.ID), "adm_test", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: want 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAddTarget_Validation(t *testing.T) {
	cfg := &config.Config{}
	ts := setup(t, cfg)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"garbage", `{`, http.StatusBadRequest},
		{"missing name", `{"host":"h","protocol":"tcp"}`, http.StatusBadRequest},
		{"missing host", `{"name":"x","protocol":"tcp"}`, http.StatusBadRequest},
		{"bad protocol", `{"name":"x","host":"h","protocol":"icmp"}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		resp := request(t, http.MethodPost, ts.URL+"/api/targets", "adm_test", []byte(c.body))
		if resp.StatusCode != c.want {
			t.Fatalf("%s: want %d, got %d", c.name, c.want, resp.StatusCode)
		}
		resp.Body.Close()
	}

	// duplicate name conflicts
	ok := []byte(`{"name":"dup","host":"h","protocol":"ping","enabled":true}`)
	resp := request(t, http.MethodPost, ts.URL+"/api/targets", "adm_test", ok)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first add: %d", resp.StatusCode)
	}
	resp.Body.Close()
	resp = request(t, http.MethodPost, ts.URL+"/api/targets", "adm_test", ok)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate add: want 409, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAddTarget_ProtocolCaseInsensitive(t *testing.T) {
	ts := setup(t, nil)

	body := []byte(`{"name":"x","host":"h","protocol":"TCP"}`)
	resp := request(t, http.MethodPost, ts.URL+"/api/targets", "adm_test", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var created domain.Status
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if created.Target.Protocol != domain.ProtocolTCP {
		t.Fatalf("protocol not normalized: %q", created.Target.Protocol)
	}
}

func TestListTargets_EmptyIsArray(t *testing.T) {
	ts := setup(t, nil)

	resp := request(t, http.MethodGet, ts.URL+"/api/targets", "pub_test", nil)
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := string(bytes.TrimSpace(buf.Bytes())); got != "[]" {
		t.Fatalf("empty list encodes as %q, want []", got)
	}
}

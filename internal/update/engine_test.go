package update

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bachdx2812/ai-skills-aggregator/internal/apperr"
	"github.com/bachdx2812/ai-skills-aggregator/internal/backup"
	"github.com/bachdx2812/ai-skills-aggregator/internal/ledger"
	"github.com/bachdx2812/ai-skills-aggregator/internal/registry"
	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
)

type testEnv struct {
	engine *Engine
	ledger *ledger.Ledger
	skips  *ledger.SkipList
	vault  *backup.Vault
	home   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	dataDir := t.TempDir()

	led := ledger.New(filepath.Join(dataDir, "installed-skills.json"))
	skips := ledger.NewSkipList(filepath.Join(dataDir, "skipped-versions.json"))
	vault := backup.New(filepath.Join(dataDir, "backups"))
	reg := registry.NewService(registry.NewClient(""), filepath.Join(dataDir, "registries"), led, home)

	return &testEnv{
		engine: NewEngine(reg, led, skips, vault),
		ledger: led,
		skips:  skips,
		vault:  vault,
		home:   home,
	}
}

func manifestWith(version string) string {
	return fmt.Sprintf(`{
  "version": "1",
  "name": "test-registry",
  "skills": [
    {
      "id": "code-review",
      "name": "Code Review",
      "version": %q,
      "agents": ["claude"],
      "files": {"claude": "skills/code-review/claude.md"}
    }
  ]
}`, version)
}

func registryServer(t *testing.T, manifest string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/registry.json" {
			w.Write([]byte(manifest))
			return
		}
		w.Write([]byte("# skill content"))
	}))
	t.Cleanup(server.Close)
	return server
}

func installedRow(registryURL, version, path string) types.InstalledSkill {
	return types.InstalledSkill{
		SkillID:       "code-review",
		RegistryURL:   registryURL,
		Version:       version,
		InstalledPath: path,
		Agent:         "claude",
		InstalledAt:   time.Now().Unix(),
	}
}

func TestCheckAllUpdates(t *testing.T) {
	env := newTestEnv(t)
	server := registryServer(t, manifestWith("1.1.0"))
	registryURL := server.URL + "/registry.json"

	if err := env.ledger.Record(installedRow(registryURL, "1.0.0", "/tmp/x")); err != nil {
		t.Fatal(err)
	}

	result := env.engine.CheckAllUpdates(context.Background())
	if result.Err != "" {
		t.Fatalf("CheckAllUpdates() Err = %q", result.Err)
	}
	if result.LastChecked == 0 {
		t.Error("LastChecked should be stamped")
	}
	if len(result.AvailableUpdates) != 1 {
		t.Fatalf("got %d updates, want 1", len(result.AvailableUpdates))
	}

	u := result.AvailableUpdates[0]
	if u.SkillID != "code-review" || u.CurrentVersion != "1.0.0" || u.NewVersion != "1.1.0" {
		t.Errorf("update = %+v", u)
	}
	if u.IsMajor {
		t.Error("1.0.0 -> 1.1.0 is not a major upgrade")
	}
}

func TestCheckAllUpdatesUpToDate(t *testing.T) {
	env := newTestEnv(t)
	server := registryServer(t, manifestWith("1.0.0"))
	registryURL := server.URL + "/registry.json"

	if err := env.ledger.Record(installedRow(registryURL, "1.0.0", "/tmp/x")); err != nil {
		t.Fatal(err)
	}

	result := env.engine.CheckAllUpdates(context.Background())
	if len(result.AvailableUpdates) != 0 {
		t.Errorf("got %d updates, want 0", len(result.AvailableUpdates))
	}
}

func TestCheckAllUpdatesHonorsSkipList(t *testing.T) {
	env := newTestEnv(t)
	server := registryServer(t, manifestWith("1.1.0"))
	registryURL := server.URL + "/registry.json"

	if err := env.ledger.Record(installedRow(registryURL, "1.0.0", "/tmp/x")); err != nil {
		t.Fatal(err)
	}
	if err := env.engine.SkipVersion("code-review", "1.1.0"); err != nil {
		t.Fatal(err)
	}

	result := env.engine.CheckAllUpdates(context.Background())
	if len(result.AvailableUpdates) != 0 {
		t.Errorf("got %d updates, want 0 (1.1.0 skipped)", len(result.AvailableUpdates))
	}
}

func TestCheckAllUpdatesSkipDoesNotSuppressLaterVersions(t *testing.T) {
	env := newTestEnv(t)
	server := registryServer(t, manifestWith("1.2.0"))
	registryURL := server.URL + "/registry.json"

	if err := env.ledger.Record(installedRow(registryURL, "1.0.0", "/tmp/x")); err != nil {
		t.Fatal(err)
	}
	if err := env.engine.SkipVersion("code-review", "1.1.0"); err != nil {
		t.Fatal(err)
	}

	result := env.engine.CheckAllUpdates(context.Background())
	if len(result.AvailableUpdates) != 1 {
		t.Fatalf("got %d updates, want 1 (skip of 1.1.0 must not hide 1.2.0)", len(result.AvailableUpdates))
	}
	if result.AvailableUpdates[0].NewVersion != "1.2.0" {
		t.Errorf("NewVersion = %q", result.AvailableUpdates[0].NewVersion)
	}
}

func TestCheckAllUpdatesToleratesRegistryFailure(t *testing.T) {
	env := newTestEnv(t)

	good := registryServer(t, manifestWith("1.1.0"))
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(bad.Close)

	goodURL := good.URL + "/registry.json"
	if err := env.ledger.Record(installedRow(goodURL, "1.0.0", "/tmp/x")); err != nil {
		t.Fatal(err)
	}
	badRow := installedRow(bad.URL+"/registry.json", "1.0.0", "/tmp/y")
	badRow.SkillID = "other-skill"
	if err := env.ledger.Record(badRow); err != nil {
		t.Fatal(err)
	}

	result := env.engine.CheckAllUpdates(context.Background())
	if result.Err != "" {
		t.Fatalf("registry failure should not set Err: %q", result.Err)
	}
	if len(result.AvailableUpdates) != 1 {
		t.Fatalf("got %d updates, want 1 from the healthy registry", len(result.AvailableUpdates))
	}
	if result.AvailableUpdates[0].RegistryURL != goodURL {
		t.Errorf("RegistryURL = %q", result.AvailableUpdates[0].RegistryURL)
	}
}

func TestCheckAllUpdatesMajorFlag(t *testing.T) {
	env := newTestEnv(t)
	server := registryServer(t, manifestWith("2.0.0"))
	registryURL := server.URL + "/registry.json"

	if err := env.ledger.Record(installedRow(registryURL, "1.9.0", "/tmp/x")); err != nil {
		t.Fatal(err)
	}

	result := env.engine.CheckAllUpdates(context.Background())
	if len(result.AvailableUpdates) != 1 {
		t.Fatalf("got %d updates, want 1", len(result.AvailableUpdates))
	}
	if !result.AvailableUpdates[0].IsMajor {
		t.Error("1.9.0 -> 2.0.0 should be flagged major")
	}
}

func TestApplyUpdate(t *testing.T) {
	env := newTestEnv(t)
	server := registryServer(t, manifestWith("1.1.0"))
	registryURL := server.URL + "/registry.json"

	if err := env.ledger.Record(installedRow(registryURL, "1.0.0", "/tmp/x")); err != nil {
		t.Fatal(err)
	}

	update := types.SkillUpdate{
		SkillID:     "code-review",
		NewVersion:  "1.1.0",
		Agent:       "claude",
		RegistryURL: registryURL,
	}
	if err := env.engine.ApplyUpdate(context.Background(), update); err != nil {
		t.Fatalf("ApplyUpdate() error = %v", err)
	}

	row, found, err := env.ledger.Find("code-review", "claude")
	if err != nil || !found {
		t.Fatalf("ledger row missing: %v %v", found, err)
	}
	if row.Version != "1.1.0" {
		t.Errorf("Version = %q, want 1.1.0", row.Version)
	}
	if _, err := os.Stat(row.InstalledPath); err != nil {
		t.Errorf("installed file missing: %v", err)
	}

	rows, err := env.ledger.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d ledger rows, want 1 (superseded, not appended)", len(rows))
	}
}

func TestApplyUpdateSkillGoneFromRegistry(t *testing.T) {
	env := newTestEnv(t)
	server := registryServer(t, `{"version":"1","name":"empty","skills":[]}`)

	update := types.SkillUpdate{
		SkillID:     "code-review",
		Agent:       "claude",
		RegistryURL: server.URL + "/registry.json",
	}
	err := env.engine.ApplyUpdate(context.Background(), update)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestApplyAllUpdatesIndependentFailures(t *testing.T) {
	env := newTestEnv(t)
	server := registryServer(t, manifestWith("1.1.0"))
	registryURL := server.URL + "/registry.json"

	updates := []types.SkillUpdate{
		{SkillID: "missing-skill", Agent: "claude", RegistryURL: registryURL},
		{SkillID: "code-review", Agent: "claude", RegistryURL: registryURL},
	}

	results := env.engine.ApplyAllUpdates(context.Background(), updates)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Err == nil {
		t.Error("missing skill should fail")
	}
	if results[1].Err != nil {
		t.Errorf("second update should succeed despite the first failing: %v", results[1].Err)
	}
}

func TestRollbackSkill(t *testing.T) {
	env := newTestEnv(t)

	installedPath := filepath.Join(env.home, ".claude", "skills", "code-review", "skill.md")
	if err := os.MkdirAll(filepath.Dir(installedPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(installedPath, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := env.ledger.Record(installedRow("https://example.com/registry.json", "1.1.0", installedPath)); err != nil {
		t.Fatal(err)
	}

	backupPath, err := env.vault.BackupFile(installedPath)
	if err != nil {
		t.Fatal(err)
	}
	// An older snapshot with different content must lose to the newer one.
	old := time.Now().Add(-time.Hour)
	older := filepath.Join(filepath.Dir(backupPath), "1_skill.md")
	if err := os.WriteFile(older, []byte("v0"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(older, old, old); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(installedPath, []byte("v2-broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := env.engine.RollbackSkill("code-review", "claude"); err != nil {
		t.Fatalf("RollbackSkill() error = %v", err)
	}

	data, err := os.ReadFile(installedPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v1" {
		t.Errorf("restored content = %q, want the most recent snapshot", data)
	}
}

func TestRollbackSkillErrors(t *testing.T) {
	env := newTestEnv(t)

	err := env.engine.RollbackSkill("code-review", "claude")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("not installed: error = %v, want not found", err)
	}

	installedPath := filepath.Join(env.home, "skill.md")
	if err := env.ledger.Record(installedRow("https://example.com/registry.json", "1.0.0", installedPath)); err != nil {
		t.Fatal(err)
	}
	err = env.engine.RollbackSkill("code-review", "claude")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("no snapshot: error = %v, want not found", err)
	}
}

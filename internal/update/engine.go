// Package update computes and applies skill updates against remote
// registries. Checking groups installed skills by source registry so
// each manifest is fetched once; a fetch failure for one registry
// silently drops that group and never aborts the overall check.
package update

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bachdx2812/ai-skills-aggregator/internal/apperr"
	"github.com/bachdx2812/ai-skills-aggregator/internal/backup"
	"github.com/bachdx2812/ai-skills-aggregator/internal/ledger"
	"github.com/bachdx2812/ai-skills-aggregator/internal/registry"
	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
	"github.com/bachdx2812/ai-skills-aggregator/internal/version"
)

// Logger is the structured logging interface used by the engine.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
}

// NoOpLogger discards all log output.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, fields ...interface{})            {}
func (NoOpLogger) Info(msg string, fields ...interface{})             {}
func (NoOpLogger) Warn(msg string, fields ...interface{})             {}
func (NoOpLogger) Error(msg string, err error, fields ...interface{}) {}

type Engine struct {
	registry *registry.Service
	ledger   *ledger.Ledger
	skips    *ledger.SkipList
	vault    *backup.Vault
	logger   Logger
}

func NewEngine(reg *registry.Service, led *ledger.Ledger, skips *ledger.SkipList, vault *backup.Vault) *Engine {
	return &Engine{
		registry: reg,
		ledger:   led,
		skips:    skips,
		vault:    vault,
		logger:   NoOpLogger{},
	}
}

func (e *Engine) SetLogger(logger Logger) {
	e.logger = logger
}

// CheckResult is the outcome of a full update check. Err is set only
// when the ledger itself could not be loaded; individual registry
// failures just contribute no updates.
type CheckResult struct {
	AvailableUpdates []types.SkillUpdate `json:"available_updates"`
	LastChecked      int64               `json:"last_checked"`
	Err              string              `json:"error,omitempty"`
}

// ApplyResult is the per-item outcome of a batch apply.
type ApplyResult struct {
	Update types.SkillUpdate
	Err    error
}

// CheckAllUpdates loads the ledger, groups rows by source registry,
// fetches each registry once, and proposes an update for every
// installed skill whose remote version is numerically newer and not
// skipped.
func (e *Engine) CheckAllUpdates(ctx context.Context) CheckResult {
	result := CheckResult{
		AvailableUpdates: []types.SkillUpdate{},
		LastChecked:      time.Now().Unix(),
	}

	installed, err := e.ledger.Load()
	if err != nil {
		result.Err = err.Error()
		return result
	}

	skipped := e.skips.Load()

	byRegistry := make(map[string][]types.InstalledSkill)
	for _, row := range installed {
		byRegistry[row.RegistryURL] = append(byRegistry[row.RegistryURL], row)
	}

	for registryURL, rows := range byRegistry {
		manifest, err := e.registry.FetchRegistry(ctx, types.RegistryConfig{URL: registryURL, Enabled: true})
		if err != nil {
			e.logger.Warn("failed to fetch registry", "url", registryURL, "error", err)
			continue
		}

		for _, row := range rows {
			remote, ok := manifest.FindSkill(row.SkillID)
			if !ok {
				continue
			}
			if ledger.IsSkipped(skipped, row.SkillID, remote.Version) {
				continue
			}
			if !version.IsNewer(row.Version, remote.Version) {
				continue
			}
			result.AvailableUpdates = append(result.AvailableUpdates, types.SkillUpdate{
				SkillID:        row.SkillID,
				SkillName:      remote.Name,
				CurrentVersion: row.Version,
				NewVersion:     remote.Version,
				Agent:          row.Agent,
				RegistryURL:    registryURL,
				IsMajor:        version.IsMajorUpgrade(row.Version, remote.Version),
			})
		}
	}

	return result
}

// ApplyUpdate re-fetches the update's registry, locates the remote
// skill, and re-runs the install path, overwriting the installed
// artifact in place and superseding the ledger row.
func (e *Engine) ApplyUpdate(ctx context.Context, update types.SkillUpdate) error {
	manifest, err := e.registry.FetchRegistry(ctx, types.RegistryConfig{URL: update.RegistryURL, Enabled: true})
	if err != nil {
		return err
	}

	remote, ok := manifest.FindSkill(update.SkillID)
	if !ok {
		return apperr.NotFound("skill %s not found in registry", update.SkillID)
	}

	_, err = e.registry.InstallSkill(ctx, remote, update.RegistryURL, update.Agent)
	return err
}

// ApplyAllUpdates applies each update independently; one failure never
// aborts the remaining items.
func (e *Engine) ApplyAllUpdates(ctx context.Context, updates []types.SkillUpdate) []ApplyResult {
	results := make([]ApplyResult, 0, len(updates))
	for _, u := range updates {
		err := e.ApplyUpdate(ctx, u)
		if err != nil {
			e.logger.Error("failed to apply update", err, "skill", u.SkillID)
		}
		results = append(results, ApplyResult{Update: u, Err: err})
	}
	return results
}

// RollbackSkill restores the most recent vault snapshot of the
// installed artifact over the installed path. It fails NotFound when
// the skill is not installed or no snapshot exists.
func (e *Engine) RollbackSkill(skillID, agent string) error {
	installed, found, err := e.ledger.Find(skillID, agent)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound("skill %s not installed for %s", skillID, agent)
	}

	filename := filepath.Base(installed.InstalledPath)
	backups, err := e.vault.ListBackups(filename)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return apperr.NotFound("no backup available for %s", filename)
	}

	return e.vault.Restore(backups[0].Path, installed.InstalledPath)
}

// SkipVersion suppresses one exact version of a skill from future
// update checks. Idempotent.
func (e *Engine) SkipVersion(skillID, skillVersion string) error {
	return e.skips.Add(skillID, skillVersion)
}

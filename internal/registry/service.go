package registry

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/bachdx2812/ai-skills-aggregator/internal/apperr"
	"github.com/bachdx2812/ai-skills-aggregator/internal/ledger"
	"github.com/bachdx2812/ai-skills-aggregator/internal/types"
	"github.com/bachdx2812/ai-skills-aggregator/internal/version"
)

// cacheTTL is the freshness window for cached manifests.
const cacheTTL = 3600

type Service struct {
	client   *Client
	cacheDir string
	ledger   *ledger.Ledger
	home     string
}

// DefaultCacheDir is the manifest cache location under the platform
// cache directory.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "ai-skills-aggregator", "registries")
}

func NewService(client *Client, cacheDir string, led *ledger.Ledger, home string) *Service {
	return &Service{client: client, cacheDir: cacheDir, ledger: led, home: home}
}

// FetchRegistry returns the manifest for a registry source. A cached
// copy within the freshness window is returned without a network
// fetch; otherwise the source URL is normalized, fetched, parsed as
// JSON with a YAML fallback, stamped, and best-effort cached.
func (s *Service) FetchRegistry(ctx context.Context, cfg types.RegistryConfig) (types.SkillRegistry, error) {
	cacheFile := filepath.Join(s.cacheDir, CacheFileName(cfg.URL))
	if cached, err := readCache(cacheFile); err == nil {
		if time.Now().Unix()-cached.LastUpdated < cacheTTL {
			return cached, nil
		}
	}

	manifestURL := ManifestURL(cfg.URL)

	var content string
	var err error
	if cfg.AuthToken != "" {
		content, err = s.client.GetWithAuth(ctx, manifestURL, cfg.AuthToken)
	} else {
		content, err = s.client.FetchText(ctx, manifestURL)
	}
	if err != nil {
		return types.SkillRegistry{}, err
	}

	registry, err := parseManifest(content)
	if err != nil {
		return types.SkillRegistry{}, err
	}

	registry.URL = cfg.URL
	registry.LastUpdated = time.Now().Unix()

	// Cache write failures are non-fatal.
	_ = writeCache(cacheFile, registry)

	return registry, nil
}

func parseManifest(content string) (types.SkillRegistry, error) {
	var registry types.SkillRegistry
	if err := json.Unmarshal([]byte(content), &registry); err == nil {
		return registry, nil
	}
	if err := yaml.Unmarshal([]byte(content), &registry); err != nil {
		return types.SkillRegistry{}, apperr.Parse("invalid registry format", err)
	}
	return registry, nil
}

// InstallSkill downloads the agent-specific file of a remote skill to
// its deterministic install path and records the install in the
// ledger, superseding any prior row for the same (skill id, agent).
func (s *Service) InstallSkill(ctx context.Context, skill types.RemoteSkill, registryURL, agent string) (types.InstalledSkill, error) {
	ref, ok := skill.Files.ForAgent(agent)
	if !ok {
		return types.InstalledSkill{}, apperr.InvalidPath("skill %s doesn't support %s", skill.ID, agent)
	}

	fileURL := RawContentURL(ResolveFileURL(registryURL, ref))
	dest := s.InstallPath(agent, skill.ID)

	if err := s.client.DownloadFile(ctx, fileURL, dest); err != nil {
		return types.InstalledSkill{}, err
	}

	installed := types.InstalledSkill{
		SkillID:       skill.ID,
		RegistryURL:   registryURL,
		Version:       skill.Version,
		InstalledPath: dest,
		Agent:         agent,
		InstalledAt:   time.Now().Unix(),
	}
	if err := s.ledger.Record(installed); err != nil {
		return types.InstalledSkill{}, err
	}
	return installed, nil
}

// InstallPath is the deterministic destination for an installed skill:
// <home>/<agent-dot-dir>/skills/<skill-id>/skill.<agent-default-ext>.
func (s *Service) InstallPath(agent, skillID string) string {
	a := types.ParseAgent(agent)
	return filepath.Join(a.SkillsDir(s.home), skillID, "skill."+a.DefaultExtension())
}

// UninstallSkill removes the installed artifact and its ledger row.
func (s *Service) UninstallSkill(skillID, agent string) error {
	installed, found, err := s.ledger.Find(skillID, agent)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound("skill %s not installed for %s", skillID, agent)
	}

	if info, err := os.Stat(installed.InstalledPath); err == nil {
		if info.IsDir() {
			if err := os.RemoveAll(installed.InstalledPath); err != nil {
				return apperr.IO("failed to remove installed skill", err)
			}
		} else if err := os.Remove(installed.InstalledPath); err != nil {
			return apperr.IO("failed to remove installed skill", err)
		}
	}

	return s.ledger.Remove(skillID, agent)
}

// CheckUpdates cross-references the ledger against one manifest and
// emits an update for every installed skill whose remote version is
// numerically newer.
func (s *Service) CheckUpdates(registry types.SkillRegistry) ([]types.SkillUpdate, error) {
	installed, err := s.ledger.Load()
	if err != nil {
		return nil, err
	}

	var updates []types.SkillUpdate
	for _, row := range installed {
		remote, ok := registry.FindSkill(row.SkillID)
		if !ok {
			continue
		}
		if !version.IsNewer(row.Version, remote.Version) {
			continue
		}
		updates = append(updates, types.SkillUpdate{
			SkillID:        row.SkillID,
			SkillName:      remote.Name,
			CurrentVersion: row.Version,
			NewVersion:     remote.Version,
			Agent:          row.Agent,
			RegistryURL:    row.RegistryURL,
			IsMajor:        version.IsMajorUpgrade(row.Version, remote.Version),
		})
	}
	return updates, nil
}

// Ledger exposes the installed-skills ledger backing this service.
func (s *Service) Ledger() *ledger.Ledger {
	return s.ledger
}

func readCache(path string) (types.SkillRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SkillRegistry{}, apperr.IO("failed to read cache", err)
	}
	var registry types.SkillRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return types.SkillRegistry{}, apperr.Parse("failed to parse cache", err)
	}
	return registry, nil
}

// writeCache persists a manifest atomically so an interrupted fetch
// never leaves a partially written cache file.
func writeCache(path string, registry types.SkillRegistry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperr.IO("failed to create cache directory", err)
	}

	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return apperr.Parse("failed to marshal cache", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return apperr.IO("failed to write cache", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return apperr.IO("failed to replace cache", err)
	}
	return nil
}

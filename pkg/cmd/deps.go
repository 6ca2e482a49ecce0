package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/bachdx2812/ai-skills-aggregator/internal/backup"
	"github.com/bachdx2812/ai-skills-aggregator/internal/ledger"
	"github.com/bachdx2812/ai-skills-aggregator/internal/registry"
	"github.com/bachdx2812/ai-skills-aggregator/internal/store"
	"github.com/bachdx2812/ai-skills-aggregator/internal/update"
)

func userHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

func newClient() *registry.Client {
	client := registry.NewClient(viper.GetString("github_token"))
	client.SetProxy(viper.GetString("proxy"))
	return client
}

func newVault() *backup.Vault {
	return backup.New(backup.DefaultDir())
}

func newStore() (*store.Store, error) {
	home, err := userHome()
	if err != nil {
		return nil, err
	}
	return store.New(newVault(), home), nil
}

func newRegistryService() (*registry.Service, error) {
	home, err := userHome()
	if err != nil {
		return nil, err
	}
	led := ledger.New(ledger.DefaultPath())
	return registry.NewService(newClient(), registry.DefaultCacheDir(), led, home), nil
}

func newEngine() (*update.Engine, error) {
	svc, err := newRegistryService()
	if err != nil {
		return nil, err
	}
	skips := ledger.NewSkipList(ledger.DefaultSkipPath())
	return update.NewEngine(svc, svc.Ledger(), skips, newVault()), nil
}

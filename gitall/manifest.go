package gitall

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/supply-chain-tools/gitall/gitkit"
	"gopkg.in/yaml.v3"
)

type Manifest struct {
	Platform     Platform        `yaml:"platform"`
	Account      string          `yaml:"account"`
	Scope        gitkit.Scope    `yaml:"scope"`
	Repositories []ManifestEntry `yaml:"repositories"`
}

type ManifestEntry struct {
	Name string `yaml:"name"`
	// URL is the clone URL without credential.
	URL      string `yaml:"url"`
	Path     string `yaml:"path"`
	Head     string `yaml:"head"`
	TreeHash string `yaml:"tree_hash"`
}

// NewManifestEntry describes a cloned repository by its HEAD commit and the
// dirhash h1 digest of its work tree.
func NewManifestEntry(result CloneResult) (ManifestEntry, error) {
	head, err := gitkit.HeadCommit(result.LocalPath)
	if err != nil {
		return ManifestEntry{}, err
	}

	treeHash, err := gitkit.WorkTreeHash(result.LocalPath, result.Repository.Name())
	if err != nil {
		return ManifestEntry{}, err
	}

	return ManifestEntry{
		Name:     result.Repository.Name(),
		URL:      result.Repository.CloneURL(),
		Path:     filepath.ToSlash(result.LocalPath),
		Head:     head,
		TreeHash: treeHash,
	}, nil
}

// BuildManifest describes the successful clones of report. Repositories that
// can not be inspected are logged and left out.
func BuildManifest(cfg Config, report CloneReport) Manifest {
	manifest := Manifest{
		Platform:     cfg.Platform(),
		Account:      cfg.Account(),
		Scope:        cfg.Scope(),
		Repositories: make([]ManifestEntry, 0, len(report.Results)),
	}

	for _, result := range report.Succeeded() {
		entry, err := NewManifestEntry(result)
		if err != nil {
			slog.Warn("unable to add repository to manifest", "repo", result.Repository.Name(), "error", err)
			continue
		}
		manifest.Repositories = append(manifest.Repositories, entry)
	}

	return manifest
}

func WriteManifest(path string, manifest Manifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("unable to encode manifest: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create manifest directory '%s': %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write manifest '%s': %w", path, err)
	}

	return nil
}

package gitkit

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"golang.org/x/mod/sumdb/dirhash"
)

func OpenRepoInLocalPath(path string) (*git.Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open git repository '%s': %w", path, err)
	}

	return repo, nil
}

// HeadCommit returns the hash HEAD resolves to in the repository at path.
func HeadCommit(path string) (string, error) {
	repo, err := OpenRepoInLocalPath(path)
	if err != nil {
		return "", err
	}

	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("unable to resolve HEAD of '%s': %w", path, err)
	}

	return ref.Hash().String(), nil
}

// WorkTreeHash returns the dirhash h1 digest of the files under path, with
// file names prefixed by prefix. The .git directory and symlinks are skipped.
func WorkTreeHash(path string, prefix string) (string, error) {
	files, err := dirhash.DirFiles(path, prefix)
	if err != nil {
		return "", fmt.Errorf("unable to list files in '%s': %w", path, err)
	}

	filteredFiles := make([]string, 0, len(files))
	for _, file := range files {
		if strings.HasPrefix(file, prefix+"/.git/") {
			continue
		}

		stat, err := os.Lstat(localFile(path, prefix, file))
		if err != nil {
			return "", err
		}
		if stat.Mode()&os.ModeSymlink != 0 {
			slog.Debug("skipping symlink", "path", file)
			continue
		}

		filteredFiles = append(filteredFiles, file)
	}

	osOpen := func(name string) (io.ReadCloser, error) {
		return os.Open(localFile(path, prefix, name))
	}

	hash, err := dirhash.Hash1(filteredFiles, osOpen)
	if err != nil {
		return "", fmt.Errorf("unable to hash '%s': %w", path, err)
	}

	return hash, nil
}

func localFile(path string, prefix string, name string) string {
	return filepath.Join(path, filepath.FromSlash(strings.TrimPrefix(name, prefix+"/")))
}

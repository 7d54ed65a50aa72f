package gitkit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

type Cloner interface {
	// Clone clones remote into localPath. Credentials are taken from the
	// remote's userinfo.
	Clone(ctx context.Context, remote *url.URL, localPath string) error
}

type Backend string

const (
	BackendGoGit Backend = "go-git"
	BackendExec  Backend = "git"
)

func NewCloner(backend Backend, progress io.Writer) (Cloner, error) {
	switch backend {
	case BackendGoGit, "":
		return &GoGitCloner{Progress: progress}, nil
	case BackendExec:
		return &ExecCloner{Binary: "git", Output: progress}, nil
	default:
		return nil, fmt.Errorf("unknown clone backend '%s'; must be '%s' or '%s'", backend, BackendGoGit, BackendExec)
	}
}

// GoGitCloner clones in process with go-git.
type GoGitCloner struct {
	Progress io.Writer
	Depth    int
}

func (c *GoGitCloner) Clone(ctx context.Context, remote *url.URL, localPath string) error {
	endpoint := *remote

	var auth transport.AuthMethod = nil
	if remote.User != nil {
		password, _ := remote.User.Password()
		auth = &http.BasicAuth{
			Username: remote.User.Username(),
			Password: password,
		}
		endpoint.User = nil
	}

	cloneOptions := &git.CloneOptions{
		Auth:     auth,
		URL:      endpoint.String(),
		Progress: c.Progress,
		Depth:    c.Depth,
	}

	slog.Debug("Cloning repository", "url", endpoint.String(), "path", localPath)
	_, err := git.PlainCloneContext(ctx, localPath, false, cloneOptions)
	if err != nil {
		return fmt.Errorf("error cloning '%s' into '%s': %w", endpoint.String(), localPath, err)
	}

	slog.Debug("Successfully cloned", "url", endpoint.String(), "path", localPath)
	return nil
}

// ExecCloner shells out to the git binary. The credential stays in the URL
// passed to git and is scrubbed from anything echoed back.
type ExecCloner struct {
	Binary string
	Output io.Writer
}

func (c *ExecCloner) Clone(ctx context.Context, remote *url.URL, localPath string) error {
	binary := c.Binary
	if binary == "" {
		binary = "git"
	}

	cmd := exec.CommandContext(ctx, binary, "clone", "--quiet", remote.String(), localPath)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if c.Output != nil {
		cmd.Stdout = c.Output
	}

	slog.Debug("Cloning repository", "url", remote.Redacted(), "path", localPath, "binary", binary)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone %s: %w: %s", remote.Redacted(), err, scrub(strings.TrimSpace(stderr.String()), remote))
	}

	return nil
}

func scrub(s string, remote *url.URL) string {
	if remote.User == nil {
		return s
	}

	s = strings.ReplaceAll(s, remote.String(), remote.Redacted())
	if password, ok := remote.User.Password(); ok && password != "" {
		s = strings.ReplaceAll(s, password, "xxxxx")
	}
	return s
}

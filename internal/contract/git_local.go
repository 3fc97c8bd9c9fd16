package contract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(_ context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.Command("git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// DiffNumstat implements the GitClient interface. Binary files show "-"
// in numstat output and contribute no line counts.
func (c *LocalGitClient) DiffNumstat(ctx context.Context, repoPath, baseRef, targetRef string) (int, int, []string, error) {
	out, err := c.Run(ctx, repoPath, "diff", "--numstat", baseRef+".."+targetRef)
	if err != nil {
		return 0, 0, nil, err
	}

	var added, removed int
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		if a, err := strconv.Atoi(parts[0]); err == nil {
			added += a
		}
		if d, err := strconv.Atoi(parts[1]); err == nil {
			removed += d
		}
		files = append(files, parts[2])
	}
	return added, removed, files, nil
}

// HeadMessage implements the GitClient interface.
func (c *LocalGitClient) HeadMessage(ctx context.Context, repoPath, ref string) (string, error) {
	if ref == "" {
		ref = "HEAD"
	}
	out, err := c.Run(ctx, repoPath, "log", "-1", "--pretty=%B", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// HeadSHA implements the GitClient interface.
func (c *LocalGitClient) HeadSHA(ctx context.Context, repoPath, ref string) (string, error) {
	if ref == "" {
		ref = "HEAD"
	}
	out, err := c.Run(ctx, repoPath, "rev-parse", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CurrentBranch implements the GitClient interface. CI checkouts are
// often detached, so the GITHUB_REF_NAME hint wins when present.
func (c *LocalGitClient) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	if ref := os.Getenv("GITHUB_REF_NAME"); ref != "" {
		return ref, nil
	}
	out, err := c.Run(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(string(out))
	if branch == "HEAD" {
		// Detached head without a CI hint; no lineage signal.
		return "", nil
	}
	return branch, nil
}

// ResolveBase implements the GitClient interface. The event payload
// base wins when supplied; otherwise the previous commit is used, and a
// single-commit repository falls back to HEAD (empty diff).
func (c *LocalGitClient) ResolveBase(ctx context.Context, repoPath string) (string, error) {
	if base := os.Getenv("GITHUB_EVENT_BEFORE"); base != "" && base != strings.Repeat("0", 40) {
		return base, nil
	}
	out, err := c.Run(ctx, repoPath, "rev-parse", "HEAD~1")
	if err != nil {
		return "HEAD", nil
	}
	return strings.TrimSpace(string(out)), nil
}

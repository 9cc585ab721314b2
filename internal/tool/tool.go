// Package tool resolves, downloads, caches, and verifies a single external
// command-line tool used by the release pipeline.
package tool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/morisil/jreleaser/internal/archive"
	"github.com/morisil/jreleaser/internal/command"
	"github.com/morisil/jreleaser/internal/descriptor"
	"github.com/morisil/jreleaser/internal/paths"
	"github.com/morisil/jreleaser/internal/tmpl"
)

// executableRef is the resolver's executable state: unresolved until a
// usable executable has been located in the cache or freshly downloaded.
type executableRef struct {
	path string
	ok   bool
}

// Tool manages exactly one external tool for one (name, version, platform)
// triple. Construct, optionally Download, then Verify or AsCommand.
type Tool struct {
	logger     logrus.FieldLogger
	name       string
	version    string
	platform   string
	enabled    bool
	descriptor *descriptor.Descriptor
	executable executableRef

	executor  *command.Executor
	client    *http.Client
	cacheBase string
}

// Option customizes a Tool at construction.
type Option func(*Tool)

// WithRunner substitutes the subprocess runner used by Verify.
func WithRunner(runner command.Runner) Option {
	return func(t *Tool) {
		t.executor = command.NewExecutor(t.logger, runner)
	}
}

// WithHTTPClient substitutes the HTTP client used by Download.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Tool) {
		t.client = client
	}
}

// WithCacheBase overrides the cache base directory (normally
// $JRELEASER_USER_HOME/caches or ~/.jreleaser/caches).
func WithCacheBase(dir string) Option {
	return func(t *Tool) {
		t.cacheBase = dir
	}
}

// New loads the descriptor for name and returns a resolver for the given
// version and platform. It fails with *InitializationError when the
// descriptor resource is missing or unreadable. Extra descriptor directories
// shadow the embedded resources.
func New(logger logrus.FieldLogger, name, version, platform string, descriptorDirs []string, opts ...Option) (*Tool, error) {
	d, err := descriptor.Load(name, descriptorDirs...)
	if err != nil {
		return nil, &InitializationError{Name: name, Err: err}
	}

	t := &Tool{
		logger:     logger,
		name:       name,
		version:    version,
		platform:   platform,
		descriptor: d,
		enabled:    d.HasExecutable(platform),
		client:     http.DefaultClient,
	}
	if t.enabled {
		t.executable = executableRef{path: d.Executable(platform), ok: true}
	}

	for _, opt := range opts {
		opt(t)
	}
	if t.executor == nil {
		t.executor = command.NewExecutor(logger, nil)
	}
	return t, nil
}

// IsEnabled reports whether the descriptor defines an executable for the
// tool's platform.
func (t *Tool) IsEnabled() bool {
	return t.enabled
}

// Name returns the tool name.
func (t *Tool) Name() string {
	return t.name
}

// Version returns the requested tool version.
func (t *Tool) Version() string {
	return t.version
}

// Platform returns the descriptor platform key the tool resolves against.
func (t *Tool) Platform() string {
	return t.platform
}

// Executable returns the resolved executable path. ok is false until the
// tool has been located in the cache or downloaded.
func (t *Tool) Executable() (string, bool) {
	return t.executable.path, t.executable.ok
}

// Download ensures the tool's executable is present in the cache. It is
// idempotent: a cache hit short-circuits without touching the network. When
// the descriptor has no filename for the platform there is nothing to fetch;
// the executable reference is cleared and the caller must use a system tool.
func (t *Tool) Download(ctx context.Context) error {
	filename := t.descriptor.Filename(t.platform)
	if filename == "" {
		t.executable = executableRef{}
		return nil
	}

	cacheDir, err := t.cacheDir()
	if err != nil {
		return &DownloadError{Tool: t.name, Kind: DownloadFailed, Err: err}
	}

	unpack := t.descriptor.Unpack()
	executablePath := t.descriptor.ExecutablePath(t.platform)
	executableName := t.descriptor.Executable(t.platform)

	filename, err = tmpl.Version(filename, t.version)
	if err != nil {
		return &DownloadError{Tool: t.name, Kind: DownloadFailed, Err: err}
	}
	executablePath, err = tmpl.Version(executablePath, t.version)
	if err != nil {
		return &DownloadError{Tool: t.name, Kind: DownloadFailed, Err: err}
	}
	downloadURL, err := tmpl.Version(t.descriptor.DownloadURL(), t.version)
	if err != nil {
		return &DownloadError{Tool: t.name, Kind: DownloadFailed, Err: err}
	}

	expected := cacheDir
	if unpack {
		expected = filepath.Join(expected, filepath.FromSlash(executablePath))
	}
	expected = filepath.Join(expected, executableName)
	expected, err = filepath.Abs(expected)
	if err != nil {
		return &DownloadError{Tool: t.name, Kind: DownloadFailed, Err: err}
	}

	if exists, _ := paths.FileExists(expected); exists {
		t.executable = executableRef{path: expected, ok: true}
		t.logger.Debugf("tool %s cached at %s", t.name, expected)
		return nil
	}

	fetchURL := downloadURL + filename
	t.logger.Debugf("located %s", filename)
	t.logger.Debugf("downloading %s", fetchURL)

	downloaded, err := t.fetch(ctx, fetchURL, filename)
	if err != nil {
		return err
	}
	t.logger.Debugf("downloaded %s", filename)

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return &DownloadError{Tool: t.name, URL: fetchURL, Kind: DownloadFailed, Err: err}
	}

	if unpack {
		if err := archive.Unpack(downloaded, cacheDir); err != nil {
			return &DownloadError{Tool: t.name, URL: fetchURL, Kind: DownloadFailed, Err: err}
		}
		t.logger.Debugf("unpacked %s", filename)
	} else {
		target := filepath.Join(cacheDir, executableName)
		if err := moveFile(downloaded, target); err != nil {
			return &DownloadError{Tool: t.name, URL: fetchURL, Kind: DownloadFailed, Err: err}
		}
		if runtime.GOOS != "windows" {
			if err := os.Chmod(target, 0o755); err != nil {
				return &DownloadError{Tool: t.name, URL: fetchURL, Kind: DownloadFailed, Err: err}
			}
		}
	}

	t.executable = executableRef{path: expected, ok: true}
	t.logger.Debugf("tool %s cached at %s", t.name, expected)
	return nil
}

// fetch streams the remote artifact into a fresh temporary file and returns
// its path.
func (t *Tool) fetch(ctx context.Context, fetchURL, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return "", &DownloadError{Tool: t.name, URL: fetchURL, Kind: DownloadFailed, Err: err}
	}
	req.Header.Set("User-Agent", "jreleaser/1.0")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", &DownloadError{Tool: t.name, URL: fetchURL, Kind: DownloadFailed, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		t.logger.Debugf("tool %s not found at %s", t.name, fetchURL)
		return "", &DownloadError{Tool: t.name, URL: fetchURL, Kind: DownloadNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &DownloadError{
			Tool: t.name, URL: fetchURL, Kind: DownloadFailed,
			Err: fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	tmpDir, err := os.MkdirTemp("", "jreleaser-")
	if err != nil {
		return "", &DownloadError{Tool: t.name, URL: fetchURL, Kind: DownloadFailed, Err: err}
	}

	destination := filepath.Join(tmpDir, filename)
	out, err := os.OpenFile(destination, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", &DownloadError{Tool: t.name, URL: fetchURL, Kind: DownloadFailed, Err: err}
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return "", &DownloadError{Tool: t.name, URL: fetchURL, Kind: DownloadFailed, Err: err}
	}
	if err := out.Close(); err != nil {
		return "", &DownloadError{Tool: t.name, URL: fetchURL, Kind: DownloadFailed, Err: err}
	}
	return destination, nil
}

// Verify runs the executable with the descriptor's version argument and
// reports whether the verify pattern matches anywhere in the captured
// output. It never returns an error: every failure path degrades to false
// with a debug log line.
func (t *Tool) Verify(ctx context.Context) bool {
	path, ok := t.Executable()
	if !ok {
		return false
	}

	cmd := command.New(path).Arg(t.descriptor.CommandVersion())

	var out bytes.Buffer
	if _, err := t.executor.ExecuteCapturing(ctx, cmd, &out); err != nil {
		t.logger.Debug(err.Error())
		return false
	}

	verify, err := tmpl.Version(strings.TrimSpace(t.descriptor.CommandVerify()), t.version)
	if err != nil {
		t.logger.Debug(err.Error())
		return false
	}

	pattern, err := regexp.Compile(verify)
	if err != nil {
		t.logger.Debug(err.Error())
		return false
	}
	return pattern.MatchString(out.String())
}

// AsCommand returns an invocation anchored at the resolved executable, ready
// to extend with arguments. Callers must have resolved the tool first.
func (t *Tool) AsCommand() (*command.Command, error) {
	path, ok := t.Executable()
	if !ok {
		return nil, fmt.Errorf("tool %s has no resolved executable", t.name)
	}
	return command.New(path), nil
}

func (t *Tool) cacheDir() (string, error) {
	if t.cacheBase != "" {
		return filepath.Join(t.cacheBase, t.name, t.version), nil
	}
	return paths.ToolCacheDir(t.name, t.version)
}

// moveFile renames src to dest, falling back to copy and remove when the
// rename crosses filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open downloaded file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to cache: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}
	return os.Remove(src)
}

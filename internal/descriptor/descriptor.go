// Package descriptor loads per-tool property descriptors. Descriptors for the
// tools the pipeline knows about ship embedded in the binary; an overlay
// directory may shadow them with local copies.
package descriptor

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
)

//go:embed descriptors/*.properties
var builtin embed.FS

const (
	builtinDir = "descriptors"
	fileSuffix = ".properties"

	keyDownloadURL    = "download.url"
	keyVersion        = "version"
	keyUnpack         = "unpack"
	keyCommandVersion = "command.version"
	keyCommandVerify  = "command.verify"

	suffixExecutable     = ".executable"
	suffixFilename       = ".filename"
	suffixExecutablePath = ".executable.path"
)

// Descriptor is an immutable view over a tool's property set.
type Descriptor struct {
	name  string
	props *properties.Properties
}

// Load reads the descriptor named <name>.properties, preferring overlay
// directories (in order) over the embedded resources.
func Load(name string, overlayDirs ...string) (*Descriptor, error) {
	data, err := read(name, overlayDirs)
	if err != nil {
		return nil, err
	}

	props, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("parse descriptor %s%s: %w", name, fileSuffix, err)
	}
	// Values carry mustache placeholders; ${} expansion must stay out of the way.
	props.DisableExpansion = true

	return &Descriptor{name: name, props: props}, nil
}

func read(name string, overlayDirs []string) ([]byte, error) {
	filename := name + fileSuffix
	for _, dir := range overlayDirs {
		if dir == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, filename))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read descriptor %s: %w", filename, err)
		}
	}

	data, err := builtin.ReadFile(builtinDir + "/" + filename)
	if err != nil {
		return nil, fmt.Errorf("read descriptor %s: %w", filename, err)
	}
	return data, nil
}

// Builtin returns the names of all embedded descriptors, sorted.
func Builtin() []string {
	entries, err := builtin.ReadDir(builtinDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), fileSuffix))
	}
	sort.Strings(names)
	return names
}

// Name returns the tool name the descriptor was loaded for.
func (d *Descriptor) Name() string {
	return d.name
}

// Has reports whether the descriptor defines the given key.
func (d *Descriptor) Has(key string) bool {
	_, ok := d.props.Get(key)
	return ok
}

// Get returns the raw value for key, or "" when absent.
func (d *Descriptor) Get(key string) string {
	value, _ := d.props.Get(key)
	return strings.TrimSpace(value)
}

// DownloadURL returns the base download URL template.
func (d *Descriptor) DownloadURL() string {
	return d.Get(keyDownloadURL)
}

// DefaultVersion returns the descriptor's bundled default version.
func (d *Descriptor) DefaultVersion() string {
	return d.Get(keyVersion)
}

// Unpack reports whether the downloaded artifact is an archive to extract.
func (d *Descriptor) Unpack() bool {
	value, _ := strconv.ParseBool(d.Get(keyUnpack))
	return value
}

// CommandVersion returns the argument passed to the tool to print its version.
func (d *Descriptor) CommandVersion() string {
	return d.Get(keyCommandVersion)
}

// CommandVerify returns the regexp template matched against version output.
func (d *Descriptor) CommandVerify() string {
	return d.Get(keyCommandVerify)
}

// Executable returns the executable name for the platform.
func (d *Descriptor) Executable(platform string) string {
	return d.Get(platform + suffixExecutable)
}

// HasExecutable reports whether the platform has an executable entry at all.
func (d *Descriptor) HasExecutable(platform string) bool {
	return d.Has(platform + suffixExecutable)
}

// Filename returns the download filename template for the platform.
func (d *Descriptor) Filename(platform string) string {
	return d.Get(platform + suffixFilename)
}

// ExecutablePath returns the in-archive executable directory template.
func (d *Descriptor) ExecutablePath(platform string) string {
	return d.Get(platform + suffixExecutablePath)
}

// CurrentPlatform maps the running OS onto the descriptor platform keys.
func CurrentPlatform() string {
	switch runtime.GOOS {
	case "darwin":
		return "osx"
	case "windows":
		return "windows"
	default:
		return "linux"
	}
}

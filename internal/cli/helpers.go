package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/morisil/jreleaser/internal/config"
	"github.com/morisil/jreleaser/internal/descriptor"
	"github.com/morisil/jreleaser/internal/paths"
	"github.com/morisil/jreleaser/internal/tool"
	"github.com/morisil/jreleaser/internal/tui"
)

// toolStatus is the JSON/table row reported by the tool commands.
type toolStatus struct {
	Tool       string `json:"tool"`
	Version    string `json:"version,omitempty"`
	Platform   string `json:"platform"`
	Enabled    bool   `json:"enabled"`
	Executable string `json:"executable,omitempty"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

func loadConfig() (config.Config, error) {
	path, err := paths.ConfigFile()
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path)
}

func resolvePlatform(cfg config.Config) string {
	if platformFlag != "" {
		return platformFlag
	}
	if cfg.Platform != "" {
		return cfg.Platform
	}
	return descriptor.CurrentPlatform()
}

// resolveVersion picks the tool version: explicit flag, then config pin,
// then the descriptor's bundled default.
func resolveVersion(cfg config.Config, name, flagVersion string) (string, error) {
	if flagVersion != "" {
		return flagVersion, nil
	}
	if pin := cfg.Version(name); pin != "" {
		return pin, nil
	}
	d, err := descriptor.Load(name, cfg.DescriptorDir)
	if err != nil {
		return "", err
	}
	version := d.DefaultVersion()
	if version == "" {
		return "", fmt.Errorf("tool %s: no version given and descriptor has no default", name)
	}
	return version, nil
}

func newTool(logger logrus.FieldLogger, cfg config.Config, name, version string) (*tool.Tool, error) {
	return tool.New(logger, name, version, resolvePlatform(cfg), []string{cfg.DescriptorDir})
}

// resolveTargets expands "all" (or no argument) into every builtin tool.
func resolveTargets(args []string) []string {
	if len(args) == 0 || args[0] == "all" {
		return descriptor.Builtin()
	}
	return args
}

func writeStatuses(cmd *cobra.Command, statuses []toolStatus) error {
	if outputJSON {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tVERSION\tPLATFORM\tSTATUS\tEXECUTABLE")
	for _, st := range statuses {
		status := tui.StatusStyle(st.Status).Render(st.Status)
		detail := st.Executable
		if st.Error != "" {
			detail = st.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", st.Tool, st.Version, st.Platform, status, detail)
	}
	return w.Flush()
}

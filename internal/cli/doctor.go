package cli

import (
	"github.com/spf13/cobra"

	"github.com/morisil/jreleaser/internal/descriptor"
	"github.com/morisil/jreleaser/internal/logx"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check which tools are available and verified",
		RunE:  runDoctor,
	}
}

// runDoctor reports on every known tool without touching the network: a tool
// already present in the cache (or on PATH via its raw executable name) is
// verified by running it; everything else is reported as-is.
func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logx.New(debugLogs)
	platform := resolvePlatform(cfg)

	var statuses []toolStatus
	for _, name := range descriptor.Builtin() {
		version, err := resolveVersion(cfg, name, "")
		if err != nil {
			statuses = append(statuses, toolStatus{Tool: name, Platform: platform, Status: "error", Error: err.Error()})
			continue
		}

		st := toolStatus{Tool: name, Version: version, Platform: platform}
		t, err := newTool(logger, cfg, name, version)
		if err != nil {
			st.Status = "error"
			st.Error = err.Error()
			statuses = append(statuses, st)
			continue
		}

		st.Enabled = t.IsEnabled()
		if !t.IsEnabled() {
			st.Status = "disabled"
			statuses = append(statuses, st)
			continue
		}

		st.Executable, _ = t.Executable()
		if t.Verify(cmd.Context()) {
			st.Status = "verified"
		} else {
			st.Status = "unverified"
		}
		statuses = append(statuses, st)
	}

	return writeStatuses(cmd, statuses)
}

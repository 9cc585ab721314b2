package cli

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/morisil/jreleaser/internal/config"
	"github.com/morisil/jreleaser/internal/descriptor"
	"github.com/morisil/jreleaser/internal/logx"
	"github.com/morisil/jreleaser/internal/paths"
	"github.com/morisil/jreleaser/internal/tool"
	"github.com/morisil/jreleaser/internal/tui"
)

var (
	toolVersion   string
	plainProgress bool
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Manage external release tools",
	}

	cmd.AddCommand(newToolsListCmd())
	cmd.AddCommand(newToolsDownloadCmd())
	cmd.AddCommand(newToolsVerifyCmd())
	cmd.AddCommand(newToolsWhichCmd())

	return cmd
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known tools and their descriptor defaults",
		RunE:  runToolsList,
	}
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	platform := resolvePlatform(cfg)

	var statuses []toolStatus
	for _, name := range descriptor.Builtin() {
		d, err := descriptor.Load(name, cfg.DescriptorDir)
		if err != nil {
			return err
		}
		version, err := resolveVersion(cfg, name, "")
		if err != nil {
			version = ""
		}
		st := toolStatus{Tool: name, Version: version, Platform: platform}
		if d.HasExecutable(platform) {
			st.Enabled = true
			st.Status = "available"
			st.Executable = d.Executable(platform)
		} else {
			st.Status = "disabled"
		}
		statuses = append(statuses, st)
	}

	return writeStatuses(cmd, statuses)
}

func newToolsDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [tool...|all]",
		Short: "Download tools into the cache",
		RunE:  runToolsDownload,
	}
	cmd.Flags().StringVar(&toolVersion, "version", "", "Tool version (single tool only)")
	cmd.Flags().BoolVar(&plainProgress, "plain", false, "Disable the progress display")
	return cmd
}

func runToolsDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	targets := resolveTargets(args)
	if toolVersion != "" && len(targets) != 1 {
		return errors.New("--version requires a single tool")
	}

	versions := make(map[string]string, len(targets))
	for _, name := range targets {
		version, err := resolveVersion(cfg, name, toolVersion)
		if err != nil {
			return err
		}
		versions[name] = version
	}

	if outputJSON || plainProgress {
		logger := logx.New(debugLogs)
		statuses, errs := downloadAll(cmd, logger, cfg, targets, versions, nil)
		if err := writeStatuses(cmd, statuses); err != nil {
			return err
		}
		return errors.Join(errs...)
	}

	logger, closer, err := downloadLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	var errs []error
	model := tui.NewDownloadModel(versions)
	runErr := tui.RunWithWork(cmd.OutOrStdout(), model, func(send func(tea.Msg)) {
		_, errs = downloadAll(cmd, logger, cfg, targets, versions, send)
	})
	if runErr != nil {
		return runErr
	}
	return errors.Join(errs...)
}

// downloadLogger returns a logger that stays off the terminal while the
// progress display owns it.
func downloadLogger() (logrus.FieldLogger, io.Closer, error) {
	logsDir, err := paths.LogsDir()
	if err != nil {
		return nil, nil, err
	}
	return logx.NewFileOnly(debugLogs, logsDir)
}

func downloadAll(cmd *cobra.Command, logger logrus.FieldLogger, cfg config.Config, targets []string, versions map[string]string, send func(tea.Msg)) ([]toolStatus, []error) {
	notify := func(name, status, detail string) {
		if send != nil {
			send(tui.StatusMsg{Tool: name, Status: status, Detail: detail})
		}
	}

	var (
		statuses []toolStatus
		errs     []error
	)
	for _, name := range targets {
		version := versions[name]
		st := downloadOne(cmd, logger, cfg, name, version, notify)
		if st.Error != "" {
			errs = append(errs, fmt.Errorf("%s: %s", name, st.Error))
		}
		statuses = append(statuses, st)
	}
	return statuses, errs
}

func downloadOne(cmd *cobra.Command, logger logrus.FieldLogger, cfg config.Config, name, version string, notify func(name, status, detail string)) toolStatus {
	st := toolStatus{Tool: name, Version: version, Platform: resolvePlatform(cfg)}

	t, err := newTool(logger, cfg, name, version)
	if err != nil {
		st.Status = "error"
		st.Error = err.Error()
		notify(name, st.Status, st.Error)
		return st
	}
	st.Enabled = t.IsEnabled()
	if !t.IsEnabled() {
		st.Status = "disabled"
		notify(name, st.Status, "no executable for "+st.Platform)
		return st
	}

	notify(name, "downloading", "")
	if err := t.Download(cmd.Context()); err != nil {
		st.Status = "error"
		st.Error = err.Error()
		notify(name, st.Status, st.Error)
		return st
	}

	if path, ok := t.Executable(); ok {
		st.Executable = path
		st.Status = "cached"
	} else {
		// Nothing to fetch for this platform: the system tool is used.
		st.Status = "system"
	}
	notify(name, st.Status, st.Executable)
	return st
}

func newToolsVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <tool>",
		Short: "Download a tool if needed and verify its version output",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolsVerify,
	}
	cmd.Flags().StringVar(&toolVersion, "version", "", "Tool version")
	return cmd
}

func runToolsVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	name := args[0]
	version, err := resolveVersion(cfg, name, toolVersion)
	if err != nil {
		return err
	}

	logger := logx.New(debugLogs)
	t, err := newTool(logger, cfg, name, version)
	if err != nil {
		return err
	}

	st := toolStatus{Tool: name, Version: version, Platform: resolvePlatform(cfg), Enabled: t.IsEnabled()}
	if !t.IsEnabled() {
		st.Status = "disabled"
		if err := writeStatuses(cmd, []toolStatus{st}); err != nil {
			return err
		}
		return fmt.Errorf("tool %s is not available for platform %s", name, st.Platform)
	}

	if err := t.Download(cmd.Context()); err != nil {
		if tool.IsNotFound(err) {
			return fmt.Errorf("no downloadable artifact for %s %s on %s: %w", name, version, st.Platform, err)
		}
		return err
	}
	st.Executable, _ = t.Executable()

	if t.Verify(cmd.Context()) {
		st.Status = "verified"
		return writeStatuses(cmd, []toolStatus{st})
	}

	st.Status = "unverified"
	if err := writeStatuses(cmd, []toolStatus{st}); err != nil {
		return err
	}
	return fmt.Errorf("tool %s %s could not be verified", name, version)
}

func newToolsWhichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "which <tool>",
		Short: "Print the resolved executable path, downloading if needed",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolsWhich,
	}
	cmd.Flags().StringVar(&toolVersion, "version", "", "Tool version")
	return cmd
}

func runToolsWhich(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	name := args[0]
	version, err := resolveVersion(cfg, name, toolVersion)
	if err != nil {
		return err
	}

	logger := logx.New(debugLogs)
	t, err := newTool(logger, cfg, name, version)
	if err != nil {
		return err
	}
	if !t.IsEnabled() {
		return fmt.Errorf("tool %s is not available for platform %s", name, resolvePlatform(cfg))
	}
	if err := t.Download(cmd.Context()); err != nil {
		return err
	}

	_, ok := t.Executable()
	if !ok {
		return fmt.Errorf("tool %s is provided by the system; no cached executable", name)
	}

	invocation, err := t.AsCommand()
	if err != nil {
		return err
	}
	cmd.Println(invocation.Executable())
	return nil
}

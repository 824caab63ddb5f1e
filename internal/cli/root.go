package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/piwi3910/PalletStack/internal/project"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOpts holds the persistent flags shared by every command.
type rootOpts struct {
	verbose    bool
	configPath string
}

// Execute runs the palletstack CLI with ctx and returns the first command
// error. Cancelling ctx (e.g. on SIGINT) is visible to long-running commands
// through cmd.Context().
//
// Logging goes to stderr at info level, or debug level with --verbose (-v).
// Report output goes to stdout.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:           "palletstack",
		Short:         "PalletStack packs boxes onto pallets and checks the load",
		Long:          `PalletStack packs box lists onto pallets with interchangeable strategies, stacks pallets into multi-floor loads and validates stacks, trucks and rooms against physical and logistic rules.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("palletstack %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $"+project.ConfigEnv+" or ~/.palletstack/config.json)")

	root.AddCommand(newPackCmd(opts))
	root.AddCommand(newCompareCmd(opts))
	root.AddCommand(newValidateCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newStrategiesCmd())
	root.AddCommand(newPalletsCmd(opts))
	root.AddCommand(newTemplateCmd(opts))
	root.AddCommand(newConfigCmd(opts))

	return root
}

// workspace is the user's persisted state: preferences, the pallet
// inventory and the job templates, all stored next to the config file.
type workspace struct {
	configPath string
	config     model.AppConfig
	inventory  model.Inventory
	templates  model.TemplateStore
}

func (o *rootOpts) resolvedConfigPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return project.DefaultConfigPath()
}

// loadWorkspace reads config, inventory and templates. Missing files yield
// defaults; nothing is written.
func (o *rootOpts) loadWorkspace(ctx context.Context) (*workspace, error) {
	logger := loggerFromContext(ctx)
	ws := &workspace{configPath: o.resolvedConfigPath()}

	cfg, err := project.LoadAppConfig(ws.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	ws.config = cfg

	inv, err := project.LoadInventory(ws.inventoryPath())
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	ws.inventory = inv

	store, err := project.LoadTemplates(ws.templatesPath())
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	ws.templates = store

	logger.Debug("Workspace loaded", "config", ws.configPath,
		"pallets", len(inv.Pallets), "templates", len(store.Templates))
	return ws, nil
}

func (ws *workspace) inventoryPath() string {
	return project.InventoryPath(ws.configPath)
}

func (ws *workspace) templatesPath() string {
	return project.TemplatePath(ws.configPath)
}

func (ws *workspace) saveConfig() error {
	return project.SaveAppConfig(ws.configPath, ws.config)
}

func (ws *workspace) saveInventory() error {
	return project.SaveInventory(ws.inventoryPath(), ws.inventory)
}

func (ws *workspace) saveTemplates() error {
	return project.SaveTemplates(ws.templatesPath(), ws.templates)
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

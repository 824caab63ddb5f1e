package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PalletStack/internal/engine"
	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/piwi3910/PalletStack/internal/project"
)

// configKeys are the settings accepted by 'config set', in display order.
var configKeys = []string{
	"default-strategy", "default-pallet", "max-floors", "name-prefix", "report-title", "show-warnings",
}

func newConfigCmd(root *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change settings, back up and restore all data",
	}
	cmd.AddCommand(newConfigShowCmd(root))
	cmd.AddCommand(newConfigInitCmd(root))
	cmd.AddCommand(newConfigSetCmd(root))
	cmd.AddCommand(newConfigBackupCmd(root))
	cmd.AddCommand(newConfigRestoreCmd(root))
	return cmd
}

func newConfigShowCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			printTitle(w, "Settings")
			printKeyValue(w, "config", ws.configPath)
			for _, key := range configKeys {
				printKeyValue(w, key, configValue(ws.config, key))
			}
			if len(ws.config.RecentJobs) > 0 {
				fmt.Fprintln(w)
				printTitle(w, "Recent jobs")
				for _, p := range ws.config.RecentJobs {
					printFile(w, p)
				}
			}
			return nil
		},
	}
}

func newConfigInitCmd(root *rootOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config, inventory and template files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			path := root.resolvedConfigPath()
			if fileExists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			ws := &workspace{
				configPath: path,
				config:     model.DefaultAppConfig(),
				inventory:  model.DefaultInventory(),
				templates:  model.NewTemplateStore(),
			}
			if err := ws.saveConfig(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			if err := ws.saveInventory(); err != nil {
				return fmt.Errorf("save inventory: %w", err)
			}
			if err := ws.saveTemplates(); err != nil {
				return fmt.Errorf("save templates: %w", err)
			}
			printSuccess(w, "Initialised settings")
			printFile(w, ws.configPath)
			printFile(w, ws.inventoryPath())
			printFile(w, ws.templatesPath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}

func newConfigSetCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Long:  "Change a setting. Keys: " + strings.Join(configKeys, ", ") + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if err := setConfigValue(&ws.config, &ws.inventory, args[0], args[1]); err != nil {
				return err
			}
			if err := ws.saveConfig(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "%s = %s", args[0], configValue(ws.config, args[0]))
			return nil
		},
	}
}

func newConfigBackupCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <file.json>",
		Short: "Write settings, inventory and templates to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], ws.config, ws.inventory, ws.templates); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Backup written")
			printFile(cmd.OutOrStdout(), args[0])
			return nil
		},
	}
}

func newConfigRestoreCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file.json>",
		Short: "Replace settings, inventory and templates from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.RestoreAllData(backup, root.resolvedConfigPath()); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("Backup restored", "version", backup.Version, "created", backup.CreatedAt)
			printSuccess(cmd.OutOrStdout(), "Restored %d pallet(s) and %d template(s)",
				len(backup.Inventory.Pallets), len(backup.Templates.Templates))
			return nil
		},
	}
}

func configValue(cfg model.AppConfig, key string) string {
	switch key {
	case "default-strategy":
		return cfg.DefaultStrategy
	case "default-pallet":
		return cfg.DefaultPalletPreset
	case "max-floors":
		return strconv.Itoa(cfg.MaxFloorsPerPallet)
	case "name-prefix":
		return cfg.NamePrefix
	case "report-title":
		return cfg.ReportTitle
	case "show-warnings":
		return strconv.FormatBool(cfg.ShowWarnings)
	}
	return ""
}

// setConfigValue validates and applies one setting. Strategy ids and pallet
// keys are checked against the registry and inv.
func setConfigValue(cfg *model.AppConfig, inv *model.Inventory, key, value string) error {
	switch key {
	case "default-strategy":
		if !engine.DefaultRegistry().Has(value) {
			return fmt.Errorf("unknown strategy %q (available: %s)", value, strings.Join(engine.DefaultRegistry().ListIDs(), ", "))
		}
		cfg.DefaultStrategy = value
	case "default-pallet":
		p := inv.FindPallet(value)
		if p == nil {
			return fmt.Errorf("%w %q (available: %s)", model.ErrUnknownPreset, value, strings.Join(inv.Keys(), ", "))
		}
		cfg.DefaultPalletPreset = p.Key
	case "max-floors":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("max-floors must be a positive integer, got %q", value)
		}
		cfg.MaxFloorsPerPallet = n
	case "name-prefix":
		cfg.NamePrefix = value
	case "report-title":
		cfg.ReportTitle = value
	case "show-warnings":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("show-warnings must be true or false, got %q", value)
		}
		cfg.ShowWarnings = b
	default:
		return fmt.Errorf("unknown setting %q (keys: %s)", key, strings.Join(configKeys, ", "))
	}
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/piwi3910/PalletStack/internal/project"
)

func newPalletsCmd(root *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pallets",
		Short: "Manage the pallet inventory",
	}
	cmd.AddCommand(newPalletsListCmd(root))
	cmd.AddCommand(newPalletsAddCmd(root))
	cmd.AddCommand(newPalletsRemoveCmd(root))
	cmd.AddCommand(newPalletsImportCmd(root))
	return cmd
}

func newPalletsListCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the pallets in the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			rows := [][]string{{"Key", "Name", "W x H x D (mm)", "Max load", "Max height", "Weight", "Material"}}
			for _, p := range ws.inventory.Pallets {
				d := p.Dimensions
				rows = append(rows, []string{
					p.Key,
					p.Name,
					fmt.Sprintf("%.0f x %.0f x %.0f", d.Width, d.Height, d.Depth),
					fmt.Sprintf("%.0f kg", p.MaxWeight),
					fmt.Sprintf("%.0f mm", p.MaxStackHeight),
					fmt.Sprintf("%.1f kg", p.Weight),
					p.Material,
				})
			}
			printTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}

func newPalletsAddCmd(root *rootOpts) *cobra.Command {
	var (
		preset model.PalletPreset
		size   string
	)

	cmd := &cobra.Command{
		Use:   "add <key>",
		Short: "Add a custom pallet to the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dims, err := parseDimensions(size)
			if err != nil {
				return fmt.Errorf("--size: %w", err)
			}
			if preset.MaxWeight <= 0 || preset.MaxStackHeight <= 0 {
				return fmt.Errorf("--max-weight and --max-height must be positive")
			}
			preset.Key = strings.ToUpper(strings.TrimSpace(args[0]))
			preset.Dimensions = dims
			if preset.Name == "" {
				preset.Name = preset.Key
			}

			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if !ws.inventory.Add(preset) {
				return fmt.Errorf("pallet %q already exists", preset.Key)
			}
			if err := ws.saveInventory(); err != nil {
				return fmt.Errorf("save inventory: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Added pallet %s", preset.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&preset.Name, "name", "", "display name")
	cmd.Flags().StringVar(&size, "size", "", "WIDTHxHEIGHTxDEPTH in mm")
	cmd.Flags().Float64Var(&preset.MaxWeight, "max-weight", 0, "maximum load in kg")
	cmd.Flags().Float64Var(&preset.MaxStackHeight, "max-height", 0, "maximum floor height including the pallet, in mm")
	cmd.Flags().Float64Var(&preset.Weight, "weight", 0, "empty pallet weight in kg")
	cmd.Flags().StringVar(&preset.Material, "material", "wood", "pallet material")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func newPalletsRemoveCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a pallet from the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if !ws.inventory.Remove(args[0]) {
				return fmt.Errorf("pallet %q not found", args[0])
			}
			if err := ws.saveInventory(); err != nil {
				return fmt.Errorf("save inventory: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Removed pallet %s", args[0])
			return nil
		},
	}
}

func newPalletsImportCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "import <inventory.json>",
		Short: "Merge pallets from another inventory file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			merged, added, err := project.ImportInventory(args[0], ws.inventory)
			if err != nil {
				return fmt.Errorf("import inventory: %w", err)
			}
			ws.inventory = merged
			if err := ws.saveInventory(); err != nil {
				return fmt.Errorf("save inventory: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Imported %d pallet(s)", added)
			return nil
		},
	}
}

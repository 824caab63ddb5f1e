package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PalletStack/internal/model"
	"github.com/piwi3910/PalletStack/internal/project"
)

func newTemplateCmd(root *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage reusable job templates",
	}
	cmd.AddCommand(newTemplateSaveCmd(root))
	cmd.AddCommand(newTemplateListCmd(root))
	cmd.AddCommand(newTemplateRemoveCmd(root))
	cmd.AddCommand(newTemplateExportCmd(root))
	return cmd
}

// findTemplate looks a template up by name, then by id.
func (ws *workspace) findTemplate(nameOrID string) (*model.JobTemplate, error) {
	t := ws.templates.FindByName(nameOrID)
	if t == nil {
		t = ws.templates.FindByID(nameOrID)
	}
	if t == nil {
		names := ws.templates.Names()
		if len(names) == 0 {
			return nil, fmt.Errorf("template %q not found (no templates saved)", nameOrID)
		}
		return nil, fmt.Errorf("template %q not found (available: %s)", nameOrID, strings.Join(names, ", "))
	}
	return t, nil
}

func newTemplateSaveCmd(root *rootOpts) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "save <job-file>",
		Short: "Save a job file as a template",
		Long:  `Save a job file as a named template. A template with the same name is replaced.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			job, warnings, err := project.LoadJob(args[0])
			for _, msg := range warnings {
				logger.Warn(msg)
			}
			if err != nil {
				return err
			}
			if name == "" {
				name = job.Name
			}
			// box lines from a box list file are stored inline
			job.BoxesFile = ""

			ws.templates.Add(model.NewJobTemplate(name, description, job))
			if err := ws.saveTemplates(); err != nil {
				return fmt.Errorf("save templates: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Saved template %q (%d box lines)", name, len(job.Boxes))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "template name (default: the job name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "template description")
	return cmd
}

func newTemplateListCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			if len(ws.templates.Templates) == 0 {
				printInfo(w, "No templates saved")
				return nil
			}
			rows := [][]string{{"ID", "Name", "Lines", "Boxes", "Updated", "Description"}}
			for _, t := range ws.templates.Templates {
				boxes := 0
				for _, l := range t.Job.Boxes {
					boxes += l.Quantity
				}
				rows = append(rows, []string{
					t.ID, t.Name, fmt.Sprint(len(t.Job.Boxes)), fmt.Sprint(boxes), t.UpdatedAt, t.Description,
				})
			}
			printTable(w, rows)
			return nil
		},
	}
}

func newTemplateRemoveCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name-or-id>",
		Short: "Remove a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			t, err := ws.findTemplate(args[0])
			if err != nil {
				return err
			}
			name := t.Name
			ws.templates.Remove(t.ID)
			if err := ws.saveTemplates(); err != nil {
				return fmt.Errorf("save templates: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Removed template %q", name)
			return nil
		},
	}
}

func newTemplateExportCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "export <name-or-id> <job-file>",
		Short: "Write a template back out as a job file",
		Long:  `Write a template as a TOML or JSON job file, chosen by the file extension.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := root.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			t, err := ws.findTemplate(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveJob(args[1], t.ToJob(t.Name)); err != nil {
				return fmt.Errorf("export template: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Exported template %q", t.Name)
			printFile(cmd.OutOrStdout(), args[1])
			return nil
		},
	}
}

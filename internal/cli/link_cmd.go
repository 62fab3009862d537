package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/cosebhq/ganttd/internal/cli/formatter"
	"github.com/cosebhq/ganttd/internal/domain"
	"github.com/spf13/cobra"
)

func newLinkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage dependency links",
	}

	cmd.AddCommand(
		newLinkSetCmd(app),
		newLinkListCmd(app),
		newLinkSourcesCmd(app),
	)

	return cmd
}

// parseLinkArg parses "source:target" or "source:target:type".
func parseLinkArg(arg string) (domain.Link, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return domain.Link{}, fmt.Errorf("invalid link %q (want source:target[:type])", arg)
	}
	l := domain.Link{Source: parts[0], Target: parts[1], Type: domain.LinkFinishToStart}
	if len(parts) == 3 {
		l.Type = parts[2]
	}
	return l, nil
}

func newLinkSetCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "set [source:target[:type]]...",
		Short: "Replace a project's entire link set",
		Long: `Replace a project's entire link set with the given links.
With no arguments the project's links are cleared.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			links := make([]domain.Link, 0, len(args))
			for _, arg := range args {
				l, err := parseLinkArg(arg)
				if err != nil {
					return err
				}
				links = append(links, l)
			}

			if err := app.Links.Replace(context.Background(), project, links); err != nil {
				return err
			}
			fmt.Printf("Set %d link(s).\n", len(links))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project whose links to replace")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newLinkListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's links",
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := app.Links.ListByProject(context.Background(), project)
			if err != nil {
				return err
			}
			fmt.Print(formatter.LinkTable(links))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project whose links to list")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newLinkSourcesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sources <task-id>",
		Short: "List the tasks a given task depends on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Links.LinkedSources(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.TaskTable(tasks))
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/cosebhq/ganttd/internal/cli/formatter"
	"github.com/cosebhq/ganttd/internal/domain"
	"github.com/cosebhq/ganttd/internal/service"
	"github.com/spf13/cobra"
)

func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q (want YYYY-MM-DD): %w", flag, value, err)
	}
	return t, nil
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskUpdateCmd(app),
		newTaskDatesCmd(app),
		newTaskStatusCmd(app),
		newTaskRemoveCmd(app),
		newTaskManualCmd(app),
		newTaskReportCmd(app),
		newTaskCommentCmd(app),
		newTaskCommentsCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var project, text, description, start, end, parent, assignee, classification, kind string
	var progress float64
	var open bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDate("end", end)
			if err != nil {
				return err
			}

			id, err := app.Tasks.Create(context.Background(), service.CreateTaskInput{
				ProjectID:      project,
				Text:           text,
				Description:    description,
				Start:          startDate,
				End:            endDate,
				Parent:         parent,
				Assignee:       assignee,
				Progress:       progress,
				Classification: classification,
				Type:           kind,
				Open:           open,
				CreatedBy:      app.Requester,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created task %s [%s]\n", text, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project the task belongs to")
	cmd.Flags().StringVar(&text, "text", "", "Task title")
	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent task id (empty for a root task)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee email")
	cmd.Flags().Float64Var(&progress, "progress", 0, "Initial progress (0-100)")
	cmd.Flags().StringVar(&classification, "class", "", "Free-form classification tag")
	cmd.Flags().StringVar(&kind, "type", "", "Free-form type tag")
	cmd.Flags().BoolVar(&open, "open", false, "Whether the task renders expanded")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project, assignee string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by project (as a tree) or by assignee",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			switch {
			case project != "":
				tasks, err := app.Tasks.ListByProject(ctx, project)
				if err != nil {
					return err
				}
				fmt.Print(formatter.TaskTree(tasks))
			case assignee != "":
				tasks, err := app.Tasks.ListByAssignee(ctx, assignee)
				if err != nil {
					return err
				}
				fmt.Print(formatter.TaskTable(tasks))
			default:
				return fmt.Errorf("either --project or --assignee is required")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "List a project's tasks")
	cmd.Flags().StringVar(&assignee, "assignee", "", "List tasks assigned to an email")

	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := app.Tasks.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.TaskDetail(task))
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var text, description, start, end, parent, assignee, classification, kind string
	var progress float64
	var open bool

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in service.UpdateTaskInput
			if cmd.Flags().Changed("text") {
				in.Text = &text
			}
			if cmd.Flags().Changed("desc") {
				in.Description = &description
			}
			if cmd.Flags().Changed("start") {
				d, err := parseDate("start", start)
				if err != nil {
					return err
				}
				in.Start = &d
			}
			if cmd.Flags().Changed("end") {
				d, err := parseDate("end", end)
				if err != nil {
					return err
				}
				in.End = &d
			}
			if cmd.Flags().Changed("parent") {
				in.Parent = &parent
			}
			if cmd.Flags().Changed("assignee") {
				in.Assignee = &assignee
			}
			if cmd.Flags().Changed("progress") {
				in.Progress = &progress
			}
			if cmd.Flags().Changed("class") {
				in.Classification = &classification
			}
			if cmd.Flags().Changed("type") {
				in.Type = &kind
			}
			if cmd.Flags().Changed("open") {
				in.Open = &open
			}

			if err := app.Tasks.Update(context.Background(), args[0], in, app.Requester); err != nil {
				return err
			}
			fmt.Println("Updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Task title")
	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent task id")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee email")
	cmd.Flags().Float64Var(&progress, "progress", 0, "Progress (0-100)")
	cmd.Flags().StringVar(&classification, "class", "", "Classification tag")
	cmd.Flags().StringVar(&kind, "type", "", "Type tag")
	cmd.Flags().BoolVar(&open, "open", false, "Whether the task renders expanded")

	return cmd
}

func newTaskDatesCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "dates <task-id>",
		Short: "Reschedule a task (baseline dates are unaffected)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var startPtr, endPtr *time.Time
			if cmd.Flags().Changed("start") {
				d, err := parseDate("start", start)
				if err != nil {
					return err
				}
				startPtr = &d
			}
			if cmd.Flags().Changed("end") {
				d, err := parseDate("end", end)
				if err != nil {
					return err
				}
				endPtr = &d
			}

			if err := app.Tasks.UpdateDates(context.Background(), args[0], startPtr, endPtr); err != nil {
				return err
			}
			fmt.Println("Rescheduled.")
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")

	return cmd
}

func newTaskStatusCmd(app *App) *cobra.Command {
	var status string
	var progress float64

	cmd := &cobra.Command{
		Use:   "status <task-id>",
		Short: "Update a task's status as its assignee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Status.UpdateStatus(context.Background(), args[0], app.Requester,
				domain.TaskStatus(status), progress)
			if err != nil {
				return err
			}
			fmt.Println("Status updated.")
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status (not_started, started, completed)")
	cmd.Flags().Float64Var(&progress, "progress", 0, "Progress (0-100); 100 completes the task")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <task-id>",
		Short: "Delete a task, its subtree, and all links touching them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Tasks.Delete(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d task(s).\n", removed)
			return nil
		},
	}
}

func newTaskManualCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "manual <task-id> <text>",
		Short: "Set a task's manual text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tasks.SetManual(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Manual set.")
			return nil
		},
	}
}

func newTaskReportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report <task-id> <text>",
		Short: "Set a task's report text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tasks.SetReport(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Report set.")
			return nil
		},
	}
}

func newTaskCommentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <task-id> <text>",
		Short: "Add a comment to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Tasks.AddComment(context.Background(), args[0], args[1], app.Requester); err != nil {
				return err
			}
			fmt.Println("Comment added.")
			return nil
		},
	}
}

func newTaskCommentsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "comments <task-id>",
		Short: "List a task's comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comments, err := app.Tasks.ListComments(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.CommentList(comments))
			return nil
		},
	}
}

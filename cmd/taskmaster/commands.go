package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"taskmaster/internal/todo"
)

func addCmd(configPath *string) *cobra.Command {
	var due string
	var recurring bool
	cmd := &cobra.Command{
		Use:   "add [text...]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			dueDate, err := todo.ParseDueInput(due, a.store.Today())
			if err != nil {
				return err
			}
			task, added, err := a.store.Add(strings.Join(args, " "), dueDate, recurring)
			if !added {
				return errors.New("task text is empty")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", task.ID, task.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().BoolVarP(&recurring, "recurring", "r", false, "Reopen the task every day")

	return cmd
}

func listCmd(configPath *string) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			f := a.store.Filter()
			if filter != "" {
				if f, err = todo.ParseFilter(filter); err != nil {
					return err
				}
			}
			printTasks(cmd.OutOrStdout(), a.store.VisibleTasks(f), a.store.Today())
			s := a.store.Summary()
			fmt.Fprintf(cmd.OutOrStdout(), "%d tasks left\n", s.Remaining)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "all, active, completed, important, today, upcoming")

	return cmd
}

func clearCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			removed, err := a.store.ClearCompleted()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed tasks\n", removed)
			return nil
		},
	}
}

func exportCmd(configPath *string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			tasks := a.store.Tasks()
			var data []byte
			switch strings.ToLower(format) {
			case "json":
				data, err = json.MarshalIndent(tasks, "", "  ")
				data = append(data, '\n')
			case "yaml", "yml":
				data, err = yaml.Marshal(tasks)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, yaml)")

	return cmd
}

func importCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace all tasks with a JSON task list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var tasks []todo.Task
			if err := json.Unmarshal(data, &tasks); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Replace(tasks); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks\n", len(tasks))
			return nil
		},
	}
}

func printTasks(w io.Writer, tasks []todo.Task, today todo.Date) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}
	for _, t := range tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		star := " "
		if t.Important {
			star = "*"
		}
		line := fmt.Sprintf("%s %s %d %s", check, star, t.ID, t.Text)
		if t.DueDate != nil {
			label := todo.FormatDue(*t.DueDate, today)
			if t.Overdue(today) {
				label = "overdue: " + label
			}
			line += " (" + label + ")"
		}
		if t.Recurring {
			line += " [daily]"
		}
		fmt.Fprintln(w, line)
	}
}

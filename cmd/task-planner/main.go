package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/suhan647/task-planner/pkg/dategrid"
	"github.com/suhan647/task-planner/pkg/storage"
	"github.com/suhan647/task-planner/pkg/task"
	"github.com/suhan647/task-planner/pkg/tui"
)

var (
	jsonOutput bool
	dataDir    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "task-planner",
		Short: "A month-view calendar task planner",
		Long: "task-planner - a month-view calendar for the terminal.\n" +
			"Drag across days to create tasks, drag tasks to move them, and\n" +
			"drag their edge handles to resize. Runs the TUI when no\n" +
			"subcommand is given.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default $TASK_PLANNER_DIR or the platform data dir)")

	rootCmd.AddCommand(
		listCmd(),
		addCmd(),
		rmCmd(),
		searchCmd(),
		clearCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if dir := os.Getenv("TASK_PLANNER_DIR"); dir != "" {
		return dir
	}
	return storage.DefaultDataDir()
}

func openStores() (*task.Store, *storage.Store, error) {
	adapter, err := storage.NewStore(resolveDataDir())
	if err != nil {
		return nil, nil, err
	}
	loaded, err := adapter.Load()
	if err != nil {
		return nil, nil, err
	}
	tasks := task.NewStore()
	tasks.Replace(loaded)
	return tasks, adapter, nil
}

func runTUI() error {
	tasks, adapter, err := openStores()
	if err != nil {
		return err
	}

	m := tui.NewModel(tasks, adapter)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// Start file watcher so outside edits show up live
	cleanup, err := tui.StartWatcher(adapter.Root, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watcher failed: %v\n", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}

// listCmd implements 'task-planner list'.
func listCmd() *cobra.Command {
	var category string
	var weeks int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(_ *cobra.Command, _ []string) error {
			tasks, _, err := openStores()
			if err != nil {
				return err
			}

			if category != "" {
				c := task.Category(category)
				if !task.IsValidCategory(c) {
					return fmt.Errorf("invalid category: %s (use %s)", category, joinCategories())
				}
				tasks.ToggleCategory(c)
			}
			switch weeks {
			case 0:
			case 1:
				tasks.SetFrame(dategrid.FrameWeek)
			case 2:
				tasks.SetFrame(dategrid.FrameTwoWeeks)
			case 3:
				tasks.SetFrame(dategrid.FrameThreeWeeks)
			default:
				return fmt.Errorf("invalid --weeks: %d (use 1, 2 or 3)", weeks)
			}

			return printTasks(tasks.Query())
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")
	cmd.Flags().IntVarP(&weeks, "weeks", "w", 0, "Only tasks overlapping the next N weeks (1-3)")
	return cmd
}

// addCmd implements 'task-planner add'.
func addCmd() *cobra.Command {
	var category, start, end string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tasks, adapter, err := openStores()
			if err != nil {
				return err
			}

			c := task.Category(category)
			if !task.IsValidCategory(c) {
				return fmt.Errorf("invalid category: %s (use %s)", category, joinCategories())
			}

			startDate, err := parseDate(start)
			if err != nil {
				return err
			}
			endDate := startDate
			if end != "" {
				endDate, err = parseDate(end)
				if err != nil {
					return err
				}
			}

			t := task.New(args[0], c, startDate, endDate)
			if err := tasks.Add(t); err != nil {
				return err
			}
			if err := adapter.Save(tasks.All()); err != nil {
				return err
			}

			if jsonOutput {
				return outputJSON(taskToMap(t))
			}
			fmt.Printf("Created: %s (%s)\n", t.Title, t.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(task.CategoryToDo), "Category")
	cmd.Flags().StringVarP(&start, "start", "s", time.Now().UTC().Format("2006-01-02"), "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&end, "end", "e", "", "End date (YYYY-MM-DD, defaults to start)")
	return cmd
}

// rmCmd implements 'task-planner rm'.
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tasks, adapter, err := openStores()
			if err != nil {
				return err
			}

			if err := tasks.Remove(args[0]); err != nil {
				return err
			}
			if err := adapter.Save(tasks.All()); err != nil {
				return err
			}

			if jsonOutput {
				return outputJSON(map[string]string{"removed": args[0]})
			}
			fmt.Printf("Removed: %s\n", args[0])
			return nil
		},
	}
}

// searchCmd implements 'task-planner search'.
func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search tasks by title or category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tasks, _, err := openStores()
			if err != nil {
				return err
			}

			tasks.SetSearch(strings.Join(args, " "))
			matches := tasks.Query()

			if !jsonOutput && len(matches) == 0 {
				fmt.Println("No matches found.")
				return nil
			}
			return printTasks(matches)
		},
	}
}

// clearCmd implements 'task-planner clear'.
func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks",
		RunE: func(_ *cobra.Command, _ []string) error {
			adapter, err := storage.NewStore(resolveDataDir())
			if err != nil {
				return err
			}
			if err := adapter.Clear(); err != nil {
				return err
			}
			if jsonOutput {
				return outputJSON(map[string]string{"cleared": adapter.Root})
			}
			fmt.Println("All tasks deleted.")
			return nil
		},
	}
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

func joinCategories() string {
	names := make([]string, len(task.Categories))
	for i, c := range task.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func printTasks(tasks []task.Task) error {
	if jsonOutput {
		maps := make([]map[string]interface{}, 0, len(tasks))
		for _, t := range tasks {
			maps = append(maps, taskToMap(t))
		}
		return outputJSON(maps)
	}

	for _, t := range tasks {
		dates := t.StartDate.Format("2006-01-02")
		if !dategrid.SameDay(t.StartDate, t.EndDate) {
			dates += " – " + t.EndDate.Format("2006-01-02")
		}
		fmt.Printf("%s  [%s]  %s  (%s)\n", dates, t.Category, t.Title, t.ID)
	}
	return nil
}

// JSON helpers

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func taskToMap(t task.Task) map[string]interface{} {
	m := map[string]interface{}{
		"id":       t.ID,
		"title":    t.Title,
		"category": string(t.Category),
		"start":    t.StartDate.Format("2006-01-02"),
		"end":      t.EndDate.Format("2006-01-02"),
	}
	if !t.CreatedAt.IsZero() {
		m["created"] = t.CreatedAt.Format(time.RFC3339)
	}
	return m
}

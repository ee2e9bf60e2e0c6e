package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"apptrack/internal/client"
	"apptrack/internal/config"
	"apptrack/internal/export"
	"apptrack/internal/tracker"
	"apptrack/internal/tui"
)

var newAPIClient = func() (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return client.New(cfg.Client.BaseURL), nil
}

// --- tui ---

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive tracker UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}
		ctrl := client.NewController(api)
		_, err = tea.NewProgram(tui.New(ctrl), tea.WithAltScreen()).Run()
		return err
	},
}

// --- list ---

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("status")

		api, err := newAPIClient()
		if err != nil {
			return err
		}
		records, err := api.List(cmd.Context())
		if err != nil {
			return err
		}

		state := client.NewState()
		state.Records = records
		if filter != "" {
			state.Filter = filter
		}

		visible := state.Visible()
		if len(visible) == 0 {
			fmt.Println("No applications.")
			return nil
		}
		for _, r := range visible {
			fmt.Printf("%s  %-20s %-28s %-12s %s\n",
				r.ID, truncate(r.Company, 20), truncate(r.Role, 28), r.Status, r.UpdatedAt.Local().Format("2006-01-02"))
		}

		stats := state.Stats()
		fmt.Printf("\n%d total · %d active · %d interviews · %d offers\n",
			stats.Total, stats.Active, stats.Interviews, stats.Offers)
		return nil
	},
}

// --- add ---

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an application",
	Example: `  apptrack add --company Google --role "Software Engineer"
  apptrack add --company Stripe --role "Intern" --type Internship --status Applied`,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		rec, err := api.Create(cmd.Context(), patchFromFlags(cmd))
		if err != nil {
			return err
		}
		printSuccess("Added %s — %s (%s)", rec.Company, rec.Role, rec.ID)
		return nil
	},
}

// --- update ---

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}

		rec, err := api.Update(cmd.Context(), args[0], patchFromFlags(cmd))
		if err != nil {
			return err
		}
		printSuccess("Updated %s — %s, now %s", rec.Company, rec.Role, rec.Status)
		return nil
	},
}

// --- delete ---

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an application permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPIClient()
		if err != nil {
			return err
		}
		if err := api.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		printSuccess("Deleted %s", args[0])
		return nil
	},
}

// --- export ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all applications to a color-coded spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = export.Filename(time.Now())
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}
		records, err := api.List(cmd.Context())
		if err != nil {
			return err
		}

		f, err := export.Workbook(records)
		if err != nil {
			return fmt.Errorf("building workbook: %w", err)
		}
		defer f.Close()

		out, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
		if err := f.Write(out); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}

		printSuccess("Exported %d applications to %s", len(records), output)
		return nil
	},
}

// --- status ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tracker status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		api := client.New(cfg.Client.BaseURL)
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
		defer cancel()

		records, err := api.List(ctx)
		if err != nil {
			printStatus("Server", "not reachable at %s", cfg.Client.BaseURL)
			return nil
		}

		state := client.NewState()
		state.Records = records
		stats := state.Stats()

		printStatus("Server", "running at %s", cfg.Client.BaseURL)
		printStatus("Applications", "%d", stats.Total)
		printStatus("Active", "%d", stats.Active)
		printStatus("Interviews", "%d", stats.Interviews)
		printStatus("Offers", "%d", stats.Offers)
		return nil
	},
}

func init() {
	listCmd.Flags().String("status", "", "show only applications with this status")
	exportCmd.Flags().String("output", "", "output file path (default: job_applications_<date>.xlsx)")

	for _, cmd := range []*cobra.Command{addCmd, updateCmd} {
		cmd.Flags().String("company", "", "company name")
		cmd.Flags().String("role", "", "role or position title")
		cmd.Flags().String("type", "", "Job or Internship")
		cmd.Flags().String("status", "", "pipeline status (Saved, Applied, Phone Screen, Interview, Offer, Rejected, Withdrawn)")
		cmd.Flags().String("location", "", "location")
		cmd.Flags().String("salary", "", "salary range, free text")
		cmd.Flags().String("link", "", "job posting URL")
		cmd.Flags().String("notes", "", "notes")
	}
}

// patchFromFlags builds a partial record from the flags the user actually
// set; untouched flags stay out of the patch so updates merge correctly.
func patchFromFlags(cmd *cobra.Command) tracker.Patch {
	var patch tracker.Patch
	str := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}

	patch.Company = str("company")
	patch.Role = str("role")
	patch.Location = str("location")
	patch.Salary = str("salary")
	patch.Link = str("link")
	patch.Notes = str("notes")
	if v := str("type"); v != nil {
		t := tracker.Type(*v)
		patch.Type = &t
	}
	if v := str("status"); v != nil {
		s := tracker.Status(*v)
		patch.Status = &s
	}
	return patch
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

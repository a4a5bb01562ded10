package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/repository"
	"github.com/yukikurage/request-board/internal/services"
)

func newRequestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Inspect and update project requests",
	}
	cmd.AddCommand(newRequestsListCmd(), newRequestsAdvanceCmd())
	return cmd
}

func newRequestsListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requests with their progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !models.RequestStatus(status).Valid() {
				return fmt.Errorf("unknown status %q", status)
			}
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			board, err := openBoard(cfg, log)
			if err != nil {
				return err
			}

			requests := services.FilterRequests(board.Requests.List(), services.RequestQuery{
				Status: models.RequestStatus(status),
			})
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPROJECT\tTEAM\tPRIORITY\tSTATUS\tPROGRESS")
			for _, r := range requests {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d%%\n",
					r.ID, r.ProjectName, r.Team, r.Priority, r.Status, r.Progress())
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only show requests with this status")
	return cmd
}

func newRequestsAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance <id>",
		Short: "Move a request to its next status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			board, err := openBoard(cfg, log)
			if err != nil {
				return err
			}

			req, err := board.Requests.AdvanceStatus(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d%%)\n", req.ProjectName, req.Status, req.Progress())
			return nil
		},
	}
}

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect registered users",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			board, err := openBoard(cfg, log)
			if err != nil {
				return err
			}

			session := board.Session(repository.NewMemoryKVRepository())
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
			for _, u := range session.Users.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
			}
			return w.Flush()
		},
	})
	return cmd
}

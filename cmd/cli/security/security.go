package security

import (
	"fmt"

	"github.com/rfalmeida/facility-control/cmd/cli/auth"
	"github.com/rfalmeida/facility-control/cmd/cli/output"
	"github.com/rfalmeida/facility-control/cmd/cli/root"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/spf13/cobra"
)

func init() {
	securityCmd := &cobra.Command{
		Use:   "security",
		Short: "Security monitoring",
	}

	securityCmd.AddCommand(statsCmd(), logsCmd())
	root.GetRoot().AddCommand(securityCmd)
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's access statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var stats struct {
				TodayLogs   int `json:"today_logs"`
				DeniedToday int `json:"denied_today"`
				ActiveAreas int `json:"active_areas"`
			}
			if err := auth.Get("/v1/security", &stats); err != nil {
				return err
			}

			fmt.Printf("Access events today: %d\n", stats.TodayLogs)
			fmt.Printf("Denied today:        %d\n", stats.DeniedToday)
			fmt.Printf("Active areas:        %d\n", stats.ActiveAreas)
			return nil
		},
	}
}

func logsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent access logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			var logs []models.AccessLogDetail
			path := fmt.Sprintf("/v1/access-logs?limit=%d", limit)
			if err := auth.Get(path, &logs); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(logs))
			for _, l := range logs {
				rows = append(rows, []interface{}{
					l.Timestamp.Format("2006-01-02 15:04"),
					l.UserName,
					l.AreaName,
					l.Action,
					l.Notes,
				})
			}
			output.RenderTable([]string{"Time", "User", "Area", "Action", "Notes"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of logs to show")
	return cmd
}

package access

import (
	"fmt"

	"github.com/rfalmeida/facility-control/cmd/cli/auth"
	"github.com/rfalmeida/facility-control/cmd/cli/root"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/spf13/cobra"
)

func init() {
	accessCmd := &cobra.Command{
		Use:   "access",
		Short: "Request entry to or record exit from restricted areas",
	}

	accessCmd.AddCommand(requestCmd(), exitCmd())
	root.GetRoot().AddCommand(accessCmd)
}

type decisionResponse struct {
	Decision struct {
		Granted bool   `json:"granted"`
		Action  string `json:"action"`
		Reason  string `json:"reason"`
	} `json:"decision"`
	Log models.AccessLog `json:"log"`
}

func requestCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "request <area-id>",
		Short: "Request entry to a restricted area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"notes": notes}

			var out decisionResponse
			if err := auth.Send("POST", "/v1/areas/"+args[0]+"/access", payload, &out); err != nil {
				return err
			}

			if out.Decision.Granted {
				fmt.Printf("GRANTED: entry recorded at %s (log #%d)\n",
					out.Log.Timestamp.Format("15:04:05"), out.Log.ID)
			} else {
				fmt.Printf("DENIED (%s): denial recorded (log #%d)\n",
					out.Decision.Reason, out.Log.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "optional notes for the access log")
	return cmd
}

func exitCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "exit <area-id>",
		Short: "Record an exit from a restricted area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"notes": notes}

			var logRow models.AccessLog
			if err := auth.Send("POST", "/v1/areas/"+args[0]+"/exit", payload, &logRow); err != nil {
				return err
			}
			fmt.Printf("Exit recorded at %s (log #%d)\n",
				logRow.Timestamp.Format("15:04:05"), logRow.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "optional notes for the access log")
	return cmd
}

package areas

import (
	"encoding/json"
	"fmt"

	"github.com/rfalmeida/facility-control/cmd/cli/auth"
	"github.com/rfalmeida/facility-control/cmd/cli/output"
	"github.com/rfalmeida/facility-control/cmd/cli/root"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/spf13/cobra"
)

func init() {
	areasCmd := &cobra.Command{
		Use:   "areas",
		Short: "View restricted areas",
	}

	areasCmd.AddCommand(listAreasCmd())
	root.GetRoot().AddCommand(areasCmd)
}

func listAreasCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List restricted areas",
		RunE: func(cmd *cobra.Command, args []string) error {
			var areas []models.RestrictedArea
			if err := auth.Get("/v1/areas", &areas); err != nil {
				return err
			}

			if asJSON {
				b, _ := json.MarshalIndent(areas, "", "  ")
				fmt.Println(string(b))
				return nil
			}

			rows := make([][]interface{}, 0, len(areas))
			for _, a := range areas {
				active := "yes"
				if !a.IsActive {
					active = "no"
				}
				rows = append(rows, []interface{}{a.ID, a.Name, a.RequiredAccessLevel, active})
			}
			output.RenderTable([]string{"ID", "Name", "Required Level", "Active"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

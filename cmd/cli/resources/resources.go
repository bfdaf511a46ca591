package resources

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rfalmeida/facility-control/cmd/cli/auth"
	"github.com/rfalmeida/facility-control/cmd/cli/output"
	"github.com/rfalmeida/facility-control/cmd/cli/root"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/spf13/cobra"
)

func init() {
	resourcesCmd := &cobra.Command{
		Use:   "resources",
		Short: "Manage the facility resource catalog",
	}

	resourcesCmd.AddCommand(
		listResourcesCmd(),
		createResourceCmd(),
		deleteResourceCmd(),
	)

	root.GetRoot().AddCommand(resourcesCmd)
}

func listResourcesCmd() *cobra.Command {
	var asJSON bool
	var typeFilter, statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if typeFilter != "" {
				q.Set("type", typeFilter)
			}
			if statusFilter != "" {
				q.Set("status", statusFilter)
			}
			path := "/v1/resources"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var resources []models.Resource
			if err := auth.Get(path, &resources); err != nil {
				return err
			}

			if asJSON {
				b, _ := json.MarshalIndent(resources, "", "  ")
				fmt.Println(string(b))
				return nil
			}

			rows := make([][]interface{}, 0, len(resources))
			for _, r := range resources {
				rows = append(rows, []interface{}{r.ID, r.Type, r.Name, r.Status, r.Location})
			}
			output.RenderTable([]string{"ID", "Type", "Name", "Status", "Location"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	cmd.Flags().StringVar(&typeFilter, "type", "", "filter by type (equipment, vehicle, security_device)")
	cmd.Flags().StringVar(&statusFilter, "status", "", "filter by status (available, in_use, maintenance, retired)")
	return cmd
}

func createResourceCmd() *cobra.Command {
	var name, typ, status, description, location string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"name":        name,
				"type":        typ,
				"status":      status,
				"description": description,
				"location":    location,
			}

			var res models.Resource
			if err := auth.Send("POST", "/v1/resources", payload, &res); err != nil {
				return err
			}
			fmt.Printf("Created resource %d: %s\n", res.ID, res.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "resource name (required)")
	cmd.Flags().StringVar(&typ, "type", "equipment", "resource type")
	cmd.Flags().StringVar(&status, "status", "available", "resource status")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&location, "location", "", "location")
	cmd.MarkFlagRequired("name")
	return cmd
}

func deleteResourceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.Send("DELETE", "/v1/resources/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Println("Resource deleted.")
			return nil
		},
	}
}

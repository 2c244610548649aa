package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fsmkit"
	"github.com/dmitrymomot/fsmkit/internal/article"
	"github.com/dmitrymomot/fsmkit/pkg/store"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the generated transition routes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("output")
		reg, err := article.NewRegistry(store.NewMemory(article.Key), nil)
		if err != nil {
			return err
		}
		return writeRoutes(cmd.OutOrStdout(), "/"+article.Resource, reg.Routes(), format)
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.Flags().StringP("output", "o", "yaml", "Output format: yaml or json")
}

// writeRoutes prints routes with patterns prefixed by the mount point.
func writeRoutes(w io.Writer, prefix string, routes []fsmkit.Route, format string) error {
	out := make([]fsmkit.Route, len(routes))
	for i, r := range routes {
		r.Pattern = prefix + r.Pattern
		out[i] = r
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wrp-ops/opsconsole/internal/app/access"
	"github.com/wrp-ops/opsconsole/internal/platform/config"
)

func runRoutes(cmd *cobra.Command) error {
	rules, err := config.LoadAccessRules(os.Getenv("ACCESS_CONFIG"))
	if err != nil {
		return err
	}
	table, err := access.NewRouteTable(rules)
	if err != nil {
		return fmt.Errorf("invalid access rules: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tROLES")
	for _, e := range table.Entries() {
		roles := strings.Join(e.Roles, ",")
		if roles == "" {
			roles = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\n", e.Path, roles)
	}
	fmt.Fprintf(tw, "(denied)\t-> %s\n", table.Ops().Fallback())
	return tw.Flush()
}

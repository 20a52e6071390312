package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-ranker/internal/roles"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the role catalog",
	Long:  "Lists every role with its URL slug, additional roles and excluded roles. The first role is the default.",
	RunE:  runRoles,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(cmd *cobra.Command, _ []string) error {
	library, err := loadLibrary(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tROLE\tMATCHES\tEXCLUDES")

	defaultRole := library.Roles.Default()
	for _, role := range library.Roles.All() {
		name := roles.WithArticle(role.ID)
		if role == defaultRole {
			name += " (default)"
		}
		_, _ = fmt.Fprintf(w, "/%s\t%s\t%s\t%s\n",
			roles.MakePath(role.ID),
			name,
			orDash(strings.Join(role.MatchIDs(), ", ")),
			orDash(strings.Join(role.NotMatchIDs(), ", ")),
		)
	}

	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/store"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		owner     string
		published bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an owner's quiz documents",
		Long: `List an owner's quiz documents, drafts by default.

Use --published to list published documents instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}

			st, err := store.Open(rootOpts.DBPath)
			if err != nil {
				formatter.Error(ErrCodeDB, err.Error(), nil)
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer st.Close()

			records, err := st.Query(cmd.Context(), owner, published)
			if err != nil {
				formatter.Error(ErrCodeDB, err.Error(), nil)
				return WrapExitError(ExitCommandError, "query store", err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(records)
			}

			if len(records) == 0 {
				return formatter.Success("no documents")
			}
			var b strings.Builder
			for _, rec := range records {
				id, _ := rec["id"].(string)
				title, _ := rec["title"].(string)
				updated, _ := rec["updatedAt"].(string)
				fmt.Fprintf(&b, "%s  %-30q  updated %s\n", id, title, updated)
			}
			return formatter.Success(strings.TrimRight(b.String(), "\n"))
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner id (required)")
	cmd.Flags().BoolVar(&published, "published", false, "list published documents instead of drafts")
	cmd.MarkFlagRequired("owner")

	return cmd
}

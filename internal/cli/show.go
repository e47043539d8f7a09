package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/store"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <document-id>",
		Short: "Print a stored quiz document record",
		Long: `Print the full stored record of a quiz document as JSON.

The output is the exact persisted record, suitable as input to validate.`,
		Args:          cobra.ExactArgs(1),
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

			rec, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					formatter.Error(ErrCodeNotFound, err.Error(), nil)
					return WrapExitError(ExitCommandError, "document not found", err)
				}
				formatter.Error(ErrCodeDB, err.Error(), nil)
				return WrapExitError(ExitCommandError, "read record", err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(rec)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(rec)
		},
	}
	return cmd
}

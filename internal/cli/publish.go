package cli

import (
	"github.com/spf13/cobra"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/autosave"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/store"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/tier"
)

// NewPublishCommand creates the publish command.
func NewPublishCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		owner     string
		tierName  string
		tiersFile string
	)

	cmd := &cobra.Command{
		Use:   "publish <document-id>",
		Short: "Publish a quiz document",
		Long: `Transition a draft quiz document to published.

Publishing counts against the owner's tier published-document quota. The
current structural content is snapshotted; later draft edits do not change
the published version.`,
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

			limits, err := loadLimits(tiersFile, tierName)
			if err != nil {
				formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "load tier config", err)
			}

			st, err := store.Open(rootOpts.DBPath)
			if err != nil {
				formatter.Error(ErrCodeDB, err.Error(), nil)
				return WrapExitError(ExitCommandError, "open store", err)
			}
			defer st.Close()

			if err := autosave.Publish(cmd.Context(), st, limits, args[0], owner, nil); err != nil {
				if autosave.IsPublishLimitReached(err) {
					formatter.Error(ErrCodeQuota, err.Error(), nil)
					return WrapExitError(ExitFailure, "publish limit reached", err)
				}
				formatter.Error(ErrCodeDB, err.Error(), nil)
				return WrapExitError(ExitCommandError, "publish document", err)
			}

			formatter.VerboseLog("published %s", args[0])
			return formatter.Success(map[string]any{"id": args[0], "isPublished": true})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner id (required)")
	cmd.Flags().StringVar(&tierName, "tier", tier.DefaultTier, "owner subscription tier")
	cmd.Flags().StringVar(&tiersFile, "tiers-file", "", "YAML tier limits file (built-in defaults when empty)")
	cmd.MarkFlagRequired("owner")

	return cmd
}

package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/assets"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/autosave"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/blob"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/editor"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/quiz"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/store"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/tier"
)

// Error codes for CLI error responses.
const (
	ErrCodeDB       = "E_DB"
	ErrCodeNotFound = "E_NOT_FOUND"
	ErrCodeQuota    = "E_QUOTA"
	ErrCodeSchema   = "E_SCHEMA"
	ErrCodeGeneric  = "E_GENERIC"
)

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		owner     string
		title     string
		tierName  string
		tiersFile string
		assetsDir string
		assetsURL string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a draft quiz document",
		Long: `Create a new draft quiz document for an owner and commit it.

The draft starts from the default two-step document (intro and result) with
the given title. Creation counts against the owner's tier draft quota.`,
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

			gen := quiz.UUIDv7Generator{}
			docID := gen.NewID()

			ed := editor.New(gen)
			doc, _ := ed.Snapshot()
			intro := doc.Steps[0]
			for _, b := range intro.Blocks {
				if b.Type == quiz.BlockHeading {
					ed.UpdateBlock(intro.ID, b.ID, &quiz.HeadingConfig{Title: title})
					break
				}
			}

			pipe := assets.New(blob.NewDiskStore(assetsDir, assetsURL), slog.Default())
			committer := autosave.NewCommitter(docID, owner, ed, st, pipe, limits, slog.Default(), nil)

			committed, err := committer.Commit(cmd.Context())
			if err != nil {
				if autosave.IsDraftLimitReached(err) {
					formatter.Error(ErrCodeQuota, err.Error(), nil)
					return WrapExitError(ExitFailure, "draft limit reached", err)
				}
				formatter.Error(ErrCodeDB, err.Error(), nil)
				return WrapExitError(ExitCommandError, "commit draft", err)
			}
			if !committed {
				formatter.Error(ErrCodeGeneric, "nothing to commit", nil)
				return NewExitError(ExitFailure, "nothing to commit")
			}

			formatter.VerboseLog("created draft %s for owner %s", docID, owner)
			return formatter.Success(map[string]any{"id": docID, "ownerId": owner})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner id (required)")
	cmd.Flags().StringVar(&title, "title", "Untitled quiz", "quiz title")
	cmd.Flags().StringVar(&tierName, "tier", tier.DefaultTier, "owner subscription tier")
	cmd.Flags().StringVar(&tiersFile, "tiers-file", "", "YAML tier limits file (built-in defaults when empty)")
	cmd.Flags().StringVar(&assetsDir, "assets-dir", "assets", "directory migrated assets are written under")
	cmd.Flags().StringVar(&assetsURL, "assets-url", "/assets", "public URL prefix for migrated assets")
	cmd.MarkFlagRequired("owner")

	return cmd
}

// loadLimits resolves tier limits from an optional YAML file, falling back
// to the built-in defaults.
func loadLimits(tiersFile, tierName string) (tier.Limits, error) {
	cfg := tier.DefaultConfig()
	if tiersFile != "" {
		loaded, err := tier.Load(tiersFile)
		if err != nil {
			return tier.Limits{}, err
		}
		cfg = loaded
	}
	return cfg.For(tierName), nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	_ "embed"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/cobra"
)

//go:embed schema.cue
var schemaCUE string

// ValidationIssue is one problem found in a record.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <record.json>",
		Short: "Validate an exported quiz record against the schema",
		Long: `Validate an exported quiz document record (as printed by show) against
the embedded CUE schema, plus the ordering rules the schema cannot express:
exactly one intro step first, exactly one result step last, both fixed, and
no inline-encoded assets left in the record.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "read record file", err)
	}

	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		formatter.Error(ErrCodeSchema, fmt.Sprintf("not valid JSON: %v", err), nil)
		return WrapExitError(ExitFailure, "parse record file", err)
	}

	issues := validateRecord(rec, formatter)
	result := ValidationResult{Valid: len(issues) == 0, Issues: issues}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if result.Valid {
		formatter.Success("valid")
	} else {
		for _, issue := range issues {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", issue.Field, issue.Message)
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation issue(s)", len(issues)))
	}
	return nil
}

// validateRecord runs the CUE schema check followed by the ordering checks.
func validateRecord(rec map[string]any, formatter *OutputFormatter) []ValidationIssue {
	var issues []ValidationIssue

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		// The schema is embedded; failing to compile it is a bug, not
		// a property of the record under validation.
		panic(fmt.Sprintf("cli: embedded schema does not compile: %v", err))
	}

	quizSchema := schema.LookupPath(cue.ParsePath("#Quiz"))
	formatter.VerboseLog("checking record against #Quiz schema")

	unified := quizSchema.Unify(ctx.Encode(rec))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		for _, e := range cueerrors.Errors(err) {
			issues = append(issues, ValidationIssue{
				Field:   strings.Join(e.Path(), "."),
				Message: e.Error(),
			})
		}
	}

	issues = append(issues, validateOrdering(rec)...)
	issues = append(issues, validateNoInlineAssets(rec)...)
	return issues
}

// validateOrdering enforces what the schema cannot: the intro anchor is
// first, the result anchor is last, exactly one of each, both fixed.
func validateOrdering(rec map[string]any) []ValidationIssue {
	steps, ok := rec["steps"].([]any)
	if !ok {
		return []ValidationIssue{{Field: "steps", Message: "missing or not an array"}}
	}
	if len(steps) < 2 {
		return []ValidationIssue{{Field: "steps", Message: "must contain at least the intro and result steps"}}
	}

	var issues []ValidationIssue
	intros, results := 0, 0
	for i, raw := range steps {
		step, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		stepType, _ := step["type"].(string)
		fixed, _ := step["isFixed"].(bool)
		field := fmt.Sprintf("steps[%d]", i)

		switch stepType {
		case "intro":
			intros++
			if i != 0 {
				issues = append(issues, ValidationIssue{Field: field, Message: "intro step must be first"})
			}
			if !fixed {
				issues = append(issues, ValidationIssue{Field: field, Message: "intro step must be fixed"})
			}
		case "result":
			results++
			if i != len(steps)-1 {
				issues = append(issues, ValidationIssue{Field: field, Message: "result step must be last"})
			}
			if !fixed {
				issues = append(issues, ValidationIssue{Field: field, Message: "result step must be fixed"})
			}
		default:
			if fixed {
				issues = append(issues, ValidationIssue{Field: field, Message: "only the intro and result steps may be fixed"})
			}
		}
	}
	if intros != 1 {
		issues = append(issues, ValidationIssue{Field: "steps", Message: fmt.Sprintf("expected exactly one intro step, found %d", intros)})
	}
	if results != 1 {
		issues = append(issues, ValidationIssue{Field: "steps", Message: fmt.Sprintf("expected exactly one result step, found %d", results)})
	}
	return issues
}

// validateNoInlineAssets rejects records still carrying inline-encoded
// assets: committed documents hold durable references only.
func validateNoInlineAssets(rec map[string]any) []ValidationIssue {
	var issues []ValidationIssue
	var walk func(field string, v any)
	walk = func(field string, v any) {
		switch val := v.(type) {
		case string:
			if strings.HasPrefix(val, "data:") {
				issues = append(issues, ValidationIssue{Field: field, Message: "inline-encoded asset in persisted record"})
			}
		case map[string]any:
			for k, elem := range val {
				walk(field+"."+k, elem)
			}
		case []any:
			for i, elem := range val {
				walk(fmt.Sprintf("%s[%d]", field, i), elem)
			}
		}
	}
	walk("record", rec)
	return issues
}

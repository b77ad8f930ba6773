package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/spf13/cobra"
)

var (
	validateSchema string
	validateJSON   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON payload against an API schema",
	Long:  `Check a request body file against one of the embedded schemas (job_new, job_update, job_search).`,
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Schema name (required)")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to JSON file (required)")

	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("json")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(validateJSON)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", validateJSON, err)
	}

	err = schemas.Validate(validateSchema, data)
	if err == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
		return nil
	}

	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		observability.NewPrinter(cmd.OutOrStdout()).PrintValidationErrors(verr)
	}
	return err
}

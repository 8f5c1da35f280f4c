package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccbj/ccbj-forms/internal/mask"
	"github.com/ccbj/ccbj-forms/internal/model"
	"github.com/ccbj/ccbj-forms/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <kind> <value>",
	Short: "Validate a single field value",
	Long: `Validate a single form field.

Kinds:
  cpf       Brazilian individual taxpayer number (masked or digits)
  cnpj      Brazilian company registry number (masked or digits)
  email     email address
  date      calendar date in DD/MM/YYYY form
  telefone  phone number with 10 or 11 digits

Examples:
  ccbj-forms validate cpf 529.982.247-25
  ccbj-forms validate date 29/02/2024
  ccbj-forms validate range 01/01/2024 31/12/2024`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

var validateRangeCmd = &cobra.Command{
	Use:   "range <start> <end>",
	Short: "Check that a DD/MM/YYYY date range is ordered",
	Long: `Check that start is not after end. An empty bound is always
consistent; pass "" to leave one out.`,
	Args: cobra.ExactArgs(2),
	RunE: runValidateRange,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.AddCommand(validateRangeCmd)
}

// FieldResult is the outcome of one field check
type FieldResult struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

func fieldValidator(kind string) (func(string) bool, error) {
	switch kind {
	case "cpf":
		return validate.IsValidCPF, nil
	case "cnpj":
		return validate.IsValidCNPJ, nil
	case "email":
		return validate.IsValidEmail, nil
	case "date", "data":
		return validate.IsValidDate, nil
	}

	k, err := mask.ParseKind(kind)
	if err != nil {
		return nil, fmt.Errorf("unknown field kind: %s", kind)
	}
	field, _ := mask.FieldFor(k)
	return field.Validate, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	check, err := fieldValidator(args[0])
	if err != nil {
		return err
	}

	result := FieldResult{Kind: args[0], Value: args[1], Valid: check(args[1])}
	return reportField(cmd, result)
}

func runValidateRange(cmd *cobra.Command, args []string) error {
	result := FieldResult{
		Kind:  "range",
		Value: fmt.Sprintf("%s..%s", args[0], args[1]),
		Valid: validate.IsDateRangeConsistent(args[0], args[1]),
	}
	return reportField(cmd, result)
}

func reportField(cmd *cobra.Command, r FieldResult) error {
	out := cmd.OutOrStdout()
	if jsonOutput() {
		if err := printJSON(out, r); err != nil {
			return err
		}
	} else if r.Valid {
		fmt.Fprintf(out, "✓ %s %s: VALID\n", r.Kind, r.Value)
	} else {
		fmt.Fprintf(out, "✗ %s %s: INVALID\n", r.Kind, r.Value)
	}

	if !r.Valid {
		return model.NewValidationError(r.Kind, r.Value, "format", "invalid value")
	}
	return nil
}

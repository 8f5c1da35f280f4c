package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccbj/ccbj-forms/internal/mask"
)

var maskBackspace bool

var maskCmd = &cobra.Command{
	Use:   "mask <kind> <current> [keystroke]",
	Short: "Apply an input mask to a field value",
	Long: `Apply one keystroke to a masked field and print the new value.
Without a keystroke the current value is re-masked as a whole.

Kinds: cpf, cnpj, telefone, date

Examples:
  ccbj-forms mask cpf 123.456.789-0 9     # 123.456.789-09
  ccbj-forms mask telefone 85999998888    # (85) 99999-8888
  ccbj-forms mask date 01/02/2 --backspace`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runMask,
}

func init() {
	rootCmd.AddCommand(maskCmd)

	maskCmd.Flags().BoolVar(&maskBackspace, "backspace", false, "Remove the last digit instead of typing")
}

// MaskResult is the field after a keystroke
type MaskResult struct {
	Value    string `json:"value"`
	Digits   string `json:"digits"`
	Accepted bool   `json:"accepted"`
	Complete bool   `json:"complete"`
}

func runMask(cmd *cobra.Command, args []string) error {
	kind, err := mask.ParseKind(args[0])
	if err != nil {
		return err
	}
	field, _ := mask.FieldFor(kind)

	result := MaskResult{Accepted: true}
	switch {
	case maskBackspace:
		result.Value = field.Backspace(args[1])
	case len(args) == 3:
		result.Value, result.Accepted = field.Apply(args[1], args[2])
	default:
		result.Value = field.Format(args[1])
	}
	result.Digits = mask.Unmask(result.Value)
	result.Complete = field.Complete(result.Value)

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Value)
	if !result.Accepted {
		return fmt.Errorf("keystroke %q rejected", args[2])
	}
	return nil
}

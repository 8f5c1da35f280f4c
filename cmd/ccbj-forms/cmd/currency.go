package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ccbj/ccbj-forms/internal/money"
)

var currencyLocale string

var currencyCmd = &cobra.Command{
	Use:   "currency",
	Short: "Format and parse currency values",
}

var currencyFormatCmd = &cobra.Command{
	Use:   "format <digits>",
	Short: "Display typed digits as currency (digits are cents)",
	Long: `Format the digits of a currency input for display. Every character
that is not a digit is dropped and the digits are read as cents.

Examples:
  ccbj-forms currency format 123456          # 1.234,56
  ccbj-forms currency format 123456 --locale en-US`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printValue(cmd, formatter().FormatForDisplay(args[0]))
	},
}

var currencyParseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Parse an edited currency field into its canonical value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printValue(cmd, formatter().ParseFromEdit(args[0]))
	},
}

var currencyInstallmentsCmd = &cobra.Command{
	Use:   "installments <total> <count>",
	Short: "Split a canonical total into installments of whole cents",
	Long: `Split a total into equal installments. The remainder of the division
is added to the last installment.

Example:
  ccbj-forms currency installments 1000.00 3   # 333,33 333,33 333,34`,
	Args: cobra.ExactArgs(2),
	RunE: runInstallments,
}

func init() {
	rootCmd.AddCommand(currencyCmd)
	currencyCmd.AddCommand(currencyFormatCmd, currencyParseCmd, currencyInstallmentsCmd)

	currencyCmd.PersistentFlags().StringVar(&currencyLocale, "locale", "", "Display locale (default from config, env: CCBJ_LOCALE)")
}

func formatter() *money.Formatter {
	if currencyLocale != "" {
		return money.NewFormatter(currencyLocale)
	}
	return cfg.Formatter()
}

func printValue(cmd *cobra.Command, value string) error {
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]string{"value": value})
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

// Installment is one part of a split total
type Installment struct {
	Number  int    `json:"number"`
	Value   string `json:"value"`
	Display string `json:"display"`
}

func runInstallments(cmd *cobra.Command, args []string) error {
	total := money.AmountFromCanonical(args[0])
	if !total.Valid || !money.IsNonNegative(total.Value) {
		return fmt.Errorf("invalid total: %s", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid installment count: %s", args[1])
	}

	f := formatter()
	parts := money.SplitInstallments(total.Value, n)
	result := make([]Installment, len(parts))
	for i, p := range parts {
		result[i] = Installment{
			Number:  i + 1,
			Value:   p.StringFixed(2),
			Display: f.Locale.Format(p),
		}
	}

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), result)
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "PARCELA\tVALOR")
	for _, r := range result {
		fmt.Fprintf(tw, "%d\t%s\n", r.Number, r.Display)
	}
	fmt.Fprintf(tw, "TOTAL\t%s\n", f.Locale.Format(money.Sum(parts)))
	return tw.Flush()
}

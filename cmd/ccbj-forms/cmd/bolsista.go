package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccbj/ccbj-forms/internal/mask"
	"github.com/ccbj/ccbj-forms/internal/model"
)

var bolsistaCmd = &cobra.Command{
	Use:   "bolsista",
	Short: "Scholarship recipient registration",
}

var bolsistaValidateCmd = &cobra.Command{
	Use:   "validate <file.yaml>",
	Short: "Validate a recipient described in a YAML file",
	Long: `Validate a recipient form. The file holds the same fields as the
registration form:

  nome: Ana Souza
  cpf: 529.982.247-25
  email: ana@example.com
  telefone: (85) 99999-8888`,
	Args: cobra.ExactArgs(1),
	RunE: runBolsistaValidate,
}

var bolsistaRegisterCmd = &cobra.Command{
	Use:   "register <file.yaml>",
	Short: "Validate and register a recipient with the backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runBolsistaRegister,
}

var bolsistaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered recipients",
	Args:  cobra.NoArgs,
	RunE:  runBolsistaList,
}

func init() {
	rootCmd.AddCommand(bolsistaCmd)
	bolsistaCmd.AddCommand(bolsistaValidateCmd, bolsistaRegisterCmd, bolsistaListCmd)
}

func loadBolsista(path string) (model.Bolsista, error) {
	b := model.NewBolsista()

	data, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("failed to read file: %w", err)
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return b, nil
}

// FormResult is the outcome of validating a form file
type FormResult struct {
	File   string            `json:"file"`
	Valid  bool              `json:"valid"`
	Errors model.FieldErrors `json:"errors,omitempty"`
}

func reportForm(cmd *cobra.Command, r FormResult) error {
	out := cmd.OutOrStdout()
	if jsonOutput() {
		if err := printJSON(out, r); err != nil {
			return err
		}
	} else if r.Valid {
		fmt.Fprintf(out, "✓ %s: VALID\n", r.File)
	} else {
		fmt.Fprintf(out, "✗ %s: INVALID\n", r.File)
		for _, f := range r.Errors.Fields() {
			fmt.Fprintf(out, "  - %s: %s\n", f, r.Errors[f])
		}
	}

	if !r.Valid {
		return errors.New("validation failed")
	}
	return nil
}

func runBolsistaValidate(cmd *cobra.Command, args []string) error {
	b, err := loadBolsista(args[0])
	if err != nil {
		return err
	}

	errs := b.Validate()
	return reportForm(cmd, FormResult{File: args[0], Valid: len(errs) == 0, Errors: errs})
}

func runBolsistaRegister(cmd *cobra.Command, args []string) error {
	b, err := loadBolsista(args[0])
	if err != nil {
		return err
	}
	if errs := b.Validate(); len(errs) > 0 {
		return reportForm(cmd, FormResult{File: args[0], Errors: errs})
	}

	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	created, err := client.CreateBolsista(cmd.Context(), b)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), created)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Bolsista %d registered: %s\n", created.ID, created.Nome)
	return nil
}

func runBolsistaList(cmd *cobra.Command, args []string) error {
	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	list, err := client.ListBolsistas(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), list)
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ID\tNOME\tCPF\tEMAIL\tTELEFONE\tATIVO")
	for _, b := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%t\n",
			b.ID,
			b.Nome,
			mask.Format(mask.KindCPF, b.CPF),
			b.Email,
			mask.Format(mask.KindPhone, b.Telefone),
			b.Ativo,
		)
	}
	return tw.Flush()
}

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccbj/ccbj-forms/internal/model"
)

var (
	profileNome      string
	profileSobrenome string
	profileEmail     string
	profileTelefone  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your account",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your account",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your name, email or phone",
	Long: `Change the fields given as flags; the others keep their current value.

Example:
  ccbj-forms profile update --email ana@ccbj.org.br --telefone "(85) 3333-4444"`,
	Args: cobra.NoArgs,
	RunE: runProfileUpdate,
}

var profilePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	Long: `Prompt for the current password and the new one twice. The new password
must have at least 8 characters.`,
	Args: cobra.NoArgs,
	RunE: runProfilePassword,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd, profilePasswordCmd)

	f := profileUpdateCmd.Flags()
	f.StringVar(&profileNome, "nome", "", "First name")
	f.StringVar(&profileSobrenome, "sobrenome", "", "Last name")
	f.StringVar(&profileEmail, "email", "", "Email")
	f.StringVar(&profileTelefone, "telefone", "", "Phone")
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	u, err := client.Profile(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), u)
	}

	telefone, level := "", ""
	if u.Perfil != nil {
		telefone, level = u.Perfil.Telefone, u.Perfil.NivelAcesso
	}
	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintf(tw, "Usuário:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Nome:\t%s\n", strings.TrimSpace(u.FirstName+" "+u.LastName))
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Telefone:\t%s\n", telefone)
	fmt.Fprintf(tw, "Nível de acesso:\t%s\n", level)
	return tw.Flush()
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	u, err := client.Profile(cmd.Context())
	if err != nil {
		return err
	}

	update := model.ProfileUpdate{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
	if u.Perfil != nil {
		update.Perfil.Telefone = u.Perfil.Telefone
	}
	flags := cmd.Flags()
	if flags.Changed("nome") {
		update.FirstName = profileNome
	}
	if flags.Changed("sobrenome") {
		update.LastName = profileSobrenome
	}
	if flags.Changed("email") {
		update.Email = profileEmail
	}
	if flags.Changed("telefone") {
		update.Perfil.Telefone = profileTelefone
	}

	if errs := update.Validate(); len(errs) > 0 {
		return reportForm(cmd, FormResult{File: "profile", Errors: errs})
	}

	saved, err := client.UpdateProfile(cmd.Context(), update)
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), saved)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Perfil atualizado com sucesso!")
	return nil
}

func runProfilePassword(cmd *cobra.Command, args []string) error {
	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	var change model.PasswordChange
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Senha atual: ", &change.Old},
		{"Nova senha: ", &change.New},
		{"Confirmar nova senha: ", &change.Confirm},
	}
	for _, p := range prompts {
		if *p.dst, err = readSecret(cmd, in, p.label); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if err := client.ChangePassword(cmd.Context(), change); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Senha alterada com sucesso.")
	return nil
}

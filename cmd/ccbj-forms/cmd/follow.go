package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ccbj/ccbj-forms/internal/model"
)

var followSettings = model.DefaultFollowSettings()

var contratosFollowCmd = &cobra.Command{
	Use:   "follow <contract-id>",
	Short: "Follow a contract, or change how a followed contract notifies",
	Long: `Follow a contract to be notified about it. Following a contract that is
already followed replaces its notification settings.

Example:
  ccbj-forms contratos follow 42 --email --notes "rever em julho"`,
	Args: cobra.ExactArgs(1),
	RunE: runContratosFollow,
}

var contratosUnfollowCmd = &cobra.Command{
	Use:   "unfollow <contract-id>",
	Short: "Stop following a contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runContratosUnfollow,
}

var contratosFollowingCmd = &cobra.Command{
	Use:   "following",
	Short: "List the contracts you follow",
	Args:  cobra.NoArgs,
	RunE:  runContratosFollowing,
}

func init() {
	contratosCmd.AddCommand(contratosFollowCmd, contratosUnfollowCmd, contratosFollowingCmd)

	f := contratosFollowCmd.Flags()
	f.BoolVar(&followSettings.NotificarMudancaStatus, "status-changes", true, "Notify on status changes")
	f.BoolVar(&followSettings.NotificarPagamentos, "payments", true, "Notify on payments")
	f.BoolVar(&followSettings.NotificarPrazos, "deadlines", true, "Notify on deadlines")
	f.BoolVar(&followSettings.NotificarPorEmail, "email", false, "Also notify by email")
	f.StringVar(&followSettings.NotasPessoais, "notes", "", "Personal notes")
}

func contractID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid contract id: %s", arg)
	}
	return id, nil
}

func runContratosFollow(cmd *cobra.Command, args []string) error {
	id, err := contractID(args[0])
	if err != nil {
		return err
	}

	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	list, err := client.ListAcompanhamentos(cmd.Context())
	if err != nil {
		return err
	}

	var saved *model.Acompanhamento
	verb := "Following"
	if existing, ok := model.FindByContrato(list, id); ok {
		saved, err = client.UpdateFollow(cmd.Context(), existing.ID, followSettings)
		verb = "Updated follow-up of"
	} else {
		saved, err = client.Follow(cmd.Context(), id, followSettings)
	}
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), saved)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s contrato %d\n", verb, id)
	return nil
}

func runContratosUnfollow(cmd *cobra.Command, args []string) error {
	id, err := contractID(args[0])
	if err != nil {
		return err
	}

	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	list, err := client.ListAcompanhamentos(cmd.Context())
	if err != nil {
		return err
	}
	existing, ok := model.FindByContrato(list, id)
	if !ok {
		return fmt.Errorf("contract %d is not followed", id)
	}
	if err := client.Unfollow(cmd.Context(), existing.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stopped following contrato %d\n", id)
	return nil
}

func runContratosFollowing(cmd *cobra.Command, args []string) error {
	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	list, err := client.ListAcompanhamentos(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), list)
	}

	yes := func(b bool) string {
		if b {
			return "sim"
		}
		return "não"
	}
	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "CONTRATO\tSTATUS\tPAGAMENTOS\tPRAZOS\tEMAIL\tNOTAS")
	for _, a := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", a.Contrato,
			yes(a.NotificarMudancaStatus), yes(a.NotificarPagamentos), yes(a.NotificarPrazos),
			yes(a.NotificarPorEmail), a.NotasPessoais)
	}
	return tw.Flush()
}

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ccbj/ccbj-forms/internal/document"
	"github.com/ccbj/ccbj-forms/internal/model"
	"github.com/ccbj/ccbj-forms/internal/session"
	"github.com/ccbj/ccbj-forms/internal/validate"
)

var (
	search       model.ContratoFilter
	searchStatus []string
	searchTipo   []string
	saveAs       string
	statusMotivo string
	exportDir    string
)

var contratosCmd = &cobra.Command{
	Use:   "contratos",
	Short: "Search contracts and manage their status",
}

var contratosSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Advanced contract search",
	Long: `Search contracts. Dates are DD/MM/YYYY and amounts canonical decimals.
The filter is validated before the backend is called.

Examples:
  ccbj-forms contratos search --status em_execucao,atrasado
  ccbj-forms contratos search --inicio-de 01/01/2024 --inicio-ate 30/06/2024
  ccbj-forms contratos search --valor-min 1000 --save-as "Grandes"`,
	Args: cobra.NoArgs,
	RunE: runContratosSearch,
}

var contratosFiltersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List saved searches",
	Args:  cobra.NoArgs,
	RunE:  runContratosFilters,
}

var contratosStatusCmd = &cobra.Command{
	Use:   "status <id> <new-status>",
	Short: "Change the status of a contract (gestor or admin)",
	Long: `Move a contract to another status. A reason (--motivo) is required when
the status changes. Warnings are printed when a contract with unpaid
installments is concluded or one past its end date is put back in execution.`,
	Args: cobra.ExactArgs(2),
	RunE: runContratosStatus,
}

var contratosVerifyCmd = &cobra.Command{
	Use:   "verify-status",
	Short: "Recompute every contract status from dates and payments (gestor or admin)",
	Args:  cobra.NoArgs,
	RunE:  runContratosVerify,
}

var contratosExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the contracts matching a search as a spreadsheet",
	Long: `Export every contract matching the filter flags (same as search) to
contratos_<date>.xlsx in the output directory.`,
	Args: cobra.NoArgs,
	RunE: runContratosExport,
}

var contratosLookupsCmd = &cobra.Command{
	Use:       "lookups <setores|fontes-recursos|metas|atividades|rubricas>",
	Short:     "List the values accepted by the id filters",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"setores", "fontes-recursos", "metas", "atividades", "rubricas"},
	RunE:      runContratosLookups,
}

var contratosHistoryCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the status history of a contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runContratosHistory,
}

func init() {
	rootCmd.AddCommand(contratosCmd)
	contratosCmd.AddCommand(contratosSearchCmd, contratosFiltersCmd, contratosStatusCmd, contratosHistoryCmd,
		contratosVerifyCmd, contratosExportCmd, contratosLookupsCmd)

	bindFilterFlags(contratosSearchCmd.Flags())
	contratosSearchCmd.Flags().IntVar(&search.Page, "page", 1, "Page number")
	contratosSearchCmd.Flags().IntVar(&search.PageSize, "page-size", model.DefaultPageSize, "Results per page")
	contratosSearchCmd.Flags().StringVar(&saveAs, "save-as", "", "Also save the search under this name")

	bindFilterFlags(contratosExportCmd.Flags())
	contratosExportCmd.Flags().StringVarP(&exportDir, "output", "o", "", "Output directory (default from config)")

	contratosStatusCmd.Flags().StringVar(&statusMotivo, "motivo", "", "Reason for the change")
}

// bindFilterFlags binds the search filter to f. search and export share it.
func bindFilterFlags(f *pflag.FlagSet) {
	f.StringVar(&search.Setor, "setor", "", "Sector id")
	f.StringVar(&search.FonteRecurso, "fonte", "", "Funding source id")
	f.StringVar(&search.Meta, "meta", "", "Goal id")
	f.StringVar(&search.Atividade, "atividade", "", "Activity id")
	f.StringVar(&search.Rubrica, "rubrica", "", "Budget line id")
	f.StringSliceVar(&searchStatus, "status", nil, "Contract statuses")
	f.StringSliceVar(&searchTipo, "tipo", nil, "Contract kinds")
	f.StringVar(&search.DataInicioDe, "inicio-de", "", "Start date from (DD/MM/YYYY)")
	f.StringVar(&search.DataInicioAte, "inicio-ate", "", "Start date until (DD/MM/YYYY)")
	f.StringVar(&search.DataFimDe, "fim-de", "", "End date from (DD/MM/YYYY)")
	f.StringVar(&search.DataFimAte, "fim-ate", "", "End date until (DD/MM/YYYY)")
	f.StringVar(&search.ValorMinimo, "valor-min", "", "Minimum total value")
	f.StringVar(&search.ValorMaximo, "valor-max", "", "Maximum total value")
	f.StringVar(&search.TextoBusca, "texto", "", "Free text")
	f.StringVar(&search.Ordenacao, "ordenacao", model.DefaultOrdering, "Ordering field, '-' for descending")
}

// buildFilter merges the status and kind flags into the bound filter
func buildFilter() (model.ContratoFilter, error) {
	filter := search
	filter.StatusContrato = nil
	filter.TipoContrato = nil
	for _, s := range searchStatus {
		st := model.StatusContrato(s)
		if !st.Valid() {
			return filter, fmt.Errorf("unknown status: %s", s)
		}
		filter.StatusContrato = append(filter.StatusContrato, st)
	}
	for _, t := range searchTipo {
		tp := model.TipoContrato(t)
		if !tp.Valid() {
			return filter, fmt.Errorf("unknown contract kind: %s", t)
		}
		filter.TipoContrato = append(filter.TipoContrato, tp)
	}
	return filter, nil
}

func runContratosSearch(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter()
	if err != nil {
		return err
	}

	if errs := filter.Validate(); len(errs) > 0 {
		return reportForm(cmd, FormResult{File: "filter", Errors: errs})
	}

	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	page, err := client.SearchContratos(cmd.Context(), filter)
	if err != nil {
		return err
	}

	if saveAs != "" {
		saved, err := model.NewSavedFilter(saveAs, "", filter)
		if err != nil {
			return err
		}
		if _, err := client.SaveFilter(cmd.Context(), saved); err != nil {
			return fmt.Errorf("failed to save filter: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Filter %q saved\n", saveAs)
	}

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), page)
	}

	f := formatter()
	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ID\tTIPO\tNOME\tSTATUS\tINÍCIO\tFIM\tVALOR\tSALDO")
	for _, c := range page.Results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			c.Tipo,
			c.NomeCursoAcao,
			c.StatusContrato.Label(),
			validate.DateFromAPI(c.DataInicio),
			validate.DateFromAPI(c.DataFim),
			f.Locale.Format(c.ValorTotal),
			f.Locale.Format(c.Saldo()),
		)
	}
	fmt.Fprintf(tw, "\n%d contrato(s)\n", page.Count)
	return tw.Flush()
}

func runContratosFilters(cmd *cobra.Command, args []string) error {
	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	filters, err := client.ListSavedFilters(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), filters)
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ID\tNOME\tQUERY")
	for _, s := range filters {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.ID, s.Nome, s.Filter().Query().Encode())
	}
	return tw.Flush()
}

func runContratosStatus(cmd *cobra.Command, args []string) error {
	id, err := contractID(args[0])
	if err != nil {
		return err
	}
	next := model.StatusContrato(args[1])
	if !next.Valid() {
		return fmt.Errorf("unknown status: %s", args[1])
	}

	sess, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}
	if !sess.HasPermission(session.LevelGestor) {
		return fmt.Errorf("changing a contract status requires gestor access")
	}

	contrato, err := client.GetContrato(cmd.Context(), id)
	if err != nil {
		return err
	}
	current := contrato.StatusContrato
	for _, w := range contrato.StatusWarnings(next, time.Now()) {
		fmt.Fprintln(cmd.ErrOrStderr(), w)
	}

	change := model.StatusChange{Status: next, Motivo: statusMotivo}
	updated, err := client.UpdateContratoStatus(cmd.Context(), id, current, change)
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Contrato %d: %s → %s\n", id, current.Label(), updated.StatusContrato.Label())
	return nil
}

func runContratosVerify(cmd *cobra.Command, args []string) error {
	sess, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}
	if !sess.HasPermission(session.LevelGestor) {
		return fmt.Errorf("verifying contract statuses requires gestor access")
	}

	result, err := client.VerifyStatus(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Verificação concluída! %d contrato(s) atualizado(s).\n", result.Atualizados)
	return nil
}

func runContratosExport(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter()
	if err != nil {
		return err
	}
	if errs := filter.Validate(); len(errs) > 0 {
		return reportForm(cmd, FormResult{File: "filter", Errors: errs})
	}

	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	data, err := client.ExportContratos(cmd.Context(), filter)
	if err != nil {
		return err
	}

	dir := exportDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	path, err := document.Save(dir, document.ExportFileName(time.Now()), data)
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{"path": path, "size": len(data)})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", path, len(data))
	return nil
}

func runContratosLookups(cmd *cobra.Command, args []string) error {
	kind, err := model.ParseLookupKind(args[0])
	if err != nil {
		return err
	}

	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	items, err := client.ListLookup(cmd.Context(), kind)
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), items)
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ID\tNOME\tATIVO")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%t\n", it.ID, it.Label(), it.Ativo)
	}
	return tw.Flush()
}

func runContratosHistory(cmd *cobra.Command, args []string) error {
	id, err := contractID(args[0])
	if err != nil {
		return err
	}

	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	history, err := client.StatusHistory(cmd.Context(), id)
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), history)
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "DATA\tDE\tPARA\tUSUÁRIO\tOBSERVAÇÃO")
	for _, h := range history {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			h.DataAlteracao, h.StatusAnterior.Label(), h.StatusNovo.Label(), h.UsuarioNome, h.Observacao)
	}
	return tw.Flush()
}

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ccbj/ccbj-forms/internal/document"
	"github.com/ccbj/ccbj-forms/internal/model"
)

var (
	genTemplateID int
	genEntity     string
	genEntityID   int
	genOutputDir  string
	genName       string
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Document templates and generation",
}

var documentGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a PDF from a template for one entity",
	Long: `Ask the backend to render a template for a recipient or a contract,
check the returned PDF and save it.

Example:
  ccbj-forms document generate --template 3 --entity contrato --id 42 -o out/`,
	Args: cobra.NoArgs,
	RunE: runDocumentGenerate,
}

var documentTemplatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List document templates",
	Args:  cobra.NoArgs,
	RunE:  runDocumentTemplates,
}

var documentPlaceholdersCmd = &cobra.Command{
	Use:   "placeholders [file]",
	Short: "List the placeholders a template body uses",
	Long: `Scan a template body for {{placeholders}} and flag those the backend
does not know. Without a file the catalogue is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocumentPlaceholders,
}

var documentInfoCmd = &cobra.Command{
	Use:   "info <file.pdf>",
	Short: "Check a PDF and show its page count",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentInfo,
}

func init() {
	rootCmd.AddCommand(documentCmd)
	documentCmd.AddCommand(documentGenerateCmd, documentTemplatesCmd, documentPlaceholdersCmd, documentInfoCmd)

	f := documentGenerateCmd.Flags()
	f.IntVar(&genTemplateID, "template", 0, "Template id")
	f.StringVar(&genEntity, "entity", "", "Entity type (bolsista, contrato)")
	f.IntVar(&genEntityID, "id", 0, "Entity id")
	f.StringVarP(&genOutputDir, "output", "o", "", "Output directory (default from config)")
	f.StringVar(&genName, "name", "", "Entity name used in the file name")
}

func runDocumentGenerate(cmd *cobra.Command, args []string) error {
	req := model.GenerateRequest{
		TemplateID: genTemplateID,
		EntityType: model.EntityType(genEntity),
		EntityID:   genEntityID,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	pdf, err := client.GenerateDocument(cmd.Context(), req)
	if err != nil {
		return err
	}

	info, err := document.Inspect(pdf)
	if err != nil {
		return err
	}

	templateName := "Template " + strconv.Itoa(genTemplateID)
	if templates, err := client.ListTemplates(cmd.Context()); err == nil {
		for _, t := range templates {
			if t.ID == genTemplateID {
				templateName = t.Nome
				break
			}
		}
	}
	entityName := genName
	if entityName == "" {
		entityName = fmt.Sprintf("%s %d", genEntity, genEntityID)
	}

	dir := genOutputDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	path, err := document.Save(dir, document.FileName(templateName, entityName), pdf)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"path":  path,
			"pages": info.Pages,
			"size":  info.Size,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d page(s), %d bytes)\n", path, info.Pages, info.Size)
	return nil
}

func runDocumentTemplates(cmd *cobra.Command, args []string) error {
	_, client, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	templates, err := client.ListTemplates(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), templates)
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ID\tNOME\tTIPO\tATIVO\tPLACEHOLDERS")
	for _, t := range templates {
		u := document.Placeholders(t.Conteudo)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%d\n", t.ID, t.Nome, t.Tipo, t.Ativo, len(u.Used))
	}
	return tw.Flush()
}

func runDocumentPlaceholders(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if jsonOutput() {
			return printJSON(out, document.Catalogue)
		}
		tw := newTable(out)
		for _, p := range document.Catalogue {
			fmt.Fprintf(tw, "{{%s}}\t%s\n", p.Name, p.Description)
		}
		return tw.Flush()
	}

	body, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	u := document.Placeholders(string(body))

	if jsonOutput() {
		if err := printJSON(out, u); err != nil {
			return err
		}
	} else {
		for _, name := range u.Used {
			fmt.Fprintf(out, "{{%s}}\n", name)
		}
		for _, name := range u.Unknown {
			fmt.Fprintf(out, "⚠ unknown placeholder {{%s}}\n", name)
		}
	}

	if len(u.Unknown) > 0 {
		return fmt.Errorf("%d unknown placeholder(s)", len(u.Unknown))
	}
	return nil
}

func runDocumentInfo(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	info, err := document.Inspect(data)
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), info)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d page(s), %d bytes\n", args[0], info.Pages, info.Size)
	return nil
}

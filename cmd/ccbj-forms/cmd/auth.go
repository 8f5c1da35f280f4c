package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ccbj/ccbj-forms/internal/session"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend and store the tokens",
	Long: `Log in with a username and password. The token pair is stored in the
token file (env: CCBJ_TOKEN_FILE) and reused by later commands.

The password is read from --password, then CCBJ_PASSWORD, then stdin.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newSession(newClient()).Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (env: CCBJ_PASSWORD)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())

	username := loginUsername
	if username == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Usuário: ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	password := loginPassword
	if password == "" {
		password = os.Getenv("CCBJ_PASSWORD")
	}
	if password == "" {
		var err error
		if password, err = readSecret(cmd, in, "Senha: "); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	sess := newSession(newClient())
	if err := sess.Login(cmd.Context(), username, password); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.User().Username)
	return nil
}

// WhoamiResult describes the logged-in user
type WhoamiResult struct {
	User   *session.User `json:"user"`
	Gestor bool          `json:"gestor"`
	Admin  bool          `json:"admin"`
}

func runWhoami(cmd *cobra.Command, args []string) error {
	sess, _, err := loggedIn(cmd.Context())
	if err != nil {
		return err
	}

	u := sess.User()
	result := WhoamiResult{
		User:   u,
		Gestor: sess.HasPermission(session.LevelGestor),
		Admin:  sess.HasPermission(session.LevelAdmin),
	}
	if jsonOutput() {
		return printJSON(cmd.OutOrStdout(), result)
	}

	level := ""
	if u.Perfil != nil {
		level = u.Perfil.NivelAcesso
	}
	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintf(tw, "Usuário:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Nome:\t%s\n", strings.TrimSpace(u.FirstName+" "+u.LastName))
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Nível de acesso:\t%s\n", level)
	return tw.Flush()
}

// readSecret prompts on stderr and reads one line without echo when stdin is
// a terminal. Piped input is read as a plain line.
func readSecret(cmd *cobra.Command, in *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

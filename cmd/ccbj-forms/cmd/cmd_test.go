package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI with an isolated config and token file
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runIO(t, &bytes.Buffer{}, &bytes.Buffer{}, args...)
}

// runIO is run with the given stdin and stderr
func runIO(t *testing.T, in io.Reader, errOut io.Writer, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	if os.Getenv("CCBJ_TOKEN_FILE") == "" {
		t.Setenv("CCBJ_TOKEN_FILE", filepath.Join(dir, "tokens.json"))
	}

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.yaml")}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "cpf", "529.982.247-25")
	require.NoError(t, err)
	assert.Contains(t, out, "VALID")

	out, err = run(t, "validate", "cnpj", "11.222.333/0001-82")
	assert.Error(t, err)
	assert.Contains(t, out, "INVALID")

	_, err = run(t, "validate", "passport", "x")
	assert.Error(t, err)
}

func TestValidateRangeCommand(t *testing.T) {
	out, err := run(t, "--format", "json", "validate", "range", "01/01/2024", "31/12/2024")
	require.NoError(t, err)

	var r FieldResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.True(t, r.Valid)

	_, err = run(t, "validate", "range", "31/12/2024", "01/01/2024")
	assert.Error(t, err)
}

func TestCurrencyCommands(t *testing.T) {
	out, err := run(t, "currency", "format", "123456")
	require.NoError(t, err)
	assert.Equal(t, "1.234,56\n", out)

	out, err = run(t, "currency", "format", "123456", "--locale", "en-US")
	require.NoError(t, err)
	assert.Equal(t, "1,234.56\n", out)

	out, err = run(t, "currency", "parse", "R$ 1.234,56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56\n", out)
}

func TestCurrencyInstallments(t *testing.T) {
	out, err := run(t, "--format", "json", "currency", "installments", "1000", "3")
	require.NoError(t, err)

	var parts []Installment
	require.NoError(t, json.Unmarshal([]byte(out), &parts))
	require.Len(t, parts, 3)
	assert.Equal(t, "333.33", parts[0].Value)
	assert.Equal(t, "333.34", parts[2].Value)
	assert.Equal(t, "333,34", parts[2].Display)

	_, err = run(t, "currency", "installments", "-5", "2")
	assert.Error(t, err)
}

func TestMaskCommand(t *testing.T) {
	out, err := run(t, "mask", "cpf", "123.456.789-0", "9")
	require.NoError(t, err)
	assert.Equal(t, "123.456.789-09\n", out)

	out, err = run(t, "mask", "telefone", "85999998888")
	require.NoError(t, err)
	assert.Equal(t, "(85) 99999-8888\n", out)

	out, err = run(t, "mask", "date", "01/02/2", "--backspace")
	require.NoError(t, err)
	assert.Equal(t, "01/02\n", out)

	_, err = run(t, "mask", "cpf", "123", "x")
	assert.Error(t, err)
}

func TestBolsistaValidateCommand(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "ana.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(`
nome: Ana Souza
cpf: 529.982.247-25
email: ana@example.com
telefone: (85) 99999-8888
`), 0o644))

	out, err := run(t, "bolsista", "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "VALID")

	invalid := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("nome: Ana\ncpf: 111.111.111-11\n"), 0o644))

	out, err = run(t, "bolsista", "validate", invalid)
	assert.Error(t, err)
	assert.Contains(t, out, "cpf: CPF inválido")
	assert.Contains(t, out, "email: Email é obrigatório")
}

func jwtFor(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestLoginWhoamiLogout(t *testing.T) {
	access := jwtFor(t, time.Now().Add(time.Hour))
	refresh := jwtFor(t, time.Now().Add(24*time.Hour))

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/auth/token/":
			_ = json.NewEncoder(w).Encode(map[string]string{"access": access, "refresh": refresh})
		case "/api/v1/auth/me/":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id": 1, "username": "gestora", "perfil": map[string]string{"nivel_acesso": "gestor"},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	t.Setenv("CCBJ_TOKEN_FILE", filepath.Join(t.TempDir(), "tokens.json"))
	apiFlag := []string{"--api-url", backend.URL + "/api/v1"}

	out, err := run(t, append(apiFlag, "login", "-u", "gestora", "-p", "secret")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as gestora")

	out, err = run(t, append(apiFlag, "--format", "json", "whoami")...)
	require.NoError(t, err)

	var who WhoamiResult
	require.NoError(t, json.Unmarshal([]byte(out), &who))
	assert.Equal(t, "gestora", who.User.Username)
	assert.True(t, who.Gestor)
	assert.False(t, who.Admin)

	_, err = run(t, append(apiFlag, "logout")...)
	require.NoError(t, err)

	_, err = run(t, append(apiFlag, "whoami")...)
	assert.Error(t, err)
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := run(t, "--format", "csv", "validate", "cpf", "529.982.247-25")
	assert.Error(t, err)
}

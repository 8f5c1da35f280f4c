package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbj/ccbj-forms/internal/api"
	"github.com/ccbj/ccbj-forms/internal/model"
	"github.com/ccbj/ccbj-forms/internal/session"
)

type staticTokens struct {
	token       string
	invalidated bool
}

func (s *staticTokens) AccessToken() string { return s.token }
func (s *staticTokens) Invalidate()         { s.invalidated = true }

func newServer(t *testing.T, h http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL + "/api/v1")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestObtainToken(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/token/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin", body["username"])
		assert.Equal(t, "secret", body["password"])

		writeJSON(w, http.StatusOK, map[string]string{"access": "A", "refresh": "R"})
	})

	tokens, err := client.ObtainToken(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, session.Tokens{Access: "A", Refresh: "R"}, tokens)
}

func TestObtainToken_BadCredentials(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found"})
	})

	_, err := client.ObtainToken(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "No active account found", apiErr.Detail)
}

func TestRefreshAndCurrentUser(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/token/refresh/":
			writeJSON(w, http.StatusOK, map[string]string{"access": "NEW"})
		case "/api/v1/auth/me/":
			assert.Equal(t, "Bearer NEW", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"id": 7, "username": "maria", "perfil": map[string]string{"nivel_acesso": "gestor"},
			})
		default:
			http.NotFound(w, r)
		}
	})

	access, err := client.RefreshToken(context.Background(), "R")
	require.NoError(t, err)
	assert.Equal(t, "NEW", access)

	user, err := client.CurrentUser(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, "maria", user.Username)
	require.NotNil(t, user.Perfil)
	assert.Equal(t, session.LevelGestor, user.Perfil.NivelAcesso)
}

func TestCreateBolsista_ValidatesLocally(t *testing.T) {
	called := false
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.CreateBolsista(context.Background(), model.Bolsista{Nome: "Ana", CPF: "111.111.111-11"})
	require.Error(t, err)
	assert.False(t, called)

	var fe model.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, model.MsgCPFInvalid, fe["cpf"])
	assert.Equal(t, model.MsgEmailRequired, fe["email"])
}

func TestCreateBolsista(t *testing.T) {
	tokens := &staticTokens{token: "T"}
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bolsistas/", r.URL.Path)
		assert.Equal(t, "Bearer T", r.Header.Get("Authorization"))

		var b model.Bolsista
		require.NoError(t, json.NewDecoder(r.Body).Decode(&b))
		assert.Equal(t, "52998224725", b.CPF)
		assert.Equal(t, "85999998888", b.Telefone)

		b.ID = 42
		writeJSON(w, http.StatusCreated, b)
	}).WithSession(tokens)

	created, err := client.CreateBolsista(context.Background(), model.Bolsista{
		Nome:     "Ana Souza",
		CPF:      "529.982.247-25",
		Email:    "ana@example.com",
		Telefone: "(85) 99999-8888",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
}

func TestCreateBolsista_FieldErrors(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"cpf": {"bolsista com este CPF já existe.", "outro"},
		})
	})

	_, err := client.CreateBolsista(context.Background(), model.Bolsista{
		Nome: "Ana", CPF: "52998224725", Email: "ana@example.com", Telefone: "85999998888",
	})

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "bolsista com este CPF já existe.", apiErr.Fields["cpf"])
	assert.False(t, errors.Is(err, api.ErrUnauthorized))
}

func TestUnauthorizedInvalidatesSession(t *testing.T) {
	tokens := &staticTokens{token: "stale"}
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
	}).WithSession(tokens)

	_, err := client.ListContratos(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.True(t, tokens.invalidated)
}

func TestListBolsistas_AcceptsBothShapes(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"bare array", []map[string]interface{}{{"id": 1, "nome": "Ana"}, {"id": 2, "nome": "Bia"}}},
		{"paginated", map[string]interface{}{
			"count":   2,
			"results": []map[string]interface{}{{"id": 1, "nome": "Ana"}, {"id": 2, "nome": "Bia"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tt.body)
			})

			list, err := client.ListBolsistas(context.Background())
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "Bia", list[1].Nome)
		})
	}
}

func TestSearchContratos(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/contratos/buscar/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2024-01-01", q.Get("data_inicio_de"))
		assert.Equal(t, "em_execucao,atrasado", q.Get("status_contrato"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "25", q.Get("page_size"))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count": 1,
			"results": []map[string]interface{}{{
				"id": 3, "status_contrato": "em_execucao", "valor_total": "1500.50", "total_pago": "500.00",
			}},
		})
	})

	page, err := client.SearchContratos(context.Background(), model.ContratoFilter{
		DataInicioDe:   "01/01/2024",
		StatusContrato: []model.StatusContrato{model.StatusEmExecucao, model.StatusAtrasado},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	require.Len(t, page.Results, 1)
	assert.True(t, page.Results[0].Saldo().Equal(decimal.RequireFromString("1000.50")))
}

func TestSearchContratos_InvalidFilter(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	_, err := client.SearchContratos(context.Background(), model.ContratoFilter{
		DataInicioDe:  "10/05/2024",
		DataInicioAte: "01/05/2024",
	})
	var fe model.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, model.MsgRangeInvalid, fe["data_inicio_ate"])
}

func TestUpdateContratoStatus(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/contratos/9/", r.URL.Path)

		var change model.StatusChange
		require.NoError(t, json.NewDecoder(r.Body).Decode(&change))
		assert.Equal(t, model.StatusSuspenso, change.Status)

		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 9, "status_contrato": "suspenso"})
	})

	_, err := client.UpdateContratoStatus(context.Background(), 9, model.StatusEmExecucao,
		model.StatusChange{Status: model.StatusSuspenso})
	var fe model.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, model.MsgMotivoRequired, fe["motivo_alteracao_status"])

	updated, err := client.UpdateContratoStatus(context.Background(), 9, model.StatusEmExecucao,
		model.StatusChange{Status: model.StatusSuspenso, Motivo: "Aguardando documentação"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuspenso, updated.StatusContrato)
}

func TestGenerateDocument(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/documentos/gerar/", r.URL.Path)

		var req model.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, model.EntityContrato, req.EntityType)

		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	})

	data, err := client.GenerateDocument(context.Background(), model.GenerateRequest{
		TemplateID: 1, EntityType: model.EntityContrato, EntityID: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, pdf, data)

	_, err = client.GenerateDocument(context.Background(), model.GenerateRequest{EntityType: "outro"})
	assert.Error(t, err)
}

func TestTemplates(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/documentos/templates/":
			writeJSON(w, http.StatusOK, []model.Template{{ID: 1, Nome: "Termo", Tipo: "contrato", Conteudo: "x"}})
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/documentos/templates/1/":
			var tpl model.Template
			require.NoError(t, json.NewDecoder(r.Body).Decode(&tpl))
			writeJSON(w, http.StatusOK, tpl)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/documentos/templates/1/":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	list, err := client.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	tpl := list[0]
	tpl.Nome = "Termo de Compromisso"
	updated, err := client.UpdateTemplate(ctx, tpl)
	require.NoError(t, err)
	assert.Equal(t, "Termo de Compromisso", updated.Nome)

	_, err = client.CreateTemplate(ctx, model.Template{})
	assert.Error(t, err)

	require.NoError(t, client.DeleteTemplate(ctx, 1))
}

func TestAPIErrorMessage(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := client.ListSavedFilters(context.Background())
	require.Error(t, err)
	assert.Equal(t, "api error (status 500): upstream exploded", err.Error())
}

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbj/ccbj-forms/internal/api"
	"github.com/ccbj/ccbj-forms/internal/model"
)

func TestVerifyStatus(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/contratos/verificar-status/", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"contratos":   []map[string]interface{}{{"id": 1, "status_contrato": "atrasado"}},
			"atualizados": 1,
		})
	})

	result, err := client.VerifyStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Atualizados)
	require.Len(t, result.Contratos, 1)
	assert.Equal(t, model.StatusAtrasado, result.Contratos[0].StatusContrato)
}

func TestExportContratos(t *testing.T) {
	sheet := []byte("PK\x03\x04 fake xlsx")
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/contratos/exportar/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, api.ExportFormat, q.Get("format"))
		assert.Equal(t, "2024-01-01", q.Get("data_inicio_de"))
		assert.Equal(t, "bolsa,servico", q.Get("tipo_contrato"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_, _ = w.Write(sheet)
	})

	data, err := client.ExportContratos(context.Background(), model.ContratoFilter{
		DataInicioDe: "01/01/2024",
		TipoContrato: []model.TipoContrato{model.TipoBolsa, model.TipoServico},
	})
	require.NoError(t, err)
	assert.Equal(t, sheet, data)

	_, err = client.ExportContratos(context.Background(), model.ContratoFilter{ValorMinimo: "abc"})
	var fe model.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, model.MsgValorInvalid, fe["valor_minimo"])
}

func TestGetContrato(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/contratos/4/", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id": 4, "status_contrato": "assinado", "data_fim": "2025-12-31", "valor_total": "100.00", "total_pago": "0",
		})
	})

	c, err := client.GetContrato(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAssinado, c.StatusContrato)
	assert.Equal(t, "2025-12-31", c.DataFim)
}

func TestAcompanhamentos(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/acompanhamentos/":
			writeJSON(w, http.StatusOK, []map[string]interface{}{
				{"id": 2, "contrato": map[string]interface{}{"id": 8}, "notificar_prazos": true},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/acompanhamentos/":
			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(9), body["contrato"])
			assert.Equal(t, true, body["notificar_pagamentos"])
			body["id"] = 3
			writeJSON(w, http.StatusCreated, body)
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v1/acompanhamentos/2/":
			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.NotContains(t, body, "contrato")
			assert.Equal(t, "rever em julho", body["notas_pessoais"])
			body["id"], body["contrato"] = 2, 8
			writeJSON(w, http.StatusOK, body)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/acompanhamentos/2/":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	list, err := client.ListAcompanhamentos(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.ContratoRef(8), list[0].Contrato)

	created, err := client.Follow(ctx, 9, model.DefaultFollowSettings())
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)
	assert.Equal(t, model.ContratoRef(9), created.Contrato)

	settings := list[0].FollowSettings
	settings.NotasPessoais = "rever em julho"
	updated, err := client.UpdateFollow(ctx, 2, settings)
	require.NoError(t, err)
	assert.Equal(t, "rever em julho", updated.NotasPessoais)

	require.NoError(t, client.Unfollow(ctx, 2))
}

func TestListLookup(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/setores/":
			writeJSON(w, http.StatusOK, []model.Lookup{{ID: 1, Nome: "Cultura", Ativo: true}})
		case "/api/v1/metas/":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"count":   1,
				"results": []model.Lookup{{ID: 5, Codigo: "M1", Descricao: "Formação"}},
			})
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	setores, err := client.ListLookup(ctx, model.LookupSetores)
	require.NoError(t, err)
	require.Len(t, setores, 1)
	assert.Equal(t, "Cultura", setores[0].Label())

	metas, err := client.ListLookup(ctx, model.LookupMetas)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "M1 - Formação", metas[0].Label())

	_, err = client.ListLookup(ctx, model.LookupRubricas)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbj/ccbj-forms/internal/model"
)

func TestStatusContrato(t *testing.T) {
	assert.True(t, model.StatusAssinado.Valid())
	assert.Equal(t, "Em Execução", model.StatusEmExecucao.Label())
	assert.False(t, model.StatusContrato("rascunho").Valid())
	assert.Equal(t, "rascunho", model.StatusContrato("rascunho").Label())
}

func TestTipoContrato(t *testing.T) {
	assert.True(t, model.TipoServico.Valid())
	assert.False(t, model.TipoContrato("doacao").Valid())
}

func TestContrato_DecodeBackendJSON(t *testing.T) {
	body := `{
		"id": 12,
		"tipo": "bolsa",
		"nome_curso_acao": "Oficina de Teatro",
		"status_contrato": "em_execucao",
		"setor": 3,
		"data_inicio": "2025-02-01",
		"data_fim": "2025-11-30",
		"valor_total": "12000.00",
		"quantidade_parcelas": 10,
		"total_pago": "3600.00"
	}`

	var c model.Contrato
	require.NoError(t, json.Unmarshal([]byte(body), &c))
	assert.Equal(t, model.StatusEmExecucao, c.StatusContrato)
	assert.True(t, c.Saldo().Equal(decimal.RequireFromString("8400")))
}

func TestStatusChange_Validate(t *testing.T) {
	same := model.StatusChange{Status: model.StatusAssinado}
	assert.NoError(t, same.Validate(model.StatusAssinado))

	noReason := model.StatusChange{Status: model.StatusSuspenso}
	err := noReason.Validate(model.StatusAssinado)
	require.Error(t, err)
	var fe model.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, model.MsgMotivoRequired, fe["motivo_alteracao_status"])

	withReason := model.StatusChange{Status: model.StatusSuspenso, Motivo: "Aguardando documentação"}
	assert.NoError(t, withReason.Validate(model.StatusAssinado))

	unknown := model.StatusChange{Status: "rascunho", Motivo: "x"}
	assert.Error(t, unknown.Validate(model.StatusAssinado))
}

func TestGenerateRequest_Validate(t *testing.T) {
	ok := model.GenerateRequest{TemplateID: 1, EntityType: model.EntityBolsista, EntityID: 4}
	assert.NoError(t, ok.Validate())

	assert.Error(t, model.GenerateRequest{EntityType: model.EntityContrato, EntityID: 1}.Validate())
	assert.Error(t, model.GenerateRequest{TemplateID: 1, EntityType: "credor", EntityID: 1}.Validate())
}

func TestTemplate_Validate(t *testing.T) {
	errs := model.Template{}.Validate()
	assert.Equal(t, []string{"conteudo", "nome", "tipo"}, errs.Fields())

	tpl := model.Template{Nome: "Termo", Tipo: "termo_compromisso", Conteudo: "{{bolsista.nome}}"}
	assert.Empty(t, tpl.Validate())
}

func TestParseEntityType(t *testing.T) {
	et, err := model.ParseEntityType("contrato")
	require.NoError(t, err)
	assert.Equal(t, model.EntityContrato, et)

	_, err = model.ParseEntityType("credor")
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "entidade_tipo", ve.Field)
	assert.Equal(t, model.MsgEntityType, ve.Message)
}

func TestContrato_StatusWarnings(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c := model.Contrato{
		DataFim:    "2025-05-31",
		ValorTotal: decimal.RequireFromString("1000"),
		TotalPago:  decimal.RequireFromString("400"),
	}

	assert.Equal(t, []string{model.MsgWarnUnpaid}, c.StatusWarnings(model.StatusConcluido, now))
	assert.Equal(t, []string{model.MsgWarnPastEnd}, c.StatusWarnings(model.StatusEmExecucao, now))
	assert.Empty(t, c.StatusWarnings(model.StatusSuspenso, now))

	paid := c
	paid.TotalPago = c.ValorTotal
	assert.Empty(t, paid.StatusWarnings(model.StatusConcluido, now))

	running := c
	running.DataFim = "2025-12-31"
	assert.Empty(t, running.StatusWarnings(model.StatusEmExecucao, now))

	noEnd := c
	noEnd.DataFim = ""
	assert.Empty(t, noEnd.StatusWarnings(model.StatusEmExecucao, now))
}

package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatusContrato is the lifecycle state of a contract
type StatusContrato string

const (
	StatusEmElaboracao            StatusContrato = "em_elaboracao"
	StatusAssinado                StatusContrato = "assinado"
	StatusEmExecucao              StatusContrato = "em_execucao"
	StatusConcluido               StatusContrato = "concluido"
	StatusCancelado               StatusContrato = "cancelado"
	StatusSuspenso                StatusContrato = "suspenso"
	StatusAtrasado                StatusContrato = "atrasado"
	StatusInadimplente            StatusContrato = "inadimplente"
	StatusFinalizadoComPendencias StatusContrato = "finalizado_com_pendencias"
)

var statusLabels = map[StatusContrato]string{
	StatusEmElaboracao:            "Em Elaboração",
	StatusAssinado:                "Assinado",
	StatusEmExecucao:              "Em Execução",
	StatusConcluido:               "Concluído",
	StatusCancelado:               "Cancelado",
	StatusSuspenso:                "Suspenso",
	StatusAtrasado:                "Atrasado",
	StatusInadimplente:            "Inadimplente",
	StatusFinalizadoComPendencias: "Finalizado com Pendências",
}

// Valid reports whether s is a status the backend knows
func (s StatusContrato) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the display name of the status
func (s StatusContrato) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// TipoContrato is the kind of contract
type TipoContrato string

const (
	TipoBolsa     TipoContrato = "bolsa"
	TipoServico   TipoContrato = "servico"
	TipoAquisicao TipoContrato = "aquisicao"
	TipoOutros    TipoContrato = "outros"
)

// Valid reports whether t is a known contract kind
func (t TipoContrato) Valid() bool {
	switch t {
	case TipoBolsa, TipoServico, TipoAquisicao, TipoOutros:
		return true
	}
	return false
}

// Contrato is a contract as listed by the backend
type Contrato struct {
	ID                 int             `json:"id"`
	Tipo               TipoContrato    `json:"tipo"`
	NomeCursoAcao      string          `json:"nome_curso_acao"`
	StatusProcesso     string          `json:"status_processo"`
	StatusContrato     StatusContrato  `json:"status_contrato"`
	Setor              int             `json:"setor"`
	SetorNome          string          `json:"setor_nome,omitempty"`
	Bolsista           *int            `json:"bolsista,omitempty"`
	Credor             *int            `json:"credor,omitempty"`
	Responsavel        string          `json:"responsavel,omitempty"`
	DataInicio         string          `json:"data_inicio"`
	DataFim            string          `json:"data_fim"`
	ValorTotal         decimal.Decimal `json:"valor_total"`
	QuantidadeParcelas int             `json:"quantidade_parcelas"`
	TotalPago          decimal.Decimal `json:"total_pago"`
}

// Saldo is what remains to be paid
func (c Contrato) Saldo() decimal.Decimal {
	return c.ValorTotal.Sub(c.TotalPago)
}

// MsgMotivoRequired is shown when a status change has no reason
const MsgMotivoRequired = "Por favor, informe o motivo da alteração de status."

// StatusChange is the PATCH body used to move a contract to another status
type StatusChange struct {
	Status StatusContrato `json:"status_contrato"`
	Motivo string         `json:"motivo_alteracao_status"`
}

// Validate checks the change against the contract's current status.
// A reason is only required when the status actually changes.
func (c StatusChange) Validate(current StatusContrato) error {
	errs := FieldErrors{}
	if !c.Status.Valid() {
		errs.Set("status_contrato", fmt.Sprintf("Status desconhecido: %s", c.Status))
	}
	if c.Status != current && strings.TrimSpace(c.Motivo) == "" {
		errs.Set("motivo_alteracao_status", MsgMotivoRequired)
	}
	return errs.Err()
}

// Warnings shown before a status change is confirmed
const (
	MsgWarnUnpaid  = "Atenção: Este contrato possui parcelas não pagas. Ao marcar como concluído, você está indicando que não haverá mais pagamentos."
	MsgWarnPastEnd = "Atenção: A data de término deste contrato já passou. Considere atualizar a data de término antes de alterar o status para Em Execução."
)

// StatusWarnings lists what the user should know before moving c to next.
// They never block the change.
func (c Contrato) StatusWarnings(next StatusContrato, now time.Time) []string {
	var warnings []string
	if next == StatusConcluido && c.TotalPago.LessThan(c.ValorTotal) {
		warnings = append(warnings, MsgWarnUnpaid)
	}
	if next == StatusEmExecucao {
		if end, err := time.Parse("2006-01-02", c.DataFim); err == nil && end.Before(now) {
			warnings = append(warnings, MsgWarnPastEnd)
		}
	}
	return warnings
}

// StatusCheckResult is the outcome of the backend's automatic status check
type StatusCheckResult struct {
	Contratos   []Contrato `json:"contratos"`
	Atualizados int        `json:"atualizados"`
}

// StatusHistoryEntry is one row of a contract's status history
type StatusHistoryEntry struct {
	ID             int            `json:"id"`
	StatusAnterior StatusContrato `json:"status_anterior"`
	StatusNovo     StatusContrato `json:"status_novo"`
	DataAlteracao  string         `json:"data_alteracao"`
	UsuarioNome    string         `json:"usuario_nome,omitempty"`
	Observacao     string         `json:"observacao,omitempty"`
}

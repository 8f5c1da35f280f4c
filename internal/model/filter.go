package model

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ccbj/ccbj-forms/internal/money"
	"github.com/ccbj/ccbj-forms/internal/validate"
)

const (
	// DefaultOrdering lists the newest contracts first
	DefaultOrdering = "-data_inicio"
	// DefaultPageSize is the advanced search page size
	DefaultPageSize = 25
)

// Messages shown by the advanced search form
const (
	MsgDateInvalid  = "Data inválida"
	MsgRangeInvalid = "A data inicial deve ser anterior à data final"
	MsgValorRange   = "O valor mínimo deve ser menor que o valor máximo"
	MsgValorInvalid = "Valor inválido"
	MsgFilterName   = "Por favor, informe um nome para o filtro."
)

// ContratoFilter is the advanced contract search. Dates are DD/MM/YYYY as
// typed; amounts are canonical decimal strings.
type ContratoFilter struct {
	Setor          string           `json:"setor,omitempty"`
	FonteRecurso   string           `json:"fonte_recurso,omitempty"`
	Meta           string           `json:"meta,omitempty"`
	Atividade      string           `json:"atividade,omitempty"`
	Rubrica        string           `json:"rubrica,omitempty"`
	StatusContrato []StatusContrato `json:"status_contrato,omitempty"`
	TipoContrato   []TipoContrato   `json:"tipo_contrato,omitempty"`
	DataInicioDe   string           `json:"data_inicio_de,omitempty"`
	DataInicioAte  string           `json:"data_inicio_ate,omitempty"`
	DataFimDe      string           `json:"data_fim_de,omitempty"`
	DataFimAte     string           `json:"data_fim_ate,omitempty"`
	ValorMinimo    string           `json:"valor_minimo,omitempty"`
	ValorMaximo    string           `json:"valor_maximo,omitempty"`
	TextoBusca     string           `json:"texto_busca,omitempty"`
	Ordenacao      string           `json:"ordenacao,omitempty"`
	Page           int              `json:"page,omitempty"`
	PageSize       int              `json:"page_size,omitempty"`
}

// Validate checks dates, both date ranges and the amount range
func (f ContratoFilter) Validate() FieldErrors {
	errs := FieldErrors{}

	dates := []struct{ field, value string }{
		{"data_inicio_de", f.DataInicioDe},
		{"data_inicio_ate", f.DataInicioAte},
		{"data_fim_de", f.DataFimDe},
		{"data_fim_ate", f.DataFimAte},
	}
	for _, d := range dates {
		if !validate.IsValidDate(d.value) {
			errs.Add(d.field, MsgDateInvalid)
		}
	}
	if len(errs) == 0 {
		if !validate.IsDateRangeConsistent(f.DataInicioDe, f.DataInicioAte) {
			errs.Add("data_inicio_ate", MsgRangeInvalid)
		}
		if !validate.IsDateRangeConsistent(f.DataFimDe, f.DataFimAte) {
			errs.Add("data_fim_ate", MsgRangeInvalid)
		}
	}

	lo := money.AmountFromCanonical(f.ValorMinimo)
	hi := money.AmountFromCanonical(f.ValorMaximo)
	if f.ValorMinimo != "" && !lo.Valid {
		errs.Add("valor_minimo", MsgValorInvalid)
	}
	if f.ValorMaximo != "" && !hi.Valid {
		errs.Add("valor_maximo", MsgValorInvalid)
	}
	if lo.Valid && hi.Valid && lo.Value.GreaterThan(hi.Value) {
		errs.Add("valor_maximo", MsgValorRange)
	}

	return errs
}

// Query renders the filter as search parameters. Page is 1-based; empty
// fields are omitted and dates are sent in ISO form.
func (f ContratoFilter) Query() url.Values {
	q := url.Values{}

	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	ordering := f.Ordenacao
	if ordering == "" {
		ordering = DefaultOrdering
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(size))
	q.Set("ordering", ordering)

	setIf(q, "setor", f.Setor)
	setIf(q, "fonte_recurso", f.FonteRecurso)
	setIf(q, "meta", f.Meta)
	setIf(q, "atividade", f.Atividade)
	setIf(q, "rubrica", f.Rubrica)
	setIf(q, "status_contrato", joinStatus(f.StatusContrato))
	setIf(q, "tipo_contrato", joinTipo(f.TipoContrato))
	setIf(q, "data_inicio_de", validate.DateToAPI(f.DataInicioDe))
	setIf(q, "data_inicio_ate", validate.DateToAPI(f.DataInicioAte))
	setIf(q, "data_fim_de", validate.DateToAPI(f.DataFimDe))
	setIf(q, "data_fim_ate", validate.DateToAPI(f.DataFimAte))
	setIf(q, "valor_minimo", f.ValorMinimo)
	setIf(q, "valor_maximo", f.ValorMaximo)
	setIf(q, "texto_busca", f.TextoBusca)

	return q
}

// SavedFilter is a named search stored by the backend
type SavedFilter struct {
	ID             int    `json:"id,omitempty"`
	Nome           string `json:"nome"`
	Descricao      string `json:"descricao,omitempty"`
	Setor          string `json:"setor,omitempty"`
	FonteRecurso   string `json:"fonte_recurso,omitempty"`
	Meta           string `json:"meta,omitempty"`
	Atividade      string `json:"atividade,omitempty"`
	Rubrica        string `json:"rubrica,omitempty"`
	StatusContrato string `json:"status_contrato,omitempty"`
	TipoContrato   string `json:"tipo_contrato,omitempty"`
	DataInicioDe   string `json:"data_inicio_de,omitempty"`
	DataInicioAte  string `json:"data_inicio_ate,omitempty"`
	DataFimDe      string `json:"data_fim_de,omitempty"`
	DataFimAte     string `json:"data_fim_ate,omitempty"`
	ValorMinimo    string `json:"valor_minimo,omitempty"`
	ValorMaximo    string `json:"valor_maximo,omitempty"`
	TextoBusca     string `json:"texto_busca,omitempty"`
	Ordenacao      string `json:"ordenacao,omitempty"`
	ItensPorPagina int    `json:"itens_por_pagina,omitempty"`
}

// NewSavedFilter captures f under a name
func NewSavedFilter(nome, descricao string, f ContratoFilter) (SavedFilter, error) {
	if strings.TrimSpace(nome) == "" {
		return SavedFilter{}, FieldErrors{"nome": MsgFilterName}
	}
	return SavedFilter{
		Nome:           nome,
		Descricao:      descricao,
		Setor:          f.Setor,
		FonteRecurso:   f.FonteRecurso,
		Meta:           f.Meta,
		Atividade:      f.Atividade,
		Rubrica:        f.Rubrica,
		StatusContrato: joinStatus(f.StatusContrato),
		TipoContrato:   joinTipo(f.TipoContrato),
		DataInicioDe:   validate.DateToAPI(f.DataInicioDe),
		DataInicioAte:  validate.DateToAPI(f.DataInicioAte),
		DataFimDe:      validate.DateToAPI(f.DataFimDe),
		DataFimAte:     validate.DateToAPI(f.DataFimAte),
		ValorMinimo:    f.ValorMinimo,
		ValorMaximo:    f.ValorMaximo,
		TextoBusca:     f.TextoBusca,
		Ordenacao:      f.Ordenacao,
		ItensPorPagina: f.PageSize,
	}, nil
}

// Filter restores the search a saved filter describes, starting at page 1
func (s SavedFilter) Filter() ContratoFilter {
	f := ContratoFilter{
		Setor:         s.Setor,
		FonteRecurso:  s.FonteRecurso,
		Meta:          s.Meta,
		Atividade:     s.Atividade,
		Rubrica:       s.Rubrica,
		DataInicioDe:  validate.DateFromAPI(s.DataInicioDe),
		DataInicioAte: validate.DateFromAPI(s.DataInicioAte),
		DataFimDe:     validate.DateFromAPI(s.DataFimDe),
		DataFimAte:    validate.DateFromAPI(s.DataFimAte),
		ValorMinimo:   s.ValorMinimo,
		ValorMaximo:   s.ValorMaximo,
		TextoBusca:    s.TextoBusca,
		Ordenacao:     s.Ordenacao,
		Page:          1,
		PageSize:      s.ItensPorPagina,
	}
	if f.Ordenacao == "" {
		f.Ordenacao = DefaultOrdering
	}
	if f.PageSize == 0 {
		f.PageSize = DefaultPageSize
	}
	for _, v := range splitList(s.StatusContrato) {
		f.StatusContrato = append(f.StatusContrato, StatusContrato(v))
	}
	for _, v := range splitList(s.TipoContrato) {
		f.TipoContrato = append(f.TipoContrato, TipoContrato(v))
	}
	return f
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func joinStatus(list []StatusContrato) string {
	parts := make([]string, len(list))
	for i, s := range list {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func joinTipo(list []TipoContrato) string {
	parts := make([]string, len(list))
	for i, t := range list {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

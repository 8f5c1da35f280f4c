// Package model holds the records exchanged with the contracts backend and
// the form rules applied before they are sent.
package model

import (
	"strings"

	"github.com/ccbj/ccbj-forms/internal/validate"
)

// Messages shown by the registration form
const (
	MsgNomeRequired     = "Nome é obrigatório"
	MsgCPFRequired      = "CPF é obrigatório"
	MsgEmailRequired    = "Email é obrigatório"
	MsgTelefoneRequired = "Telefone é obrigatório"
	MsgCPFInvalid       = "CPF inválido"
	MsgEmailInvalid     = "Email inválido"
)

// Bolsista is a scholarship recipient
type Bolsista struct {
	ID          int    `json:"id,omitempty" yaml:"id,omitempty"`
	Nome        string `json:"nome" yaml:"nome"`
	CPF         string `json:"cpf" yaml:"cpf"`
	Email       string `json:"email" yaml:"email"`
	Telefone    string `json:"telefone" yaml:"telefone"`
	Endereco    string `json:"endereco" yaml:"endereco"`
	Cidade      string `json:"cidade" yaml:"cidade"`
	Estado      string `json:"estado" yaml:"estado"`
	CEP         string `json:"cep" yaml:"cep"`
	Banco       string `json:"banco" yaml:"banco"`
	Agencia     string `json:"agencia" yaml:"agencia"`
	Conta       string `json:"conta" yaml:"conta"`
	Pix         string `json:"pix" yaml:"pix"`
	Observacoes string `json:"observacoes" yaml:"observacoes"`
	Ativo       bool   `json:"ativo" yaml:"ativo"`
}

// NewBolsista returns an empty, active record
func NewBolsista() Bolsista {
	return Bolsista{Ativo: true}
}

// Validate applies the registration form rules. Required checks run first;
// format checks only replace them for fields that were filled in.
func (b Bolsista) Validate() FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(b.Nome) == "" {
		errs.Set("nome", MsgNomeRequired)
	}
	if b.CPF == "" {
		errs.Set("cpf", MsgCPFRequired)
	}
	if b.Email == "" {
		errs.Set("email", MsgEmailRequired)
	}
	if b.Telefone == "" {
		errs.Set("telefone", MsgTelefoneRequired)
	}

	if b.CPF != "" && !validate.IsValidCPF(b.CPF) {
		errs.Set("cpf", MsgCPFInvalid)
	}
	if b.Email != "" && !validate.IsValidEmail(b.Email) {
		errs.Set("email", MsgEmailInvalid)
	}

	return errs
}

// ForAPI returns a copy with the masked fields reduced to digits
func (b Bolsista) ForAPI() Bolsista {
	out := b
	out.CPF = validate.Digits(b.CPF)
	out.Telefone = validate.Digits(b.Telefone)
	out.CEP = validate.Digits(b.CEP)
	return out
}

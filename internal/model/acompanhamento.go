package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ContratoRef is a contract id. The backend nests the whole contract when
// reading a follow-up and takes a bare id when writing one.
type ContratoRef int

// UnmarshalJSON accepts either 12 or {"id": 12, ...}
func (r *ContratoRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var nested struct {
			ID int `json:"id"`
		}
		if err := json.Unmarshal(data, &nested); err != nil {
			return err
		}
		*r = ContratoRef(nested.ID)
		return nil
	}

	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("contrato: %w", err)
	}
	*r = ContratoRef(id)
	return nil
}

// FollowSettings are the notification choices of a followed contract
type FollowSettings struct {
	NotificarMudancaStatus bool   `json:"notificar_mudanca_status"`
	NotificarPagamentos    bool   `json:"notificar_pagamentos"`
	NotificarPrazos        bool   `json:"notificar_prazos"`
	NotificarPorEmail      bool   `json:"notificar_por_email"`
	NotasPessoais          string `json:"notas_pessoais"`
}

// DefaultFollowSettings notifies on everything except by email
func DefaultFollowSettings() FollowSettings {
	return FollowSettings{
		NotificarMudancaStatus: true,
		NotificarPagamentos:    true,
		NotificarPrazos:        true,
	}
}

// Acompanhamento is a contract the user follows
type Acompanhamento struct {
	ID         int         `json:"id,omitempty"`
	Contrato   ContratoRef `json:"contrato"`
	DataInicio string      `json:"data_inicio_acompanhamento,omitempty"`
	FollowSettings
}

// FindByContrato returns the follow-up of a contract, if any
func FindByContrato(list []Acompanhamento, contratoID int) (Acompanhamento, bool) {
	for _, a := range list {
		if int(a.Contrato) == contratoID {
			return a, true
		}
	}
	return Acompanhamento{}, false
}

package model

import "fmt"

// LookupKind names one of the reference lists that feed the search filters
type LookupKind string

const (
	LookupSetores       LookupKind = "setores"
	LookupFontesRecurso LookupKind = "fontes-recursos"
	LookupMetas         LookupKind = "metas"
	LookupAtividades    LookupKind = "atividades"
	LookupRubricas      LookupKind = "rubricas"
)

// LookupKinds lists every reference list in filter order
var LookupKinds = []LookupKind{LookupSetores, LookupFontesRecurso, LookupMetas, LookupAtividades, LookupRubricas}

// ParseLookupKind validates a reference list name
func ParseLookupKind(s string) (LookupKind, error) {
	for _, k := range LookupKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown lookup list: %s", s)
}

// Path is the backend collection of the list
func (k LookupKind) Path() string {
	return "/" + string(k) + "/"
}

// Lookup is one entry of a reference list. Sectors, funding sources and
// budget lines have a name; goals and activities a code and description.
type Lookup struct {
	ID        int    `json:"id"`
	Nome      string `json:"nome,omitempty"`
	Codigo    string `json:"codigo,omitempty"`
	Descricao string `json:"descricao,omitempty"`
	Ativo     bool   `json:"ativo"`
}

// Label is the text shown in a filter select
func (l Lookup) Label() string {
	switch {
	case l.Nome != "":
		return l.Nome
	case l.Codigo != "" && l.Descricao != "":
		return l.Codigo + " - " + l.Descricao
	case l.Codigo != "":
		return l.Codigo
	}
	return l.Descricao
}

package document

import (
	"regexp"
	"sort"
)

// Placeholder is a variable a template body can reference
type Placeholder struct {
	Name        string
	Description string
}

// Catalogue lists the placeholders the backend fills in
var Catalogue = []Placeholder{
	{"bolsista.nome", "Nome completo do bolsista"},
	{"bolsista.cpf", "CPF do bolsista"},
	{"bolsista.email", "Email do bolsista"},
	{"bolsista.telefone", "Telefone do bolsista"},
	{"bolsista.endereco", "Endereço completo"},
	{"bolsista.banco", "Banco"},
	{"bolsista.agencia", "Agência bancária"},
	{"bolsista.conta", "Conta bancária"},
	{"contrato.nome", "Nome/título do contrato"},
	{"contrato.valor", "Valor total do contrato"},
	{"contrato.valor_extenso", "Valor por extenso"},
	{"contrato.data_inicio", "Data de início"},
	{"contrato.data_fim", "Data de término"},
	{"contrato.setor", "Setor responsável"},
	{"contrato.responsavel", "Nome do responsável"},
	{"contrato.parcelas", "Número de parcelas"},
	{"contrato.valor_parcela", "Valor de cada parcela"},
	{"data_atual", "Data atual no formato DD/MM/AAAA"},
	{"hora_atual", "Hora atual no formato HH:MM"},
	{"usuario", "Nome do usuário que está gerando o documento"},
}

var (
	placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)?)\s*\}\}`)
	known         = func() map[string]bool {
		m := make(map[string]bool, len(Catalogue))
		for _, p := range Catalogue {
			m[p.Name] = true
		}
		return m
	}()
)

// Usage is the result of scanning a template body
type Usage struct {
	Used    []string
	Unknown []string
}

// Placeholders lists, sorted and without repeats, the placeholders body
// uses. Names missing from the catalogue are also reported in Unknown.
func Placeholders(body string) Usage {
	seen := map[string]bool{}
	var u Usage
	for _, m := range placeholderRe.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		u.Used = append(u.Used, name)
		if !known[name] {
			u.Unknown = append(u.Unknown, name)
		}
	}
	sort.Strings(u.Used)
	sort.Strings(u.Unknown)
	return u
}

package model

// EntityType is what a document is generated for
type EntityType string

const (
	EntityBolsista EntityType = "bolsista"
	EntityContrato EntityType = "contrato"
)

// MsgEntityType is shown when a document is requested for an unknown entity
const MsgEntityType = "Tipo de entidade inválido"

// ParseEntityType validates an entity type name
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case EntityBolsista, EntityContrato:
		return EntityType(s), nil
	}
	return "", NewValidationError("entidade_tipo", s, "enum", MsgEntityType)
}

// Template is a document template managed by the backend
type Template struct {
	ID        int    `json:"id,omitempty"`
	Nome      string `json:"nome"`
	Tipo      string `json:"tipo"`
	Descricao string `json:"descricao,omitempty"`
	Conteudo  string `json:"conteudo"`
	Ativo     bool   `json:"ativo"`
}

// Validate checks the fields the template editor requires
func (t Template) Validate() FieldErrors {
	errs := FieldErrors{}
	if t.Nome == "" {
		errs.Set("nome", "Nome é obrigatório")
	}
	if t.Tipo == "" {
		errs.Set("tipo", "Tipo é obrigatório")
	}
	if t.Conteudo == "" {
		errs.Set("conteudo", "Conteúdo é obrigatório")
	}
	return errs
}

// GenerateRequest asks the backend to render a template for one entity
type GenerateRequest struct {
	TemplateID int        `json:"template_id"`
	EntityType EntityType `json:"entidade_tipo"`
	EntityID   int        `json:"entidade_id"`
}

// Validate rejects requests missing a template or an entity
func (r GenerateRequest) Validate() error {
	errs := FieldErrors{}
	if r.TemplateID <= 0 {
		errs.Set("template_id", "Selecione um template")
	}
	if r.EntityID <= 0 {
		errs.Set("entidade_id", "Selecione uma entidade")
	}
	if _, err := ParseEntityType(string(r.EntityType)); err != nil {
		errs.Set("entidade_tipo", MsgEntityType)
	}
	return errs.Err()
}

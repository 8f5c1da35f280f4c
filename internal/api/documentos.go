package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ccbj/ccbj-forms/internal/model"
)

const (
	templatesPath = "/documentos/templates/"
	gerarPath     = "/documentos/gerar/"
)

// ListTemplates returns the document templates
func (c *Client) ListTemplates(ctx context.Context) ([]model.Template, error) {
	data, err := c.send(ctx, http.MethodGet, templatesPath, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList[model.Template](data)
}

// CreateTemplate stores a new template
func (c *Client) CreateTemplate(ctx context.Context, t model.Template) (*model.Template, error) {
	if err := t.Validate().Err(); err != nil {
		return nil, err
	}
	var created model.Template
	if err := c.do(ctx, http.MethodPost, templatesPath, nil, t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTemplate replaces the template with t.ID
func (c *Client) UpdateTemplate(ctx context.Context, t model.Template) (*model.Template, error) {
	if t.ID <= 0 {
		return nil, fmt.Errorf("template has no id")
	}
	if err := t.Validate().Err(); err != nil {
		return nil, err
	}
	var updated model.Template
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s%d/", templatesPath, t.ID), nil, t, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTemplate removes a template
func (c *Client) DeleteTemplate(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", templatesPath, id), nil, nil, nil)
}

// GenerateDocument renders a template for one entity and returns the PDF
func (c *Client) GenerateDocument(ctx context.Context, req model.GenerateRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPost, gerarPath, nil, req, "")
}

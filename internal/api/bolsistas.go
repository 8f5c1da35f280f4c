package api

import (
	"context"
	"net/http"

	"github.com/ccbj/ccbj-forms/internal/model"
)

const bolsistasPath = "/bolsistas/"

// CreateBolsista registers a scholarship recipient. The form is validated
// locally first and a model.FieldErrors is returned without calling the
// backend when it fails.
func (c *Client) CreateBolsista(ctx context.Context, b model.Bolsista) (*model.Bolsista, error) {
	if err := b.Validate().Err(); err != nil {
		return nil, err
	}

	var created model.Bolsista
	if err := c.do(ctx, http.MethodPost, bolsistasPath, nil, b.ForAPI(), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListBolsistas returns the registered recipients
func (c *Client) ListBolsistas(ctx context.Context) ([]model.Bolsista, error) {
	data, err := c.send(ctx, http.MethodGet, bolsistasPath, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList[model.Bolsista](data)
}

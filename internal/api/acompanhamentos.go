package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ccbj/ccbj-forms/internal/model"
)

const acompanhamentosPath = "/acompanhamentos/"

// ListAcompanhamentos returns the contracts the user follows
func (c *Client) ListAcompanhamentos(ctx context.Context) ([]model.Acompanhamento, error) {
	data, err := c.send(ctx, http.MethodGet, acompanhamentosPath, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList[model.Acompanhamento](data)
}

// Follow starts following a contract
func (c *Client) Follow(ctx context.Context, contratoID int, settings model.FollowSettings) (*model.Acompanhamento, error) {
	body := model.Acompanhamento{Contrato: model.ContratoRef(contratoID), FollowSettings: settings}
	var created model.Acompanhamento
	if err := c.do(ctx, http.MethodPost, acompanhamentosPath, nil, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateFollow replaces the notification settings of a follow-up
func (c *Client) UpdateFollow(ctx context.Context, id int, settings model.FollowSettings) (*model.Acompanhamento, error) {
	var updated model.Acompanhamento
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s%d/", acompanhamentosPath, id), nil, settings, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Unfollow removes a follow-up
func (c *Client) Unfollow(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", acompanhamentosPath, id), nil, nil, nil)
}

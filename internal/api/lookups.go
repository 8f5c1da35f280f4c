package api

import (
	"context"
	"net/http"

	"github.com/ccbj/ccbj-forms/internal/model"
)

// ListLookup returns one of the reference lists used by the search filters
func (c *Client) ListLookup(ctx context.Context, kind model.LookupKind) ([]model.Lookup, error) {
	data, err := c.send(ctx, http.MethodGet, kind.Path(), nil, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList[model.Lookup](data)
}

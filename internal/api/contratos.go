package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ccbj/ccbj-forms/internal/model"
)

const (
	contratosPath    = "/contratos/"
	buscarPath       = "/contratos/buscar/"
	exportarPath     = "/contratos/exportar/"
	verifyStatusPath = "/contratos/verificar-status/"
	savedFilterPath  = "/filtros-salvos/"
)

// ExportFormat is the spreadsheet format requested from the export endpoint
const ExportFormat = "xlsx"

// ListContratos returns the contracts visible to the user
func (c *Client) ListContratos(ctx context.Context) ([]model.Contrato, error) {
	data, err := c.send(ctx, http.MethodGet, contratosPath, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList[model.Contrato](data)
}

// GetContrato loads one contract
func (c *Client) GetContrato(ctx context.Context, id int) (*model.Contrato, error) {
	var contrato model.Contrato
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s%d/", contratosPath, id), nil, nil, &contrato); err != nil {
		return nil, err
	}
	return &contrato, nil
}

// SearchContratos runs an advanced search. The filter is validated before
// the request is made.
func (c *Client) SearchContratos(ctx context.Context, f model.ContratoFilter) (*Page[model.Contrato], error) {
	if err := f.Validate().Err(); err != nil {
		return nil, err
	}

	data, err := c.send(ctx, http.MethodGet, buscarPath, f.Query(), nil, "")
	if err != nil {
		return nil, err
	}

	var page Page[model.Contrato]
	if err := json.Unmarshal(data, &page); err != nil {
		items, listErr := decodeList[model.Contrato](data)
		if listErr != nil {
			return nil, listErr
		}
		return &Page[model.Contrato]{Count: len(items), Results: items}, nil
	}
	return &page, nil
}

// UpdateContratoStatus moves a contract to another status. current is the
// status the contract has now; a reason is required when it changes.
func (c *Client) UpdateContratoStatus(ctx context.Context, id int, current model.StatusContrato, change model.StatusChange) (*model.Contrato, error) {
	if err := change.Validate(current); err != nil {
		return nil, err
	}

	var updated model.Contrato
	path := fmt.Sprintf("%s%d/", contratosPath, id)
	if err := c.do(ctx, http.MethodPatch, path, nil, change, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// VerifyStatus asks the backend to recompute the status of every contract
// from its dates and payments
func (c *Client) VerifyStatus(ctx context.Context) (*model.StatusCheckResult, error) {
	var result model.StatusCheckResult
	if err := c.do(ctx, http.MethodPost, verifyStatusPath, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExportContratos returns the spreadsheet of the contracts matching f.
// Paging is ignored by the backend; every match is exported.
func (c *Client) ExportContratos(ctx context.Context, f model.ContratoFilter) ([]byte, error) {
	if err := f.Validate().Err(); err != nil {
		return nil, err
	}
	q := f.Query()
	q.Set("format", ExportFormat)
	return c.send(ctx, http.MethodGet, exportarPath, q, nil, "")
}

// StatusHistory lists the status changes of a contract, newest first
func (c *Client) StatusHistory(ctx context.Context, id int) ([]model.StatusHistoryEntry, error) {
	data, err := c.send(ctx, http.MethodGet, fmt.Sprintf("%s%d/historico-status/", contratosPath, id), nil, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList[model.StatusHistoryEntry](data)
}

// ListSavedFilters returns the user's saved searches
func (c *Client) ListSavedFilters(ctx context.Context) ([]model.SavedFilter, error) {
	data, err := c.send(ctx, http.MethodGet, savedFilterPath, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList[model.SavedFilter](data)
}

// SaveFilter stores a named search
func (c *Client) SaveFilter(ctx context.Context, f model.SavedFilter) (*model.SavedFilter, error) {
	var saved model.SavedFilter
	if err := c.do(ctx, http.MethodPost, savedFilterPath, nil, f, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteSavedFilter removes a saved search
func (c *Client) DeleteSavedFilter(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", savedFilterPath, id), nil, nil, nil)
}

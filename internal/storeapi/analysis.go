package storeapi

import (
	"context"

	"github.com/jekabolt/store-console/internal/dto"
	"github.com/jekabolt/store-console/internal/entity"
	gerr "github.com/jekabolt/store-console/internal/errors"
)

// Analysis fetches GET /analysis/. A body without metrics or
// products_performance is a format failure.
func (c *Client) Analysis(ctx context.Context, f entity.FilterParams) (*entity.Analysis, error) {
	const op = "fetch analysis"
	resp, err := c.request(ctx).
		SetQueryParams(dto.FilterQuery(f)).
		Get("/analysis/")
	if err := check(op, resp, err, gerr.KindValidation); err != nil {
		return nil, err
	}
	return dto.DecodeAnalysis(resp.Body())
}

func (c *Client) Categories(ctx context.Context) ([]entity.Category, error) {
	const op = "list categories"
	resp, err := c.request(ctx).Get("/categories/")
	if err := check(op, resp, err, gerr.KindValidation); err != nil {
		return nil, err
	}
	var cs []dto.Category
	if err := decode(op, resp, &cs); err != nil {
		return nil, err
	}
	return dto.ConvertCategoriesToEntity(cs), nil
}

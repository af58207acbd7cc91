package storeapi

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/jekabolt/store-console/internal/dto"
	"github.com/jekabolt/store-console/internal/entity"
	gerr "github.com/jekabolt/store-console/internal/errors"
)

func (c *Client) ListSales(ctx context.Context) ([]entity.Sale, error) {
	const op = "list sales"
	resp, err := c.request(ctx).Get("/sales/")
	if err := check(op, resp, err, gerr.KindValidation); err != nil {
		return nil, err
	}
	var ss []dto.Sale
	if err := decode(op, resp, &ss); err != nil {
		return nil, err
	}
	return dto.ConvertSalesToEntity(ss), nil
}

func (c *Client) CreateSale(ctx context.Context, s entity.SaleNew) (*entity.Sale, error) {
	const op = "create sale"
	resp, err := c.request(ctx).
		SetBody(dto.ConvertEntitySaleNewToWrite(s)).
		Post("/sales/")
	return c.saleResult(op, resp, err)
}

func (c *Client) UpdateSale(ctx context.Context, id int, s entity.SaleNew) (*entity.Sale, error) {
	const op = "update sale"
	resp, err := c.request(ctx).
		SetBody(dto.ConvertEntitySaleNewToWrite(s)).
		Put(fmt.Sprintf("/sales/%d/", id))
	return c.saleResult(op, resp, err)
}

func (c *Client) DeleteSale(ctx context.Context, id int) error {
	resp, err := c.request(ctx).Delete(fmt.Sprintf("/sales/%d/", id))
	return check("delete sale", resp, err, gerr.KindValidation)
}

func (c *Client) saleResult(op string, resp *resty.Response, err error) (*entity.Sale, error) {
	if err := check(op, resp, err, gerr.KindValidation); err != nil {
		return nil, err
	}
	var s dto.Sale
	if err := decode(op, resp, &s); err != nil {
		return nil, err
	}
	out := dto.ConvertSaleToEntity(s)
	return &out, nil
}

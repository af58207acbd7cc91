package storeapi

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/jekabolt/store-console/internal/dto"
	"github.com/jekabolt/store-console/internal/entity"
	gerr "github.com/jekabolt/store-console/internal/errors"
)

func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	const op = "list products"
	resp, err := c.request(ctx).Get("/products/")
	if err := check(op, resp, err, gerr.KindValidation); err != nil {
		return nil, err
	}
	var ps []dto.Product
	if err := decode(op, resp, &ps); err != nil {
		return nil, err
	}
	return dto.ConvertProductsToEntity(ps), nil
}

func (c *Client) CreateProduct(ctx context.Context, p entity.ProductNew) (*entity.Product, error) {
	const op = "create product"
	resp, err := c.request(ctx).
		SetBody(dto.ConvertEntityProductNewToWrite(p)).
		Post("/products/")
	return c.productResult(op, resp, err)
}

func (c *Client) UpdateProduct(ctx context.Context, id int, p entity.ProductNew) (*entity.Product, error) {
	const op = "update product"
	resp, err := c.request(ctx).
		SetBody(dto.ConvertEntityProductNewToWrite(p)).
		Put(fmt.Sprintf("/products/%d/", id))
	return c.productResult(op, resp, err)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	resp, err := c.request(ctx).Delete(fmt.Sprintf("/products/%d/", id))
	return check("delete product", resp, err, gerr.KindValidation)
}

func (c *Client) productResult(op string, resp *resty.Response, err error) (*entity.Product, error) {
	if err := check(op, resp, err, gerr.KindValidation); err != nil {
		return nil, err
	}
	var p dto.Product
	if err := decode(op, resp, &p); err != nil {
		return nil, err
	}
	out := dto.ConvertProductToEntity(p)
	return &out, nil
}

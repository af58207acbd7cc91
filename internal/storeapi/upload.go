package storeapi

import (
	"context"
	"encoding/json"
	"io"

	"github.com/jekabolt/store-console/internal/entity"
	gerr "github.com/jekabolt/store-console/internal/errors"
)

const uploadField = "file"

type uploadResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Status  string `json:"status"`
}

// UploadCSV posts the file to the bulk import endpoint. A 4xx answer
// means the server rejected the file format.
func (c *Client) UploadCSV(ctx context.Context, name string, r io.Reader) (*entity.ImportAck, error) {
	const op = "upload csv"
	resp, err := c.request(ctx).
		SetFileReader(uploadField, name, r).
		Post("/products/upload-csv/")
	if err := check(op, resp, err, gerr.KindFormat); err != nil {
		return nil, err
	}

	ack := &entity.ImportAck{StatusCode: resp.StatusCode()}
	var ur uploadResponse
	if err := json.Unmarshal(resp.Body(), &ur); err == nil {
		switch {
		case ur.Message != "":
			ack.Message = ur.Message
		case ur.Detail != "":
			ack.Message = ur.Detail
		default:
			ack.Message = ur.Status
		}
	} else {
		ack.Message = detail(resp.Body())
	}
	return ack, nil
}

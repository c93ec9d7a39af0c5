package client

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// ProductListItem is a product as returned by the product list
type ProductListItem struct {
	ID                   int64               `json:"id" example:"3"`
	Name                 string              `json:"name" example:"Стол обеденный"`
	Article              *string             `json:"article" example:"8758385"`
	MinPartnerPrice      decimal.NullDecimal `json:"min_partner_price" swaggertype:"number" example:"4456.90"`
	ProductType          string              `json:"product_type" example:"Столы"`
	ProductTypeID        int64               `json:"product_type_id" example:"2"`
	MaterialType         string              `json:"material_type" example:"Мебельный щит из массива дерева"`
	MaterialTypeID       int64               `json:"material_type_id" example:"1"`
	ManufactureTimeHours int                 `json:"manufacture_time_hours" example:"5"`
}

// WorkshopTime is the manufacturing time of a product in one workshop
type WorkshopTime struct {
	Workshop         string   `json:"workshop" example:"Сборочный"`
	ManufactureHours *float64 `json:"manufacture_hours" example:"1.5"`
}

// ProductDetail adds the per-workshop manufacturing times to the list item
type ProductDetail struct {
	ProductListItem
	Workshops []WorkshopTime `json:"workshops"`
}

// ProductWritePayload is the body for creating or updating a product
type ProductWritePayload struct {
	Article         string          `json:"article" example:"8758385"`
	Name            string          `json:"name" example:"Стол обеденный"`
	MinPartnerPrice decimal.Decimal `json:"min_partner_price" swaggertype:"string" example:"4456.90"`
	ProductTypeID   int64           `json:"product_type_id" example:"2"`
	MaterialTypeID  int64           `json:"material_type_id" example:"1"`
}

// ProductWriteResult is the backend's echo of a created or updated product
type ProductWriteResult struct {
	ID int64 `json:"id,omitempty"`
	ProductWritePayload
}

// FetchProducts returns all products with their total manufacture time
func (c *Client) FetchProducts(ctx context.Context) ([]ProductListItem, error) {
	return requestJSON[[]ProductListItem](ctx, c, resourceProducts, http.MethodGet, CollectionPath(resourceProducts), nil)
}

// FetchProduct returns one product with its workshop times
func (c *Client) FetchProduct(ctx context.Context, id int64) (*ProductDetail, error) {
	res, err := requestJSON[ProductDetail](ctx, c, resourceProducts, http.MethodGet, ItemPath(resourceProducts, id), nil)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateProduct creates a product
func (c *Client) CreateProduct(ctx context.Context, payload ProductWritePayload) (*ProductWriteResult, error) {
	res, err := requestJSON[ProductWriteResult](ctx, c, resourceProducts, http.MethodPost, CollectionPath(resourceProducts), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateProduct replaces the writable fields of a product
func (c *Client) UpdateProduct(ctx context.Context, id int64, payload ProductWritePayload) (*ProductWriteResult, error) {
	res, err := requestJSON[ProductWriteResult](ctx, c, resourceProducts, http.MethodPut, ItemPath(resourceProducts, id), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteProduct deletes a product (the backend also removes its workshop links)
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return requestVoid(ctx, c, resourceProducts, http.MethodDelete, ItemPath(resourceProducts, id), nil)
}

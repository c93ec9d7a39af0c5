package client

import (
	"context"
	"net/http"
)

// RawMaterialCalcPayload holds the inputs of the raw material calculation
type RawMaterialCalcPayload struct {
	ProductTypeID   int64   `json:"product_type_id" example:"1"`
	MaterialTypeID  int64   `json:"material_type_id" example:"2"`
	ProductQuantity int     `json:"product_quantity" example:"15"`
	ParameterOne    float64 `json:"parameter_one" example:"2.5"`
	ParameterTwo    float64 `json:"parameter_two" example:"1.2"`
}

// RawMaterialCalcResponse holds the computed amount of raw material, losses included.
// The backend answers -1 when an input is invalid or a type is unknown.
type RawMaterialCalcResponse struct {
	RawMaterialAmount int `json:"raw_material_amount" example:"47"`
}

// Valid reports whether the backend could compute an amount
func (r RawMaterialCalcResponse) Valid() bool {
	return r.RawMaterialAmount >= 0
}

// CalculateRawMaterial asks the backend for the raw material needed to produce a batch
func (c *Client) CalculateRawMaterial(ctx context.Context, payload RawMaterialCalcPayload) (*RawMaterialCalcResponse, error) {
	res, err := requestJSON[RawMaterialCalcResponse](ctx, c, resourceRawMaterial, http.MethodPost, CollectionPath(resourceRawMaterial)+"/calculate", payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

package client

import (
	"context"
	"net/http"
)

// EmployeeWritePayload is the body for creating or updating an employee
type EmployeeWritePayload struct {
	FullName     string  `json:"full_name" example:"Петров Пётр Петрович"`
	BirthDate    *string `json:"birth_date" example:"1990-05-17"` // YYYY-MM-DD
	PassportData string  `json:"passport_data" example:"4510 123456"`
	BankDetails  string  `json:"bank_details" example:"40817810099910004312"`
	HasFamily    bool    `json:"has_family" example:"true"`
	HealthStatus string  `json:"health_status" example:"здоров"`
}

// Employee is a member of staff
type Employee struct {
	ID int64 `json:"id" example:"1"`
	EmployeeWritePayload
}

// FetchEmployees returns all employees
func (c *Client) FetchEmployees(ctx context.Context) ([]Employee, error) {
	return requestJSON[[]Employee](ctx, c, resourceEmployees, http.MethodGet, CollectionPath(resourceEmployees), nil)
}

// FetchEmployee returns one employee
func (c *Client) FetchEmployee(ctx context.Context, id int64) (*Employee, error) {
	res, err := requestJSON[Employee](ctx, c, resourceEmployees, http.MethodGet, ItemPath(resourceEmployees, id), nil)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateEmployee creates an employee
func (c *Client) CreateEmployee(ctx context.Context, payload EmployeeWritePayload) (*Employee, error) {
	res, err := requestJSON[Employee](ctx, c, resourceEmployees, http.MethodPost, CollectionPath(resourceEmployees), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateEmployee replaces the writable fields of an employee
func (c *Client) UpdateEmployee(ctx context.Context, id int64, payload EmployeeWritePayload) (*Employee, error) {
	res, err := requestJSON[Employee](ctx, c, resourceEmployees, http.MethodPut, ItemPath(resourceEmployees, id), payload)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteEmployee deletes an employee
func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return requestVoid(ctx, c, resourceEmployees, http.MethodDelete, ItemPath(resourceEmployees, id), nil)
}

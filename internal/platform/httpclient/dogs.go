package httpclient

import (
	"context"
	"net/http"
	"strconv"
)

// Dog es la forma en el wire de /api/dogs.
type Dog struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type DogInput struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

func (c *Client) Hello(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.DoJSON(ctx, http.MethodGet, "/", nil, &out)
	return out.Message, err
}

func (c *Client) ListDogs(ctx context.Context) ([]Dog, error) {
	var out []Dog
	if err := c.DoJSON(ctx, http.MethodGet, "/api/dogs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDog(ctx context.Context, id int64) (Dog, error) {
	var out Dog
	err := c.DoJSON(ctx, http.MethodGet, dogPath(id), nil, &out)
	return out, err
}

func (c *Client) CreateDog(ctx context.Context, in DogInput) (Dog, error) {
	var out Dog
	err := c.DoJSON(ctx, http.MethodPost, "/api/dogs", in, &out)
	return out, err
}

func (c *Client) UpdateDog(ctx context.Context, id int64, in DogInput) (Dog, error) {
	var out Dog
	err := c.DoJSON(ctx, http.MethodPut, dogPath(id), in, &out)
	return out, err
}

func (c *Client) DeleteDog(ctx context.Context, id int64) (Dog, error) {
	var out Dog
	err := c.DoJSON(ctx, http.MethodDelete, dogPath(id), nil, &out)
	return out, err
}

func dogPath(id int64) string {
	return "/api/dogs/" + strconv.FormatInt(id, 10)
}

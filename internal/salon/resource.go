// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package salon

import (
	"context"
	"net/http"
	"strconv"

	"github.com/taibuivan/salonbook/internal/apiclient"
	"github.com/taibuivan/salonbook/pkg/pagination"
)

// Resource is the CRUD facade of one collection endpoint.
//
// T is the entity, I the write payload.
type Resource[T any, I any] struct {
	client   *apiclient.Client
	endpoint string
}

// NewResource binds a collection endpoint.
func NewResource[T any, I any](client *apiclient.Client, endpoint string) *Resource[T, I] {
	return &Resource[T, I]{client: client, endpoint: endpoint}
}

// List fetches one page. Bare-array responses are normalized to a single page.
func (resource *Resource[T, I]) List(ctx context.Context, params pagination.Params) (*pagination.Page[T], error) {
	envelope, err := apiclient.Call[pagination.Page[T]](ctx, resource.client, apiclient.Request{
		Method:   http.MethodGet,
		Endpoint: resource.endpoint,
		Query:    params.Query(),
		Auth:     true,
	})
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Get fetches one entity by id.
func (resource *Resource[T, I]) Get(ctx context.Context, id int64) (*T, error) {
	envelope, err := apiclient.Call[T](ctx, resource.client, apiclient.Request{
		Method:   http.MethodGet,
		Endpoint: resource.item(id),
		Auth:     true,
	})
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Create posts a new entity and returns the full envelope for its message.
func (resource *Resource[T, I]) Create(ctx context.Context, input I) (*apiclient.Envelope[T], error) {
	return apiclient.Call[T](ctx, resource.client, apiclient.Request{
		Method:   http.MethodPost,
		Endpoint: resource.endpoint,
		Body:     input,
		Auth:     true,
	})
}

// Update replaces an entity.
func (resource *Resource[T, I]) Update(ctx context.Context, id int64, input I) (*apiclient.Envelope[T], error) {
	return apiclient.Call[T](ctx, resource.client, apiclient.Request{
		Method:   http.MethodPut,
		Endpoint: resource.item(id),
		Body:     input,
		Auth:     true,
	})
}

// Delete removes an entity.
func (resource *Resource[T, I]) Delete(ctx context.Context, id int64) (*apiclient.Envelope[apiclient.Empty], error) {
	return apiclient.Call[apiclient.Empty](ctx, resource.client, apiclient.Request{
		Method:   http.MethodDelete,
		Endpoint: resource.item(id),
		Auth:     true,
	})
}

func (resource *Resource[T, I]) item(id int64) string {
	return resource.endpoint + "/" + strconv.FormatInt(id, 10)
}

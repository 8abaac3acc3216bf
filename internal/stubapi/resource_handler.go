// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stubapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/salonbook/internal/platform/apperr"
	requestutil "github.com/taibuivan/salonbook/internal/platform/request"
	"github.com/taibuivan/salonbook/internal/platform/respond"
	"github.com/taibuivan/salonbook/pkg/pagination"
	"github.com/taibuivan/salonbook/pkg/slice"
)

// resource describes one CRUD collection over [Data].
//
// validate and build run under the write lock so they may read other tables
// to check references.
type resource[T any, I any] struct {
	name     string
	table    func(data *Data) *table[T]
	matches  func(row T, search string) bool
	validate func(data *Data, input I) error
	build    func(data *Data, id int64, input I, existing *T) T
}

// mount registers index, store, show, update and destroy on router.
func (res resource[T, I]) mount(router chi.Router, data *Data) {
	router.Get("/", res.index(data))
	router.Post("/", res.store(data))
	router.Get("/{id}", res.show(data))
	router.Put("/{id}", res.update(data))
	router.Delete("/{id}", res.destroy(data))
}

func (res resource[T, I]) index(data *Data) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		params := pagination.FromQuery(request.URL.Query())

		data.mu.RLock()
		rows := res.table(data).list()
		data.mu.RUnlock()

		if params.Search != "" && res.matches != nil {
			rows = slice.Filter(rows, func(row T) bool { return res.matches(row, params.Search) })
		}

		start := min(params.Offset(), len(rows))
		end := min(start+params.PerPage, len(rows))

		respond.OK(writer, pagination.NewPage(rows[start:end], params, len(rows)))
	}
}

func (res resource[T, I]) show(data *Data) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.ID(request, "id", res.name)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		data.mu.RLock()
		row, ok := res.table(data).get(id)
		data.mu.RUnlock()

		if !ok {
			respond.Error(writer, request, apperr.NotFound(res.name))
			return
		}
		respond.OK(writer, row)
	}
}

func (res resource[T, I]) store(data *Data) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input I
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		data.mu.Lock()
		if err := res.validate(data, input); err != nil {
			data.mu.Unlock()
			respond.Error(writer, request, err)
			return
		}
		created := res.table(data).insert(func(id int64) T {
			return res.build(data, id, input, nil)
		})
		data.mu.Unlock()

		respond.Created(writer, res.name+" created successfully", created)
	}
}

func (res resource[T, I]) update(data *Data) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.ID(request, "id", res.name)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input I
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		data.mu.Lock()
		existing, ok := res.table(data).get(id)
		if !ok {
			data.mu.Unlock()
			respond.Error(writer, request, apperr.NotFound(res.name))
			return
		}
		if err := res.validate(data, input); err != nil {
			data.mu.Unlock()
			respond.Error(writer, request, err)
			return
		}
		updated := res.build(data, id, input, &existing)
		res.table(data).put(id, updated)
		data.mu.Unlock()

		respond.Message(writer, res.name+" updated successfully", updated)
	}
}

func (res resource[T, I]) destroy(data *Data) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.ID(request, "id", res.name)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		data.mu.Lock()
		removed := res.table(data).remove(id)
		data.mu.Unlock()

		if !removed {
			respond.Error(writer, request, apperr.NotFound(res.name))
			return
		}
		respond.Message(writer, res.name+" deleted successfully", nil)
	}
}

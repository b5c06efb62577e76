// Package listquery runs filtered, sorted and paginated queries over
// in-memory record sets fetched from an arbitrary data source.
package listquery

import (
	"context"

	"github.com/JaimeStill/aspiredu/pkg/pagination"
)

// PageUnset marks a query that did not request a page. It resolves to page 1.
const PageUnset = -1

// Query holds the caller's pagination and ordering parameters.
type Query struct {
	Page      int
	PageSize  int
	SortField string
	Direction Direction
}

// NewQuery returns a query for the first page of pageSize records in ascending order.
func NewQuery(pageSize int) Query {
	return Query{
		Page:      PageUnset,
		PageSize:  pageSize,
		Direction: Ascending,
	}
}

// Fetcher loads the candidate records for a query.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// DataSource describes where a query's records come from and who may see them.
// Authorize and Filter are optional.
type DataSource[T any] struct {
	Fetch     Fetcher[T]
	Authorize Authorizer
	Filter    Filter[T]
}

// Result is a page of records plus warnings for excluded records.
type Result[T any] struct {
	pagination.PageResult[T]
	Warnings []Warning `json:"warnings"`
}

// Service executes list queries for one record type.
type Service[T any] struct {
	sorter *Sorter[T]
}

// New creates a Service ordering records with sorter.
func New[T any](sorter *Sorter[T]) *Service[T] {
	return &Service[T]{sorter: sorter}
}

// Sorter returns the sort fields the service accepts.
func (s *Service[T]) Sorter() *Sorter[T] {
	return s.sorter
}

// Execute validates q, authorizes the requester, fetches, filters, sorts and
// slices the records. Any error aborts the query without a partial result.
func (s *Service[T]) Execute(ctx context.Context, src DataSource[T], requester Requester, q Query) (*Result[T], error) {
	if err := q.Direction.Validate(); err != nil {
		return nil, err
	}

	compare, err := s.sorter.Resolve(q.SortField)
	if err != nil {
		return nil, err
	}

	if src.Authorize != nil {
		if err := src.Authorize(ctx, requester); err != nil {
			return nil, err
		}
	}

	records, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	kept, warnings := apply(records, src.Filter, requester)
	sortStable(kept, compare, q.Direction)

	page, effective := pagination.Paginate(kept, q.Page, q.PageSize)

	return &Result[T]{
		PageResult: pagination.NewPageResult(page, len(kept), effective, q.PageSize),
		Warnings:   warnings,
	}, nil
}

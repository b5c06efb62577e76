// Package logs pages the standard log store. Unlike the other list
// endpoints, filtering and paging run in SQL since the store is large.
package logs

import (
	"context"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// System defines the public contract for log queries.
type System interface {
	Handler() *Handler

	Records(
		ctx context.Context,
		r listquery.Requester,
		opts Options,
		q listquery.Query,
	) (*listquery.Result[Record], error)
}

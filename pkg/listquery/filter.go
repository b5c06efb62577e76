package listquery

import (
	"context"
	"strings"
)

// Requester is the identity and role context a query runs under.
type Requester interface {
	UserID() int64
	// Can reports whether the requester holds capability at scope.
	// Scopes are slash-delimited context paths; a grant on an ancestor applies.
	Can(capability, scope string) bool
}

// Warning annotates a record that was excluded from a result.
type Warning struct {
	Item        string `json:"item"`
	ItemID      int64  `json:"itemid"`
	WarningCode string `json:"warningcode"`
	Message     string `json:"message"`
}

// Decision is the outcome of an access check for one record.
type Decision struct {
	Included bool
	Warning  *Warning
}

// Allow includes a record.
func Allow() Decision {
	return Decision{Included: true}
}

// Deny excludes a record, optionally explaining why.
func Deny(w *Warning) Decision {
	return Decision{Warning: w}
}

// Filter decides whether a requester may see a record.
type Filter[T any] interface {
	Include(record T, requester Requester) Decision
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc[T any] func(record T, requester Requester) Decision

func (f FilterFunc[T]) Include(record T, requester Requester) Decision {
	return f(record, requester)
}

// Authorizer checks the baseline capability for a whole query.
type Authorizer func(ctx context.Context, requester Requester) error

// RequireCapability returns an Authorizer demanding capability at scope.
func RequireCapability(capability, scope string) Authorizer {
	return RequireAny(scope, capability)
}

// RequireAny returns an Authorizer satisfied by any one of capabilities at scope.
func RequireAny(scope string, capabilities ...string) Authorizer {
	return func(_ context.Context, r Requester) error {
		if r != nil {
			for _, c := range capabilities {
				if r.Can(c, scope) {
					return nil
				}
			}
		}
		return Forbidden(strings.Join(capabilities, " or "))
	}
}

func apply[T any](records []T, filter Filter[T], requester Requester) ([]T, []Warning) {
	kept := make([]T, 0, len(records))
	warnings := make([]Warning, 0)

	for _, rec := range records {
		if filter == nil {
			kept = append(kept, rec)
			continue
		}
		d := filter.Include(rec, requester)
		if d.Included {
			kept = append(kept, rec)
			continue
		}
		if d.Warning != nil {
			warnings = append(warnings, *d.Warning)
		}
	}

	return kept, warnings
}

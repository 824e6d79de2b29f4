package chi

import (
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/gearsh/gearsh-api/internal/domain"
)

// queryParam binds an optional form-style query parameter into dest, which
// must be a pointer to a pointer. dest stays nil when the parameter is absent.
// Malformed values are a validation error naming the parameter.
func queryParam(q url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
		return domain.Invalid(name, "invalid value %q", q.Get(name))
	}
	return nil
}

type binding struct {
	name string
	dest any
}

// queryParams binds several parameters in order, stopping at the first error.
func queryParams(q url.Values, binds ...binding) error {
	for _, b := range binds {
		if err := queryParam(q, b.name, b.dest); err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

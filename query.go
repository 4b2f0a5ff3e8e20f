package pvclient

import (
	"net/url"

	"github.com/n0h4rt/pvclient/utils"
)

// Query holds the query parameters of a request.
// Values are already strings, conversion is done once by the caller (see [utils.Stringify] and [NewQuery]).
type Query map[string]string

// NewQuery builds a [Query] from alternating key and value arguments.
// Every key and value is passed through [utils.Stringify]; a trailing key without a value is ignored
// and a repeated key keeps its last value.
//
// Args:
//   - kv: Alternating keys and values.
//
// Returns:
//   - Query: The resulting query.
func NewQuery(kv ...any) Query {
	q := make(Query, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		q[utils.Stringify(kv[i])] = utils.Stringify(kv[i+1])
	}
	return q
}

// Encode returns the URL-encoded form of the query ("a=1&b=2"), sorted by key.
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}

	values := make(url.Values, len(q))
	for key, value := range q {
		values.Set(key, value)
	}

	return values.Encode()
}

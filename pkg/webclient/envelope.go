package webclient

import "github.com/tidwall/gjson"

// Accessor extracts a string field from a raw response body. The business
// status and message accessors have this shape so callers can adapt the
// client to any backend envelope without touching it.
type Accessor func(body []byte) string

// DataAccessor extracts the payload portion of a raw response body as raw
// JSON.
type DataAccessor func(body []byte) []byte

// Path builds an Accessor reading the given gjson path. Numbers are
// stringified, so a backend emitting `"status": 0` and one emitting
// `"status": "0"` resolve identically.
func Path(path string) Accessor {
	return func(body []byte) string {
		return gjson.GetBytes(body, path).String()
	}
}

// DataPath builds a DataAccessor reading the given gjson path. A missing
// path yields nil.
func DataPath(path string) DataAccessor {
	return func(body []byte) []byte {
		res := gjson.GetBytes(body, path)
		if !res.Exists() {
			return nil
		}
		return []byte(res.Raw)
	}
}

// Default envelope paths, matching the common {status, message, data} shape.
var (
	defaultStatusAccessor  = Path("status")
	defaultMessageAccessor = Path("message")
	defaultDataAccessor    = DataPath("data")
)

package huuto

import (
	"fmt"
	"net/url"
	"strconv"
)

// Params holds named request parameters. A nil value, a nil typed pointer or
// an empty slice means the parameter is unset and is omitted from the request
// entirely; the API distinguishes absent parameters from empty ones.
type Params map[string]any

// String returns a pointer to s for use in optional parameter fields.
func String(s string) *string { return &s }

// Int returns a pointer to i for use in optional parameter fields.
func Int(i int) *int { return &i }

// Int64 returns a pointer to i for use in optional parameter fields.
func Int64(i int64) *int64 { return &i }

// Float returns a pointer to f for use in optional parameter fields.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b for use in optional parameter fields.
func Bool(b bool) *bool { return &b }

// deref flattens typed pointers to their values. The second return value is
// false when the parameter is unset.
func deref(raw any) (any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case *string:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *int:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *int64:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *float64:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *bool:
		if v == nil {
			return nil, false
		}
		return *v, true
	case []string:
		if len(v) == 0 {
			return nil, false
		}
		return v, true
	default:
		return raw, true
	}
}

// encodeScalar serializes a single parameter value the way the API expects:
// booleans as 0/1, floats without exponent notation.
func encodeScalar(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	default:
		return "", fmt.Errorf("unsupported parameter type %T for %q", value, key)
	}
}

// Values encodes the parameters as URL values for queries and form bodies.
// Unset parameters are dropped and list values become repeated keys.
func (p Params) Values() (url.Values, error) {
	vals := url.Values{}
	for key, raw := range p {
		value, ok := deref(raw)
		if !ok {
			continue
		}
		if list, isList := value.([]string); isList {
			for _, item := range list {
				vals.Add(key, item)
			}
			continue
		}
		encoded, err := encodeScalar(key, value)
		if err != nil {
			return nil, err
		}
		vals.Set(key, encoded)
	}
	return vals, nil
}

// JSONBody returns the parameters as a JSON-marshalable map. Unset parameters
// are dropped, booleans encode as 0/1 and list values stay JSON arrays.
func (p Params) JSONBody() (map[string]any, error) {
	body := make(map[string]any, len(p))
	for key, raw := range p {
		value, ok := deref(raw)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case bool:
			if v {
				body[key] = 1
			} else {
				body[key] = 0
			}
		case string, int, int64, float64, []string:
			body[key] = v
		default:
			return nil, fmt.Errorf("unsupported parameter type %T for %q", value, key)
		}
	}
	return body, nil
}

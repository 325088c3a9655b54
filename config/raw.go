package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"code.cloudfoundry.org/bytefmt"
	"gopkg.in/yaml.v3"
)

// Raw is a parsed YAML mapping with typed accessors. Missing keys yield zero values.
type Raw map[string]interface{}

func ParseFromString(content string) (Raw, error) {
	return Parse(strings.NewReader(content))
}

// Parse reads a YAML document; an empty document results in an empty Raw
func Parse(reader io.Reader) (Raw, error) {
	var out map[string]interface{}
	if err := yaml.NewDecoder(reader).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return Raw{}, nil
		}
		return nil, err
	}
	return out, nil
}

// Sub returns the mapping below key or nil if key is missing or not a mapping
func (c Raw) Sub(key string) Raw {
	switch v := c[key].(type) {
	case map[string]interface{}:
		return v
	case map[interface{}]interface{}:
		sub := make(Raw, len(v))
		for k, elem := range v {
			if name, ok := k.(string); ok {
				sub[name] = elem
			}
		}
		return sub
	}
	return nil
}

func (c Raw) Has(key string) bool {
	_, exists := c[key]
	return exists
}

func (c Raw) String(key string) string {
	return interpolate(asString(c[key]))
}

func (c Raw) StringSlice(key string) []string {
	val := c[key]
	if val == nil {
		return nil
	}
	if s, ok := val.([]string); ok {
		return s
	}
	if s, ok := val.([]interface{}); ok {
		slice := make([]string, 0, len(s))
		for _, raw := range s {
			if elem := interpolate(asString(raw)); elem != "" {
				slice = append(slice, elem)
			}
		}
		return slice
	}
	return nil
}

func (c Raw) Bool(key string) bool {
	return asBool(c[key])
}

func (c Raw) Int64(key string) int64 {
	return asInt64(c[key])
}

// Bytes reads a size like `512`, `1 KB` or `2G`. Unparsable values result in 0.
func (c Raw) Bytes(key string) uint64 {
	s, ok := c[key].(string)
	if !ok {
		return asUint64(c[key])
	}

	s = strings.ToUpper(strings.ReplaceAll(interpolate(s), " ", ""))

	if strings.IndexFunc(s, unicode.IsLetter) >= 0 {
		bytes, err := bytefmt.ToBytes(s)
		if err != nil {
			return 0
		}
		return bytes
	}

	return asUint64(s)
}

func asString(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", val)
}

// asUint64 converts like asInt64 but clamps negative values to 0
func asUint64(val interface{}) uint64 {
	if v, ok := val.(uint64); ok {
		return v
	}

	i := asInt64(val)
	if i < 0 {
		return 0
	}
	return uint64(i)
}

// asInt64 converts the numeric types yaml.v3 decodes into and numeric strings
func asInt64(val interface{}) int64 {
	switch v := val.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case uint64:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(interpolate(v)), 10, 64)
		if err == nil {
			return i
		}
	}
	return 0
}

func asBool(val interface{}) bool {
	if val == nil {
		return false
	}
	if b, ok := val.(bool); ok {
		return b
	}
	if s, ok := val.(string); ok {
		b, err := strconv.ParseBool(s)
		if err == nil {
			return b
		}
	}
	return false
}

var interpolationExpr = regexp.MustCompile(`__\$\{(\w+)\}__`)

// interpolate replaces every __${NAME}__ with the content of the environment variable NAME
func interpolate(s string) string {
	return interpolationExpr.ReplaceAllStringFunc(s, func(match string) string {
		m := interpolationExpr.FindStringSubmatch(match)

		return os.Getenv(m[1])
	})
}

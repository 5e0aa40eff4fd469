// AngelaMos | 2026
// bind.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const maxBodyBytes = 1 << 20

// Bind decodes a JSON or form-encoded body into dst. Keys match the json tag
// of each field ignoring case and underscores, so "estimatedTime" and
// "estimated_time" land on the same field.
func Bind(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	values, err := requestValues(r)
	if err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
		MatchName: func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		},
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}

	return nil
}

func requestValues(r *http.Request) (map[string]any, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return nil, fmt.Errorf("parse multipart form: %w", err)
			}
		} else if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}

		values := make(map[string]any, len(r.PostForm))
		for key, vals := range r.PostForm {
			if len(vals) > 0 {
				values[key] = vals[0]
			}
		}
		return values, nil

	default:
		values := map[string]any{}
		err := json.NewDecoder(r.Body).Decode(&values)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return values, nil
	}
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

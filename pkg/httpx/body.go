package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// peekJSONField decodes a single string field out of a JSON request body and
// restores the body so downstream handlers can still read it. Bodies larger
// than maxPeekBytes are left untouched and yield an empty key.
const maxPeekBytes = 64 << 10

func peekJSONField(r *http.Request, fieldName string) string {
	if r.Body == nil {
		return ""
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes+1))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(buf))
	if err != nil || len(buf) > maxPeekBytes {
		return ""
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(buf, &fields); err != nil {
		return ""
	}

	var value string
	if raw, ok := fields[fieldName]; ok {
		_ = json.Unmarshal(raw, &value)
	}
	return value
}

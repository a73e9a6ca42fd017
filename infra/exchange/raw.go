package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cambiomz/metical-converter/pkg/domain"
)

// ResolvePath substitutes every {name} token in a path template with the
// stringified parameter value and returns the remaining parameters, with
// path-bound keys excluded.
func ResolvePath(path string, params map[string]any) (string, map[string]any) {
	remaining := make(map[string]any, len(params))
	for key, value := range params {
		token := "{" + key + "}"
		if strings.Contains(path, token) {
			path = strings.ReplaceAll(path, token, stringify(value))
			continue
		}
		remaining[key] = value
	}
	return path, remaining
}

// stringify renders a parameter value the way it appears on the wire.
// Floats drop insignificant trailing zeros so amount=100 serializes as
// "100", not "100.000000".
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// RawCall issues one request against the bare host, used by the test
// harness. Path placeholders are resolved from params first; for GET-like
// methods the remaining parameters become a query string (empty values
// skipped), for other methods a JSON body. Failures never surface as
// errors; they are folded into the result with status 0. Duration is
// measured wall-clock from call start to settled response.
func (c *Client) RawCall(ctx context.Context, method, path string, params map[string]any) domain.RawCallResult {
	start := time.Now()
	settle := func(res domain.RawCallResult) domain.RawCallResult {
		res.Timestamp = time.Now().UTC()
		res.Duration = time.Since(start).Milliseconds()
		return res
	}

	resolvedPath, remaining := ResolvePath(path, params)
	target := c.rawBaseURL + resolvedPath

	var body io.Reader
	if method == http.MethodGet || method == http.MethodHead {
		query := url.Values{}
		for key, value := range remaining {
			if value == nil {
				continue
			}
			if s := stringify(value); s != "" {
				query.Set(key, s)
			}
		}
		if encoded := query.Encode(); encoded != "" {
			target += "?" + encoded
		}
	} else {
		payload, err := json.Marshal(remaining)
		if err != nil {
			return settle(domain.RawCallResult{Status: 0, Error: err.Error()})
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return settle(domain.RawCallResult{Status: 0, Error: err.Error()})
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("raw call failed", "method", method, "path", resolvedPath, "error", err)
		return settle(domain.RawCallResult{Status: 0, Error: err.Error()})
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return settle(domain.RawCallResult{Status: resp.StatusCode, Error: err.Error()})
	}

	// The harness records whatever came back; schema validity is not its
	// concern. Non-JSON bodies are kept as plain text.
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		data = string(raw)
	}

	return settle(domain.RawCallResult{
		Success: resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:  resp.StatusCode,
		Data:    data,
	})
}

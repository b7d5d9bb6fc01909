package security

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MaxSanitizeDepth bounds recursion into nested request values. Deeper values
// are returned unchanged.
const MaxSanitizeDepth = 32

const maxSanitizePasses = 5

var sanitizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`),
	regexp.MustCompile(`(?i)</?script\b[^>]*>?`),
	regexp.MustCompile(`(?i)\b(?:javascript|vbscript|data)\s*:`),
	regexp.MustCompile(`(?i)\bon\w+\s*=`),
	regexp.MustCompile(`(?i)\b(?:eval|expression)\s*\([^)]*\)?`),
	regexp.MustCompile(`(?s)<%.*?%>`),
	regexp.MustCompile(`(?s)<\?.*?\?>`),
	regexp.MustCompile(`(?s)\{\{.*?\}\}`),
	regexp.MustCompile(`<%|%>|<\?|\?>|\{\{|\}\}`),
}

// SanitizeString strips script tags, script URI schemes, inline event
// handlers, eval/expression calls and template delimiters. Removal is repeated
// until the value is stable so nested fragments cannot reassemble.
func SanitizeString(s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		out := s
		for _, re := range sanitizePatterns {
			out = re.ReplaceAllString(out, "")
		}
		if out == s {
			break
		}
		s = out
	}
	return s
}

// SanitizeValue walks decoded JSON-like data and sanitizes every string leaf,
// including map keys.
func SanitizeValue(v any) any {
	return sanitizeValue(v, 0)
}

func sanitizeValue(v any, depth int) any {
	if depth > MaxSanitizeDepth {
		return v
	}
	switch val := v.(type) {
	case string:
		return SanitizeString(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[SanitizeString(k)] = sanitizeValue(inner, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = sanitizeValue(inner, depth+1)
		}
		return out
	case map[string][]string:
		for k, values := range val {
			for i := range values {
				values[i] = SanitizeString(values[i])
			}
			val[k] = values
		}
		return val
	default:
		return v
	}
}

// Sanitizer rewrites the query string and JSON, urlencoded or multipart text
// fields before handlers read them. It never rejects a request; bodies that
// fail to parse are passed through for the handler to reject.
func Sanitizer(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sanitizeArgs(c.Request().URI().QueryArgs())

		contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
		switch {
		case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
			sanitizeJSONBody(c, logger)
		case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
			sanitizeArgs(c.Request().PostArgs())
		case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
			if form, err := c.MultipartForm(); err == nil {
				sanitizeValue(form.Value, 0)
			}
		}
		return c.Next()
	}
}

type argList interface {
	VisitAll(f func(key, value []byte))
	Reset()
	Add(key, value string)
}

func sanitizeArgs(args argList) {
	type pair struct{ key, value string }
	var pairs []pair
	dirty := false
	args.VisitAll(func(key, value []byte) {
		k, v := SanitizeString(string(key)), SanitizeString(string(value))
		if k != string(key) || v != string(value) {
			dirty = true
		}
		pairs = append(pairs, pair{k, v})
	})
	if !dirty {
		return
	}
	args.Reset()
	for _, p := range pairs {
		args.Add(p.key, p.value)
	}
}

func sanitizeJSONBody(c *fiber.Ctx, logger *zap.Logger) {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return
	}
	clean, err := json.Marshal(SanitizeValue(payload))
	if err != nil {
		logger.Warn("sanitizer: re-encode body", zap.Error(err))
		return
	}
	c.Request().SetBody(clean)
}

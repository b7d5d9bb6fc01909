package security

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "<script>alert(1)</script>Hello", want: "Hello"},
		{in: "<SCRIPT type=\"text/javascript\">\nsteal()\n</SCRIPT>ok", want: "ok"},
		{in: "<scr<script>x</script>ipt>alert(1)</script>", want: "alert(1)"},
		{in: `<a href="javascript:alert(1)">x</a>`, want: `<a href="alert(1)">x</a>`},
		{in: "DATA:text/html;base64,xx", want: "text/html;base64,xx"},
		{in: `<img src=x onerror=alert(1)>`, want: `<img src=x alert(1)>`},
		{in: "width: expression(1+1);", want: "width: ;"},
		{in: "eval(document.cookie) done", want: " done"},
		{in: "Hi {{constructor.constructor('x')()}} there", want: "Hi  there"},
		{in: "a <% exec %> b <?php echo 1 ?> c", want: "a  b  c"},
		{in: "stray {{ and %> marks", want: "stray  and  marks"},
		{in: "Plain legal text about metadata: nothing to see", want: "Plain legal text about metadata: nothing to see"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeString(tt.in))
		})
	}
}

func TestSanitizeValue_Nested(t *testing.T) {
	in := map[string]any{
		"name": "<script>x</script>Jane",
		"address": map[string]any{
			"street": "Main st onclick=go()",
			"tags":   []any{"ok", "javascript:void(0)", json.Number("3")},
		},
		"age":    json.Number("42"),
		"active": true,
	}

	out := SanitizeValue(in).(map[string]any)
	assert.Equal(t, "Jane", out["name"])
	addr := out["address"].(map[string]any)
	assert.Equal(t, "Main st go()", addr["street"])
	assert.Equal(t, []any{"ok", "void(0)", json.Number("3")}, addr["tags"])
	assert.Equal(t, json.Number("42"), out["age"])
	assert.Equal(t, true, out["active"])
}

func TestSanitizeValue_DepthBound(t *testing.T) {
	var deepest any = "<script>x</script>leaf"
	for i := 0; i <= MaxSanitizeDepth+1; i++ {
		deepest = map[string]any{"n": deepest}
	}
	out := SanitizeValue(deepest)

	for i := 0; i <= MaxSanitizeDepth+1; i++ {
		out = out.(map[string]any)["n"]
	}
	assert.Equal(t, "<script>x</script>leaf", out)
}

func newSanitizerApp(capture *string) *fiber.App {
	app := newTestApp()
	app.Use(Sanitizer(zap.NewNop()))
	app.All("/echo", func(c *fiber.Ctx) error {
		*capture = string(c.Body()) + "|" + c.Query("q") + "|" + c.FormValue("field")
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestSanitizerMiddleware_JSONAndQuery(t *testing.T) {
	var seen string
	app := newSanitizerApp(&seen)

	req := httptest.NewRequest(fiber.MethodPost, "/echo?q=%3Cscript%3Ex%3C%2Fscript%3Eterm", strings.NewReader(
		`{"title":"<script>alert(1)</script>Hello","meta":{"note":"{{x}}ok"},"count":12345678901234567890}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	parts := strings.SplitN(seen, "|", 3)
	require.Len(t, parts, 3)
	assert.JSONEq(t, `{"title":"Hello","meta":{"note":"ok"},"count":12345678901234567890}`, parts[0])
	assert.Equal(t, "term", parts[1])
}

func TestSanitizerMiddleware_Form(t *testing.T) {
	var seen string
	app := newSanitizerApp(&seen)

	req := httptest.NewRequest(fiber.MethodPost, "/echo", strings.NewReader("field=%3Cscript%3Ex%3C%2Fscript%3Evalue"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.True(t, strings.HasSuffix(seen, "|value"), seen)
}

func TestSanitizerMiddleware_Multipart(t *testing.T) {
	var seen string
	app := newSanitizerApp(&seen)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("field", "{{evil}}kept"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/echo", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.True(t, strings.HasSuffix(seen, "|kept"), seen)
}

func TestSanitizerMiddleware_InvalidJSONPassesThrough(t *testing.T) {
	var seen string
	app := newSanitizerApp(&seen)

	req := httptest.NewRequest(fiber.MethodPost, "/echo", strings.NewReader(`{"broken":`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.True(t, strings.HasPrefix(seen, `{"broken":`))
}

package adapters_test

import (
	"strings"
	"testing"

	"github.com/chatgpti/webapp-bot/internal/adapters"
)

func TestHTMLRenderer(t *testing.T) {
	r := adapters.NewHTMLRenderer()

	Check := func(input string, contains ...string) {
		t.Helper()
		out := r.Render(input)
		for _, want := range contains {
			if !strings.Contains(out, want) {
				t.Errorf("Render(%q) = %q, missing %q", input, out, want)
			}
		}
	}

	Check("**bold** and *italic*", "<b>bold</b>", "<i>italic</i>")
	Check("`code`", "<code>code</code>")
	Check("[link](https://example.com)", `<a href="https://example.com">link</a>`)
	Check("```go\nfmt.Println(1)\n```", `<pre><code class="language-go">`, "fmt.Println(1)")
	Check("a < b & c", "a &lt; b &amp; c")
}

func TestHTMLRendererEscapesMarkup(t *testing.T) {
	r := adapters.NewHTMLRenderer()
	out := r.Render("<script>alert(1)</script>")
	if strings.Contains(out, "<script>") {
		t.Errorf("raw HTML leaked through: %q", out)
	}
}

package campaign

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/tracking"
)

func TestNewRenderer_RejectsRelativeBase(t *testing.T) {
	_, err := NewRenderer("/relative")
	assert.Error(t, err)

	r, err := NewRenderer("https://hr.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://hr.example.com/track/open/c/t", r.OpenPixelURL("c", "t"))
}

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer(testBaseURL)
	require.NoError(t, err)

	content := `<html><head><style>p{color:red}</style></head><body>
<p><a href="https://jobs.example.org/apply?ref=mail&x=1">apply</a></p>
<p><a href="mailto:hr@acme.example.com">mail us</a></p>
<p><a href="#top">top</a></p>
<p><a href="/careers">careers</a></p>
<p><a href="http://localhost:3000/about">about</a></p>
<img src="/uploads/banner.png">
<img src="http://127.0.0.1:5000/uploads/logo.png">
<img src="https://cdn.example.net/pic.png">
<img src="data:image/png;base64,AAAA">
</body></html>`

	out, err := r.Render("cmp-1", "trk-1", "Hello & welcome", content)
	require.NoError(t, err)

	tests := []struct {
		name string
		want string
	}{
		{"external link is tracked", `href="https://hr.example.com/track/click/cmp-1/trk-1?u=` + tracking.EncodeTargetURL("https://jobs.example.org/apply?ref=mail&x=1") + `"`},
		{"mailto untouched", `href="mailto:hr@acme.example.com"`},
		{"anchor untouched", `href="#top"`},
		{"relative link made absolute", `href="https://hr.example.com/careers"`},
		{"local dev link moved to base", `href="https://hr.example.com/about"`},
		{"relative asset made absolute", `src="https://hr.example.com/uploads/banner.png"`},
		{"local dev asset moved to base", `src="https://hr.example.com/uploads/logo.png"`},
		{"remote asset untouched", `src="https://cdn.example.net/pic.png"`},
		{"inline data untouched", `src="data:image/png;base64,AAAA"`},
		{"open pixel appended", `<img src="https://hr.example.com/track/open/cmp-1/trk-1" width="1" height="1"`},
		{"styles kept", `<style>p{color:red}</style>`},
		{"subject escaped", `<title>Hello &amp; welcome</title>`},
		{"table shell", `<table role="presentation" width="600"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, out, tt.want)
		})
	}

	assert.Equal(t, 1, strings.Count(out, "/track/click/"))
	assert.Equal(t, 1, strings.Count(out, "/track/open/"))
}

func TestRenderer_Fragment(t *testing.T) {
	r, err := NewRenderer(testBaseURL)
	require.NoError(t, err)

	out, err := r.Render("c", "t", "s", `Plain <b>text</b> with <a href="//news.example.org/x">link</a>`)
	require.NoError(t, err)

	assert.Contains(t, out, "Plain <b>text</b> with")
	assert.Contains(t, out, "?u="+tracking.EncodeTargetURL("https://news.example.org/x"))
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}

package campaign

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/tracking"
)

// assetAttrs lists the attributes that reference images and media per element.
var assetAttrs = map[atom.Atom][]string{
	atom.Img:    {"src"},
	atom.Source: {"src"},
	atom.Video:  {"src", "poster"},
	atom.Audio:  {"src"},
	atom.Input:  {"src"},
	atom.Table:  {"background"},
	atom.Td:     {"background"},
	atom.Th:     {"background"},
	atom.Body:   {"background"},
}

var localDevHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"0.0.0.0":   true,
	"::1":       true,
}

var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Subject}}</title>
{{.Styles}}
</head>
<body style="margin:0;padding:0;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0">
<tr><td align="center">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" border="0" style="max-width:600px;width:100%;">
<tr><td>{{.Body}}</td></tr>
</table>
</td></tr>
</table>
<img src="{{.PixelURL}}" width="1" height="1" alt="" style="display:block;border:0;width:1px;height:1px;">
</body>
</html>
`))

// Renderer personalises campaign HTML for a single recipient.
type Renderer struct {
	baseURL string
	base    *url.URL
}

func NewRenderer(baseURL string) (*Renderer, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid public base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("public base URL must be absolute: %q", baseURL)
	}
	return &Renderer{baseURL: baseURL, base: base}, nil
}

// OpenPixelURL is the open-tracking image for one recipient.
func (r *Renderer) OpenPixelURL(campaignID, trackingID string) string {
	return fmt.Sprintf("%s/track/open/%s/%s", r.baseURL, url.PathEscape(campaignID), url.PathEscape(trackingID))
}

// ClickURL is the redirecting link that records a click on target.
func (r *Renderer) ClickURL(campaignID, trackingID, target string) string {
	return fmt.Sprintf("%s/track/click/%s/%s?u=%s",
		r.baseURL, url.PathEscape(campaignID), url.PathEscape(trackingID), tracking.EncodeTargetURL(target))
}

// Render rewrites asset URLs onto the public base URL, routes outbound links
// through click tracking, appends the open pixel and wraps the result in a
// table layout.
func (r *Renderer) Render(campaignID, trackingID, subject, content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse campaign content: %w", err)
	}

	var head, body *html.Node
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.DataAtom {
		case atom.Head:
			head = n
		case atom.Body:
			body = n
		}
		r.rewriteAssets(n)
		if n.DataAtom == atom.A {
			r.rewriteLink(n, campaignID, trackingID)
		}
	})

	var styles bytes.Buffer
	if head != nil {
		for c := head.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Style {
				if err := html.Render(&styles, c); err != nil {
					return "", fmt.Errorf("failed to render styles: %w", err)
				}
			}
		}
	}

	var inner bytes.Buffer
	if body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&inner, c); err != nil {
				return "", fmt.Errorf("failed to render campaign body: %w", err)
			}
		}
	}

	var out bytes.Buffer
	err = shellTemplate.Execute(&out, struct {
		Subject  string
		Styles   template.HTML
		Body     template.HTML
		PixelURL string
	}{
		Subject:  subject,
		Styles:   template.HTML(styles.String()),
		Body:     template.HTML(inner.String()),
		PixelURL: r.OpenPixelURL(campaignID, trackingID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render email shell: %w", err)
	}
	return out.String(), nil
}

func (r *Renderer) rewriteAssets(n *html.Node) {
	keys, ok := assetAttrs[n.DataAtom]
	if !ok {
		return
	}
	for i, attr := range n.Attr {
		if !containsKey(keys, attr.Key) || isOpaqueReference(attr.Val) {
			continue
		}
		if abs, ok := r.absolute(attr.Val); ok {
			n.Attr[i].Val = abs
		}
	}
}

func (r *Renderer) rewriteLink(n *html.Node, campaignID, trackingID string) {
	for i, attr := range n.Attr {
		if attr.Key != "href" || isOpaqueReference(attr.Val) {
			continue
		}
		abs, ok := r.absolute(attr.Val)
		if !ok {
			continue
		}
		if r.isLocal(abs) {
			n.Attr[i].Val = abs
			continue
		}
		if u, err := url.Parse(abs); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
			n.Attr[i].Val = r.ClickURL(campaignID, trackingID, abs)
		}
	}
}

// absolute resolves relative references and local development hosts against the base URL.
func (r *Renderer) absolute(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}

	if u.Host != "" && localDevHosts[strings.ToLower(u.Hostname())] {
		rel := &url.URL{Path: u.Path, RawPath: u.RawPath, RawQuery: u.RawQuery, Fragment: u.Fragment}
		return r.base.ResolveReference(rel).String(), true
	}
	if u.IsAbs() {
		return u.String(), true
	}
	if u.Host != "" {
		// protocol-relative
		u.Scheme = r.base.Scheme
		return u.String(), true
	}
	return r.base.ResolveReference(u).String(), true
}

func (r *Renderer) isLocal(abs string) bool {
	return abs == r.baseURL || strings.HasPrefix(abs, r.baseURL+"/") || strings.HasPrefix(abs, r.baseURL+"?")
}

// isOpaqueReference reports values that must be left untouched: anchors,
// non-web schemes and inline data.
func isOpaqueReference(val string) bool {
	v := strings.ToLower(strings.TrimSpace(val))
	if v == "" || strings.HasPrefix(v, "#") {
		return true
	}
	for _, prefix := range []string{"mailto:", "tel:", "sms:", "javascript:", "data:", "cid:"} {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	tmpl := Templates()
	require.NotNil(t, tmpl.Lookup(DisplayTemplate))

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, DisplayTemplate, map[string]interface{}{
		"SiteTitle":      "SKB Salatiga",
		"RefreshSeconds": 60,
		"SelfURL":        "/",
		"Clock":          "08:30",
		"Date":           "01-05-2024",
		"TickerDuration": "20s",
		"Ticker":         map[string]string{"Text": "Selamat datang"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Video belum dikonfigurasi")
	assert.Contains(t, out, "Selamat datang")
	assert.Contains(t, out, `content="60;url=/"`)
}

package assistkit

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestWriteBannerNoColor(t *testing.T) {
	var buf bytes.Buffer
	out := &OutputWriter{NoColor: true, Writer: &buf}

	out.WriteBanner(10, "Title")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{"==========", "Title", "=========="}, lines)
}

func TestWriteRule(t *testing.T) {
	var buf bytes.Buffer
	out := &OutputWriter{Writer: &buf}

	out.WriteRule(5)
	assert.Equal(t, "-----\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 80))
	assert.Equal(t, strings.Repeat("x", 80), Truncate(strings.Repeat("x", 100), 80))
	assert.Equal(t, "", Truncate("", 10))
}

func TestTruncateMultiByte(t *testing.T) {
	got := Truncate(strings.Repeat("日", 100), 80)
	assert.Equal(t, strings.Repeat("日", 80), got)
	assert.True(t, utf8.ValidString(got))

	// Mixed-width input still counts characters, not bytes.
	assert.Equal(t, "aé日", Truncate("aé日x", 3))
}

func TestWriteJSONIndented(t *testing.T) {
	var buf bytes.Buffer
	out := &OutputWriter{JSON: true, Writer: &buf}

	assert.NoError(t, out.WriteJSON(map[string]string{"id": "abc"}))
	assert.Equal(t, "{\n  \"id\": \"abc\"\n}\n", buf.String())
}

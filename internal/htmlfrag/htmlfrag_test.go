// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package htmlfrag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	err := Table(&buf, [][]string{
		{"date", "bugs"},
		{"2024-01-01", "3"},
		{"2024-01-02"},
	})
	require.NoError(t, err)

	want := `<table class="rpw-table-content">
<tr class="rpw-table-header-row"><th>date</th><th>bugs</th></tr>
<tr class="rpw-table-content-row"><td>2024-01-01</td><td>3</td></tr>
<tr class="rpw-table-content-row"><td>2024-01-02</td></tr>
</table>
`
	assert.Equal(t, want, buf.String())
}

func TestTable_Escapes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, [][]string{{"<b>name</b>"}, {"a & b"}}))

	out := buf.String()
	assert.Contains(t, out, "<th>&lt;b&gt;name&lt;/b&gt;</th>")
	assert.Contains(t, out, "<td>a &amp; b</td>")
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, nil))
	assert.Equal(t, "<table class=\"rpw-table-content\">\n</table>\n", buf.String())
}

func TestWarningAndError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Warning(&buf, "Parameter 'Data Location' is required"))
	assert.Equal(t, "<div class=\"rpw-warning\">Parameter &#39;Data Location&#39; is required</div>\n", buf.String())

	buf.Reset()
	require.NoError(t, Error(&buf, "read <x>"))
	assert.Equal(t, "<div class=\"rpw-error\">read &lt;x&gt;</div>\n", buf.String())
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, "First 12 bugs\r\n\r\n  second  \n\n\n"))
	assert.Equal(t, "<div class=\"rpw-text\"><p>First 12 bugs</p><p>second</p></div>\n", buf.String())

	buf.Reset()
	require.NoError(t, Text(&buf, "  \n "))
	assert.Empty(t, buf.String())
}

func TestParagraphs(t *testing.T) {
	assert.Nil(t, Paragraphs(""))
	assert.Equal(t, []string{"a\nb", "c"}, Paragraphs("a\nb\n\nc"))
	assert.Len(t, Paragraphs(strings.Repeat("x\n\n", 3)), 3)
}

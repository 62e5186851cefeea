package preview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailcraft/pkg/preview"
)

func TestInlineVariables(t *testing.T) {
	t.Parallel()

	vars := map[string]string{"--primary-color": "#112233", "--body-font": "'Inter', sans-serif"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no declaration",
			in:   `.a { color: var(--primary-color); }`,
			want: `.a { color: #112233; }`,
		},
		{
			name: "one declaration",
			in:   `:root { --primary-color: #000000; }`,
			want: `:root { --primary-color: #112233; }`,
		},
		{
			name: "many declarations",
			in:   `:root { --primary-color: #000000; } .dark { --primary-color:#ffffff; }`,
			want: `:root { --primary-color: #112233; } .dark { --primary-color: #112233; }`,
		},
		{
			name: "fallback",
			in:   `.a { color: var( --primary-color , rgb(0, 0, 0) ); }`,
			want: `.a { color: #112233; }`,
		},
		{
			name: "quoted font stack",
			in:   `--body-font: 'Helvetica', sans-serif; color: red;`,
			want: `--body-font: 'Inter', sans-serif; color: red;`,
		},
		{
			name: "similar names untouched",
			in:   `.a { --primary-color-dark: #000; color: var(--primary-color-dark); }`,
			want: `.a { --primary-color-dark: #000; color: var(--primary-color-dark); }`,
		},
		{
			name: "unknown variable untouched",
			in:   `.a { color: var(--accent); }`,
			want: `.a { color: var(--accent); }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, preview.InlineVariables(tt.in, vars))
		})
	}
}

func TestInlineDocument(t *testing.T) {
	t.Parallel()

	vars := map[string]string{"--primary-color": "#112233", "--body-font": "'Inter', sans-serif"}
	doc := `<html style="--primary-color: #000000; --body-font: 'Helvetica', sans-serif;"><head>` +
		`<style>:root { --primary-color: #000000; } .cta { background: var(--primary-color); }</style></head>` +
		`<body style="font-family: var(--body-font)">` +
		`<h2 data-editable="product-name">Use --primary-color: red here</h2>` +
		`<p title="--primary-color: blue">Write var(--primary-color) in CSS</p></body></html>`

	out, err := preview.InlineDocument([]byte(doc), vars)
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, `--primary-color: #112233;`)
	assert.NotContains(t, got, `--primary-color: #000000`)
	assert.Contains(t, got, `.cta { background: #112233; }`)
	assert.Contains(t, got, `font-family: &#39;Inter&#39;, sans-serif`)
	assert.Contains(t, got, `>Use --primary-color: red here</h2>`)
	assert.Contains(t, got, `title="--primary-color: blue"`)
	assert.Contains(t, got, `>Write var(--primary-color) in CSS</p>`)
}

func TestHasVariableReference(t *testing.T) {
	t.Parallel()

	assert.True(t, preview.HasVariableReference(`a{color:var(--primary-color)}`, "--primary-color"))
	assert.True(t, preview.HasVariableReference(`a{color:var(--primary-color, red)}`, "--primary-color"))
	assert.False(t, preview.HasVariableReference(`a{color:var(--primary-color-dark)}`, "--primary-color"))
}

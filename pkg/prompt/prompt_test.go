package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"midnightcli/pkg/core"
)

func TestProjectNameReasksUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("My App\nMyApp\nmy-app-1\n"), &out)

	name, err := p.ProjectName("fallback")
	require.NoError(t, err)

	assert.Equal(t, "my-app-1", name)
	assert.Contains(t, out.String(), "lowercase")
}

func TestProjectNameEmptyTakesDefault(t *testing.T) {
	p := New(strings.NewReader("\n"), &bytes.Buffer{})

	name, err := p.ProjectName("my-midnight-app")
	require.NoError(t, err)
	assert.Equal(t, "my-midnight-app", name)
}

func TestSelectTemplate(t *testing.T) {
	cases := []struct {
		input string
		want  core.Template
	}{
		{"\n", core.TemplateBasicDapp},
		{"2\n", core.TemplateZKGame},
		{"defi-app\n", core.TemplateDefiApp},
		{"9\n4\n", core.TemplateIdentity},
	}

	for _, tc := range cases {
		p := New(strings.NewReader(tc.input), &bytes.Buffer{})
		got, err := p.SelectTemplate(core.TemplateBasicDapp)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"no\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\nyes\n", false, true},
	}

	for _, tc := range cases {
		p := New(strings.NewReader(tc.input), &bytes.Buffer{})
		got, err := p.Confirm("Install?", tc.def)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestResolveString(t *testing.T) {
	assert.Equal(t, "flag", ResolveString("flag", "answer", "def"))
	assert.Equal(t, "answer", ResolveString("", "answer", "def"))
	assert.Equal(t, "def", ResolveString("", "", "def"))
}

func TestResolveBool(t *testing.T) {
	assert.False(t, ResolveBool(true, false, true, true, true), "flag wins")
	assert.True(t, ResolveBool(false, false, true, true, false), "answer wins")
	assert.True(t, ResolveBool(false, false, false, false, true), "default wins")
}

func TestResolveInt(t *testing.T) {
	assert.Equal(t, 7000, ResolveInt(7000, 6400, 6300))
	assert.Equal(t, 6400, ResolveInt(0, 6400, 6300))
	assert.Equal(t, 6300, ResolveInt(0, 0, 6300))
}

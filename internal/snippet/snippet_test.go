package snippet_test

import (
	"testing"

	"github.com/ezerfernandes/blockswap/internal/region"
	"github.com/ezerfernandes/blockswap/internal/snippet"
	"github.com/stretchr/testify/require"
)

const doc = "# Snippets\n" +
	"\n" +
	"```sh\n" +
	"echo ignored\n" +
	"```\n" +
	"\n" +
	"```tsx target=hero\n" +
	"<HeroSlider slides={slides} />\n" +
	"\n" +
	"<Divider />\n" +
	"```\n" +
	"\n" +
	"```tsx {\"target\":\"footer\"}\n" +
	"<Footer />\n" +
	"```\n"

func TestHero(t *testing.T) {
	t.Parallel()

	hero := snippet.Hero()
	require.Len(t, hero, 5)
	require.Equal(t, "      <HeroSlider slides={slides} />\n", string(hero[3]))
	require.Equal(t, "\n", string(hero[4]))
}

func TestFromText(t *testing.T) {
	t.Parallel()

	require.Equal(t, region.Lines{[]byte("a\n"), []byte("b\n")}, snippet.FromText([]byte("a\nb")))
	require.Equal(t, region.Lines{[]byte("a\r\n")}, snippet.FromText([]byte("a\r\n")))
	require.Nil(t, snippet.FromText(nil))
}

func TestUnfence(t *testing.T) {
	t.Parallel()

	blocks, err := snippet.Unfence([]byte(doc))
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	require.Equal(t, "sh", blocks[0].Lang)
	require.Equal(t, "tsx", blocks[1].Lang)
	require.Equal(t, "hero", blocks[1].Meta.Get("target"))
	require.Equal(t, 8, blocks[1].StartLine)
	require.Equal(t, 10, blocks[1].EndLine)
	require.Equal(t, "footer", blocks[2].Meta.Get("target"))
}

func TestFromMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lang string
		meta map[string]string
		want string
	}{
		{"first block", "", nil, "echo ignored\n"},
		{"by lang", "tsx", nil, "<HeroSlider slides={slides} />\n\n<Divider />\n"},
		{"by lang glob", "ts?", map[string]string{"target": "foot*"}, "<Footer />\n"},
		{"by meta", "", map[string]string{"target": "hero"}, "<HeroSlider slides={slides} />\n\n<Divider />\n"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			filter, err := snippet.NewFilter(tt.lang, tt.meta)
			require.NoError(t, err)

			lines, err := snippet.FromMarkdown([]byte(doc), filter)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(lines.Join()))
		})
	}
}

func TestFromMarkdownCommented(t *testing.T) {
	t.Parallel()

	const hidden = "# Page\n" +
		"\n" +
		"```sh\n" +
		"npm run build\n" +
		"```\n" +
		"\n" +
		"<!-- <script type=\"text/markdown\">\n" +
		"```tsx target=hero\n" +
		"<Hero />\n" +
		"```\n" +
		"</script> -->\n"

	blocks, err := snippet.Unfence([]byte(hidden))
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Equal(t, "tsx", blocks[1].Lang)
	require.Equal(t, "hero", blocks[1].Meta.Get("target"))

	filter, err := snippet.NewFilter("", map[string]string{"target": "hero"})
	require.NoError(t, err)

	lines, err := snippet.FromMarkdown([]byte(hidden), filter)
	require.NoError(t, err)
	require.Equal(t, "<Hero />\n", string(lines.Join()))
}

func TestFromMarkdownNoMatch(t *testing.T) {
	t.Parallel()

	filter, err := snippet.NewFilter("go", nil)
	require.NoError(t, err)

	_, err = snippet.FromMarkdown([]byte(doc), filter)
	require.ErrorIs(t, err, snippet.ErrNoSnippet)
}

func TestNewFilterInvalid(t *testing.T) {
	t.Parallel()

	_, err := snippet.NewFilter("[", nil)
	require.Error(t, err)
}

func TestIndent(t *testing.T) {
	t.Parallel()

	got := snippet.Indent(snippet.FromText([]byte("<A />\n\n  <B />\n")), 4)
	require.Equal(t, "    <A />\n\n      <B />\n", string(got.Join()))

	same := snippet.FromText([]byte("x\n"))
	require.Equal(t, same, snippet.Indent(same, 0))
}

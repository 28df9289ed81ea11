package cards

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/wahlandcase/attuned.contextfinder/internal/models"
)

func cardSet(ids ...string) map[string]models.Card {
	set := make(map[string]models.Card, len(ids))
	for _, id := range ids {
		set[id] = models.NewCard(id, "doc.docx")
	}
	return set
}

func TestRenderCard_WithContent(t *testing.T) {
	card := models.NewCard("MS05-16", "uc.docx")
	card.Content = "MS05-16: Item detail"

	got := RenderCard(card, "Master Data V2.0 Use Cases")

	want := "# MS05-16\n\n" +
		"**Source**: Master Data V2.0 Use Cases\n\n" +
		"## Content\n\n" +
		"MS05-16: Item detail\n\n" +
		"## Related Information\n\n" +
		"- Search Jira: `text ~ \"MS05-16\"`\n" +
		"- Search git: `git log --all --oneline --grep=\"MS05-16\"`\n"
	assert.Equal(t, want, got)
}

func TestRenderCard_Placeholder(t *testing.T) {
	got := RenderCard(models.NewCard("MS06-01", "uc.docx"), "label")
	assert.Contains(t, got, "## Content\n\n"+Placeholder+"\n")
}

func TestGroupBySeries(t *testing.T) {
	groups := GroupBySeries(cardSet("MS06-02", "MS05-17", "MS06-01", "MS05-16"))

	assert.Equal(t, map[string][]string{
		"MS05": {"MS05-16", "MS05-17"},
		"MS06": {"MS06-01", "MS06-02"},
	}, groups)
}

func TestRenderIndex_Entries(t *testing.T) {
	got := RenderIndex(cardSet("MS08-1", "MS05-16", "MS05-2"))

	assert.True(t, strings.HasPrefix(got, "# MS Cards Index\n"))
	assert.Contains(t, got, "### MS05 Series\n\n"+
		"- [MS05-16](cards/MS05-16.md) - MS05-16 Card\n"+
		"- [MS05-2](cards/MS05-2.md) - MS05-2 Card\n\n")
	assert.Contains(t, got, "### MS08 Series\n\n- [MS08-1](cards/MS08-1.md) - MS08-1 Card\n\n")
	assert.Less(t, strings.Index(got, "### MS05"), strings.Index(got, "### MS08"))
}

func TestRenderIndex_EmptyTitleFallsBack(t *testing.T) {
	got := RenderIndex(map[string]models.Card{"MS05-16": {ID: "MS05-16"}})
	assert.Contains(t, got, "- [MS05-16](cards/MS05-16.md) - Unknown\n")
}

// The index must stay valid markdown: one level-3 heading per series,
// each followed by a list linking every card.
func TestRenderIndex_MarkdownStructure(t *testing.T) {
	source := []byte(RenderIndex(cardSet("MS05-16", "MS05-17", "MS13-04")))
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings []string
	links := map[string]bool{}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 3 {
				headings = append(headings, string(node.Lines().Value(source)))
			}
		case *ast.Link:
			links[string(node.Destination)] = true
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"MS05 Series", "MS13 Series"}, headings)
	assert.Equal(t, map[string]bool{
		"cards/MS05-16.md": true,
		"cards/MS05-17.md": true,
		"cards/MS13-04.md": true,
	}, links)
}

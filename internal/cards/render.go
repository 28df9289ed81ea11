package cards

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wahlandcase/attuned.contextfinder/internal/models"
)

const indexHeader = `# MS Cards Index

This index lists all MS Cards extracted from the Master Data V2.0 Use Cases documents.

## Overview

MS Cards document business requirements in the format ` + "`MSxx-yy`" + `:
- **MS05 series**: Item detail UI cards
- **MS06 series**: BOM and component operations
- **MS08 series**: Major operations
- **MS13 series**: Complex features
- **MS15 series**: Additional operations

## Cards by Series

`

// CardPath returns the record file path of a card, relative to the output dir
func CardPath(id string) string {
	return "cards/" + id + ".md"
}

// RenderCard renders the record file for one card
func RenderCard(card models.Card, sourceLabel string) string {
	content := card.Content
	if content == "" {
		content = Placeholder
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", card.ID)
	fmt.Fprintf(&b, "**Source**: %s\n\n", sourceLabel)
	b.WriteString("## Content\n\n")
	b.WriteString(content)
	b.WriteString("\n\n## Related Information\n\n")
	fmt.Fprintf(&b, "- Search Jira: `text ~ \"%s\"`\n", card.ID)
	fmt.Fprintf(&b, "- Search git: `git log --all --oneline --grep=\"%s\"`\n", card.ID)
	return b.String()
}

// GroupBySeries groups card IDs by series prefix. Each group is sorted.
func GroupBySeries(cards map[string]models.Card) map[string][]string {
	groups := make(map[string][]string)
	for id, card := range cards {
		series := card.Series()
		groups[series] = append(groups[series], id)
	}
	for _, ids := range groups {
		sort.Strings(ids)
	}
	return groups
}

// RenderIndex renders the index of all cards grouped by series
func RenderIndex(cards map[string]models.Card) string {
	groups := GroupBySeries(cards)

	series := make([]string, 0, len(groups))
	for s := range groups {
		series = append(series, s)
	}
	sort.Strings(series)

	var b strings.Builder
	b.WriteString(indexHeader)
	for _, s := range series {
		fmt.Fprintf(&b, "### %s Series\n\n", s)
		for _, id := range groups[s] {
			title := cards[id].Title
			if title == "" {
				title = "Unknown"
			}
			fmt.Fprintf(&b, "- [%s](%s) - %s\n", id, CardPath(id), title)
		}
		b.WriteString("\n")
	}
	return b.String()
}

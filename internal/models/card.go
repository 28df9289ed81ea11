package models

// Card is a business-requirement reference found in a source document
type Card struct {
	// ID is the card identifier (e.g., "MS05-16")
	ID string
	// Title is derived from the ID, not parsed from content
	Title string
	// SourceFile is the base name of the first document the ID was seen in
	SourceFile string
	// Content is the extracted excerpt, empty until the content pass runs
	Content string
}

// NewCard creates a Card with the derived title and no content
func NewCard(id, sourceFile string) Card {
	return Card{
		ID:         id,
		Title:      id + " Card",
		SourceFile: sourceFile,
	}
}

// Series returns the grouping prefix of the card ID (e.g., "MS05")
func (c Card) Series() string {
	if len(c.ID) < 4 {
		return c.ID
	}
	return c.ID[:4]
}

package cards

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wahlandcase/attuned.contextfinder/internal/docx"
	"github.com/wahlandcase/attuned.contextfinder/internal/logger"
	"github.com/wahlandcase/attuned.contextfinder/internal/models"
)

var (
	// ErrDocsDirNotFound indicates the documents directory is missing
	ErrDocsDirNotFound = errors.New("documents directory not found")
	// ErrNoDocuments indicates the documents directory holds no .docx files
	ErrNoDocuments = errors.New("no .docx files found")
)

// IndexFile is the name of the index written to the output directory
const IndexFile = "index.md"

// Collection holds every card found in one run
type Collection struct {
	// Cards is keyed by card ID
	Cards map[string]models.Card
	// Documents lists the scanned document paths in processing order
	Documents []string

	// texts maps a document base name to its extracted text
	texts map[string]string
	// corpus is every document's text, each followed by a newline
	corpus strings.Builder
}

// IDs returns the card IDs, sorted
func (c *Collection) IDs() []string {
	ids := make([]string, 0, len(c.Cards))
	for id := range c.Cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Corpus returns the combined text of all scanned documents
func (c *Collection) Corpus() string {
	return c.corpus.String()
}

// Fill attaches a content excerpt to every card. The section is taken from
// the card's source document; only when that document has no section for
// the ID does the combined corpus get searched.
func (c *Collection) Fill() {
	corpus := c.Corpus()
	for id, card := range c.Cards {
		content := Section(c.texts[card.SourceFile], id)
		if content == "" {
			content = Section(corpus, id)
		}
		card.Content = content
		c.Cards[id] = card
	}
}

// Extractor scans a directory of Word documents for cards
type Extractor struct {
	Reader docx.Reader
	Logger logger.Logger
}

// NewExtractor creates an Extractor. A nil reader means document parsing
// is unavailable and every document reads as empty.
func NewExtractor(reader docx.Reader, log logger.Logger) *Extractor {
	if reader == nil {
		reader = docx.Unavailable{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Extractor{Reader: reader, Logger: log}
}

// FindDocuments lists the .docx files directly inside dir, sorted by name.
// Word lock files (~$name.docx) are skipped.
func FindDocuments(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDocsDirNotFound, dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDocsDirNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if filepath.Ext(name) != ".docx" {
			continue
		}
		docs = append(docs, filepath.Join(dir, name))
	}
	sort.Strings(docs)

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}
	return docs, nil
}

// Scan reads every document in dir and records the first document each
// card ID appears in. Unreadable documents are logged and skipped.
func (e *Extractor) Scan(dir string) (*Collection, error) {
	docs, err := FindDocuments(dir)
	if err != nil {
		return nil, err
	}

	e.Logger.Infof("Found %d document(s)", len(docs))

	col := &Collection{
		Cards:     make(map[string]models.Card),
		Documents: docs,
		texts:     make(map[string]string, len(docs)),
	}

	for _, path := range docs {
		name := filepath.Base(path)
		e.Logger.Infof("Processing: %s", name)

		text, err := e.Reader.Text(path)
		if err != nil {
			e.Logger.Errorf("Failed to read %s: %v", name, err)
			continue
		}
		col.texts[name] = text
		col.corpus.WriteString(text)
		col.corpus.WriteString("\n")

		ids := Find(text)
		e.Logger.Infof("  Found %d card references: %s", len(ids), preview(ids, 10))

		for _, id := range ids {
			if _, ok := col.Cards[id]; !ok {
				col.Cards[id] = models.NewCard(id, name)
			}
		}
	}

	e.Logger.Infof("Total unique cards found: %d", len(col.Cards))
	return col, nil
}

// Write creates the cards directory, one record file per card and the index.
// Content must already be attached with Fill.
func Write(outputDir string, col *Collection, sourceLabel string) error {
	cardsDir := filepath.Join(outputDir, "cards")
	if err := os.MkdirAll(cardsDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, id := range col.IDs() {
		path := filepath.Join(outputDir, CardPath(id))
		if err := os.WriteFile(path, []byte(RenderCard(col.Cards[id], sourceLabel)), 0644); err != nil {
			return fmt.Errorf("write card %s: %w", id, err)
		}
	}

	indexPath := filepath.Join(outputDir, IndexFile)
	if err := os.WriteFile(indexPath, []byte(RenderIndex(col.Cards)), 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	return nil
}

func preview(ids []string, n int) string {
	if len(ids) > n {
		return strings.Join(ids[:n], ", ") + "..."
	}
	return strings.Join(ids, ", ")
}

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/killallgit/podradio/internal/models"
)

const (
	FeedsFile   = "feeds.md"
	SinglesFile = "singles.json"
)

// FileRegistry reads <root>/<lang>/feeds.md and <root>/<lang>/singles.json
type FileRegistry struct {
	root string
}

// NewFileRegistry creates a registry rooted at the content directory
func NewFileRegistry(root string) *FileRegistry {
	return &FileRegistry{root: root}
}

// Root returns the content directory
func (r *FileRegistry) Root() string {
	return r.root
}

// GetFeeds returns every markdown link to an http(s) URL in document order.
// A missing feeds.md yields an empty list.
func (r *FileRegistry) GetFeeds(ctx context.Context, lang Language) ([]models.FeedDescriptor, error) {
	data, err := r.read(ctx, lang, FeedsFile)
	if err != nil || data == nil {
		return nil, err
	}
	return ParseFeedsMarkdown(data), nil
}

// GetSingles decodes singles.json. A missing file yields an empty list and a
// malformed file yields an error with no partial result.
func (r *FileRegistry) GetSingles(ctx context.Context, lang Language) ([]models.SingleDescriptor, error) {
	data, err := r.read(ctx, lang, SinglesFile)
	if err != nil || data == nil {
		return nil, err
	}

	singles, err := ParseSinglesJSON(data)
	if err != nil {
		return nil, NewReadError(filepath.Join(string(lang), SinglesFile), err)
	}
	return singles, nil
}

func (r *FileRegistry) read(ctx context.Context, lang Language, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsValidLanguage(string(lang)) {
		return nil, NewLanguageError(string(lang))
	}

	path := filepath.Join(r.root, string(lang), name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, NewReadError(path, err)
	}
	return data, nil
}

// ParseFeedsMarkdown extracts [Name](https://...) links from markdown.
// Bare URLs are ignored, as are links with an empty name.
func ParseFeedsMarkdown(data []byte) []models.FeedDescriptor {
	extensions := parser.CommonExtensions &^ parser.Autolink
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse(data)

	var feeds []models.FeedDescriptor
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		link, ok := node.(*ast.Link)
		if !ok || !entering {
			return ast.GoToNext
		}

		dest := strings.TrimSpace(string(link.Destination))
		name := strings.TrimSpace(linkText(link))
		if name != "" && isHTTPURL(dest) {
			feeds = append(feeds, models.FeedDescriptor{Name: name, URL: dest})
		}
		return ast.SkipChildren
	})

	return feeds
}

// ParseSinglesJSON decodes a JSON array of singles
func ParseSinglesJSON(data []byte) ([]models.SingleDescriptor, error) {
	var singles []models.SingleDescriptor
	if err := json.Unmarshal(data, &singles); err != nil {
		return nil, err
	}
	return singles, nil
}

func linkText(link *ast.Link) string {
	var b strings.Builder
	ast.WalkFunc(link, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Text:
			b.Write(n.Literal)
		case *ast.Code:
			b.Write(n.Literal)
		}
		return ast.GoToNext
	})
	return b.String()
}

func isHTTPURL(s string) bool {
	lower := strings.ToLower(s)
	return (strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")) &&
		!strings.ContainsAny(s, " \t\n")
}

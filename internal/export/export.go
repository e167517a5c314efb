// Package export writes articles as Markdown files with a YAML front matter
// block, ready to be picked up by a static site or a CMS importer.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ariss-articles/internal/model"

	"github.com/adrg/frontmatter"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FrontMatter is the metadata block written at the top of each file.
type FrontMatter struct {
	Title    string    `yaml:"title"`
	Slug     string    `yaml:"slug"`
	Category string    `yaml:"category"`
	Status   string    `yaml:"status"`
	Date     time.Time `yaml:"date"`
	Callsign string    `yaml:"callsign"`
}

// existing is the subset of front matter read back from a file on disk.
type existing struct {
	Status string `yaml:"status"`
}

// Result lists the paths written and the ones left alone.
type Result struct {
	Written []string
	Skipped []string
}

type Exporter struct {
	dir    string
	logger *zap.Logger
}

func NewExporter(dir string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{dir: dir, logger: logger}
}

// Export writes every article to <dir>/<slug>.md. A file whose front matter
// status has moved past draft was edited by hand and is kept.
func (e *Exporter) Export(articles []model.Article) (Result, error) {
	var res Result
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return res, fmt.Errorf("failed to create export dir: %w", err)
	}

	for _, a := range articles {
		path := filepath.Join(e.dir, a.Slug+".md")

		keep, err := published(path)
		if err != nil {
			return res, err
		}
		if keep {
			e.logger.Info("Keeping published article", zap.String("path", path))
			res.Skipped = append(res.Skipped, path)
			continue
		}

		doc, err := Document(a)
		if err != nil {
			return res, err
		}
		if err := os.WriteFile(path, doc, 0644); err != nil {
			return res, fmt.Errorf("failed to write %s: %w", path, err)
		}
		res.Written = append(res.Written, path)
	}
	return res, nil
}

// Document renders one article as front matter followed by its content.
func Document(a model.Article) ([]byte, error) {
	meta, err := yaml.Marshal(FrontMatter{
		Title:    a.Title,
		Slug:     a.Slug,
		Category: a.Category,
		Status:   string(a.Status),
		Date:     a.ScheduledAt.UTC(),
		Callsign: a.Callsign,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n\n")
	buf.WriteString(a.Content)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func published(path string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var meta existing
	if _, err := frontmatter.Parse(f, &meta); err != nil {
		return false, fmt.Errorf("failed to read front matter of %s: %w", path, err)
	}
	return meta.Status != "" && meta.Status != string(model.StatusDraft), nil
}

package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"tianji-daily/internal/rotation"
	"tianji-daily/pkg/catalog"
	"tianji-daily/pkg/util"
)

// Writer persists rendered pages under the site root. The three writes
// (current page, dated archive page, listing page) are independent and
// idempotent - a rerun reproduces identical bytes, so there is nothing to
// roll back if a run dies halfway.
type Writer struct {
	Root   string // site root, e.g. "docs"
	Logger *zap.Logger
}

// NewWriter creates a writer for a site root
func NewWriter(root string, logger *zap.Logger) *Writer {
	return &Writer{Root: root, Logger: logger}
}

// ArchiveDir is where dated pages live
func (w *Writer) ArchiveDir() string {
	return filepath.Join(w.Root, "archive")
}

// Publish writes the current page to the root and the archived rendering to
// archive/<date>.html. Write failures here are fatal to the caller - a half
// written site is worth stopping over.
func (w *Writer) Publish(current, archived []byte, date time.Time) error {
	if !util.EnsureDirectoryExists(w.ArchiveDir()) {
		return fmt.Errorf("cannot create archive directory %s", w.ArchiveDir())
	}

	indexPath := filepath.Join(w.Root, "index.html")
	if err := os.WriteFile(indexPath, current, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", indexPath, err)
	}
	w.Logger.Info("wrote current page", zap.String("path", indexPath))

	archivePath := filepath.Join(w.ArchiveDir(), date.Format(dateLayout)+".html")
	if err := os.WriteFile(archivePath, archived, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", archivePath, err)
	}
	w.Logger.Info("archived page", zap.String("path", archivePath))

	return nil
}

// WriteDated writes only a dated archive page, used by regeneration
func (w *Writer) WriteDated(archived []byte, date time.Time) error {
	if !util.EnsureDirectoryExists(w.ArchiveDir()) {
		return fmt.Errorf("cannot create archive directory %s", w.ArchiveDir())
	}
	archivePath := filepath.Join(w.ArchiveDir(), date.Format(dateLayout)+".html")
	if err := os.WriteFile(archivePath, archived, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", archivePath, err)
	}
	return nil
}

// RebuildListing regenerates archive/index.html: every archived date with
// the module its date resolves to, newest first, plus aggregate counts.
// Unlike the dropdown this enumerates the whole archive, uncapped.
func (w *Writer) RebuildListing(cat *catalog.Catalog, start time.Time) error {
	dates := Dates(w.ArchiveDir())

	var rows strings.Builder
	for _, d := range dates {
		pos := rotation.Resolve(d, start, cat.Len())
		m := cat.At(pos.Index)
		fmt.Fprintf(&rows,
			"            <li><a href=\"%s.html\">%s</a><span class=\"listing-module\">第 %d 讲 · %s</span></li>\n",
			d.Format(dateLayout),
			fmt.Sprintf("%04d年%02d月%02d日", d.Year(), int(d.Month()), d.Day()),
			pos.Number, m.Title)
	}

	page := fmt.Sprintf(listingTemplate, len(dates), cat.Len(), rows.String())

	listingPath := filepath.Join(w.ArchiveDir(), "index.html")
	if err := os.WriteFile(listingPath, []byte(page), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", listingPath, err)
	}
	w.Logger.Info("rebuilt archive listing",
		zap.String("path", listingPath),
		zap.Int("dates", len(dates)))
	return nil
}

const listingTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>天纪每日学习 - 学习档案</title>
    <style>
        body {
            font-family: 'Noto Sans SC', -apple-system, sans-serif;
            background: #FDF5E6;
            color: #333;
            line-height: 1.8;
            margin: 0;
        }
        .container { max-width: 640px; margin: 0 auto; padding: 32px 20px; }
        h1 { color: #8B4513; font-size: 1.6rem; }
        .stats { color: #666; font-size: 0.9rem; margin-bottom: 24px; }
        ul { list-style: none; padding: 0; }
        li {
            display: flex;
            justify-content: space-between;
            padding: 10px 16px;
            background: #FFFAF0;
            border: 1px solid #DEB887;
            border-radius: 8px;
            margin-bottom: 8px;
        }
        a { color: #8B4513; text-decoration: none; font-weight: 500; }
        a:hover { text-decoration: underline; }
        .listing-module { color: #666; font-size: 0.9rem; }
        .back { display: inline-block; margin-top: 16px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>学习档案</h1>
        <div class="stats">已归档 %d 天 · 模块表共 %d 个模块</div>
        <ul>
%s        </ul>
        <a class="back" href="../index.html">← 返回今日学习</a>
    </div>
</body>
</html>
`

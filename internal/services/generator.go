// Package services wires the pipeline together: catalog -> rotation ->
// enhancement -> rendering -> archive.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tianji-daily/internal/archive"
	"tianji-daily/internal/enhance"
	"tianji-daily/internal/models"
	"tianji-daily/internal/render"
	"tianji-daily/internal/rotation"
	"tianji-daily/pkg/catalog"
)

// Generator produces the daily page and maintains the archive
type Generator struct {
	Catalog  *catalog.Catalog
	Enhancer enhance.Enhancer
	Writer   *archive.Writer
	Start    time.Time // rotation epoch
	Logger   *zap.Logger
}

// NewGenerator creates the pipeline with its dependencies
func NewGenerator(cat *catalog.Catalog, enh enhance.Enhancer, w *archive.Writer, start time.Time, logger *zap.Logger) *Generator {
	return &Generator{
		Catalog:  cat,
		Enhancer: enh,
		Writer:   w,
		Start:    start,
		Logger:   logger,
	}
}

// GenerateFor runs the whole pipeline for one date: resolve the module,
// fetch enhancement (or its fallback), render both link contexts, publish,
// and rebuild the archive listing.
func (g *Generator) GenerateFor(ctx context.Context, date time.Time) error {
	runID := uuid.New().String()
	log := g.Logger.With(zap.String("run", runID))

	pos := rotation.Resolve(date, g.Start, g.Catalog.Len())
	m := g.Catalog.At(pos.Index)
	log.Info("resolved daily module",
		zap.String("date", date.Format("2006-01-02")),
		zap.String("module", m.ID),
		zap.Int("number", pos.Number),
		zap.Int("total", g.Catalog.Len()))

	enhancement := g.Enhancer.Enhance(ctx, m, pos.Number, g.Catalog.Len())

	// scan before writing so the dropdown matches what the original did:
	// a date appears in its own dropdown only once a previous run wrote it
	archiveDir := g.Writer.ArchiveDir()
	rootList := archive.Scan(archiveDir, models.LinkContextRoot)
	siblingList := archive.Scan(archiveDir, models.LinkContextArchive)

	current := g.renderPage(m, pos, rootList, enhancement, models.LinkContextRoot, date)
	archived := g.renderPage(m, pos, siblingList, enhancement, models.LinkContextArchive, date)

	if err := g.Writer.Publish([]byte(current), []byte(archived), date); err != nil {
		return err
	}
	return g.Writer.RebuildListing(g.Catalog, g.Start)
}

// Regenerate rewrites every valid dated archive page from its date and the
// module table, then rebuilds the listing. Returns how many pages were
// rewritten. This is the repair path for when templates change: every page
// is reproducible from its file name alone.
func (g *Generator) Regenerate(ctx context.Context) (int, error) {
	archiveDir := g.Writer.ArchiveDir()
	dates := archive.Dates(archiveDir)
	if len(dates) == 0 {
		g.Logger.Info("no archived pages to regenerate", zap.String("dir", archiveDir))
		return 0, nil
	}

	siblingList := archive.Scan(archiveDir, models.LinkContextArchive)

	count := 0
	for _, d := range dates {
		pos := rotation.Resolve(d, g.Start, g.Catalog.Len())
		m := g.Catalog.At(pos.Index)

		enhancement := g.Enhancer.Enhance(ctx, m, pos.Number, g.Catalog.Len())
		page := g.renderPage(m, pos, siblingList, enhancement, models.LinkContextArchive, d)

		if err := g.Writer.WriteDated([]byte(page), d); err != nil {
			return count, fmt.Errorf("regenerating %s: %w", d.Format("2006-01-02"), err)
		}
		g.Logger.Info("regenerated archive page",
			zap.String("date", d.Format("2006-01-02")),
			zap.String("module", m.ID))
		count++
	}

	if err := g.Writer.RebuildListing(g.Catalog, g.Start); err != nil {
		return count, err
	}
	return count, nil
}

func (g *Generator) renderPage(m models.Module, pos rotation.Position, list []models.ArchiveEntry, enhancement models.Enhancement, ctx models.LinkContext, date time.Time) string {
	return render.Render(render.Input{
		Module:      m,
		Position:    pos.Number,
		Total:       g.Catalog.Len(),
		Archive:     list,
		Enhancement: enhancement,
		Context:     ctx,
		Date:        date,
		Start:       g.Start,
	})
}

// Package archive manages the dated record of generated pages: scanning it
// for navigation, writing new pages into it, and rebuilding its listing.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tianji-daily/internal/models"
)

const (
	dateLayout = "2006-01-02"

	// dropdownLimit caps how many dates the navigation dropdown shows.
	// Older pages stay on disk and reachable through the listing page.
	dropdownLimit = 30
)

// Scan reads the archive directory and builds navigation entries, newest
// first, capped for the dropdown. Files whose names don't parse as ISO
// dates are skipped without comment - a stray file in the archive must
// never block page generation. A missing directory just means no history.
func Scan(dir string, ctx models.LinkContext) []models.ArchiveEntry {
	dates := Dates(dir)

	if len(dates) > dropdownLimit {
		dates = dates[:dropdownLimit]
	}

	entries := make([]models.ArchiveEntry, 0, len(dates))
	for _, d := range dates {
		stem := d.Format(dateLayout)
		entries = append(entries, models.ArchiveEntry{
			Date:    d,
			Display: fmt.Sprintf("%04d年%02d月%02d日", d.Year(), int(d.Month()), d.Day()),
			URL:     ctx.ArchivePrefix() + stem + ".html",
		})
	}
	return entries
}

// Dates returns the dates of every *.html file whose stem is an ISO date,
// sorted descending and uncapped. Shared by the dropdown scan, the listing
// rebuild, and archive regeneration.
func Dates(dir string) []time.Time {
	fileEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var dates []time.Time
	for _, fe := range fileEntries {
		if fe.IsDir() {
			continue
		}
		name := fe.Name()
		if filepath.Ext(name) != ".html" {
			continue
		}
		stem := strings.TrimSuffix(name, ".html")
		d, err := time.Parse(dateLayout, stem)
		if err != nil {
			continue // not a dated page, e.g. index.html
		}
		dates = append(dates, d)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates
}

package models

import "time"

// ArchiveEntry is one previously generated page, derived from its file name
type ArchiveEntry struct {
	Date    time.Time `json:"date"`    // parsed from the YYYY-MM-DD file stem
	Display string    `json:"display"` // human readable date for the dropdown
	URL     string    `json:"url"`     // navigation href, prefix depends on where the list is embedded
}

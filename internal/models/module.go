package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Module represents one unit of daily learning content
type Module struct {
	ID             string   `json:"id"`              // unique identifier, e.g. "EP01-Q03"
	Title          string   `json:"title"`           // display title
	Question       string   `json:"question"`        // the study question for the day
	PromptTemplate string   `json:"prompt_template"` // Feynman teach-back prompt, may contain bracketed spans
	Episode        int      `json:"episode"`         // which video episode this comes from
	TextbookPages  PageRef  `json:"textbook_pages"`  // page reference, "12" or 12 or "N/A"
	KeyConcepts    []string `json:"key_concepts"`    // ordered - display order matters
	VideoURL       string   `json:"video_url"`       // playback link
	StartTime      string   `json:"start_time"`      // HH:MM:SS or MM:SS
	EndTime        string   `json:"end_time"`
}

// Validate checks the fields a page can't be rendered without
func (m *Module) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("module has no id")
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("module %s has no title", m.ID)
	}
	if strings.TrimSpace(m.Question) == "" {
		return fmt.Errorf("module %s has no question", m.ID)
	}
	if m.Episode <= 0 {
		return fmt.Errorf("module %s has invalid episode %d", m.ID, m.Episode)
	}
	if strings.TrimSpace(m.VideoURL) == "" {
		return fmt.Errorf("module %s has no video_url", m.ID)
	}
	return nil
}

// PageRef is a textbook page reference. Source data is inconsistent about
// whether this is a number or a string ("12" vs 12 vs "N/A"), so accept both.
type PageRef string

// UnmarshalJSON accepts either a JSON string or a bare number
func (p *PageRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = PageRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("textbook_pages must be a string or number: %s", string(data))
	}
	*p = PageRef(n.String())
	return nil
}

func (p PageRef) String() string { return string(p) }

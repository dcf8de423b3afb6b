package render

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	videoIDPattern = regexp.MustCompile(`v=([^&]+)`)
	pageNumPattern = regexp.MustCompile(`(\d+)`)
)

// timeToSeconds converts "HH:MM:SS" or "MM:SS" to seconds for the embedded
// player config. Anything unparseable comes back as 0.
func timeToSeconds(t string) int {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// videoID pulls the YouTube id out of a watch URL
func videoID(url string) string {
	if m := videoIDPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// pageNumber extracts the first number from a textbook page reference,
// defaulting to 6 for things like "N/A" (the textbook's first content page)
func pageNumber(pages string) int {
	if m := pageNumPattern.FindStringSubmatch(pages); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 6
}

package models

// LinkContext says where a rendered page will live, which decides every
// relative path embedded in it. A page at the site root links into archive/
// while a page inside archive/ links to its siblings directly. Getting this
// wrong breaks navigation, so the prefixes live in one place and both the
// renderer and the archive index ask here.
type LinkContext int

const (
	// LinkContextRoot renders for <root>/index.html
	LinkContextRoot LinkContext = iota
	// LinkContextArchive renders for <root>/archive/<date>.html
	LinkContextArchive
)

// ArchivePrefix is what goes in front of a dated page link
func (c LinkContext) ArchivePrefix() string {
	if c == LinkContextArchive {
		return ""
	}
	return "archive/"
}

// AssetPrefix is what goes in front of root-level assets like the PDF
func (c LinkContext) AssetPrefix() string {
	if c == LinkContextArchive {
		return "../"
	}
	return ""
}

// ArchiveIndexURL is the href of the archive listing page
func (c LinkContext) ArchiveIndexURL() string {
	if c == LinkContextArchive {
		return "index.html"
	}
	return "archive/index.html"
}

func (c LinkContext) String() string {
	if c == LinkContextArchive {
		return "archive"
	}
	return "root"
}

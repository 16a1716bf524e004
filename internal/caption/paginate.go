package caption

import "unicode/utf8"

// PageLimits bounds one display page.
type PageLimits struct {
	// MaxLineChars is the character budget of a single line.
	MaxLineChars int
	// MaxLines is the line budget of a single page.
	MaxLines int
	// MaxGapMs is the largest silence between consecutive captions before a
	// new page must start.
	MaxGapMs int
}

// Paginate groups an ordered caption list into display pages. Each page
// spans the time window of its contained captions.
func Paginate(captions []Caption, limits PageLimits) []Page {
	if len(captions) == 0 {
		return nil
	}
	if limits.MaxLineChars <= 0 {
		limits.MaxLineChars = 30
	}
	if limits.MaxLines <= 0 {
		limits.MaxLines = 2
	}

	pages := make([]Page, 0)

	var page Page
	var line []Caption
	lineChars := 0

	flushLine := func() {
		if len(line) > 0 {
			page.Lines = append(page.Lines, line)
			line = nil
			lineChars = 0
		}
	}
	flushPage := func() {
		flushLine()
		if len(page.Lines) > 0 {
			pages = append(pages, page)
			page = Page{}
		}
	}

	for _, c := range captions {
		width := utf8.RuneCountInString(c.Text)

		if len(page.Lines) > 0 || len(line) > 0 {
			if limits.MaxGapMs > 0 && c.StartMs-page.EndMs > limits.MaxGapMs {
				flushPage()
			}
		}

		fits := lineChars == 0 || lineChars+1+width <= limits.MaxLineChars
		if !fits {
			flushLine()
			if len(page.Lines) >= limits.MaxLines {
				flushPage()
			}
		}

		if len(page.Lines) == 0 && len(line) == 0 {
			page.StartMs = c.StartMs
		}
		if lineChars > 0 {
			lineChars++
		}
		lineChars += width
		line = append(line, c)
		page.EndMs = c.EndMs
	}
	flushPage()

	return pages
}

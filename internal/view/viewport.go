package view

// viewport is the scroll state of one buffer.
type viewport struct {
	top int
}

// scrollMargin is how many lines are kept visible around the cursor when
// the buffer is long enough.
const scrollMargin = 2

// reveal scrolls so that line is visible in a region of height rows, given
// rowsFor, the number of screen rows a buffer line occupies.
func (v *viewport) reveal(line, height, lineCount int, rowsFor func(int) int) {
	if height <= 0 {
		return
	}
	margin := min(scrollMargin, (height-1)/2)

	if line-margin < v.top {
		v.top = max(0, line-margin)
		return
	}

	// Walk back from the margin line below the cursor until the screen is
	// full; that line is the lowest acceptable top.
	last := min(line+margin, lineCount-1)
	rows := 0
	top := last
	for top >= 0 {
		rows += rowsFor(top)
		if rows > height {
			break
		}
		top--
	}
	top++
	if top > line {
		top = line
	}
	if v.top < top {
		v.top = top
	}
}

package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/javiermolinar/lienzo/internal/layout"
)

// gutterWidth is the "HH:MM " time column.
const gutterWidth = 6

// minLaneWidth keeps event cells readable on narrow terminals.
const minLaneWidth = 8

// GridOpts controls the plain-text day grid rendering.
type GridOpts struct {
	RowsPerHour int // vertical resolution; the layout must be computed with PixelsPerHour == RowsPerHour
	Width       int // total line width including the time gutter
	StartHour   int // first rendered hour
	EndHour     int // hour after the last rendered one
}

// RenderDayGrid renders a day's layout as terminal lines: a time gutter
// on the left and one fixed-width lane per column. Overlapping events
// appear side by side; an event's first row carries its title, the rest
// a continuation bar.
//
// The hour range widens automatically so no event is cut off.
func RenderDayGrid(day []layout.Positioned, opts GridOpts) []string {
	if opts.RowsPerHour <= 0 {
		opts.RowsPerHour = 4
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}

	lanes := layout.MaxColumns(day)
	if lanes == 0 {
		lanes = 1
	}

	laneWidth := (opts.Width - gutterWidth - (lanes - 1)) / lanes
	if laneWidth < minLaneWidth {
		laneWidth = minLaneWidth
	}

	startRow, endRow := gridRows(day, opts)

	lines := make([]string, 0, endRow-startRow)
	for row := startRow; row < endRow; row++ {
		var b strings.Builder
		b.WriteString(gutterLabel(row, opts.RowsPerHour))

		for lane := 0; lane < lanes; lane++ {
			if lane > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cell(day, row, lane, laneWidth))
		}

		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

// gridRows converts the configured hour range to row indices, widened to
// cover every event in the layout.
func gridRows(day []layout.Positioned, opts GridOpts) (int, int) {
	startRow := opts.StartHour * opts.RowsPerHour
	endRow := opts.EndHour * opts.RowsPerHour
	if endRow <= startRow {
		endRow = 24 * opts.RowsPerHour
	}

	for _, p := range day {
		top, bottom := eventRows(p)
		if top < startRow {
			startRow = top
		}
		if bottom > endRow {
			endRow = bottom
		}
	}

	if startRow < 0 {
		startRow = 0
	}
	if max := 24 * opts.RowsPerHour; endRow > max {
		endRow = max
	}
	return startRow, endRow
}

// eventRows returns the half-open row span of a positioned event. The
// layout is expected to be computed with PixelsPerHour equal to the
// grid's RowsPerHour, so Top and Height already are row units.
func eventRows(p layout.Positioned) (int, int) {
	top := int(math.Round(p.Top))
	span := int(math.Round(p.Height))
	if span < 1 {
		span = 1
	}
	return top, top + span
}

// cell renders the fixed-width content of one lane at one row.
func cell(day []layout.Positioned, row, lane, width int) string {
	for _, p := range day {
		if p.Column != lane {
			continue
		}
		top, bottom := eventRows(p)
		if row < top || row >= bottom {
			continue
		}
		if row == top {
			return padCell(p.Event.Raw.Title, width)
		}
		return padCell("│", width)
	}
	return strings.Repeat(" ", width)
}

func padCell(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// gutterLabel prints "HH:MM " on hour boundaries and padding elsewhere.
func gutterLabel(row, rowsPerHour int) string {
	if row%rowsPerHour == 0 {
		return fmt.Sprintf("%02d:00 ", row/rowsPerHour)
	}
	return strings.Repeat(" ", gutterWidth)
}

package report

import (
	"fmt"
)

// Drawing primitives shared by every section. Each block measures its own
// height and asks for room before drawing, so a logical block is never split
// across a page boundary.

func (b *builder) setTextColor(c rgb)  { b.pdf.SetTextColor(c.r, c.g, c.b) }
func (b *builder) setFillColor(c rgb)  { b.pdf.SetFillColor(c.r, c.g, c.b) }
func (b *builder) setDrawColor(c rgb)  { b.pdf.SetDrawColor(c.r, c.g, c.b) }

// remaining returns the usable vertical space left on the current page.
func (b *builder) remaining() float64 {
	return contentFloor - b.pdf.GetY()
}

// fullPage is the usable height of a fresh page.
const fullPage = contentFloor - marginTop

// ensureRoom starts a new page when the requested height does not fit.
func (b *builder) ensureRoom(height float64) {
	if height > b.remaining() {
		b.pdf.AddPage()
	}
}

// sectionTitle draws a section heading. The heading reserves room for two
// rows of content below it so it is never orphaned at a page bottom.
func (b *builder) sectionTitle(text string) {
	b.ensureRoom(titleHeight + sectionSpacing + 2*rowHeight)
	b.pdf.Ln(sectionSpacing / 2)
	b.pdf.SetFont("Helvetica", "B", titleSize)
	b.setTextColor(accentColor)
	b.setFillColor(panelColor)
	b.pdf.CellFormat(contentWidth, titleHeight, text, "", 1, "L", true, 0, "")
	b.pdf.Ln(2)
}

func (b *builder) subTitle(text string) {
	b.ensureRoom(subTitleHeight + 2*rowHeight)
	b.pdf.SetFont("Helvetica", "B", subTitleSize)
	b.setTextColor(inkColor)
	b.pdf.CellFormat(contentWidth, subTitleHeight, text, "", 1, "L", false, 0, "")
	b.pdf.Ln(1)
}

func (b *builder) bodyText(text string) {
	b.ensureRoom(2 * rowHeight)
	b.pdf.SetFont("Helvetica", "", bodySize)
	b.setTextColor(bodyColor)
	b.pdf.MultiCell(contentWidth, 5, text, "", "L", false)
	b.pdf.Ln(2)
}

// alertText renders a highlighted warning line.
func (b *builder) alertText(text string) {
	b.ensureRoom(2 * rowHeight)
	b.pdf.SetFont("Helvetica", "B", bodySize)
	b.setTextColor(alertColor)
	b.pdf.MultiCell(contentWidth, 5, text, "", "L", false)
	b.pdf.Ln(2)
}

// table draws a header row plus data rows as one keep-together block. When
// the block is taller than a full page it is truncated to fit, a visible
// "(truncated)" row is appended, and a warning is recorded.
func (b *builder) table(name string, headers []string, rows [][]string, widths []float64) {
	needed := float64(len(rows)+1) * rowHeight
	if needed > b.remaining() {
		b.pdf.AddPage()
	}

	pageHeight := float64(fullPage)
	maxRows := int(pageHeight/rowHeight) - 2 // header row and truncation marker
	if len(rows) > maxRows {
		b.warnings = append(b.warnings,
			fmt.Sprintf("%s table truncated to %d of %d rows", name, maxRows, len(rows)))
		rows = rows[:maxRows]
		rows = append(rows, truncationRow(len(headers)))
	}

	// Header row.
	b.pdf.SetFont("Helvetica", "B", tableSize)
	b.setTextColor(tableHeadText)
	b.setFillColor(inkColor)
	b.setDrawColor(inkColor)
	for i, h := range headers {
		b.pdf.CellFormat(widths[i], rowHeight, pad(h), "1", 0, "C", true, 0, "")
	}
	b.pdf.Ln(rowHeight)

	// Data rows with alternating fill.
	b.pdf.SetFont("Helvetica", "", tableSize)
	for rowIdx, row := range rows {
		truncMarker := row[0] == truncatedMarker
		if truncMarker {
			b.setTextColor(truncatedColor)
			b.pdf.SetFont("Helvetica", "B", tableSize)
		} else {
			b.setTextColor(bodyColor)
		}
		fill := rowIdx%2 == 1
		b.setFillColor(panelColor)
		for i, cell := range row {
			align := "C"
			if i == 0 {
				align = "L"
			}
			b.pdf.CellFormat(widths[i], rowHeight, pad(cell), "1", 0, align, fill, 0, "")
		}
		b.pdf.Ln(rowHeight)
		if truncMarker {
			b.pdf.SetFont("Helvetica", "", tableSize)
		}
	}
	b.pdf.Ln(sectionSpacing / 2)
}

// truncatedMarker is the visible text of a truncation row.
const truncatedMarker = "(truncated)"

func truncationRow(cols int) []string {
	row := make([]string, cols)
	row[0] = truncatedMarker
	for i := 1; i < cols; i++ {
		row[i] = "..."
	}
	return row
}

// pad applies the shared cell padding as leading/trailing space, keeping
// text off the cell borders without per-table tuning.
func pad(s string) string {
	return " " + s + " "
}

// Package report lays out analysis results into paginated PDF artifacts.
package report

// Page geometry in millimeters for A4 portrait.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 20.0
	marginRight  = 20.0
	marginTop    = 20.0
	marginBottom = 20.0

	contentWidth = pageWidth - marginLeft - marginRight
	contentFloor = pageHeight - marginBottom
)

// Layout constants. Spacing and cell padding are fixed so every section and
// table shares the same rhythm.
const (
	rowHeight      = 7.0
	cellPadding    = 2.0
	sectionSpacing = 8.0
	titleHeight    = 10.0
	subTitleHeight = 8.0
)

// Font sizes in points.
const (
	coverTitleSize = 24.0
	titleSize      = 16.0
	subTitleSize   = 12.0
	bodySize       = 10.0
	tableSize      = 9.0
	footerSize     = 8.0
)

// rgb is a plain 8-bit color triple.
type rgb struct{ r, g, b int }

// Report palette.
var (
	inkColor       = rgb{44, 62, 80}    // dark slate for titles and table headers
	accentColor    = rgb{41, 128, 185}  // section title blue
	panelColor     = rgb{236, 240, 241} // light background for alternating rows
	mutedColor     = rgb{127, 140, 141} // subtitles and footers
	alertColor     = rgb{231, 76, 60}   // warnings and raised alerts
	bodyColor      = rgb{0, 0, 0}
	tableHeadText  = rgb{255, 255, 255}
	truncatedColor = rgb{231, 76, 60}
)

package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Mida-Energy/report-generator/core"
	"github.com/Mida-Energy/report-generator/schema"
)

// dateFormat is used for all human-readable dates in the document.
const dateFormat = "02/01/2006"

// PDFRenderer produces the multi-section PDF artifact. Rendering is a pure
// function of its inputs plus the static style configuration; document
// timestamps are pinned to the report metadata so identical inputs yield
// identical bytes.
type PDFRenderer struct{}

// NewPDFRenderer returns a renderer with the default style.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render implements contract.Renderer.
func (r *PDFRenderer) Render(result *schema.AnalysisResult, recs []schema.Recommendation, meta schema.ReportMetadata) ([]byte, []string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(meta.GeneratedAt)
	pdf.SetModificationDate(meta.GeneratedAt)
	pdf.SetTitle(meta.Title, true)
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(false, marginBottom)

	b := &builder{pdf: pdf}
	b.cover(meta)
	b.summarySection(result)
	b.dailySection(result)
	b.hourlySection(result)
	b.bandsSection(result)
	b.peaksSection(result)
	b.anomalySection(result)
	b.gridSection(result)
	b.trendSection(result)
	b.impactSection(result)
	b.recommendationSection(result, recs)
	b.appendixSection(result, meta)
	b.footer(meta)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, b.warnings, &RenderError{Warnings: b.warnings, Err: err}
	}
	return buf.Bytes(), b.warnings, nil
}

// builder accumulates the document and the truncation warnings.
type builder struct {
	pdf      *fpdf.Fpdf
	warnings []string
}

func (b *builder) cover(meta schema.ReportMetadata) {
	b.pdf.AddPage()
	b.pdf.SetFont("Helvetica", "B", coverTitleSize)
	b.setTextColor(inkColor)
	b.pdf.CellFormat(contentWidth, 14, strings.ToUpper(meta.Title), "", 1, "C", false, 0, "")
	b.pdf.Ln(4)

	b.pdf.SetFont("Helvetica", "", subTitleSize)
	b.setTextColor(mutedColor)
	period := fmt.Sprintf("Period: %s to %s",
		meta.Period.Start.Format(dateFormat), meta.Period.End.Format(dateFormat))
	b.pdf.CellFormat(contentWidth, subTitleHeight, period, "", 1, "C", false, 0, "")
	if len(meta.DeviceIDs) > 0 {
		devices := "Devices: " + strings.Join(meta.DeviceIDs, ", ")
		b.pdf.CellFormat(contentWidth, subTitleHeight, devices, "", 1, "C", false, 0, "")
	}
	generated := "Generated: " + meta.GeneratedAt.Format(dateFormat+" 15:04")
	b.pdf.CellFormat(contentWidth, subTitleHeight, generated, "", 1, "C", false, 0, "")
	b.pdf.Ln(sectionSpacing)
}

func (b *builder) summarySection(result *schema.AnalysisResult) {
	b.sectionTitle("1. Executive Summary")
	s := result.Summary
	rows := [][]string{
		{"Total energy", fmt.Sprintf("%.2f", s.TotalEnergyKWh), "kWh"},
		{"Average power", fmt.Sprintf("%.1f", s.AvgPowerW), "W"},
		{"Peak power", fmt.Sprintf("%.1f", s.PeakPowerW), "W"},
		{"Minimum power", fmt.Sprintf("%.1f", s.MinPowerW), "W"},
	}
	if s.AvgVoltage > 0 {
		rows = append(rows, []string{"Average voltage", fmt.Sprintf("%.1f", s.AvgVoltage), "V"})
	}
	if s.AvgCurrent > 0 {
		rows = append(rows, []string{"Average current", fmt.Sprintf("%.2f", s.AvgCurrent), "A"})
	}
	rows = append(rows,
		[]string{"Peaks above 95th percentile", fmt.Sprintf("%d", s.PeakCount), "n"},
		[]string{"Samples", fmt.Sprintf("%d", s.SampleCount), "n"},
		[]string{"Days analyzed", fmt.Sprintf("%d", s.DaysAnalyzed), "n"},
	)
	b.table("summary", []string{"Metric", "Value", "Unit"}, rows, []float64{90, 50, 30})
}

func (b *builder) dailySection(result *schema.AnalysisResult) {
	if len(result.DailyEnergy) == 0 {
		return
	}
	b.sectionTitle("2. Daily Breakdown")
	rows := make([][]string, 0, len(result.DailyEnergy))
	for _, d := range result.DailyEnergy {
		rows = append(rows, []string{
			d.Day.Format(dateFormat),
			d.Day.Weekday().String(),
			fmt.Sprintf("%.2f", d.EnergyKWh),
		})
	}
	b.table("daily breakdown", []string{"Day", "Weekday", "Energy (kWh)"},
		rows, []float64{55, 55, 60})
}

func (b *builder) hourlySection(result *schema.AnalysisResult) {
	b.sectionTitle("3. Hourly Profile")
	rows := make([][]string, 0, len(result.Hourly))
	for _, h := range result.Hourly {
		rows = append(rows, []string{
			fmt.Sprintf("%02d:00", h.Hour),
			fmt.Sprintf("%.1f", h.MeanPower),
			fmt.Sprintf("%.1f", h.MaxPower),
			fmt.Sprintf("%.1f", h.MinPower),
			fmt.Sprintf("%d", h.Samples),
		})
	}
	b.table("hourly profile", []string{"Hour", "Mean (W)", "Max (W)", "Min (W)", "Samples"},
		rows, []float64{34, 34, 34, 34, 34})
}

func (b *builder) bandsSection(result *schema.AnalysisResult) {
	b.sectionTitle("4. Time Bands and Weekly Pattern")
	rows := make([][]string, 0, len(result.Bands))
	for _, band := range result.Bands {
		rows = append(rows, []string{
			bandLabel(band.Band),
			fmt.Sprintf("%.1f", band.MeanPower),
			fmt.Sprintf("%.1f", band.MaxPower),
			fmt.Sprintf("%d", band.Samples),
		})
	}
	b.table("time bands", []string{"Band", "Mean (W)", "Max (W)", "Samples"},
		rows, []float64{55, 40, 40, 35})

	b.subTitle("Weekday vs Weekend")
	w := result.Weekday
	b.table("weekday split", []string{"Segment", "Mean (W)", "Samples"}, [][]string{
		{"Weekdays", fmt.Sprintf("%.1f", w.WeekdayMeanPower), fmt.Sprintf("%d", w.WeekdaySamples)},
		{"Weekend", fmt.Sprintf("%.1f", w.WeekendMeanPower), fmt.Sprintf("%d", w.WeekendSamples)},
	}, []float64{55, 60, 55})
}

func (b *builder) peaksSection(result *schema.AnalysisResult) {
	b.sectionTitle("5. Power Peaks and Best Days")
	if len(result.TopPeaks) > 0 {
		rows := make([][]string, 0, len(result.TopPeaks))
		for _, p := range result.TopPeaks {
			rows = append(rows, []string{
				p.Timestamp.Format(dateFormat + " 15:04"),
				p.DeviceID,
				fmt.Sprintf("%.1f", p.PowerW),
			})
		}
		b.table("top peaks", []string{"Timestamp", "Device", "Power (W)"}, rows, []float64{65, 60, 45})
	}

	if len(result.BestDays) > 0 {
		b.subTitle("Lowest Consumption Days")
		rows := make([][]string, 0, len(result.BestDays))
		for _, d := range result.BestDays {
			rows = append(rows, []string{
				d.Day.Format(dateFormat),
				fmt.Sprintf("%.2f", d.EnergyKWh),
			})
		}
		b.table("best days", []string{"Day", "Energy (kWh)"}, rows, []float64{85, 85})
	}
}

// maxAnomalyRows caps the anomaly table; the full count is always stated.
const maxAnomalyRows = 15

func (b *builder) anomalySection(result *schema.AnalysisResult) {
	b.sectionTitle("6. Anomalies and Alerts")

	if len(result.Anomalies) == 0 {
		b.bodyText("No anomalous samples detected in this window.")
	} else {
		b.bodyText(fmt.Sprintf("%d samples deviated from their hourly baseline. Highest deviations:", len(result.Anomalies)))
		shown := result.Anomalies
		if len(shown) > maxAnomalyRows {
			shown = shown[:maxAnomalyRows]
		}
		rows := make([][]string, 0, len(shown))
		for _, a := range shown {
			rows = append(rows, []string{
				a.Timestamp.Format(dateFormat + " 15:04"),
				a.DeviceID,
				fmt.Sprintf("%.1f", a.ObservedPowerW),
				fmt.Sprintf("%.1f", a.ExpectedBaseline),
				fmt.Sprintf("%.1f", a.Severity),
			})
		}
		b.table("anomalies", []string{"Timestamp", "Device", "Observed (W)", "Baseline (W)", "Z-score"},
			rows, []float64{40, 40, 32, 32, 26})
	}

	if result.NightAlert.Raised {
		b.alertText(fmt.Sprintf(
			"Night consumption alert: mean night power %.1f W is %.0f%% of the period peak (threshold %.0f%%). Likely standby loads.",
			result.NightAlert.NightMeanW, result.NightAlert.Ratio*100, result.NightAlert.ThresholdRatio*100))
	} else {
		b.bodyText("Night consumption is within the expected range.")
	}
}

func (b *builder) gridSection(result *schema.AnalysisResult) {
	if result.Grid == nil {
		return
	}
	b.sectionTitle("7. Grid Quality")
	g := result.Grid
	rows := [][]string{
		{"Voltage stability", fmt.Sprintf("%.3f", g.VoltageStability), "0-1"},
		{"Mean voltage", fmt.Sprintf("%.1f", g.VoltageMean), "V"},
		{"Voltage std deviation", fmt.Sprintf("%.2f", g.VoltageStdDev), "V"},
	}
	if g.PowerFactor != nil {
		rows = append(rows, []string{"Power factor (estimated)", fmt.Sprintf("%.2f", *g.PowerFactor), "0-1"})
	}
	b.table("grid quality", []string{"Metric", "Value", "Unit"}, rows, []float64{90, 50, 30})
}

func (b *builder) trendSection(result *schema.AnalysisResult) {
	if result.Trend == nil {
		return
	}
	b.sectionTitle("8. Trend and Forecast")
	t := result.Trend
	if t.LowConfidence {
		b.bodyText(fmt.Sprintf(
			"Fewer than two distinct days of data. Next-period estimate of %.2f kWh carries low confidence.",
			t.NextPeriodKWh))
		return
	}
	direction := "stable"
	if t.SlopeKWhPerDay > 0.01 {
		direction = "increasing"
	} else if t.SlopeKWhPerDay < -0.01 {
		direction = "decreasing"
	}
	b.bodyText(fmt.Sprintf(
		"Daily consumption is %s at %.2f kWh/day (fit confidence %.0f%%). Projected next-period consumption: %.2f kWh.",
		direction, t.SlopeKWhPerDay, t.Confidence*100, t.NextPeriodKWh))
}

func (b *builder) impactSection(result *schema.AnalysisResult) {
	b.sectionTitle("9. Environmental Impact")
	i := result.Impact
	// CO2 stays plain text so the document survives font substitution.
	b.table("environmental impact", []string{"Indicator", "Value", "Unit"}, [][]string{
		{"CO2 emissions", fmt.Sprintf("%.1f", i.CO2Kg), "kg"},
		{"Tree-year equivalent", fmt.Sprintf("%.1f", i.TreeEquivalent), "trees"},
		{"Car travel equivalent", fmt.Sprintf("%.0f", i.CarKmEqual), "km"},
	}, []float64{90, 50, 30})
}

func (b *builder) recommendationSection(result *schema.AnalysisResult, recs []schema.Recommendation) {
	b.sectionTitle("10. Recommendations and Action Plan")
	for _, rec := range recs {
		b.subTitle(fmt.Sprintf("[%s] %s", rec.Priority, rec.Title))
		b.bodyText(rec.Description)
	}

	b.subTitle("Action Plan")
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			string(rec.Priority),
			rec.Title,
			rec.Timeline,
			rec.Responsible,
			fmt.Sprintf("%.1f", rec.EstimatedSaving),
		})
	}
	b.table("action plan", []string{"Priority", "Action", "Timeline", "Responsible", "Saving (kWh)"},
		rows, []float64{24, 62, 26, 34, 24})

	b.subTitle("Potential Savings")
	total := core.PotentialSavings(recs)
	pct := 0.0
	if result.Summary.TotalEnergyKWh > 0 {
		pct = total / result.Summary.TotalEnergyKWh * 100
	}
	b.bodyText(fmt.Sprintf(
		"Implementing all recommendations is estimated to save %.1f kWh per period, %.0f%% of current consumption.",
		total, pct))
}

func (b *builder) appendixSection(result *schema.AnalysisResult, meta schema.ReportMetadata) {
	b.sectionTitle("Appendix: Methodology")
	b.bodyText(fmt.Sprintf(
		"Analysis window %s to %s, %d samples across %d devices over %d days.",
		meta.Period.Start.Format(dateFormat), meta.Period.End.Format(dateFormat),
		result.Summary.SampleCount, len(result.DeviceIDs), result.Summary.DaysAnalyzed))
	b.bodyText("Energy totals are cumulative-counter deltas summed per device segment; " +
		"counter resets start a new segment and never contribute negative energy.")
	b.bodyText("Anomalies are power samples whose z-score against the hourly distribution " +
		"exceeds the configured sigma threshold. They are reported, not removed.")
	b.bodyText(fmt.Sprintf(
		"The night alert compares mean night-band power against the period peak (threshold %.0f%%).",
		result.NightAlert.ThresholdRatio*100))
	b.bodyText("Trend projection is an ordinary least squares fit over daily totals; " +
		"the stated confidence is the R-squared of the fit.")
}

func (b *builder) footer(meta schema.ReportMetadata) {
	b.pdf.Ln(sectionSpacing)
	b.ensureRoom(3 * rowHeight)
	b.pdf.SetFont("Helvetica", "I", footerSize)
	b.setTextColor(mutedColor)
	disclaimer := "Figures are derived from meter telemetry by statistical analysis. " +
		"Recommendations follow sector best practice and are not a substitute for an on-site energy audit."
	b.pdf.MultiCell(contentWidth, 4, disclaimer, "", "L", false)
	b.pdf.Ln(2)
	b.pdf.CellFormat(contentWidth, 4,
		fmt.Sprintf("Mida Energy Report Generator - generated %s", meta.GeneratedAt.Format(time.RFC3339)),
		"", 1, "C", false, 0, "")
}

func bandLabel(band schema.TimeBand) string {
	switch band {
	case schema.BandNight:
		return "Night (00-06)"
	case schema.BandMorning:
		return "Morning (06-12)"
	case schema.BandAfternoon:
		return "Afternoon (12-18)"
	default:
		return "Evening (18-24)"
	}
}

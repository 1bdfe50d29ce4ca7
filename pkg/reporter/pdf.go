package reporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/auditpro/auditpro/internal/models"
)

// WritePDF renders the audit as a PDF document onto w. Section selection
// and category filtering follow the same Options as the text formats.
func (rep *Reporter) WritePDF(result *models.AuditResult, opts Options, w io.Writer) error {
	pdf, err := rep.buildPDF(result, opts)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// ExportPDF writes the PDF to a file at path, creating or replacing it.
func (rep *Reporter) ExportPDF(result *models.AuditResult, opts Options, path string) error {
	pdf, err := rep.buildPDF(result, opts)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (rep *Reporter) buildPDF(result *models.AuditResult, opts Options) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetTitle("AuditPro Report", false)

	const font = "Helvetica"

	pdf.AddPage()

	pdf.SetFont(font, "B", 16)
	pdf.CellFormat(0, 9, "AuditPro Audit Report", "", 1, "L", false, 0, "")

	pdf.SetFont(font, "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 6, fmt.Sprintf("Subject: %s", pdfText(result.URL)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Audit type: %s", result.AuditType), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated at: %s", time.UnixMilli(result.Timestamp).Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	if result.TargetAudience != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Target audience: %s", pdfText(result.TargetAudience)), "", 1, "L", false, 0, "")
	}
	if result.Geo != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Geo focus: %s", pdfText(result.Geo)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	if opts.enabled(SectionOverview) {
		sectionTitle(pdf, font, "1. Overview")
		kv(pdf, font, "Overall Score", fmt.Sprintf("%.0f / 100", result.OverallScore))
		kv(pdf, font, "Technical", fmt.Sprintf("%.0f", result.CategoryScores.Technical))
		kv(pdf, font, "Content", fmt.Sprintf("%.0f", result.CategoryScores.Content))
		kv(pdf, font, "UX / Mobile", fmt.Sprintf("%.0f", result.CategoryScores.UX))
		kv(pdf, font, "Authority", fmt.Sprintf("%.0f", result.CategoryScores.Authority))
		if len(result.TechStack) > 0 {
			kv(pdf, font, "Detected Stack", strings.Join(result.TechStack, ", "))
		}
		pdf.SetFont(font, "", 10)
		pdf.SetTextColor(30, 30, 30)
		pdf.MultiCell(0, 5, pdfText(result.Summary), "", "L", false)
		pdf.Ln(2)
	}

	if opts.enabled(SectionIssues) {
		issues := opts.issues(result)
		sectionTitle(pdf, font, fmt.Sprintf("2. Issues (%d)", len(issues)))
		if len(issues) == 0 {
			pdf.SetFont(font, "", 10)
			pdf.SetTextColor(90, 90, 90)
			pdf.MultiCell(0, 5, "(none)", "", "L", false)
		}
		for _, is := range issues {
			pdf.SetFont(font, "B", 10)
			setSeverityColor(pdf, is.Severity)
			pdf.MultiCell(0, 5, fmt.Sprintf("[%s] %s", is.Severity, pdfText(is.Title)), "", "L", false)
			pdf.SetFont(font, "", 9)
			pdf.SetTextColor(40, 40, 40)
			pdf.MultiCell(0, 4.5, fmt.Sprintf("category: %s | effort: %s", is.Category, orDash(is.Effort)), "", "L", false)
			if is.Description != "" {
				pdf.MultiCell(0, 4.5, pdfText(is.Description), "", "L", false)
			}
			if is.Recommendation != "" {
				pdf.MultiCell(0, 4.5, "Recommendation: "+pdfText(is.Recommendation), "", "L", false)
			}
			if is.HasFix() {
				pdf.SetFont("Courier", "", 8)
				pdf.SetTextColor(90, 30, 30)
				pdf.MultiCell(0, 4, pdfText(is.CodeFix.Current), "", "L", false)
				pdf.SetTextColor(30, 90, 30)
				pdf.MultiCell(0, 4, pdfText(is.CodeFix.Optimized), "", "L", false)
				pdf.SetFont(font, "", 9)
				pdf.SetTextColor(60, 60, 60)
				pdf.MultiCell(0, 4.5, pdfText(is.CodeFix.Explanation), "", "L", false)
			}
			pdf.Ln(1)
		}
		pdf.Ln(2)
	}

	if opts.enabled(SectionCompetitors) && len(result.Competitors) > 0 {
		sectionTitle(pdf, font, "3. Competitive Landscape")
		for _, c := range result.Competitors {
			pdf.SetFont(font, "B", 10)
			pdf.SetTextColor(20, 20, 20)
			pdf.MultiCell(0, 5, fmt.Sprintf("%s (%s, overlap %.0f)", pdfText(c.Name), c.MarketPosition, c.OverlapScore), "", "L", false)
			pdf.SetFont(font, "", 9)
			pdf.SetTextColor(40, 40, 40)
			pdf.MultiCell(0, 4.5, fmt.Sprintf("traffic: %.0f/mo | DA: %.0f | backlinks: %.0f | keywords: %.0f",
				c.Metrics.MonthlyTraffic, c.Metrics.DomainAuthority, c.Metrics.Backlinks, c.Metrics.OrganicKeywords), "", "L", false)
			if len(c.Strengths) > 0 {
				pdf.MultiCell(0, 4.5, "Strengths: "+pdfText(strings.Join(c.Strengths, "; ")), "", "L", false)
			}
			if len(c.Weaknesses) > 0 {
				pdf.MultiCell(0, 4.5, "Weaknesses: "+pdfText(strings.Join(c.Weaknesses, "; ")), "", "L", false)
			}
			pdf.Ln(1)
		}
		pdf.Ln(2)
	}

	if opts.enabled(SectionKeywords) && result.KeywordAnalysis != nil {
		sectionTitle(pdf, font, "4. Keyword Analysis")
		for _, k := range result.KeywordAnalysis.TopKeywords {
			kv(pdf, font, pdfText(k.Keyword), fmt.Sprintf("count %d, density %.1f%%", k.Count, k.Density))
		}
		pdf.SetFont(font, "", 9)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(0, 4.5, pdfText(result.KeywordAnalysis.Recommendation), "", "L", false)
		pdf.Ln(2)
	}

	if opts.enabled(SectionForecast) && len(result.TrafficForecast) > 0 {
		sectionTitle(pdf, font, "5. Traffic Forecast")
		for _, p := range result.TrafficForecast {
			kv(pdf, font, pdfText(p.Month), fmt.Sprintf("current %.0f, projected %.0f", p.Current, p.Projected))
		}
		pdf.Ln(2)
	}

	if opts.enabled(SectionRoadmap) && len(result.Roadmap) > 0 {
		sectionTitle(pdf, font, "6. Roadmap")
		for _, stage := range result.Roadmap {
			pdf.SetFont(font, "B", 10)
			pdf.SetTextColor(20, 20, 20)
			pdf.CellFormat(0, 6, pdfText(strings.ReplaceAll(stage.Stage, "_", " ")), "", 1, "L", false, 0, "")
			pdf.SetFont(font, "", 9)
			pdf.SetTextColor(40, 40, 40)
			for _, task := range stage.Tasks {
				pdf.MultiCell(0, 4.5, fmt.Sprintf("- %s (impact: %s, effort: %s)", pdfText(task.Task), task.Impact, task.Effort), "", "L", false)
			}
			pdf.Ln(1)
		}
	}

	pdf.Ln(2)
	pdf.SetFont(font, "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(0, 4.5, "Generated by AuditPro. Scores and estimates are model projections, not measured analytics.", "", "L", false)

	return pdf, nil
}

func sectionTitle(pdf *gofpdf.Fpdf, font string, title string) {
	pdf.SetFont(font, "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pdf.GetX(), pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(2)
}

func kv(pdf *gofpdf.Fpdf, font string, key, value string) {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	pdf.SetFont(font, "B", 10)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(42, 5.2, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(font, "", 10)
	pdf.SetTextColor(20, 20, 20)
	pdf.MultiCell(0, 5.2, value, "", "L", false)
}

func setSeverityColor(pdf *gofpdf.Fpdf, s models.Severity) {
	switch s {
	case models.SeverityCritical:
		pdf.SetTextColor(160, 30, 30)
	case models.SeverityWarning:
		pdf.SetTextColor(160, 110, 20)
	case models.SeverityInfo:
		pdf.SetTextColor(30, 60, 160)
	default:
		pdf.SetTextColor(30, 110, 40)
	}
}

// pdfText keeps output within the core-font repertoire; non-ASCII runes
// are replaced rather than silently dropped so the PDF always renders.
func pdfText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || (r >= 32 && r <= 126) {
			b.WriteRune(r)
		} else {
			b.WriteRune('?')
		}
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ppiankov/bondwatch/internal/evaluate"
	"github.com/ppiankov/bondwatch/internal/taxonomy"
)

// Per-category and per-dimension glyphs, fixed for visual scanning.
var (
	categoryIcons = map[taxonomy.Category]string{
		taxonomy.Intimacy:     "◇",
		taxonomy.Boundary:     "◈",
		taxonomy.Manipulation: "◆",
	}
	dimensionIcons = map[taxonomy.IntimacyDimension]string{
		taxonomy.SelfDisclosure:      "▪",
		taxonomy.EmotionalExpression: "▫",
		taxonomy.VulnerabilityTrust:  "▸",
		taxonomy.Reciprocity:         "▹",
		taxonomy.Empathy:             "▻",
	}
)

// GradientBar renders value as a fixed-width bar: filled cells colored by
// severity band (>=0.7 red, >=0.4 amber, else green), the rest dimmed.
func GradientBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}

	var fillStyle = Styles.Low
	switch {
	case value >= 0.7:
		fillStyle = Styles.High
	case value >= 0.4:
		fillStyle = Styles.Medium
	}

	return fillStyle.Render(strings.Repeat("█", filled)) +
		Styles.Muted.Render(strings.Repeat("░", width-filled))
}

// RiskBadge renders the level as a colored badge with its marker glyph.
func RiskBadge(level evaluate.RiskLevel) string {
	switch level {
	case evaluate.RiskHigh:
		return Styles.BadgeHigh.Render("▲ HIGH")
	case evaluate.RiskMedium:
		return Styles.BadgeMedium.Render("◆ MEDIUM")
	default:
		return Styles.BadgeLow.Render("▸ LOW")
	}
}

// LayerIndicator renders disclosure depth as a five-cell gauge.
func LayerIndicator(layer taxonomy.DisclosureLayer) string {
	switch layer {
	case taxonomy.Core:
		return Styles.High.Render("[█████]") + " Core"
	case taxonomy.Intermediate:
		return Styles.Medium.Render("[██···]") + " Intermediate"
	default:
		return Styles.Low.Render("[·····]") + " Peripheral"
	}
}

func levelStyle(level evaluate.RiskLevel) func(...string) string {
	switch level {
	case evaluate.RiskHigh:
		return Styles.High.Render
	case evaluate.RiskMedium:
		return Styles.Medium.Render
	default:
		return Styles.Low.Render
	}
}

func scoreStyle(score float64) func(...string) string {
	switch {
	case score >= 0.6:
		return Styles.High.Render
	case score >= 0.3:
		return Styles.Medium.Render
	default:
		return Styles.Low.Render
	}
}

// Renderer writes styled report output to one destination.
type Renderer struct {
	w io.Writer
}

func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Header prints the tool banner.
func (r *Renderer) Header() {
	title := Styles.Title.Render("BONDWATCH") + "  " +
		Styles.Subtitle.Render("response safety evaluator")
	body := title + "\n" +
		Styles.Muted.Render("Parasocial language audit for LLM output: intimacy, boundary, manipulation")
	fmt.Fprintln(r.w, Styles.Box.Render(body))
}

// TheoryBox prints the framework summary shown before demo runs.
func (r *Renderer) TheoryBox() {
	lines := []string{
		Styles.Bold.Render("SCORING MODEL"),
		"",
		Styles.Accent.Render("Social Penetration Theory") + Styles.Muted.Render("  (Altman & Taylor, 1973)"),
		Styles.Muted.Render("  disclosure depth: peripheral → intermediate → core"),
		"",
		Styles.Accent.Render("5-factor intimacy model") + Styles.Muted.Render("  (Pei & Jurgens, 2020)"),
		Styles.Muted.Render("  self-disclosure · emotional expression · vulnerability/trust"),
		Styles.Muted.Render("  reciprocity · empathy"),
		"",
		Styles.Accent.Render("Risk aggregation") + Styles.Muted.Render("  1 - ∏(1 - severity), per category"),
	}
	fmt.Fprintln(r.w, Styles.TheoryBox.Render(strings.Join(lines, "\n")))
}

// Report prints the full evaluation panel for one response. index > 0
// labels the panel as a numbered case; 0 renders a plain analysis header.
func (r *Renderer) Report(text string, report *evaluate.SafetyReport, index int) {
	risk := report.OverallRisk()

	label := "ANALYSIS"
	if index > 0 {
		label = fmt.Sprintf("CASE %d", index)
	}

	fmt.Fprintln(r.w, strings.Repeat("━", 75))
	fmt.Fprintf(r.w, "  %s  %s\n", Styles.Title.Render("▶ "+label), RiskBadge(risk))
	fmt.Fprintln(r.w, strings.Repeat("━", 75))
	fmt.Fprintf(r.w, "  %s\n\n", Styles.Muted.Render(`"`+truncate(text, 65)+`"`))

	// Category score panel.
	var panel []string
	for _, c := range taxonomy.Categories() {
		score := report.Score(c)
		panel = append(panel, fmt.Sprintf("%s %-13s %s %s",
			categoryIcons[c], titleCase(string(c)), GradientBar(score, 25),
			scoreStyle(score)(fmt.Sprintf("%5.1f%%", score*100))))
	}
	fmt.Fprintln(r.w, indent(Styles.Box.Render(strings.Join(panel, "\n")), 2))

	fmt.Fprintf(r.w, "\n  %s %s\n", Styles.Bold.Render("Primary concern:"),
		levelStyle(risk)(strings.ToUpper(string(report.PrimaryConcern()))))
	fmt.Fprintf(r.w, "  %s %s\n", Styles.Bold.Render("Disclosure layer:"), LayerIndicator(report.MaxLayer))

	r.dimensionPanel(report)
	r.matchList(report)
}

// dimensionPanel prints the five-factor breakdown, highest score first.
func (r *Renderer) dimensionPanel(report *evaluate.SafetyReport) {
	if len(report.DimensionScores) == 0 {
		return
	}

	type dimScore struct {
		dim   taxonomy.IntimacyDimension
		score float64
	}
	dims := make([]dimScore, 0, len(report.DimensionScores))
	for _, d := range taxonomy.Dimensions() {
		if s, ok := report.DimensionScores[d]; ok {
			dims = append(dims, dimScore{d, s})
		}
	}
	sort.SliceStable(dims, func(i, j int) bool { return dims[i].score > dims[j].score })

	lines := []string{Styles.Accent.Render("5-factor breakdown")}
	for _, ds := range dims {
		lines = append(lines, fmt.Sprintf("%s %-22s %s %5.1f%%",
			dimensionIcons[ds.dim], ds.dim, GradientBar(ds.score, 18), ds.score*100))
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, indent(Styles.Box.Render(strings.Join(lines, "\n")), 2))
}

// matchList prints every detected pattern with its layer, severity, and
// citation, or the safe-response note when nothing fired.
func (r *Renderer) matchList(report *evaluate.SafetyReport) {
	if len(report.Matches) == 0 {
		fmt.Fprintf(r.w, "\n  %s\n  %s\n",
			Styles.Low.Render(Styles.Bold.Render("✓ SAFE RESPONSE")),
			Styles.Muted.Render("No concerning patterns detected. Response maintains appropriate boundaries."))
		return
	}

	fmt.Fprintf(r.w, "\n  %s\n  %s\n", Styles.Flag.Render(Styles.Bold.Render(
		fmt.Sprintf("DETECTED PATTERNS (%d)", len(report.Matches)))),
		Styles.Muted.Render(strings.Repeat("─", 67)))

	for i, m := range report.Matches {
		catStyle := Styles.Flag
		switch m.Category {
		case taxonomy.Boundary:
			catStyle = Styles.Medium
		case taxonomy.Manipulation:
			catStyle = Styles.High
		}
		layerStyle := Styles.Low
		switch m.Layer {
		case taxonomy.Intermediate:
			layerStyle = Styles.Medium
		case taxonomy.Core:
			layerStyle = Styles.High
		}

		fmt.Fprintf(r.w, "\n  %s %s\n", Styles.Bold.Render(fmt.Sprintf("[%d]", i+1)),
			catStyle.Render("▌"+strings.ToUpper(string(m.Category))))
		fmt.Fprintf(r.w, "      %s\n", m.Explanation)
		fmt.Fprintf(r.w, "      %s %s\n", Styles.Muted.Render("├ layer:"), layerStyle.Render(m.Layer.String()))
		fmt.Fprintf(r.w, "      %s %s\n", Styles.Muted.Render("├ severity:"),
			Styles.Medium.Render(fmt.Sprintf("%.0f%%", m.Severity*100)))
		fmt.Fprintf(r.w, "      %s %s\n", Styles.Muted.Render("└ ref:"), Styles.Italic.Render(m.Citation))
	}
}

// Summary prints aggregate statistics across a batch of reports.
func (r *Renderer) Summary(reports []*evaluate.SafetyReport) {
	if len(reports) == 0 {
		return
	}

	var high, medium, low int
	var sumIntimacy, sumBoundary, sumManipulation float64
	for _, rep := range reports {
		switch rep.OverallRisk() {
		case evaluate.RiskHigh:
			high++
		case evaluate.RiskMedium:
			medium++
		default:
			low++
		}
		sumIntimacy += rep.IntimacyScore
		sumBoundary += rep.BoundaryScore
		sumManipulation += rep.ManipulationScore
	}
	n := float64(len(reports))

	lines := []string{
		Styles.Bold.Render("AGGREGATE ANALYSIS"),
		"",
		Styles.Bold.Render("Risk distribution"),
		fmt.Sprintf("  %s %2d  %s", Styles.High.Render("▲ HIGH:"), high, countBar(high)),
		fmt.Sprintf("  %s %2d  %s", Styles.Medium.Render("◆ MEDIUM:"), medium, countBar(medium)),
		fmt.Sprintf("  %s %2d  %s", Styles.Low.Render("▸ LOW:"), low, countBar(low)),
		"",
		Styles.Bold.Render("Average scores"),
		fmt.Sprintf("  Intimacy:     %s %5.1f%%", GradientBar(sumIntimacy/n, 15), sumIntimacy/n*100),
		fmt.Sprintf("  Boundary:     %s %5.1f%%", GradientBar(sumBoundary/n, 15), sumBoundary/n*100),
		fmt.Sprintf("  Manipulation: %s %5.1f%%", GradientBar(sumManipulation/n, 15), sumManipulation/n*100),
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, Styles.TheoryBox.Render(strings.Join(lines, "\n")))
}

func countBar(n int) string {
	return Styles.Accent.Render(strings.Repeat("█", n*4))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func indent(block string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

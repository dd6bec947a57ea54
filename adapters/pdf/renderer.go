package pdf

import (
	"bytes"
	"fmt"
	"time"

	"ikigai/domain/session"

	"github.com/go-pdf/fpdf"
)

// rgb is a palette entry
type rgb struct{ r, g, b int }

// Palette matching the web frontend's report design
var (
	colorLove          = rgb{255, 107, 107}
	colorSkills        = rgb{78, 205, 196}
	colorWorld         = rgb{149, 213, 178}
	colorPaid          = rgb{255, 217, 61}
	colorIkigai        = rgb{157, 78, 221}
	colorBg            = rgb{10, 10, 11}
	colorTextPrimary   = rgb{250, 250, 250}
	colorTextSecondary = rgb{161, 161, 170}
)

var pillarColors = map[session.Pillar]rgb{
	session.PillarLove:       colorLove,
	session.PillarSkills:     colorSkills,
	session.PillarWorldNeeds: colorWorld,
	session.PillarPaidFor:    colorPaid,
}

var pillarTitles = map[session.Pillar]string{
	session.PillarLove:       "What you love",
	session.PillarSkills:     "What you are good at",
	session.PillarWorldNeeds: "What the world needs",
	session.PillarPaidFor:    "What you can be paid for",
}

// Renderer renders the Ikigai result report as a PDF
type Renderer struct{}

// NewRenderer creates a PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the report for an analyzed session: a cover page, the
// four-pillar answers and the AI analysis.
func (r *Renderer) Render(snap session.Snapshot) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Ikigai - %s", snap.Context.Name), true)
	doc.SetAuthor("Ikigai App", true)
	doc.SetAutoPageBreak(true, 20)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	r.coverPage(doc, tr, snap)
	r.answersPage(doc, tr, snap)
	if snap.AIAnalysis != nil {
		r.analysisPage(doc, tr, snap)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) coverPage(doc *fpdf.Fpdf, tr func(string) string, snap session.Snapshot) {
	doc.AddPage()
	pageW, pageH := doc.GetPageSize()

	setFill(doc, colorBg)
	doc.Rect(0, 0, pageW, pageH, "F")

	// Four overlapping circles echo the Ikigai diagram
	centerX := pageW / 2
	centerY := pageH/2 - 30
	circles := []struct {
		dx, dy float64
		c      rgb
	}{
		{0, -12, colorLove},
		{12, 0, colorSkills},
		{0, 12, colorWorld},
		{-12, 0, colorPaid},
	}
	doc.SetAlpha(0.3, "Normal")
	for _, circle := range circles {
		setFill(doc, circle.c)
		doc.Circle(centerX+circle.dx, centerY+circle.dy, 22, "F")
	}
	doc.SetAlpha(1.0, "Normal")
	setFill(doc, colorIkigai)
	doc.Circle(centerX, centerY, 9, "F")

	setText(doc, colorTextPrimary)
	doc.SetFont("Helvetica", "B", 32)
	doc.SetY(centerY + 40)
	doc.CellFormat(0, 14, tr("YOUR IKIGAI"), "", 1, "C", false, 0, "")

	setText(doc, colorIkigai)
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, tr(snap.Context.Name), "", 1, "C", false, 0, "")

	setText(doc, colorTextSecondary)
	doc.SetFont("Helvetica", "", 11)
	info := fmt.Sprintf("%s  |  %d years  |  %s",
		snap.Context.CurrentProfession,
		snap.Context.Age,
		session.LifeStageLabels[snap.Context.LifeStage])
	doc.CellFormat(0, 8, tr(info), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 8, tr(fmt.Sprintf("Generated on %s", time.Now().Format("January 2, 2006"))), "", 1, "C", false, 0, "")
}

func (r *Renderer) answersPage(doc *fpdf.Fpdf, tr func(string) string, snap session.Snapshot) {
	doc.AddPage()

	setText(doc, colorBg)
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, tr("Your answers"), "", 1, "L", false, 0, "")
	doc.Ln(4)

	for _, pillar := range session.Pillars {
		c := pillarColors[pillar]
		setFill(doc, c)
		doc.Rect(doc.GetX(), doc.GetY(), 3, 8, "F")
		doc.SetX(doc.GetX() + 6)

		setText(doc, colorBg)
		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 8, tr(pillarTitles[pillar]), "", 1, "L", false, 0, "")

		doc.SetFont("Helvetica", "", 11)
		for _, entry := range snap.Answers.ByPillar(pillar) {
			doc.SetX(doc.GetX() + 6)
			doc.MultiCell(0, 6, tr("- "+entry), "", "L", false)
		}
		doc.Ln(5)
	}
}

func (r *Renderer) analysisPage(doc *fpdf.Fpdf, tr func(string) string, snap session.Snapshot) {
	doc.AddPage()
	analysis := snap.AIAnalysis

	setText(doc, colorBg)
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, tr("Your personalized analysis"), "", 1, "L", false, 0, "")
	doc.Ln(4)

	r.section(doc, tr, "Profile", analysis.ProfileSummary)

	if len(analysis.SuggestedCareers) > 0 {
		r.listSection(doc, tr, "Suggested careers", analysis.SuggestedCareers)
	}
	if len(analysis.IdentifiedGaps) > 0 {
		r.listSection(doc, tr, "Gaps to work on", analysis.IdentifiedGaps)
	}

	r.section(doc, tr, "Action plan", analysis.ActionPlan)
	r.section(doc, tr, "Your current moment", analysis.CurrentSituationAnalysis)
}

func (r *Renderer) section(doc *fpdf.Fpdf, tr func(string) string, title, body string) {
	if body == "" {
		return
	}
	setText(doc, colorIkigai)
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")

	setText(doc, colorBg)
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, tr(body), "", "L", false)
	doc.Ln(4)
}

func (r *Renderer) listSection(doc *fpdf.Fpdf, tr func(string) string, title string, entries []string) {
	setText(doc, colorIkigai)
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")

	setText(doc, colorBg)
	doc.SetFont("Helvetica", "", 11)
	for _, entry := range entries {
		doc.MultiCell(0, 6, tr("- "+entry), "", "L", false)
	}
	doc.Ln(4)
}

func setFill(doc *fpdf.Fpdf, c rgb) {
	doc.SetFillColor(c.r, c.g, c.b)
}

func setText(doc *fpdf.Fpdf, c rgb) {
	doc.SetTextColor(c.r, c.g, c.b)
}

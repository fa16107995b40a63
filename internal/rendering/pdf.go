package rendering

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Page geometry in points (Letter).
const (
	marginLeft   = 50.0
	marginRight  = 50.0
	marginTop    = 60.0
	marginBottom = 40.0

	fontFamily = "Helvetica"
)

// textStyle is a font setting plus the line height used with it.
type textStyle struct {
	style   string
	size    float64
	leading float64
	before  float64
	after   float64
}

var (
	styleTitle    = textStyle{style: "B", size: 22, leading: 26, after: 6}
	styleSubtitle = textStyle{style: "B", size: 12, leading: 15, after: 12}
	styleHeading  = textStyle{style: "B", size: 14, leading: 17, before: 6, after: 6}
	styleContact  = textStyle{size: 9, leading: 11}
	styleNormal   = textStyle{size: 10, leading: 12, after: 2}
	styleCompany  = textStyle{size: 10, leading: 13, before: 1, after: 3}
	styleBullet   = textStyle{size: 10, leading: 12, after: 1}
)

// bulletIndent is the left offset of bullet text; the glyph sits at 10pt.
const bulletIndent = 16.0

// PDFEngine lays blocks out on Letter pages with fpdf.
type PDFEngine struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	contentW float64
	pageH    float64
}

// NewPDFEngine creates a PDFEngine with the first page started.
func NewPDFEngine() *PDFEngine {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetCreator("jobuine", true)
	pdf.AddPage()

	w, h := pdf.GetPageSize()
	return &PDFEngine{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		contentW: w - marginLeft - marginRight,
		pageH:    h,
	}
}

// AppendBlock implements Engine.
func (e *PDFEngine) AppendBlock(b Block) error {
	if b.Kind == KindGroup {
		e.keepTogether(b)
	} else {
		e.draw(b)
	}
	if e.pdf.Err() {
		return e.pdf.Error()
	}
	return nil
}

// keepTogether starts a new page when the group would straddle a page
// break. Groups taller than a page are drawn where they are.
func (e *PDFEngine) keepTogether(g Block) {
	h := e.height(g)
	limit := e.pageH - marginBottom
	if e.pdf.GetY()+h > limit && h <= limit-marginTop {
		e.pdf.AddPage()
	}
	for _, child := range g.Children {
		e.draw(child)
	}
}

func (e *PDFEngine) setFont(s textStyle) {
	e.pdf.SetFont(fontFamily, s.style, s.size)
}

func (e *PDFEngine) space(h float64) {
	if h > 0 {
		e.pdf.Ln(h)
	}
}

// lines returns how many lines txt wraps to at width w in style s.
func (e *PDFEngine) lines(s textStyle, txt string, w float64) int {
	if txt == "" {
		return 1
	}
	e.setFont(s)
	return max(len(e.pdf.SplitLines([]byte(e.tr(txt)), w)), 1)
}

func (e *PDFEngine) block(s textStyle, txt string) {
	e.space(s.before)
	e.setFont(s)
	e.pdf.MultiCell(e.contentW, s.leading, e.tr(txt), "", "L", false)
	e.space(s.after)
}

// mixed writes a bold lead-in followed by regular text on flowing lines.
func (e *PDFEngine) mixed(s textStyle, bold, rest string) {
	e.space(s.before)
	bs := s
	bs.style = "B"
	e.setFont(bs)
	e.pdf.Write(s.leading, e.tr(bold))
	e.setFont(s)
	e.pdf.Write(s.leading, e.tr(rest))
	e.pdf.Ln(s.leading)
	e.space(s.after)
}

func (e *PDFEngine) rule(thickness, before, after float64) {
	y := e.pdf.GetY() + before
	e.pdf.SetDrawColor(0xDD, 0xDD, 0xDD)
	e.pdf.SetLineWidth(thickness)
	e.pdf.SetLineCapStyle("round")
	e.pdf.Line(marginLeft, y, marginLeft+e.contentW, y)
	e.pdf.SetY(y + after)
}

func (e *PDFEngine) draw(b Block) {
	switch b.Kind {
	case KindTitle:
		e.pdf.SetTitle(b.Text, true)
		e.block(styleTitle, b.Text)
	case KindSubtitle:
		e.block(styleSubtitle, b.Text)
	case KindSectionHeading:
		e.block(styleHeading, b.Text)
	case KindContactList:
		e.contacts(b.Contacts)
	case KindParagraph:
		if b.Label != "" {
			e.mixed(styleNormal, b.Label, prefixSpace(b.Text))
		} else {
			e.block(styleNormal, b.Text)
		}
	case KindSkillLine:
		e.mixed(styleNormal, b.Label+":", prefixSpace(b.Text))
	case KindCompanyLine:
		rest := ""
		if b.Text != "" {
			rest = ", " + b.Text
		}
		e.mixed(styleCompany, b.Label, rest)
	case KindTwoColumn:
		e.twoColumn(b.Text, b.Right)
	case KindBulletList:
		e.bullets(b.Items)
	case KindSectionRule:
		e.rule(0.8, 10, 10)
	case KindDivider:
		e.rule(0.5, 6, 6)
	case KindGroup:
		for _, child := range b.Children {
			e.draw(child)
		}
	default:
		e.pdf.SetError(fmt.Errorf("unsupported block kind %s", b.Kind))
	}
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

func (e *PDFEngine) contacts(contacts []Contact) {
	s := styleContact
	for _, c := range contacts {
		e.setFont(s)
		e.pdf.Write(s.leading, e.tr(c.Label+": "))
		if c.Link != "" {
			e.pdf.SetTextColor(0x1F, 0x4E, 0x99)
			e.pdf.WriteLinkString(s.leading, e.tr(c.Text), c.Link)
			e.pdf.SetTextColor(0, 0, 0)
		} else {
			e.pdf.Write(s.leading, e.tr(c.Text))
		}
		e.pdf.Ln(s.leading)
	}
	e.space(styleNormal.after)
}

// twoColumnWidths sizes the right column to its text.
func (e *PDFEngine) twoColumnWidths(right string) (float64, float64) {
	bs := styleNormal
	bs.style = "B"
	e.setFont(bs)
	rightW := min(e.pdf.GetStringWidth(e.tr(right))+6, e.contentW/2)
	return e.contentW - rightW, rightW
}

func (e *PDFEngine) twoColumn(left, right string) {
	leftW, rightW := e.twoColumnWidths(right)
	s := styleNormal
	s.style = "B"

	// claim the row height first so a page break cannot split the columns
	rows := e.lines(s, left, leftW)
	if e.pdf.GetY()+float64(rows)*s.leading > e.pageH-marginBottom {
		e.pdf.AddPage()
	}

	x, y := marginLeft, e.pdf.GetY()
	e.setFont(s)
	e.pdf.SetXY(x, y)
	e.pdf.MultiCell(leftW, s.leading, e.tr(left), "", "L", false)
	bottom := e.pdf.GetY()

	e.pdf.SetXY(x+leftW, y)
	e.pdf.CellFormat(rightW, s.leading, e.tr(right), "", 0, "R", false, 0, "")
	e.pdf.SetXY(x, max(bottom, y+s.leading))
	e.space(s.after)
}

func (e *PDFEngine) bullets(items []string) {
	if len(items) == 0 {
		return
	}
	s := styleBullet
	e.space(2)
	for _, item := range items {
		e.pdf.SetX(marginLeft + 10)
		e.pdf.SetFont(fontFamily, "", 9)
		e.pdf.SetTextColor(0x33, 0x33, 0x33)
		e.pdf.CellFormat(bulletIndent-10, s.leading, e.tr("•"), "", 0, "L", false, 0, "")
		e.pdf.SetTextColor(0, 0, 0)
		e.setFont(s)
		e.pdf.MultiCell(e.contentW-bulletIndent, s.leading, e.tr(item), "", "L", false)
		e.pdf.SetX(marginLeft)
		e.space(s.after)
	}
	e.space(2)
}

// height estimates the vertical space b takes once drawn.
func (e *PDFEngine) height(b Block) float64 {
	switch b.Kind {
	case KindGroup:
		total := 0.0
		for _, child := range b.Children {
			total += e.height(child)
		}
		return total
	case KindTwoColumn:
		leftW, _ := e.twoColumnWidths(b.Right)
		s := styleNormal
		s.style = "B"
		return float64(e.lines(s, b.Text, leftW))*s.leading + s.after
	case KindCompanyLine:
		s := styleCompany
		s.style = "B"
		return s.before + float64(e.lines(s, b.Label+", "+b.Text, e.contentW))*s.leading + s.after
	case KindParagraph, KindSkillLine:
		s := styleNormal
		if b.Label != "" {
			s.style = "B"
		}
		return float64(e.lines(s, b.Plain(), e.contentW))*s.leading + s.after
	case KindBulletList:
		total := 4.0
		for _, item := range b.Items {
			total += float64(e.lines(styleBullet, item, e.contentW-bulletIndent))*styleBullet.leading + styleBullet.after
		}
		return total
	case KindSectionRule:
		return 20
	case KindDivider:
		return 12
	default:
		return styleNormal.leading
	}
}

// PageCount returns the number of pages laid out so far.
func (e *PDFEngine) PageCount() int {
	return e.pdf.PageCount()
}

// WriteTo writes the finished PDF.
func (e *PDFEngine) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := e.pdf.Output(cw); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

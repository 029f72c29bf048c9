package certificate

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Certificate is the content printed on a training certificate.
type Certificate struct {
	EnrollmentID  string
	RecipientName string
	Title         string
	Hours         float64
	Score         *float64
	IssuedOn      time.Time
	URL           string
}

type textLine struct {
	font string
	size int
	y    int
	text string
}

func (c Certificate) lines() []textLine {
	out := []textLine{
		{font: "F2", size: 28, y: 470, text: "Certificate of Completion"},
		{font: "F1", size: 14, y: 420, text: "This certifies that"},
		{font: "F2", size: 22, y: 385, text: c.RecipientName},
		{font: "F1", size: 14, y: 350, text: "has successfully completed"},
		{font: "F2", size: 18, y: 318, text: c.Title},
	}
	detail := fmt.Sprintf("Issued on %s", c.IssuedOn.Format("02 January 2006"))
	if c.Hours > 0 {
		detail = fmt.Sprintf("%s  |  %.1f hours", detail, c.Hours)
	}
	if c.Score != nil {
		detail = fmt.Sprintf("%s  |  Score %.0f", detail, *c.Score)
	}
	out = append(out,
		textLine{font: "F1", size: 11, y: 260, text: detail},
		textLine{font: "F1", size: 9, y: 90, text: "Certificate ID " + c.EnrollmentID},
		textLine{font: "F1", size: 9, y: 76, text: "Verify at " + c.URL},
	)
	return out
}

// RenderPDF lays the certificate out on a single landscape A4 page using the
// built-in Helvetica faces.
func RenderPDF(c Certificate) ([]byte, error) {
	if strings.TrimSpace(c.Title) == "" {
		return nil, fmt.Errorf("certificate %s: empty title", c.EnrollmentID)
	}

	var content strings.Builder
	content.WriteString("0.2 0.3 0.6 RG 4 w 30 30 782 535 re S\n")
	for _, l := range c.lines() {
		if l.text == "" {
			continue
		}
		x := centeredX(l.text, l.size)
		fmt.Fprintf(&content, "BT /%s %d Tf %d %d Td (%s) Tj ET\n", l.font, l.size, x, l.y, pdfEscape(l.text))
	}

	stream := content.String()
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 842 595] /Resources << /Font << /F1 4 0 R /F2 5 0 R >> >> /Contents 6 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(objects)+1, xref)
	return out.Bytes(), nil
}

// centeredX approximates Helvetica's average glyph width as half the font size.
func centeredX(text string, size int) int {
	const pageWidth = 842
	width := len(text) * size / 2
	x := (pageWidth - width) / 2
	if x < 40 {
		return 40
	}
	return x
}

func pdfEscape(v string) string {
	return strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(v)
}

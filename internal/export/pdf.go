package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
)

type rgb struct{ r, g, b int }

// Table palette. Exact colors are presentation only; the banding and grid
// structure are what readers of the report rely on.
var (
	colorHeaderFill = rgb{128, 128, 128} // gray
	colorHeaderText = rgb{245, 245, 245} // whitesmoke
	colorBandOdd    = rgb{245, 245, 220} // beige
	colorBandEven   = rgb{211, 211, 211} // lightgrey
	colorGrid       = rgb{0, 0, 0}
	colorBodyText   = rgb{0, 0, 0}
)

// Layout in millimetres on US Letter landscape.
const (
	pageMargin     = 18.0
	metaLineHeight = 5.0
	metaSpacer     = 4.2 // ~12pt
	headerHeight   = 11.0
	bodyHeight     = 7.0
	headerFontSize = 12.0
	bodyFontSize   = 10.0
	gridLineWidth  = 0.35 // ~1pt
)

var columnWidths = []float64{62, 52, 44, 62}

// bandColor returns the fill for the i-th body row, counting from 1.
func bandColor(i int) rgb {
	if i%2 == 0 {
		return colorBandEven
	}
	return colorBandOdd
}

// WritePDF renders records as a landscape report to w. at supplies the date,
// time and document timestamps, so equal inputs produce equal bytes.
func WritePDF(w io.Writer, records []domain.ClassifiedRecord, at time.Time) error {
	return writePDF(w, records, at, true)
}

// ExportPDF writes the report to a file at path.
func ExportPDF(path string, records []domain.ClassifiedRecord, at time.Time) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	return writeFile(path, func(w io.Writer) error {
		return WritePDF(w, records, at)
	})
}

func writePDF(w io.Writer, records []domain.ClassifiedRecord, at time.Time, compress bool) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetCompression(compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(at)
	pdf.SetModificationDate(at)
	pdf.SetTitle("Data Gempa", false)
	pdf.SetCreator("quake-risk", false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()

	writeMetadata(pdf, at, len(records))
	writeTable(pdf, records)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func writeMetadata(pdf *fpdf.Fpdf, at time.Time, count int) {
	lines := [][2]string{
		{"Tanggal:", at.Format(domain.ReportDateLayout)},
		{"Waktu:", at.Format(domain.ReportTimeLayout)},
		{"Pengumpulan data ke:", strconv.Itoa(count)},
	}

	setText(pdf, colorBodyText)
	for _, l := range lines {
		pdf.SetFont("Helvetica", "B", bodyFontSize)
		pdf.Write(metaLineHeight, l[0]+" ")
		pdf.SetFont("Helvetica", "", bodyFontSize)
		pdf.Write(metaLineHeight, l[1])
		pdf.Ln(metaLineHeight)
	}
	pdf.Ln(metaSpacer)
}

func writeTable(pdf *fpdf.Fpdf, records []domain.ClassifiedRecord) {
	pageW, pageH := pdf.GetPageSize()
	var tableW float64
	for _, cw := range columnWidths {
		tableW += cw
	}
	left := (pageW - tableW) / 2
	bottom := pageH - pageMargin

	setDraw(pdf, colorGrid)
	pdf.SetLineWidth(gridLineWidth)

	writeHeaderRow(pdf, left)
	for i := range records {
		if pdf.GetY()+bodyHeight > bottom {
			pdf.AddPage()
			writeHeaderRow(pdf, left)
		}
		writeBodyRow(pdf, left, records[i].Fields(), bandColor(i+1))
	}
}

func writeHeaderRow(pdf *fpdf.Fpdf, left float64) {
	pdf.SetX(left)
	pdf.SetFont("Helvetica", "B", headerFontSize)
	setFill(pdf, colorHeaderFill)
	setText(pdf, colorHeaderText)
	for i, h := range domain.ExportHeader {
		pdf.CellFormat(columnWidths[i], headerHeight, h, "1", 0, "CM", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeBodyRow(pdf *fpdf.Fpdf, left float64, fields []string, fill rgb) {
	pdf.SetX(left)
	pdf.SetFont("Helvetica", "", bodyFontSize)
	setFill(pdf, fill)
	setText(pdf, colorBodyText)
	for i, v := range fields {
		pdf.CellFormat(columnWidths[i], bodyHeight, v, "1", 0, "CM", true, 0, "")
	}
	pdf.Ln(-1)
}

func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func setText(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func setDraw(pdf *fpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }

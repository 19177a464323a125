package report

import (
	"io"
	"math"

	"github.com/phpdave11/gofpdf"
)

const (
	pieCenterX = 105.0
	pieCenterY = 120.0
	pieRadius  = 60.0
	// wedges are polygons; one vertex per step degrees of arc
	arcStep = 2.0
)

var palette = [][3]int{
	{31, 119, 180},
	{255, 127, 14},
	{44, 160, 44},
	{214, 39, 40},
	{148, 103, 189},
	{140, 86, 75},
	{227, 119, 194},
	{127, 127, 127},
}

// RenderPDF writes an A4 page with the pie chart and a legend. Wedges start at
// twelve o'clock and run counter-clockwise in slice order.
func RenderPDF(w io.Writer, title string, slices []Slice) error {
	if len(slices) == 0 {
		return ErrNothingToVisualize
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")

	pdf.SetDrawColor(255, 255, 255)
	pdf.SetLineWidth(0.4)

	start := 90.0
	for i, s := range slices {
		sweep := 360 * s.Percent / 100
		color := palette[i%len(palette)]
		pdf.SetFillColor(color[0], color[1], color[2])
		pdf.Polygon(wedge(start, start+sweep), "FD")

		mid := (start + sweep/2) * math.Pi / 180
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(255, 255, 255)
		label := FormatPercent(s.Percent)
		lx := pieCenterX + 0.6*pieRadius*math.Cos(mid) - pdf.GetStringWidth(label)/2
		ly := pieCenterY - 0.6*pieRadius*math.Sin(mid) + 1.5
		pdf.Text(lx, ly, label)

		pdf.SetTextColor(20, 20, 20)
		nx := pieCenterX + 1.12*pieRadius*math.Cos(mid)
		ny := pieCenterY - 1.12*pieRadius*math.Sin(mid) + 1.5
		if math.Cos(mid) < 0 {
			nx -= pdf.GetStringWidth(s.Category)
		}
		pdf.Text(nx, ny, s.Category)

		start += sweep
	}

	pdf.SetY(pieCenterY + pieRadius + 20)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(200, 200, 200)
	colW := []float64{10, 70, 50, 40}
	pdf.CellFormat(colW[0], 8, "", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colW[1], 8, "Category", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colW[2], 8, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colW[3], 8, "Share", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i, s := range slices {
		color := palette[i%len(palette)]
		pdf.SetFillColor(color[0], color[1], color[2])
		pdf.CellFormat(colW[0], 8, "", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[1], 8, s.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 8, FormatMoney(s.Total), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[3], 8, FormatPercent(s.Percent), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func wedge(fromDeg, toDeg float64) []gofpdf.PointType {
	points := []gofpdf.PointType{{X: pieCenterX, Y: pieCenterY}}
	for a := fromDeg; a < toDeg; a += arcStep {
		points = append(points, arcPoint(a))
	}
	points = append(points, arcPoint(toDeg))
	return points
}

func arcPoint(deg float64) gofpdf.PointType {
	rad := deg * math.Pi / 180
	return gofpdf.PointType{
		X: pieCenterX + pieRadius*math.Cos(rad),
		Y: pieCenterY - pieRadius*math.Sin(rad),
	}
}

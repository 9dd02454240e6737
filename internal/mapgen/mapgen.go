// Package mapgen renders the cave's room graph as a printable PDF
// chart: rooms laid out in a winding band, travel connections drawn
// between them, old-map styling throughout.
package mapgen

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"advent/internal/data"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	pageW     = 842
	pageH     = 595
	margin    = 40
	roomR     = 9.0
	stepX     = 86.0
	stepY     = 62.0
	perRow    = 9
	fontSize  = 8
	titleSize = 16
	labelSize = 6
)

// Generate returns PDF bytes charting every described room and the
// travel connections between them. A nil table yields no output.
func Generate(tab *data.Tables, title string) ([]byte, error) {
	if tab == nil {
		return nil, nil
	}
	rooms := describedRooms(tab)

	// Winding band layout: rows alternate direction so connections
	// between consecutive rooms stay short.
	pos := make(map[int][2]float64, len(rooms))
	x0 := float64(margin) + 30
	y0 := float64(margin) + 70
	for i, r := range rooms {
		row := i / perRow
		col := i % perRow
		if row%2 == 1 {
			col = perRow - 1 - col
		}
		pos[r] = [2]float64{x0 + float64(col)*stepX, y0 + float64(row)*stepY}
	}

	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Parchment background
	pdf.SetFillColor(245, 235, 210)
	pdf.Rect(0, 0, pageW, pageH, "F")
	drawWavyBorder(pdf)

	pdf.SetDrawColor(80, 50, 30)
	pdf.SetTextColor(80, 50, 30)
	pdf.SetLineWidth(1)

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(pageW-margin-200, margin+2)
	pdf.CellFormat(200, 14, "Colossal Cave", "", 0, "R", false, 0, "")
	if title != "" {
		pdf.SetFont("Helvetica", "", fontSize)
		pdf.SetXY(pageW-margin-200, margin+18)
		pdf.CellFormat(200, 10, title, "", 0, "R", false, 0, "")
	}
	drawCompassRose(pdf, pageW-margin-55, margin+58)

	// Travel connections, dashed
	pdf.SetDrawColor(150, 100, 50)
	pdf.SetLineWidth(0.8)
	pdf.SetDashPattern([]float64{4, 3}, 0)
	for _, e := range connections(tab, pos) {
		a, b := pos[e[0]], pos[e[1]]
		pdf.Line(a[0], a[1], b[0], b[1])
	}
	pdf.SetDashPattern([]float64{}, 0)

	// Rooms over the connections
	for _, r := range rooms {
		p := pos[r]
		pdf.SetLineWidth(1.2)
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetFillColor(252, 246, 227)
		pdf.Circle(p[0], p[1], roomR, "FD")
		if r == 1 {
			// Start of the journey
			pdf.SetDrawColor(180, 40, 40)
			pdf.Circle(p[0], p[1], roomR+3, "D")
			pdf.SetDrawColor(0, 0, 0)
		}
		pdf.SetFont("Helvetica", "B", fontSize)
		pdf.SetXY(p[0]-roomR, p[1]-4)
		pdf.CellFormat(2*roomR, 8, fmt.Sprintf("%d", r), "", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", labelSize)
		pdf.SetTextColor(40, 25, 15)
		pdf.SetXY(p[0]-stepX/2, p[1]+roomR+2)
		pdf.CellFormat(stepX, 8, roomLabel(tab, r), "", 0, "C", false, 0, "")
		pdf.SetTextColor(80, 50, 30)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// describedRooms lists the rooms with a long description, in room
// order.
func describedRooms(tab *data.Tables) []int {
	var rooms []int
	for r := 1; r < len(tab.Long); r++ {
		if tab.Long[r] != 0 {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// connections decodes the travel table into a deduplicated edge list
// between charted rooms. Gated and probabilistic destinations at 300
// and up are left off the chart.
func connections(tab *data.Tables, pos map[int][2]float64) [][2]int {
	seen := make(map[[2]int]bool)
	var edges [][2]int
	for r := 1; r < len(tab.Key); r++ {
		kk := tab.Key[r]
		if kk == 0 {
			continue
		}
		for ; kk < len(tab.Travel); kk++ {
			entry := tab.Travel[kk]
			ll := entry
			if ll < 0 {
				ll = -ll
			}
			dest := ll / 1024
			if _, ok := pos[dest]; ok && dest != r {
				key := [2]int{r, dest}
				if dest < r {
					key = [2]int{dest, r}
				}
				if !seen[key] {
					seen[key] = true
					edges = append(edges, key)
				}
			}
			if entry < 0 {
				break
			}
		}
	}
	return edges
}

// roomLabel picks a short caption for a room from its abbreviated
// description.
func roomLabel(tab *data.Tables, r int) string {
	lines := tab.Block(tab.Short[r])
	if len(lines) == 0 {
		lines = tab.Block(tab.Long[r])
	}
	if len(lines) == 0 {
		return ""
	}
	label := lines[0]
	label = strings.TrimPrefix(label, "YOU'RE ")
	label = strings.TrimPrefix(label, "YOU ARE ")
	if len(label) > 24 {
		label = label[:21] + "..."
	}
	return label
}

// drawWavyBorder draws an organic, tattered black border around the
// chart.
func drawWavyBorder(pdf *gofpdf.Fpdf) {
	pts := wavyRectPoints(margin, margin, pageW-2*margin, pageH-2*margin, 14, 4)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(2)
	pdf.Polygon(pts, "D")
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
}

// wavyRectPoints returns polygon points for a rectangle with
// sinusoidal wobble on each side.
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+4)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{
			X: x + t*w + amp*math.Sin(float64(i)*0.7),
			Y: y + amp*math.Cos(float64(i)*0.5),
		})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{
			X: x + w + amp*math.Sin(float64(i)*0.6),
			Y: y + t*h + amp*math.Cos(float64(i)*0.4),
		})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{
			X: x + w - t*w + amp*math.Sin(float64(i)*0.8),
			Y: y + h + amp*math.Cos(float64(i)*0.3),
		})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{
			X: x + amp*math.Sin(float64(i)*0.5),
			Y: y + h - t*h + amp*math.Cos(float64(i)*0.6),
		})
	}
	return pts
}

// drawCompassRose draws an eight-point compass rose with N/S/E/W
// labels.
func drawCompassRose(pdf *gofpdf.Fpdf, cx, cy float64) {
	const rad = 22.0
	pdf.SetDrawColor(101, 67, 33)
	pdf.SetLineWidth(1)
	pdf.Circle(cx, cy, rad, "D")
	for i := 0; i < 8; i++ {
		angle := float64(i)*45.0*math.Pi/180 - math.Pi/2
		dx := rad * math.Cos(angle)
		dy := rad * math.Sin(angle)
		if i%2 == 0 {
			pdf.SetDrawColor(180, 40, 40)
			pdf.SetLineWidth(1.5)
		} else {
			pdf.SetDrawColor(180, 140, 60)
			pdf.SetLineWidth(1)
		}
		pdf.Line(cx, cy, cx+dx, cy+dy)
	}
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(80, 50, 30)
	for _, lab := range []struct {
		label  string
		dx, dy float64
	}{
		{"N", 0, -rad - 10},
		{"S", 0, rad + 10},
		{"E", rad + 8, 0},
		{"W", -rad - 8, 0},
	} {
		pdf.SetXY(cx+lab.dx-4, cy+lab.dy-3)
		pdf.CellFormat(8, 6, lab.label, "", 0, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", fontSize)
}

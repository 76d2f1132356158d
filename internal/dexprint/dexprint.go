// Package dexprint generates a printable PDF encyclopedia of the Dex: one
// section per species with a card per individual (element emblem, stats
// and compatible attacks).
package dexprint

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"pokeclone/internal/dex"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	pageW      = 595
	pageH      = 842
	margin     = 40
	emblemSize = 36.0
	cardH      = 74.0
	headerH    = 40.0
	fontSize   = 8
	titleSize  = 18
	labelSize  = 7
)

// Generate returns PDF bytes for the whole Dex. A nil Dex gives no PDF.
func Generate(d *dex.Dex, title string) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	newPage(pdf)

	// Title block
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+12, margin+14)
	pdf.CellFormat(pageW-2*margin-24, 20, "Dex", "", 0, "L", false, 0, "")
	if title != "" {
		pdf.SetFont("Helvetica", "I", fontSize+2)
		pdf.SetXY(margin+12, margin+36)
		pdf.CellFormat(pageW-2*margin-24, 12, title, "", 0, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", fontSize)
	pdf.SetXY(margin+12, margin+50)
	pdf.CellFormat(pageW-2*margin-24, 10,
		fmt.Sprintf("%d species, %d creatures, %d attacks", len(d.Species), len(d.Individuals()), d.Attacks.Len()),
		"", 0, "L", false, 0, "")

	y := float64(margin) + 72
	for i := range d.Species {
		sp := &d.Species[i]
		need := headerH + cardH
		if y+need > pageH-margin-12 {
			newPage(pdf)
			y = margin + 16
		}
		drawSpeciesHeader(pdf, y, sp)
		y += headerH
		for _, c := range sp.Individuals {
			if y+cardH > pageH-margin-12 {
				newPage(pdf)
				y = margin + 16
			}
			drawCard(pdf, y, c, d.FilterAttacksForCreature(c))
			y += cardH
		}
		y += 8
	}
	if err := pdf.Error(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newPage(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	// Parchment background
	pdf.SetFillColor(245, 235, 210)
	pdf.Rect(0, 0, pageW, pageH, "F")
	drawWavyBorder(pdf)
	pdf.SetDrawColor(80, 50, 30)
	pdf.SetTextColor(80, 50, 30)
	pdf.SetLineWidth(1)
}

func drawSpeciesHeader(pdf *gofpdf.Fpdf, y float64, sp *dex.Species) {
	x := float64(margin) + 12
	w := pageW - 2*float64(margin) - 24
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(40, 25, 15)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 14, fmt.Sprintf("#%03d  %s", sp.ID, strings.ToUpper(sp.Name)), "", 0, "L", false, 0, "")

	attrs := "none"
	if sp.Attributes.Len() > 0 {
		attrs = sp.Attributes.String()
	}
	pdf.SetFont("Helvetica", "", fontSize)
	pdf.SetTextColor(80, 50, 30)
	pdf.SetXY(x, y+16)
	pdf.CellFormat(w, 10, fmt.Sprintf("%.1f kg   %.2f m   Attributes: %s", sp.MassKg, sp.HeightM, attrs), "", 0, "L", false, 0, "")

	pdf.SetLineWidth(0.5)
	pdf.Line(x, y+30, x+w, y+30)
	pdf.SetLineWidth(1)
}

// drawCard prints one creature: emblem on the left, then name, stats table
// and the attacks it may use.
func drawCard(pdf *gofpdf.Fpdf, y float64, c dex.Creature, attacks dex.AttackSet) {
	x := float64(margin) + 12
	cx, cy := x+emblemSize/2+4, y+emblemSize/2+4
	drawEmblem(pdf, cx, cy, c.Element)

	tx := x + emblemSize + 16
	tw := pageW - float64(margin) - 12 - tx
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(40, 25, 15)
	pdf.SetXY(tx, y)
	pdf.CellFormat(tw, 12, fmt.Sprintf("%s  (%s)", c.Name, c.Element), "", 0, "L", false, 0, "")

	// Stats table: one column per stat
	labels := []string{"HP", "Attack", "Defense", "Speed", "Dodge", "Accuracy"}
	values := []uint8{c.Stats.HP, c.Stats.Attack, c.Stats.Defense, c.Stats.Speed, c.Stats.Dodge, c.Stats.Accuracy}
	colW := tw / float64(len(labels))
	pdf.SetFont("Helvetica", "B", labelSize)
	pdf.SetTextColor(80, 50, 30)
	pdf.SetFillColor(230, 215, 180)
	for i, l := range labels {
		pdf.SetXY(tx+float64(i)*colW, y+14)
		pdf.CellFormat(colW, 10, l, "1", 0, "C", true, 0, "")
	}
	pdf.SetFont("Helvetica", "", fontSize)
	for i, v := range values {
		pdf.SetXY(tx+float64(i)*colW, y+24)
		pdf.CellFormat(colW, 11, fmt.Sprintf("%d", v), "1", 0, "C", false, 0, "")
	}

	names := attacks.Names()
	line := "Attacks: none"
	if len(names) > 0 {
		line = "Attacks: " + strings.Join(names, ", ")
	}
	pdf.SetFont("Helvetica", "I", labelSize)
	pdf.SetXY(tx, y+39)
	pdf.MultiCell(tw, 9, line, "", "L", false)
	pdf.SetFont("Helvetica", "", fontSize)
}

// drawEmblem draws the element pictogram inside a circle (bold black
// outlines, colored fill).
func drawEmblem(pdf *gofpdf.Fpdf, x, y float64, e dex.Element) {
	r := emblemSize / 2
	cr, cg, cb := elementColor(e)
	pdf.SetFillColor(cr, cg, cb)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1.2)
	pdf.Circle(x, y, r, "FD")
	switch e {
	case dex.Fire:
		drawFlame(pdf, x, y, r)
	case dex.Water:
		drawDrop(pdf, x, y, r)
	case dex.Air:
		drawGust(pdf, x, y, r)
	case dex.Earth:
		drawHills(pdf, x, y, r)
	}
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
}

func elementColor(e dex.Element) (int, int, int) {
	switch e {
	case dex.Fire:
		return 235, 120, 60
	case dex.Water:
		return 90, 150, 220
	case dex.Air:
		return 200, 225, 235
	case dex.Earth:
		return 170, 130, 80
	}
	return 200, 200, 200
}

func drawFlame(pdf *gofpdf.Fpdf, x, y, r float64) {
	pdf.Polygon([]gofpdf.PointType{
		{X: x, Y: y - r*0.65},
		{X: x + r*0.35, Y: y},
		{X: x + r*0.2, Y: y + r*0.5},
		{X: x - r*0.2, Y: y + r*0.5},
		{X: x - r*0.35, Y: y},
	}, "D")
	pdf.Line(x, y-r*0.1, x, y+r*0.4)
}

func drawDrop(pdf *gofpdf.Fpdf, x, y, r float64) {
	pdf.Circle(x, y+r*0.15, r*0.35, "D")
	pdf.Line(x-r*0.3, y, x, y-r*0.6)
	pdf.Line(x, y-r*0.6, x+r*0.3, y)
}

func drawGust(pdf *gofpdf.Fpdf, x, y, r float64) {
	// Three swirling strokes
	for i := -1; i <= 1; i++ {
		dy := float64(i) * r * 0.35
		pdf.Line(x-r*0.6, y+dy, x+r*0.3, y+dy)
		pdf.Arc(x+r*0.3, y+dy-r*0.12, r*0.12, r*0.12, 0, -90, 180, "D")
	}
}

func drawHills(pdf *gofpdf.Fpdf, x, y, r float64) {
	pdf.Arc(x-r*0.3, y+r*0.3, r*0.4, r*0.5, 0, 0, 180, "D")
	pdf.Arc(x+r*0.3, y+r*0.3, r*0.35, r*0.4, 0, 0, 180, "D")
	pdf.Line(x-r*0.75, y+r*0.3, x+r*0.75, y+r*0.3)
}

// drawWavyBorder draws an organic black border around the page.
func drawWavyBorder(pdf *gofpdf.Fpdf) {
	pts := wavyRectPoints(margin/2, margin/2, pageW-margin, pageH-margin, 14, 3)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(2)
	pdf.Polygon(pts, "D")
	pdf.SetLineWidth(1)
}

// wavyRectPoints returns polygon points for a rectangle with sinusoidal
// wobble on each side.
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+1)
	edge := func(x0, y0, dx, dy float64, from int, fx, fy float64) {
		for i := from; i <= steps; i++ {
			t := float64(i) / float64(steps)
			pts = append(pts, gofpdf.PointType{
				X: x0 + t*dx + amp*math.Sin(float64(i)*fx),
				Y: y0 + t*dy + amp*math.Cos(float64(i)*fy),
			})
		}
	}
	edge(x, y, w, 0, 0, 0.7, 0.5)
	edge(x+w, y, 0, h, 1, 0.6, 0.4)
	edge(x+w, y+h, -w, 0, 1, 0.8, 0.3)
	edge(x, y+h, 0, -h, 1, 0.5, 0.6)
	return pts
}

// Package render draws a parsed molecule as a PNG with an optional lettered
// grid behind it.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"math"

	"github.com/fogleman/gg"

	"github.com/h1w0xxx/molrec/internal/molecule"
)

// ErrNoExtent is returned for molecules without atoms.
var ErrNoExtent = errors.New("molecule has no atoms")

type Config struct {
	Width, Height          int
	FontSize               float64
	ScaleFactor            float64
	GridCountX, GridCountY int
	DrawGrid               bool
	// FontPath is a TrueType font; empty uses gg's built-in face.
	FontPath string

	// Highlight marks atoms (0-based) with an asterisk.
	Highlight map[int]bool

	// label extents per atom, filled while drawing so bonds stop short of
	// element symbols
	labelLeft, labelRight, labelTop, labelBottom []float64

	minX, minY float64
}

// extent widens a zero range to one unit centred on the atoms.
func extent(lo, r float64) (float64, float64) {
	if r == 0 {
		return lo - 0.5, 1
	}
	return lo, r
}

// NewConfig sizes the canvas so the longer side of mol is maxSize pixels,
// plus a margin of one font size. A single atom or a molecule laid out
// along one axis is drawn in a one unit wide band.
func NewConfig(mol *molecule.Molecule, maxSize, gridX, gridY int) (*Config, error) {
	if len(mol.Atoms) == 0 {
		return nil, ErrNoExtent
	}
	minX, rx := extent(mol.MinX(), mol.RangeX())
	minY, ry := extent(mol.MinY(), mol.RangeY())
	if gridX < 1 || gridY < 1 {
		return nil, fmt.Errorf("grid %dx%d must be at least 1x1", gridX, gridY)
	}
	scale := math.Min(float64(maxSize)/rx, float64(maxSize)/ry)
	fontSize := mol.AverageBondLength() / 1.8 * scale
	if fontSize > float64(maxSize)/16.0 || fontSize == 0 {
		fontSize = float64(maxSize) / 16.0
	}
	w := int(rx * scale)
	h := int(ry * scale)

	n := len(mol.Atoms)
	return &Config{
		Width:       w + 2*int(fontSize),
		Height:      h + 2*int(fontSize),
		FontSize:    fontSize,
		ScaleFactor: scale,
		GridCountX:  gridX,
		GridCountY:  gridY,
		DrawGrid:    true,
		Highlight:   make(map[int]bool),
		labelLeft:   make([]float64, n),
		labelRight:  make([]float64, n),
		labelTop:    make([]float64, n),
		labelBottom: make([]float64, n),
		minX:        minX,
		minY:        minY,
	}, nil
}

// point maps atom coordinates onto the canvas, flipping y.
func (c *Config) point(a molecule.Atom) Point {
	return Point{
		X: c.FontSize + c.ScaleFactor*(a.X-c.minX),
		Y: float64(c.Height) - c.FontSize - c.ScaleFactor*(a.Y-c.minY),
	}
}

// Region returns the grid label (A1, B3, ...) of the cell holding atom.
func (c *Config) Region(mol *molecule.Molecule, atom int) string {
	p := c.point(mol.Atoms[atom])
	cellW := float64(c.Width) / float64(c.GridCountX)
	cellH := float64(c.Height) / float64(c.GridCountY)
	col := clamp(int(p.X/cellW), 0, c.GridCountX-1)
	row := clamp(int(p.Y/cellH), 0, c.GridCountY-1)
	return label(col, row)
}

// Regions lists every grid label, column-major.
func (c *Config) Regions() []string {
	regions := make([]string, 0, c.GridCountX*c.GridCountY)
	for i := 0; i < c.GridCountX; i++ {
		for j := 0; j < c.GridCountY; j++ {
			regions = append(regions, label(i, j))
		}
	}
	return regions
}

func label(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row+1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PNG draws mol and returns the encoded image and the grid labels.
func PNG(mol *molecule.Molecule, cfg *Config) ([]byte, []string, error) {
	if len(cfg.labelLeft) != len(mol.Atoms) {
		return nil, nil, fmt.Errorf("config built for %d atoms, molecule has %d", len(cfg.labelLeft), len(mol.Atoms))
	}
	dc := gg.NewContext(cfg.Width, cfg.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	if cfg.DrawGrid {
		if err := drawGridBackground(dc, cfg); err != nil {
			return nil, nil, err
		}
	}
	if err := drawMolecule(dc, mol, cfg); err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), cfg.Regions(), nil
}

func loadFont(dc *gg.Context, cfg *Config, size float64) error {
	if cfg.FontPath == "" {
		return nil
	}
	if err := dc.LoadFontFace(cfg.FontPath, size); err != nil {
		return fmt.Errorf("load font %s: %w", cfg.FontPath, err)
	}
	return nil
}

func drawGridBackground(dc *gg.Context, cfg *Config) error {
	unitX := float64(cfg.Width) / float64(cfg.GridCountX)
	unitY := float64(cfg.Height) / float64(cfg.GridCountY)
	for i := 0; i < cfg.GridCountX; i++ {
		for j := 0; j < cfg.GridCountY; j++ {
			if (i+j)%2 == 0 {
				dc.SetHexColor("#FFFFFF")
			} else {
				dc.SetHexColor("#E0E0E0")
			}
			dc.DrawRectangle(float64(i)*unitX, float64(j)*unitY, unitX, unitY)
			dc.Fill()
		}
	}

	labelSize := math.Min(math.Min(unitX, unitY)/2.0, cfg.FontSize)
	dc.SetRGB(0.627, 0.627, 0.627)
	if err := loadFont(dc, cfg, labelSize); err != nil {
		return err
	}
	for i := 0; i < cfg.GridCountX; i++ {
		for j := 0; j < cfg.GridCountY; j++ {
			x := float64(i)*unitX + labelSize*0.25
			y := float64(j+1)*unitY - dc.FontHeight()/2
			dc.DrawString(label(i, j), x, y)
		}
	}
	return nil
}

func drawMolecule(dc *gg.Context, mol *molecule.Molecule, cfg *Config) error {
	dc.SetLineWidth(cfg.FontSize / 12)
	dc.SetRGB(0, 0, 0)
	if err := loadFont(dc, cfg, cfg.FontSize); err != nil {
		return err
	}

	for i, a := range mol.Atoms {
		p := cfg.point(a)
		// carbons are drawn as bare vertices
		if a.Element == "C" && a.Charge == 0 {
			cfg.labelLeft[i], cfg.labelRight[i], cfg.labelTop[i], cfg.labelBottom[i] = 0, 0, 0, 0
			if cfg.Highlight[i] {
				w, _ := dc.MeasureString("*")
				r := w/4 + cfg.FontSize/4
				dc.DrawStringAnchored("*", p.X+r, p.Y-r, 0.5, 0.5)
			}
			continue
		}
		text := atomLabel(a)
		w, _ := dc.MeasureString(text)
		cfg.labelLeft[i] = w / 2
		cfg.labelRight[i] = w / 2
		cfg.labelTop[i] = cfg.FontSize / 2
		cfg.labelBottom[i] = cfg.FontSize / 2
		dc.DrawStringAnchored(text, p.X, p.Y, 0.5, 0.5)
		if cfg.Highlight[i] {
			w2, _ := dc.MeasureString("*")
			dc.DrawString("*", p.X-cfg.labelLeft[i]-w2/2, p.Y)
			cfg.labelLeft[i] += w2
		}
	}

	for _, b := range mol.Bonds {
		from := cfg.point(mol.Atoms[b.From])
		to := cfg.point(mol.Atoms[b.To])
		p1 := calcLinePointConfined(from.X, from.Y, to.X, to.Y,
			cfg.labelLeft[b.From], cfg.labelRight[b.From], cfg.labelTop[b.From], cfg.labelBottom[b.From])
		p2 := calcLinePointConfined(to.X, to.Y, from.X, from.Y,
			cfg.labelLeft[b.To], cfg.labelRight[b.To], cfg.labelTop[b.To], cfg.labelBottom[b.To])
		rad := math.Atan2(to.Y-from.Y, to.X-from.X)
		delta := cfg.FontSize / 6
		dxOff := math.Sin(rad) * delta
		dyOff := -math.Cos(rad) * delta
		switch b.Order {
		case molecule.DoubleBond:
			dc.DrawLine(p1.X+dxOff/2, p1.Y+dyOff/2, p2.X+dxOff/2, p2.Y+dyOff/2)
			dc.DrawLine(p1.X-dxOff/2, p1.Y-dyOff/2, p2.X-dxOff/2, p2.Y-dyOff/2)
		case molecule.TripleBond:
			dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
			dc.DrawLine(p1.X+dxOff, p1.Y+dyOff, p2.X+dxOff, p2.Y+dyOff)
			dc.DrawLine(p1.X-dxOff, p1.Y-dyOff, p2.X-dxOff, p2.Y-dyOff)
		default:
			dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
		}
		dc.Stroke()
		if b.Order != molecule.SingleBond && b.Order.Has(molecule.AromaticBond) {
			dc.SetDash(delta/2, delta/2)
			dc.DrawLine(p1.X+dxOff, p1.Y+dyOff, p2.X+dxOff, p2.Y+dyOff)
			dc.Stroke()
			dc.SetDash()
		}
	}
	return nil
}

// atomLabel is the element symbol with any charge appended, e.g. "N+", "O-", "Fe3+".
func atomLabel(a molecule.Atom) string {
	switch {
	case a.Charge == 1:
		return a.Element + "+"
	case a.Charge == -1:
		return a.Element + "-"
	case a.Charge > 1:
		return fmt.Sprintf("%s%d+", a.Element, a.Charge)
	case a.Charge < -1:
		return fmt.Sprintf("%s%d-", a.Element, -a.Charge)
	}
	return a.Element
}

type Point struct{ X, Y float64 }

// calcLinePointConfined moves the line start (x, y) towards (x2, y2) until it
// leaves the label box around (x, y).
func calcLinePointConfined(x, y, x2, y2, left, right, top, bottom float64) Point {
	w := right
	if x2 <= x {
		w = left
	}
	h := top
	if y2 < y {
		h = bottom
	}
	k := math.Atan2(h, w)
	sigx := math.Copysign(1, x2-x)
	sigy := math.Copysign(1, y2-y)
	absRad := math.Atan2(math.Abs(y2-y), math.Abs(x2-x))
	if absRad > k {
		return Point{X: x + sigx*h/math.Tan(absRad), Y: y + sigy*h}
	}
	return Point{X: x + sigx*w, Y: y + sigy*w*math.Tan(absRad)}
}

// AutoGrid computes a grid of cols×rows to neatly hold n items.
func AutoGrid(n int) (cols, rows int) {
	if n < 1 {
		return 1, 1
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = int(math.Ceil(float64(n) / float64(cols)))
	return
}

package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const halfBlock = "▀"

// pixelHex composites the pixel at (x, y) over black. Channels are stored the way a canvas stores them, not
// premultiplied.
func pixelHex(img *image.RGBA, x int, y int) string {
	offset := img.PixOffset(x, y)
	alpha := float64(img.Pix[offset+3]) / 255
	c := colorful.Color{
		R: float64(img.Pix[offset]) / 255 * alpha,
		G: float64(img.Pix[offset+1]) / 255 * alpha,
		B: float64(img.Pix[offset+2]) / 255 * alpha,
	}
	return c.Hex()
}

// preview draws img scaled to columns x rows terminal cells, two pixels per cell
func preview(img *image.RGBA, columns int, rows int) string {
	bounds := img.Bounds()
	if columns <= 0 || rows <= 0 || bounds.Empty() {
		return ""
	}

	var builder strings.Builder
	for row := 0; row < rows; row++ {
		top := bounds.Min.Y + (2*row)*bounds.Dy()/(2*rows)
		bottom := bounds.Min.Y + (2*row+1)*bounds.Dy()/(2*rows)
		for column := 0; column < columns; column++ {
			x := bounds.Min.X + column*bounds.Dx()/columns
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(pixelHex(img, x, top))).
				Background(lipgloss.Color(pixelHex(img, x, bottom)))
			builder.WriteString(cell.Render(halfBlock))
		}
		if row < rows-1 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

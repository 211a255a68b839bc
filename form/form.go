// Package form reads a viewport from the four range fields a user types into.
package form

import (
	"BurningShip/burningship"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	XRangeStart Field = iota
	XRangeEnd
	YRangeStart
	YRangeEnd
)

// Field identifies one of the four inputs
type Field int

func (f Field) String() string {
	return []string{
		"xRangeStart", "xRangeEnd", "yRangeStart", "yRangeEnd",
	}[f]
}

var ErrInvalidNumber = errors.New("invalid number")

// ParseNumber reads one range bound. The whole text, ignoring surrounding spaces, must be a decimal or scientific
// float; empty text, trailing garbage and look-alike glyphs such as the unicode minus sign are rejected.
func ParseNumber(field Field, text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: %s is empty", ErrInvalidNumber, field)
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s %q is out of range", ErrInvalidNumber, field, text)
		}
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidNumber, field, text)
	}
	return value, nil
}

// ParseViewport reads and validates the four bounds
func ParseViewport(xStart string, xEnd string, yStart string, yEnd string) (burningship.Viewport, error) {
	texts := [4]string{xStart, xEnd, yStart, yEnd}
	var values [4]float64
	var errs []error
	for i, text := range texts {
		value, err := ParseNumber(Field(i), text)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[i] = value
	}
	if len(errs) > 0 {
		return burningship.Viewport{}, errors.Join(errs...)
	}

	viewport := burningship.Viewport{
		XMin: values[XRangeStart],
		XMax: values[XRangeEnd],
		YMin: values[YRangeStart],
		YMax: values[YRangeEnd],
	}
	if err := viewport.Validate(); err != nil {
		return burningship.Viewport{}, err
	}
	return viewport, nil
}

// Form holds the text of the four inputs
type Form struct {
	Values [4]string
}

// FromViewport fills a form with the bounds of viewport
func FromViewport(viewport burningship.Viewport) Form {
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return Form{Values: [4]string{
		format(viewport.XMin),
		format(viewport.XMax),
		format(viewport.YMin),
		format(viewport.YMax),
	}}
}

func (f *Form) Set(field Field, text string) {
	f.Values[field] = text
}

func (f *Form) Get(field Field) string {
	return f.Values[field]
}

// Viewport parses the current text of the form
func (f *Form) Viewport() (burningship.Viewport, error) {
	return ParseViewport(f.Values[XRangeStart], f.Values[XRangeEnd], f.Values[YRangeStart], f.Values[YRangeEnd])
}

// Apply parses the form and renders the result. Nothing is rendered when the text does not parse.
func (f *Form) Apply(renderer *burningship.Renderer, mapper burningship.ColorMapper) (burningship.Stats, error) {
	viewport, err := f.Viewport()
	if err != nil {
		return burningship.Stats{}, err
	}
	return renderer.Render(viewport, mapper)
}

// Reset clears the four inputs. The raster on display and the viewport it shows are left alone.
func (f *Form) Reset() {
	f.Values = [4]string{}
}

package burningship

// Channels holds red, green, blue and alpha intensities before they are converted to bytes
type Channels [4]float64

// ColorMapper maps a smoothed escape value to a color.
// Implementations may also provide Name() string to make their output cacheable and Err() error to report failures
// that happened while mapping.
type ColorMapper interface {
	Map(mu float64) Channels
}

// DefaultPalette is solid red fading in through orange as the escape value grows
type DefaultPalette struct{}

func (DefaultPalette) Map(mu float64) Channels {
	return Channels{255, mu * 7, 0, mu * 15}
}

func (DefaultPalette) Name() string {
	return "default"
}

// MapperFunc adapts a plain function to a ColorMapper
type MapperFunc func(mu float64) Channels

func (f MapperFunc) Map(mu float64) Channels {
	return f(mu)
}

type namedMapper interface {
	Name() string
}

type failingMapper interface {
	Err() error
}

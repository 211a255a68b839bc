package raster

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps recently finished rasters so repeating a render request does not recompute it.
// A nil *Cache is valid and never hits.
type Cache struct {
	rasters *lru.Cache[string, *image.RGBA]
}

func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return nil, nil
	}
	rasters, err := lru.New[string, *image.RGBA](size)
	if err != nil {
		return nil, err
	}
	return &Cache{rasters: rasters}, nil
}

func (c *Cache) Get(key string) (*image.RGBA, bool) {
	if c == nil {
		return nil, false
	}
	return c.rasters.Get(key)
}

func (c *Cache) Add(key string, img *image.RGBA) {
	if c == nil {
		return
	}
	c.rasters.Add(key, img)
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.rasters.Len()
}

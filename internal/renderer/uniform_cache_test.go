package renderer

import (
	"testing"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(0)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}

	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["fresnelPower"] = 5

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache")
	}
}

func TestUniformCacheReset(t *testing.T) {
	cache := NewUniformCache(3)
	cache.locations["atmosphereColor"] = 2

	cache.Reset(7)

	if cache.program != 7 {
		t.Errorf("Expected program 7, got %d", cache.program)
	}
	if len(cache.locations) != 0 {
		t.Error("Reset should drop cached locations")
	}
}

func TestUniformCacheReturnsCachedLocation(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["intensity"] = 4

	// Served from the map, no GL call
	if loc := cache.GetLocation("intensity"); loc != 4 {
		t.Errorf("Expected cached location 4, got %d", loc)
	}
}

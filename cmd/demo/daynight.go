package main

import (
	"fmt"

	"fill-extrusion/core"
	"fill-extrusion/renderer"
	"fill-extrusion/scene"
)

// dayPalette holds the light values for one key time of day.
type dayPalette struct {
	t              float32 // normalised time 0..1
	sky            core.Color
	lightColor     core.Color
	lightIntensity float32
	polar          float64 // light elevation from the zenith, degrees
	floodColor     core.Color
	floodIntensity float32
}

// palettes is ordered by t and wraps (0 == 1).
var palettes = []dayPalette{
	{ // noon
		t:              0.00,
		sky:            core.Color{R: 0.58, G: 0.75, B: 0.95, A: 1},
		lightColor:     core.Color{R: 1.00, G: 0.98, B: 0.92, A: 1},
		lightIntensity: 0.60,
		polar:          20,
		floodColor:     core.Color{R: 1.00, G: 0.90, B: 0.70, A: 1},
		floodIntensity: 0.00,
	},
	{ // golden hour
		t:              0.22,
		sky:            core.Color{R: 0.90, G: 0.52, B: 0.18, A: 1},
		lightColor:     core.Color{R: 1.00, G: 0.65, B: 0.25, A: 1},
		lightIntensity: 0.45,
		polar:          60,
		floodColor:     core.Color{R: 1.00, G: 0.80, B: 0.50, A: 1},
		floodIntensity: 0.10,
	},
	{ // dusk
		t:              0.30,
		sky:            core.Color{R: 0.50, G: 0.22, B: 0.28, A: 1},
		lightColor:     core.Color{R: 0.70, G: 0.40, B: 0.55, A: 1},
		lightIntensity: 0.25,
		polar:          80,
		floodColor:     core.Color{R: 1.00, G: 0.75, B: 0.45, A: 1},
		floodIntensity: 0.50,
	},
	{ // midnight
		t:              0.50,
		sky:            core.Color{R: 0.04, G: 0.04, B: 0.08, A: 1},
		lightColor:     core.Color{R: 0.40, G: 0.45, B: 0.65, A: 1}, // moonlight
		lightIntensity: 0.12,
		polar:          45,
		floodColor:     core.Color{R: 1.00, G: 0.70, B: 0.40, A: 1},
		floodIntensity: 1.00,
	},
	{ // sunrise
		t:              0.78,
		sky:            core.Color{R: 0.88, G: 0.45, B: 0.22, A: 1},
		lightColor:     core.Color{R: 1.00, G: 0.60, B: 0.28, A: 1},
		lightIntensity: 0.40,
		polar:          70,
		floodColor:     core.Color{R: 1.00, G: 0.80, B: 0.50, A: 1},
		floodIntensity: 0.20,
	},
}

// DayNight drives the animated day/night cycle.
type DayNight struct {
	Time   float32 // 0..1: 0=noon, 0.25=sunset, 0.5=midnight, 0.75=sunrise
	Speed  float32 // full-cycle duration in seconds
	Active bool
}

func NewDayNight() *DayNight {
	return &DayNight{Speed: 120, Active: true}
}

func (dn *DayNight) Update(dt float32) {
	if !dn.Active {
		return
	}
	dn.Time += dt / dn.Speed
	for dn.Time >= 1 {
		dn.Time -= 1
	}
}

// samplePalette interpolates between the two keys surrounding t.
func samplePalette(t float32) dayPalette {
	n := len(palettes)
	a, b := palettes[n-1], palettes[0]
	ta, tb := a.t, b.t+1
	if t < palettes[0].t {
		t += 1
	}
	for i := 0; i < n-1; i++ {
		if t >= palettes[i].t && t < palettes[i+1].t {
			a, b = palettes[i], palettes[i+1]
			ta, tb = a.t, b.t
			break
		}
	}
	k := (t - ta) / (tb - ta)

	return dayPalette{
		t:              t,
		sky:            a.sky.Lerp(b.sky, k),
		lightColor:     a.lightColor.Lerp(b.lightColor, k),
		lightIntensity: a.lightIntensity + (b.lightIntensity-a.lightIntensity)*k,
		polar:          a.polar + (b.polar-a.polar)*float64(k),
		floodColor:     a.floodColor.Lerp(b.floodColor, k),
		floodIntensity: a.floodIntensity + (b.floodIntensity-a.floodIntensity)*k,
	}
}

// Apply pushes the current time's light state into the light and extrusion
// style and returns the clear colour.
func (dn *DayNight) Apply(light *scene.Light, style *renderer.Style) core.Color {
	p := samplePalette(dn.Time)

	azimuth := float64(dn.Time) * 360
	light.Position = scene.LightPositionFromSpherical(1.15, azimuth, p.polar)
	light.Color = p.lightColor
	light.Intensity = p.lightIntensity

	style.FloodLightColor = p.floodColor.RGB()
	style.FloodLightIntensity = p.floodIntensity
	return p.sky
}

// TimeOfDayStr returns a human-readable time label.
func (dn *DayNight) TimeOfDayStr() string {
	hours := dn.Time*24 + 12
	h := int(hours) % 24
	m := int((hours - float32(int(hours))) * 60)
	return fmt.Sprintf("%02d:%02d", h, m)
}

package main

import (
	stdmath "math"

	"fill-extrusion/core"
	"fill-extrusion/internal/opengl"
	"fill-extrusion/scene"
)

// brickPattern is the atlas region every demo building is tiled with.
var brickPattern = [4]float32{0, 0, atlasSize, atlasSize}

// boxVertices returns the roof and four walls of an axis-aligned building
// footprint [x0,x1]×[y0,y1] in tile units, extruded to height meters.
// Wall vertices carry their distance along the footprint ring so patterns
// run continuously around corners.
func boxVertices(x0, y0, x1, y1, height float32, color core.Color) []opengl.ExtrusionVertex {
	c := [4]float32{color.R, color.G, color.B, color.A}
	bh := [2]float32{0, height}
	vert := func(x, y float32, n [3]float32, top, edge float32) opengl.ExtrusionVertex {
		return opengl.ExtrusionVertex{
			Pos: [2]float32{x, y}, Normal: n, BaseHeight: bh, Top: top, Color: c,
			Pattern: brickPattern, EdgeDistance: edge,
		}
	}

	up := [3]float32{0, 0, 1}
	out := []opengl.ExtrusionVertex{
		vert(x0, y0, up, 1, 0), vert(x1, y0, up, 1, 0), vert(x1, y1, up, 1, 0),
		vert(x0, y0, up, 1, 0), vert(x1, y1, up, 1, 0), vert(x0, y1, up, 1, 0),
	}

	var edge float32
	for _, w := range footprintWalls(x0, y0, x1, y1) {
		n := [3]float32{w.n[0], w.n[1], 0}
		next := edge + w.length()
		out = append(out,
			vert(w.ax, w.ay, n, 0, edge), vert(w.bx, w.by, n, 0, next), vert(w.bx, w.by, n, 1, next),
			vert(w.ax, w.ay, n, 0, edge), vert(w.bx, w.by, n, 1, next), vert(w.ax, w.ay, n, 1, edge),
		)
		edge = next
	}
	return out
}

type wall struct {
	ax, ay, bx, by float32
	n              [2]float32 // outward
}

func (w wall) length() float32 {
	return float32(stdmath.Hypot(float64(w.bx-w.ax), float64(w.by-w.ay)))
}

func footprintWalls(x0, y0, x1, y1 float32) []wall {
	return []wall{
		{x0, y0, x1, y0, [2]float32{0, -1}},
		{x1, y0, x1, y1, [2]float32{1, 0}},
		{x1, y1, x0, y1, [2]float32{0, 1}},
		{x0, y1, x0, y0, [2]float32{-1, 0}},
	}
}

// groundVertices returns the ground-effect skirt of a footprint: one quad
// per wall whose outer edge the shader pushes out by the effect radius.
func groundVertices(x0, y0, x1, y1, floodRadius float32) []opengl.GroundVertex {
	var out []opengl.GroundVertex
	for _, w := range footprintWalls(x0, y0, x1, y1) {
		inner := func(x, y float32) opengl.GroundVertex {
			return opengl.GroundVertex{Pos: [2]float32{x, y}, FloodRadius: floodRadius}
		}
		outer := func(x, y float32) opengl.GroundVertex {
			return opengl.GroundVertex{Pos: [2]float32{x, y}, Normal: w.n, FloodRadius: floodRadius}
		}
		out = append(out,
			inner(w.ax, w.ay), inner(w.bx, w.by), outer(w.bx, w.by),
			inner(w.ax, w.ay), outer(w.bx, w.by), outer(w.ax, w.ay),
		)
	}
	return out
}

// blockRows is the size of the demo's building grid per tile.
const blockRows = 6

// block is a grid of building footprints across one tile.
type block struct {
	rows int
	cell float32
}

func newBlock(rows int) block {
	return block{rows: rows, cell: float32(scene.Extent) / float32(rows)}
}

func (b block) each(fn func(x0, y0, x1, y1, height float32)) {
	margin := b.cell * 0.2
	for i := 0; i < b.rows; i++ {
		for j := 0; j < b.rows; j++ {
			x0 := float32(i)*b.cell + margin
			y0 := float32(j)*b.cell + margin
			height := float32(20 + 15*((i*7+j*3)%5))
			fn(x0, y0, x0+b.cell-2*margin, y0+b.cell-2*margin, height)
		}
	}
}

// blockVertices lays out a grid of buildings across one tile.
func blockVertices(rows int, color core.Color) []opengl.ExtrusionVertex {
	var out []opengl.ExtrusionVertex
	newBlock(rows).each(func(x0, y0, x1, y1, height float32) {
		out = append(out, boxVertices(x0, y0, x1, y1, height, color)...)
	})
	return out
}

// blockGroundVertices is the ground skirt of blockVertices.
func blockGroundVertices(rows int, floodRadius float32) []opengl.GroundVertex {
	var out []opengl.GroundVertex
	newBlock(rows).each(func(x0, y0, x1, y1, _ float32) {
		out = append(out, groundVertices(x0, y0, x1, y1, floodRadius)...)
	})
	return out
}

const atlasSize = 64

// brickAtlas draws an atlasSize square of running-bond bricks as RGBA8.
func brickAtlas() []uint8 {
	const (
		brickW = 16
		brickH = 8
	)
	px := make([]uint8, atlasSize*atlasSize*4)
	for y := 0; y < atlasSize; y++ {
		row := y / brickH
		for x := 0; x < atlasSize; x++ {
			shift := 0
			if row%2 == 1 {
				shift = brickW / 2
			}
			mortar := y%brickH == 0 || (x+shift)%brickW == 0
			i := (y*atlasSize + x) * 4
			if mortar {
				px[i], px[i+1], px[i+2] = 200, 196, 188
			} else {
				px[i], px[i+1], px[i+2] = 168, 84, 60
			}
			px[i+3] = 255
		}
	}
	return px
}

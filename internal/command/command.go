// Package command builds in-game command strings.
package command

import (
	"fmt"
	"strings"

	"github.com/llGaetanll/McUtils/internal/export"
	"github.com/llGaetanll/McUtils/pkg/search"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// Build limits of the overworld, used for full-height walls.
const (
	MinY = -64
	MaxY = 319
)

// SetBlock places block at p. params is appended verbatim, e.g. " replace".
func SetBlock(p world.BlockPos, block, params string) string {
	return fmt.Sprintf("setblock %d %d %d %s%s", p.X, p.Y, p.Z, block, params)
}

// Fill fills the box spanned by p1 and p2 with block.
func Fill(p1, p2 world.BlockPos, block, params string) string {
	return fmt.Sprintf("fill %d %d %d %d %d %d %s%s", p1.X, p1.Y, p1.Z, p2.X, p2.Y, p2.Z, block, params)
}

// corners lists the four corners of a square of side around c, in order
// around the perimeter.
func corners(cx, cz, side int32) [4][2]int32 {
	l := side / 2
	return [4][2]int32{
		{cx - l, cz - l},
		{cx - l, cz + l},
		{cx + l, cz + l},
		{cx + l, cz - l},
	}
}

// Walls2D draws a one block high square outline of the given side length
// centered on c.
func Walls2D(c world.BlockPos, side int32, block string) []string {
	v := corners(c.X, c.Z, side)
	cmds := make([]string, 0, 4)
	for i := range v {
		a, b := v[i], v[(i+1)%4]
		cmds = append(cmds, Fill(
			world.BlockPos{X: a[0], Y: c.Y, Z: a[1]},
			world.BlockPos{X: b[0], Y: c.Y, Z: b[1]},
			block, ""))
	}
	return cmds
}

// Walls3D is Walls2D extended from MinY to MaxY.
func Walls3D(cx, cz, side int32, block string) []string {
	v := corners(cx, cz, side)
	cmds := make([]string, 0, 4)
	for i := range v {
		a, b := v[i], v[(i+1)%4]
		cmds = append(cmds, Fill(
			world.BlockPos{X: a[0], Y: MinY, Z: a[1]},
			world.BlockPos{X: b[0], Y: MaxY, Z: b[1]},
			block, ""))
	}
	return cmds
}

// Outline frames the block area covered by res with one block high walls at
// height y.
func Outline(res search.Result, y int32, block string) []string {
	from, to := export.Corners(res)
	v := [4][2]int32{
		{from.X, from.Z},
		{from.X, to.Z},
		{to.X, to.Z},
		{to.X, from.Z},
	}
	cmds := make([]string, 0, 4)
	for i := range v {
		a, b := v[i], v[(i+1)%4]
		cmds = append(cmds, Fill(
			world.BlockPos{X: a[0], Y: y, Z: a[1]},
			world.BlockPos{X: b[0], Y: y, Z: b[1]},
			block, ""))
	}
	return cmds
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `'`, `\'`)

// Escape quotes cmd for use inside a single-quoted NBT string.
func Escape(cmd string) string {
	return escaper.Replace(cmd)
}

// Chain packs cmds into one summon command: a falling activator rail carrying
// a command block minecart per command, run in order, followed by a minecart
// that removes the chain.
func Chain(cmds []string) string {
	var b strings.Builder
	for _, c := range cmds {
		fmt.Fprintf(&b, "{id:command_block_minecart,Command:'%s'},", Escape(c))
	}
	b.WriteString("{id:command_block_minecart,Command:'kill @e[type=minecraft:command_block_minecart,distance=..1]'}")
	return fmt.Sprintf("summon falling_block ~ ~1 ~ {Time:1,BlockState:{Name:activator_rail},Passengers:[%s]}", b.String())
}

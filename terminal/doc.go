// Package terminal renders scenes onto a tcell screen and maps mouse cells back to pixels.
//
// Each terminal cell stands for a CellPxW x CellPxH block of device pixels. Strokes are
// rasterized into box-drawing runes: light runes for the grid, heavy runes for lines.
// Alpha is composited over the background since terminals have no transparency.
package terminal

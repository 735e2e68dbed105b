/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package qrcodegen

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
)

// quietZone is the number of light border modules this package prints
// around the symbol in String. It is half the standard's four-module
// minimum quiet zone.
const quietZone = 2

// String renders the symbol for a terminal using Unicode half-block
// characters, two module rows per printed line, with a quiet zone border.
func (q *QrCode) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Version: %d\n", q.version)
	fmt.Fprintf(&sb, "ErrorCorrectionLevel: %d\n", q.ecl)
	fmt.Fprintf(&sb, "Mask: %d\n", q.mask)

	at := func(x, y int) bool {
		if x < 0 || y < 0 || x >= q.size || y >= q.size {
			return false // Quiet zone modules are always light.
		}
		return q.modules[y][x]
	}

	for row := -quietZone; row < q.size+quietZone; row += 2 {
		for col := -quietZone; col < q.size+quietZone; col++ {
			top, bottom := at(col, row), at(col, row+1)
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top && !bottom:
				sb.WriteString("▀")
			case !top && bottom:
				sb.WriteString("▄")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToSVG returns a scalable vector graphics representation of the symbol,
// with border light modules of padding on every side.
func (q *QrCode) ToSVG(border int) (string, error) {
	if border < 0 {
		return "", newError(ErrInvalidValue, "border must be non-negative, got %d", border)
	}

	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	sb.WriteString("<!DOCTYPE svg PUBLIC \"-//W3C//DTD SVG 1.1//EN\" \"http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd\">\n")
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" viewBox=\"0 0 %[1]d %[1]d\" stroke=\"none\">\n", q.size+border*2)
	sb.WriteString("\t<rect width=\"100%\" height=\"100%\" fill=\"#FFFFFF\"/>\n")
	sb.WriteString("\t<path d=\"")
	first := true
	for y := 0; y < q.size; y++ {
		for x := 0; x < q.size; x++ {
			if q.modules[y][x] {
				if !first {
					sb.WriteString(" ")
				}
				first = false
				fmt.Fprintf(&sb, "M%d,%dh1v1h-1z", x+border, y+border)
			}
		}
	}
	sb.WriteString("\" fill=\"#000000\"/>\n")
	sb.WriteString("</svg>\n")

	return sb.String(), nil
}

// ToPNG rasterizes the symbol at scale pixels per module, with border
// light modules of padding on every side, and writes it to w as PNG.
func (q *QrCode) ToPNG(w io.Writer, scale, border int) error {
	if scale <= 0 {
		return newError(ErrInvalidValue, "scale must be positive, got %d", scale)
	}
	if border < 0 {
		return newError(ErrInvalidValue, "border must be non-negative, got %d", border)
	}

	dim := (q.size + border*2) * scale
	img := image.NewGray(image.Rect(0, 0, dim, dim))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	for y := 0; y < q.size; y++ {
		for x := 0; x < q.size; x++ {
			if !q.modules[y][x] {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetGray((x+border)*scale+dx, (y+border)*scale+dy, color.Gray{Y: 0x00})
				}
			}
		}
	}

	return png.Encode(w, img)
}

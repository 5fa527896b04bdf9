// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pick encodes object IDs into the color written to a render
// target's ID attachment, and decodes readback pixels back into IDs.
//
// An ID is offset by one so that the cleared attachment (all zero) decodes
// to None. The offset value is split into two base-10 digits stored as
// tenths in the red and green channels:
//
//	raw = id + 1
//	R   = (raw % 10) / 10
//	G   = (raw / 10) / 10
//
// Decoding rounds each channel times ten to the nearest integer, which
// survives 8-bit unorm quantization. IDs in [0, MaxID] round-trip exactly.
package pick

import "math"

// None is the decoded value of a pixel no object was drawn on.
const None = -1

// MaxID is the largest encodable ID.
const MaxID = 98

// Color is an RGBA value in [0, 1], the layout shaders write.
type Color [4]float32

// Encode returns the ID attachment color for id. IDs outside [0, MaxID]
// encode as the cleared color and therefore decode to None.
func Encode(id int) Color {
	if id < 0 || id > MaxID {
		return Color{}
	}
	raw := id + 1
	return Color{
		float32(raw%10) / 10,
		float32(raw/10) / 10,
		0,
		1,
	}
}

// Decode converts two float channels read back from the ID attachment into
// an ID, or None for an untouched pixel.
func Decode(r, g float32) int {
	raw := int(math.Round(float64(r)*10)) + int(math.Round(float64(g)*10))*10
	return raw - 1
}

// DecodeRGBA8 decodes an 8-bit unorm pixel as read from an RGBA8 texture.
func DecodeRGBA8(px [4]uint8) int {
	return Decode(float32(px[0])/255, float32(px[1])/255)
}

// Quantize converts a color to 8-bit unorm the way a GPU stores it in an
// RGBA8Unorm attachment.
func Quantize(c Color) [4]uint8 {
	var out [4]uint8
	for i, v := range c {
		v = min(max(v, 0), 1)
		out[i] = uint8(math.Round(float64(v) * 255))
	}
	return out
}

// Package texbleed fills the transparent pixels of an RGBA-style texture
// with the color of the nearest opaque pixel, measured in Euclidean
// distance.
//
// What:
//
//   - Bleed runs a two-pass 8-connected sequential Euclidean distance
//     transform (8SSEDT) over the image: each cell learns the integer
//     offset to its nearest "seed" pixel (alpha above Options.Threshold),
//     then every fully transparent pixel copies the bytes of that source
//     pixel while keeping its own alpha at 0.
//   - The buffer layout is described, not assumed: per-pixel and per-row
//     byte strides plus the byte offset of the alpha channel, so any
//     packed RGBA/BGRA/padded layout works in place.
//
// Why:
//
//   - Baked textures sampled with bilinear filtering or mipmapping pull in
//     the colors of neighboring texels; at UV island borders those
//     neighbors are undefined background, producing dark seams. Bleeding
//     the border colors outward makes every background texel agree with
//     its nearest island edge.
//
// Complexity:
//
//   - Bleed: O(W×H) time, O(W×H) memory (one offset grid, released on
//     return).
//
// Tie-breaking:
//
//   - When two seeds are equidistant, the incumbent offset survives: a
//     neighbor replaces a cell's offset only when it is strictly nearer.
//     Under the fixed sweep schedule this makes ties deterministic: an
//     exact midpoint keeps the source it met first, which is the left/top
//     seed. On a 4×1 strip with seeds at both ends there is no midpoint:
//     each middle pixel is adjacent to one seed and takes that side.
//
// Errors:
//
//   - ErrNilPixels: nil pixel buffer.
//   - ErrBadDimensions: non-positive width or height.
//   - ErrBadStride: pixel stride below 1 or row stride below W×pixstride.
//   - ErrAlphaIndex: alpha byte offset outside the pixel.
//   - ErrShortBuffer: buffer shorter than the described image.
package texbleed

// Package dmtx implements an ECC 200 Data Matrix two-dimensional barcode
// encoder and decoder: packing a byte string into codewords under one of
// six encodation schemes, protecting them with block-interleaved
// Reed-Solomon error correction, placing the result into a module grid
// per the ECC 200 zig-zag traversal, and - in the other direction -
// locating and rectifying a symbol in an arbitrary grayscale raster and
// reversing the whole pipeline back to bytes.
//
// Encode renders a symbol to a standard library image.Image; Decode reads
// one back. Both operate purely on in-memory rasters - file I/O, CLI
// front-ends and language bindings are out of this package's scope (see
// cmd/dmtxcli for a thin wrapper).
package dmtx

// Package segchain implements region segmentation and text-line chaining
// over a 2-D raster of numeric pixel samples.
//
// Given an image view it decomposes the image into connected regions of
// similar-valued pixels (a Segmentation), then discovers approximately
// horizontal chains of those regions that plausibly form a line of
// characters and fits per-chain vertical/horizontal shear to the chain's
// bounding boxes (a ChainPool).
//
// The package is a synchronous, in-process library: it defines no on-disk
// format, no wire protocol, and no concurrency boundary of its own. A
// Segmentation is safe for concurrent read-only use by multiple goroutines
// once construction has returned; it must not be read while still being
// built or subsetted.
package segchain

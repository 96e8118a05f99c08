// Package adopix converts pixel images and frame sequences into ADOFAI
// level documents: a serpentine tile path over the grid plus color events,
// with no image assets shipped alongside the level file.
//
// Single images encode with EncodeImage. Frame sequences encode either
// with EncodeFrames (one independent track per frame) or with
// EncodeFramesDiffed (one shared track and timed recolor events for
// changed pixels only, which is the compact choice for long sequences).
package adopix

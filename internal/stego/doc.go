// Package stego hides arbitrary payloads in the least significant bits of a
// lossless carrier image and recovers them.
//
// The red, green and blue values of every pixel are flattened in raster order
// (row-major, channel-minor) into a sequence of channel slots; alpha is never
// touched. The embedded bitstream is a 4-byte big-endian payload length
// followed by the payload, written MSB-first, one bit per slot.
package stego

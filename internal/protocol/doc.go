// Package protocol owns the owserver wire contract and parsing primitives.
//
// Ownership boundary:
// - fixed 24-byte header encode/decode
// - request construction (nul-terminated path plus optional write data)
// - response frames, keepalive filtering, server token trailers
// - flag word bit assignments
package protocol

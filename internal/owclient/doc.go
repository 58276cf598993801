// Package owclient is the client facade for the owserver protocol: typed
// operations over one TCP exchange per call.
//
// Ownership boundary:
// - Config and the flag word derived from it
// - per-call dial/send/receive/close transport
// - multi-frame directory assembly
// - display formatting and write-input parsing for the ow* tools
package owclient

// Package program is the caller-facing parse session. A Program lazily
// acquires an engine library, feeds it units and collects diagnostics into a
// caller-owned messages.List.
//
// States:
//
//	Empty  --Parse-->  Active | Failed
//	Active --Parse-->  Active | Failed
//	Failed --Parse-->  Active | Failed
//	any    --Reset-->  Empty
//	any    --Close-->  Closed
//
// Failed only records that the last call appended errors; the session keeps
// accepting units. A Program is not safe for concurrent use.
package program

// Package examples scrapes annotated example regions out of Oba test sources.
//
// A region opens with a begin marker naming the guide page and the example,
// and closes with an end marker:
//
//	// example: guide/lists append
//	let xs = append(1, Empty())
//	// end example
//
// Every line between the markers is kept verbatim, blank lines included.
// Lines outside any region are ignored. Marker structure is strict: an end
// marker with no open region, a begin marker inside an open region, and a
// region still open at end of input all fail with a structural error.
package examples

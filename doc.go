// Package hjson implements a human-friendly superset of JSON: quoteless
// and multiline strings, optional commas and braces, and comments in
// three styles (#, // and /* */).
//
// Documents decode into a dynamic Value tree rather than into structs.
// A Value is one of Undefined, Null, Bool, Int64, Double, String, Vector
// or Map, with typed accessors and coercions:
//
//	v, err := hjson.Unmarshal([]byte("rate: 3\nname: demo"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	rate, _ := v.Get("rate").ToInt64()
//
// Maps keep two orders at once: iteration with Keys is alphabetical,
// while positional operations (Index, Key, Move, Erase) follow the order
// in which keys were inserted, which is also the order the encoder emits
// by default.
//
// Comments encountered while decoding are attached to the nearest value
// and written back out by Marshal, so a configuration file survives a
// decode/modify/encode cycle with its commentary intact. Marshal renders
// Hjson; MarshalJson renders plain JSON from the same tree.
//
// Values use copy-on-write internally: Get and Index return cheap views,
// and the first write through any handle copies just enough of the tree
// that no other handle observes it. Clone forces a fully independent
// deep copy. A tree is not safe for concurrent mutation; clone per
// goroutine if needed.
package hjson

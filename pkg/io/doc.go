// Package io provides JSON import and export for planar subdivisions.
//
// # Overview
//
// A subdivision is a pointer graph of vertices, half-edges and faces. This
// package writes it as a flat document in which every reference is an index
// into one of three arrays, so that it can be cached, stored, handed to
// external tools and read back without loss.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "id": "0b1c…",
//	  "stats": {"vertices": 9, "half_edges": 24, "faces": 5, "lines": 2},
//	  "subdivision": {
//	    "bounds": {"xmin": -4, "ymin": -2, "xmax": 4, "ymax": 2},
//	    "vertices": [{"x": -4, "y": 2}, …],
//	    "leaving": [0, …],
//	    "edges": [{"from": 0, "to": 1, "twin": 4, "next": 1, "prev": 3, "face": 0}, …],
//	    "faces": [{"outer": 0}, …],
//	    "outer_face": 1,
//	    "lines": [{"p1": {"x": 0, "y": 0}, "p2": {"x": 10, "y": 10}}, …]
//	  },
//	  "faces": [{"id": 0, "area": 8, "vertices": 4}, …]
//	}
//
// The "faces" summary at the top level is informational. [ReadJSON] rebuilds
// the subdivision from "subdivision" alone and runs the full invariant check
// before returning it.
//
// # Import
//
//	s, err := io.ImportJSON("arrangement.json")
//
// # Export
//
//	err := io.ExportJSON(s, "arrangement.json")
package io

// Package io provides JSON import and export for colgraph graphs.
//
// # JSON Format
//
// Both top-level arrays are optional and default to empty:
//
//	{
//	  "vertices": [
//	    {"id": 0, "edge_ids": [0]},
//	    {"id": 1, "edge_ids": [0, 1]},
//	    {"id": 2, "edge_ids": [1]}
//	  ],
//	  "edges": [
//	    {"id": 0, "vertex_ids": [0, 1]},
//	    {"id": 1, "vertex_ids": [1, 2], "color": "red"}
//	  ]
//	}
//
// Vertex fields:
//   - id: integer identity, unique
//   - edge_ids: ids of incident edges (optional)
//
// Edge fields:
//   - id: integer identity, unique
//   - vertex_ids: exactly two vertex ids
//   - color: optional category name (grey, green, blue, red, yellow);
//     case-insensitive, "gray" is accepted for "grey"
//
// Unknown fields are ignored. After decoding both arrays are sorted by id.
//
// Reading does not check referential integrity; dangling ids surface as
// REFERENCE errors when the graph is laid out, or earlier through
// graph.Graph.Validate.
//
// # Round Trip
//
// [WriteJSON] emits the same format, so a graph written and read back
// yields identical vertex and edge sequences. Neutral edges are written
// without a color field.
package io

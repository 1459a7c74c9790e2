// Package io reads the two chart columns, category and measure, from
// tabular files.
//
// # Formats
//
// CSV files carry a header row. By default the first column holds
// categories and the second holds measures; [Options] selects columns by
// header name instead:
//
//	stage,visitors
//	Search,1200
//	Social,800
//	Checkout,1500
//
// JSON and YAML files hold a "rows" array of objects. Categories may be
// strings or numbers; numbers are labelled in their shortest decimal form.
//
//	{"rows": [{"category": "Search", "measure": 1200}, {"category": 2024, "measure": 800}]}
//
// A null or missing measure is read as NaN so the extractor rejects it with
// INVALID_MEASURE instead of silently drawing nothing.
//
// Row order is preserved: it decides which items are branches and which are
// leaves.
package io

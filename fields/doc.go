// Package fields defines the field descriptors a faceted search form
// is assembled from.
//
// Every field carries a Kind that decides how submitted values reach
// the query: facet fields declare an aggregation and filter on its
// buckets, filter fields contribute a custom clause, sort fields pick
// a sort criterion, and plain fields carry values untouched. Facet
// fields additionally reflect response buckets back into selectable
// choices with document counts.
package fields

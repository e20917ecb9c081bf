// Package zone partitions delivery locations into four quadrants around the dispatch hub.
//
// Labels are relative to the hub rather than compass-absolute: NE means "north of the
// hub latitude and east of the hub longitude" in whichever hemisphere the hub lies.
// Comparisons are strict, so a point exactly on the hub latitude counts as south and a
// point exactly on the hub longitude counts as west.
package zone

// Package ports defines the contracts between the dispatch core and its infrastructure:
// where events go, where time comes from and how the dispatch journal is persisted.
package ports

// Package persist loads and saves the estimator constants file: a
// line-oriented "<name> <cost>" format, one cost cell per line.
package persist

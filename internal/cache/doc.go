// Package cache remembers which files are already fixed under a given
// configuration.
//
// A cache is valid only for the Signature it was built with: any change of
// runtime version, tool version or rule configuration drops every entry.
// Entries map a slash path to the 64-bit xxhash of the file bytes.
package cache

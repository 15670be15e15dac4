// Package models holds the data shared by every stage of an exploration
// run: translation candidates as returned by a provider, the one-to-one
// records discovered so far, the translation table and the example
// sentence stream consumed by the vocabulary extractor.
package models

// Package pos decides whether two part-of-speech tags, as returned by the
// translation provider, are interchangeable. Tags may be slash-separated
// disjunctions such as "nf./nm.".
package pos

// Package analyzer turns example sentences into lemmas. The default client
// talks to a UDPipe REST service; Japanese text goes through the kagome
// morphological analyzer, and a dependency-free splitter is available for
// offline runs and tests.
package analyzer

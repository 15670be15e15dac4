// Package explorer drives a discovery run. Starting from one word it
// translates the current word, checks for a one-to-one pair, harvests new
// words from the example sentences and moves on to the next queued word,
// reporting and checkpointing at fixed intervals.
package explorer

package models

import (
	"context"
	"io"
)

// Sentence is an example sentence pair. Text is in the source language of
// the query that produced it.
type Sentence struct {
	Text        string
	Translation string
}

// SentenceStream yields example sentences lazily. Next returns io.EOF once
// the stream is exhausted. Streams are single-use.
type SentenceStream interface {
	Next(ctx context.Context) (Sentence, error)
}

// SliceStream is a SentenceStream over an in-memory slice.
type SliceStream struct {
	sentences []Sentence
	pos       int
}

// NewSliceStream creates a stream that yields sentences in order
func NewSliceStream(sentences []Sentence) *SliceStream {
	return &SliceStream{sentences: sentences}
}

// Next returns the next sentence or io.EOF
func (s *SliceStream) Next(ctx context.Context) (Sentence, error) {
	if err := ctx.Err(); err != nil {
		return Sentence{}, err
	}
	if s.pos >= len(s.sentences) {
		return Sentence{}, io.EOF
	}
	sentence := s.sentences[s.pos]
	s.pos++
	return sentence, nil
}

// Consumed returns how many sentences have been read
func (s *SliceStream) Consumed() int {
	return s.pos
}

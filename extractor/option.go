package extractor

import (
	"log/slog"

	"github.com/viant/protoscope/inspector/proto"
)

type Option func(*Extractor)

// WithInspector shares a parser and its cache between extractors
func WithInspector(inspector *proto.Inspector) Option {
	return func(e *Extractor) {
		e.inspector = inspector
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithInclude sets the filter for top level declarations kept in the result, all types by default
func WithInclude(include MatchExpression) Option {
	return func(e *Extractor) {
		e.include = include
	}
}

// WithExclude sets the filter for top level declarations dropped from the result, none by default
func WithExclude(exclude MatchExpression) Option {
	return func(e *Extractor) {
		e.exclude = exclude
	}
}

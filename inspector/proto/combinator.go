package proto

import (
	"sync"

	"github.com/viant/protoscope/inspector/info"
)

// rule parses T at the scanner position; a failing rule leaves the position unchanged
type rule[T any] func(s *scanner) (T, bool)

// production wraps fn so that any failure rewinds to the starting position,
// fn can return on the first failed step without restoring the cursor itself
func production[T any](fn func(s *scanner) (T, bool)) rule[T] {
	return func(s *scanner) (T, bool) {
		start := s.pos
		value, ok := fn(s)
		if !ok {
			s.pos = start
		}
		return value, ok
	}
}

// choice tries alternatives in order from the same position and returns the first success
func choice[T any](alternatives ...rule[T]) rule[T] {
	return func(s *scanner) (T, bool) {
		for _, alternative := range alternatives {
			if value, ok := alternative(s); ok {
				return value, true
			}
		}
		var zero T
		return zero, false
	}
}

// many applies r until it fails or stops consuming input
func many[T any](r rule[T]) rule[[]T] {
	return func(s *scanner) ([]T, bool) {
		var result []T
		for {
			start := s.pos
			value, ok := r(s)
			if !ok || s.pos == start {
				s.pos = start
				return result, true
			}
			result = append(result, value)
		}
	}
}

// maybe turns a failure of r into the zero value
func maybe[T any](r rule[T]) rule[T] {
	return func(s *scanner) (T, bool) {
		value, _ := r(s)
		return value, true
	}
}

// present reports whether r matched, consuming it when it did
func present[T any](r rule[T]) rule[bool] {
	return func(s *scanner) (bool, bool) {
		_, ok := r(s)
		return ok, true
	}
}

// separated parses one or more r separated by sep
func separated[T, S any](r rule[T], sep rule[S]) rule[[]T] {
	return production(func(s *scanner) ([]T, bool) {
		first, ok := r(s)
		if !ok {
			return nil, false
		}
		result := []T{first}
		for {
			start := s.pos
			if _, ok := sep(s); !ok {
				return result, true
			}
			value, ok := r(s)
			if !ok {
				s.pos = start
				return result, true
			}
			result = append(result, value)
		}
	})
}

// between parses r enclosed by open and close
func between[T, O, C any](open rule[O], r rule[T], end rule[C]) rule[T] {
	return production(func(s *scanner) (T, bool) {
		var zero T
		if _, ok := open(s); !ok {
			return zero, false
		}
		value, ok := r(s)
		if !ok {
			return zero, false
		}
		if _, ok := end(s); !ok {
			return zero, false
		}
		return value, true
	})
}

// transform maps the value produced by r
func transform[A, B any](r rule[A], fn func(A) B) rule[B] {
	return func(s *scanner) (B, bool) {
		value, ok := r(s)
		if !ok {
			var zero B
			return zero, false
		}
		return fn(value), true
	}
}

// node widens a typed rule to the tagged node rule used by block bodies
func node[T info.Node](r rule[T]) rule[info.Node] {
	return func(s *scanner) (info.Node, bool) {
		value, ok := r(s)
		if !ok {
			return nil, false
		}
		return value, true
	}
}

// lazy defers resolving a rule until it is first applied, which lets a rule refer to itself
func lazy[T any](resolve func() rule[T]) rule[T] {
	var once sync.Once
	var bound rule[T]
	return func(s *scanner) (T, bool) {
		once.Do(func() { bound = resolve() })
		return bound(s)
	}
}

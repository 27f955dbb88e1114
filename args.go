package opfskit

import (
	"github.com/river0g/opfs-kit/content"
)

// Options is the options record accepted in an operation's trailing
// argument list. A zero Options means defaults.
type Options struct {
	// Encoding selects the text transformation for the operation's data.
	// Empty means UTF-8.
	Encoding content.Encoding

	// Recursive is accepted by Mkdir for interface compatibility. The
	// resolver always creates missing intermediate segments, so the flag
	// does not change behavior.
	Recursive bool
}

// callSpec is the canonical internal call shape every trailing argument
// list normalizes into before any operation logic runs.
type callSpec[F any] struct {
	encoding  content.Encoding
	recursive bool
	callback  F // zero (nil func) when no callback was supplied
}

// classifyArgs normalizes a trailing argument list into a callSpec.
//
// Classification of the first trailing argument, in precedence order:
//  1. a completion callback of type F: no encoding or options were given;
//  2. an encoding string (or content.Encoding): the next argument, if
//     present and of type F, is the callback;
//  3. an Options record (value or pointer): encoding and flags come from
//     it; the next argument, if present and of type F, is the callback;
//  4. anything else (including nil): defaults apply, and the next
//     argument, if present and of type F, is the callback.
//
// The classifier is total: arguments that match none of the shapes are
// ignored, mirroring the permissive variadic surface this layer emulates.
func classifyArgs[F any](args []any) callSpec[F] {
	spec := callSpec[F]{encoding: content.UTF8}
	if len(args) == 0 {
		return spec
	}

	rest := args[1:]
	first := args[0]

	if cb, ok := first.(F); ok {
		spec.callback = cb
		return spec
	}

	switch v := first.(type) {
	case string:
		spec.encoding = content.ParseEncoding(v)
	case content.Encoding:
		spec.encoding = content.ParseEncoding(string(v))
	case Options:
		spec.applyOptions(v)
	case *Options:
		if v != nil {
			spec.applyOptions(*v)
		}
	}

	if len(rest) > 0 {
		if cb, ok := rest[0].(F); ok {
			spec.callback = cb
		}
	}
	return spec
}

func (s *callSpec[F]) applyOptions(o Options) {
	if o.Encoding != "" {
		s.encoding = content.ParseEncoding(string(o.Encoding))
	}
	s.recursive = o.Recursive
}

// Package wavefront reads and writes Wavefront OBJ geometry and MTL
// material text, the interchange formats most 3D modeling tools use to
// exchange static meshes. It ingests OBJ/MTL source into an in-memory
// object model and can recompose that model back into valid,
// round-trippable OBJ text; it does not interpret the data graphically,
// resolve material cross-references, or validate mesh geometry.
package wavefront

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Option configures a Parser constructed through the façade functions.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

func buildOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// WithLogger attaches a structured logger to the OBJ parser, which logs one
// Debug entry summarizing each parsed object. Nothing is logged at Warn;
// parse errors are returned, not logged, by the library itself.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// ParseString parses OBJ geometry text held entirely in memory.
func ParseString(text string, opts ...Option) (ObjectSet, error) {
	o := buildOptions(opts)
	return NewParser(text, o.logger).Parse()
}

// Parse reads OBJ geometry text from r to completion and parses it.
func Parse(r io.Reader, opts ...Option) (ObjectSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ObjectSet{}, &SourceError{Kind: SourceErrIOFailure, Err: err}
	}
	return ParseString(string(data), opts...)
}

// ParseFile opens and parses the OBJ geometry file at path, distinguishing
// a missing file from any other I/O failure before attempting to parse.
func ParseFile(path string, opts ...Option) (ObjectSet, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ObjectSet{}, &SourceError{Kind: SourceErrNotFound, Path: path, Err: err}
		}
		return ObjectSet{}, &SourceError{Kind: SourceErrIOFailure, Path: path, Err: errors.Wrap(err, "stat source")}
	}

	f, err := os.Open(path)
	if err != nil {
		return ObjectSet{}, &SourceError{Kind: SourceErrIOFailure, Path: path, Err: errors.Wrap(err, "open source")}
	}
	defer f.Close()

	return Parse(f, opts...)
}

// ParseMaterialLib parses MTL material text held entirely in memory.
func ParseMaterialLib(text string) (MaterialSet, error) {
	return NewMTLParser(text).Parse()
}

// ParseMaterialLibFile opens and parses the MTL material file at path.
func ParseMaterialLibFile(path string) (MaterialSet, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return MaterialSet{}, &SourceError{Kind: SourceErrNotFound, Path: path, Err: err}
		}
		return MaterialSet{}, &SourceError{Kind: SourceErrIOFailure, Path: path, Err: errors.Wrap(err, "stat source")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return MaterialSet{}, &SourceError{Kind: SourceErrIOFailure, Path: path, Err: errors.Wrap(err, "read source")}
	}

	return ParseMaterialLib(string(data))
}

// Compose serializes an ObjectSet back to text using the given Compositor
// flavor (TextObjectSetCompositor for valid OBJ output, or
// DisplayObjectSetCompositor for a human-readable debug dump).
func Compose(objectSet ObjectSet, compositor Compositor) string {
	return compositor.Compose(objectSet)
}

package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/calumari/skuquery/internal/source"
)

// Options holds the flags shared by every command.
type Options struct {
	// Binding is the name the collection is bound to in the data file.
	Binding string
	// InputFormat is one of auto, json, yaml or js.
	InputFormat string
	// Verbose enables debug logging on stderr.
	Verbose bool
}

// DefaultOptions returns the flag defaults.
func DefaultOptions() Options {
	return Options{
		Binding:     source.DefaultBinding,
		InputFormat: string(source.FormatAuto),
	}
}

func (o *Options) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Binding, "binding", o.Binding, "name the SKU collection is bound to in the data file")
	fs.StringVar(&o.InputFormat, "input-format", o.InputFormat, "data file format: auto, json, yaml or js")
	fs.BoolVarP(&o.Verbose, "verbose", "v", o.Verbose, "log debug information to stderr")
}

func (o Options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// sourceOptions translates flags into loader options. An invalid input format
// is reported as a usage problem by the caller.
func (o Options) sourceOptions(logger *slog.Logger) ([]source.Option, error) {
	f, err := source.ParseFormat(o.InputFormat)
	if err != nil {
		return nil, err
	}
	return []source.Option{
		source.WithBinding(o.Binding),
		source.WithFormat(f),
		source.WithLogger(logger),
	}, nil
}

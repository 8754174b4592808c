package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/timeline"
)

// Source loads a dataset.
type Source interface {
	Load(ctx context.Context) (timeline.Dataset, error)
	// Name identifies the source in logs and cache keys.
	Name() string
}

// Options configures the sources built by [Open].
type Options struct {
	// Query is sent to remote sources that filter server-side.
	Query string
	// Logger receives dataset warnings. Nil discards them.
	Logger *log.Logger
	// NoFallback makes HTTPSource fail instead of serving the profile
	// list or the sample.
	NoFallback bool
	// UserAgent is sent by HTTPSource.
	UserAgent string
	// RequestsPerSecond limits HTTPSource; zero means unlimited.
	RequestsPerSecond float64
}

// Open returns the source for location:
//
//	http://..., https://...  HTTPSource (location is the API base URL)
//	mongodb://..., mongodb+srv://...  MongoSource
//	sample: or empty          SampleSource
//	anything else             FileSource
func Open(location string, opts Options) (Source, error) {
	switch {
	case location == "" || location == "sample:" || location == "sample":
		return NewSampleSource(), nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, opts), nil
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		return NewMongoSource(location, opts), nil
	default:
		if err := apperr.ValidatePath(location); err != nil {
			return nil, err
		}
		if _, ok := decoderFor(location); !ok {
			return nil, fmt.Errorf("unsupported dataset file %q (want .json, .yaml, .yml or .toml)", location)
		}
		return NewFileSource(location, opts), nil
	}
}

// finish validates a payload into a dataset and logs what normalization
// dropped or repaired.
func finish(name string, p Payload, logger *log.Logger) (timeline.Dataset, error) {
	ds, rep, err := BuildDataset(p)
	if err != nil {
		return timeline.Dataset{}, fmt.Errorf("%s: %w", name, err)
	}
	if logger != nil {
		for _, w := range rep.Warnings {
			logger.Warn(w, "source", name)
		}
		if rep.MissingSlug > 0 {
			logger.Warn("dropped records without slug", "source", name, "count", rep.MissingSlug)
		}
		if len(rep.Duplicates) > 0 {
			logger.Warn("dropped duplicate slugs", "source", name, "slugs", rep.Duplicates)
		}
	}
	return ds, nil
}

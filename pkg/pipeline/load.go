package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/toldot/toldot/pkg/cache"
	"github.com/toldot/toldot/pkg/observability"
	"github.com/toldot/toldot/pkg/source"
	"github.com/toldot/toldot/pkg/timeline"
)

// OpenSource returns the dataset source named by opts.Source. The filter
// is forwarded so remote sources can narrow the payload server-side.
func OpenSource(opts Options) (source.Source, error) {
	return source.Open(opts.Source, source.Options{
		Query:      opts.Filter.Key(),
		Logger:     opts.Logger,
		NoFallback: opts.NoFallback,
		UserAgent:  opts.UserAgent,
	})
}

// Load opens the source and loads its dataset without caching.
func Load(ctx context.Context, opts Options) (timeline.Dataset, error) {
	src, err := OpenSource(opts)
	if err != nil {
		return timeline.Dataset{}, err
	}
	return loadFrom(ctx, src)
}

func loadFrom(ctx context.Context, src source.Source) (timeline.Dataset, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.Name())
	start := time.Now()
	ds, err := src.Load(ctx)
	hooks.OnLoadComplete(ctx, src.Name(), len(ds.People), len(ds.Periods), time.Since(start), err)
	return ds, err
}

// remote reports whether loading src is worth caching. Local files and the
// embedded sample are read on every run so edits show up immediately.
func remote(src source.Source) bool {
	switch src.(type) {
	case *source.HTTPSource, *source.MongoSource:
		return true
	}
	return false
}

// HashDataset returns the content hash used to key layouts.
func HashDataset(ds timeline.Dataset) (string, error) {
	data, err := json.Marshal(ds)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// hashContent keys rendered artifacts. Cached layouts omit person names, so
// the people the sinks print are hashed alongside the layout.
func hashContent(l Layout, people []timeline.Person) (string, error) {
	layoutData, err := MarshalLayout(l)
	if err != nil {
		return "", err
	}
	peopleData, err := json.Marshal(people)
	if err != nil {
		return "", err
	}
	return cache.Hash(append(append(layoutData, '\n'), peopleData...)), nil
}

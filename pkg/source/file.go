package source

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	apperr "github.com/toldot/toldot/pkg/errors"
	"github.com/toldot/toldot/pkg/timeline"
)

type decodeFunc func(data []byte, p *Payload) error

var decoders = map[string]decodeFunc{
	".json": func(data []byte, p *Payload) error {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '[' {
			return json.Unmarshal(data, &p.People)
		}
		return json.Unmarshal(data, p)
	},
	".yaml": func(data []byte, p *Payload) error { return yaml.Unmarshal(data, p) },
	".yml":  func(data []byte, p *Payload) error { return yaml.Unmarshal(data, p) },
	".toml": func(data []byte, p *Payload) error { return toml.Unmarshal(data, p) },
}

func decoderFor(path string) (decodeFunc, bool) {
	d, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return d, ok
}

// FileSource reads a dataset file. JSON files may also hold a bare array of
// person records, in which case the built-in periods are used.
type FileSource struct {
	Path   string
	Logger *log.Logger
}

func NewFileSource(path string, opts Options) *FileSource {
	return &FileSource{Path: path, Logger: opts.Logger}
}

func (s *FileSource) Name() string { return s.Path }

func (s *FileSource) Load(ctx context.Context) (timeline.Dataset, error) {
	decode, ok := decoderFor(s.Path)
	if !ok {
		return timeline.Dataset{}, apperr.New(apperr.ErrCodeInvalidFormat, "unsupported dataset file %q", s.Path)
	}

	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return timeline.Dataset{}, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "dataset %s not found", s.Path)
	}
	if err != nil {
		return timeline.Dataset{}, err
	}

	var p Payload
	if err := decode(data, &p); err != nil {
		return timeline.Dataset{}, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "parse %s", s.Path)
	}
	return finish(s.Name(), p, s.Logger)
}

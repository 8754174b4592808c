package source

import (
	"context"
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/toldot/toldot/pkg/timeline"
)

//go:embed sample.yaml
var sampleYAML []byte

var loadSample = sync.OnceValues(func() (Payload, error) {
	var p Payload
	err := yaml.Unmarshal(sampleYAML, &p)
	return p, err
})

// DefaultPeriods returns the built-in period catalogue.
func DefaultPeriods() []timeline.Period {
	p, err := loadSample()
	if err != nil {
		panic("source: bundled sample is invalid: " + err.Error())
	}
	out := make([]timeline.Period, len(p.Periods))
	copy(out, p.Periods)
	return out
}

// SampleSource serves the dataset embedded in the binary.
type SampleSource struct{}

func NewSampleSource() SampleSource { return SampleSource{} }

func (SampleSource) Name() string { return "sample:" }

func (s SampleSource) Load(ctx context.Context) (timeline.Dataset, error) {
	p, err := loadSample()
	if err != nil {
		return timeline.Dataset{}, err
	}
	p.People = append([]RawPerson(nil), p.People...)
	return finish(s.Name(), p, nil)
}

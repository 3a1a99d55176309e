package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"screen-match/internal/domain/entity"
)

// Pair одна проверка из манифеста.
type Pair struct {
	Name      string   `yaml:"name"`
	Reference string   `yaml:"reference"`
	Candidate string   `yaml:"candidate"`
	Method    string   `yaml:"method,omitempty"`
	Min       *float64 `yaml:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty"`
	Report    string   `yaml:"report,omitempty"`
}

// Range диапазон пары, по умолчанию 0-100.
func (p Pair) Range() entity.Range {
	rng := entity.FullRange
	if p.Min != nil {
		rng.Min = *p.Min
	}
	if p.Max != nil {
		rng.Max = *p.Max
	}
	return rng
}

// Manifest список пар для пакетного сравнения.
type Manifest struct {
	Pairs []Pair `yaml:"pairs"`
}

// ParseManifest читает YAML-манифест. Относительные пути остаются как есть.
func ParseManifest(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(err, "decode manifest")
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest читает манифест из файла и разрешает относительные пути от его каталога.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open manifest")
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}

	base := filepath.Dir(path)
	for i := range m.Pairs {
		p := &m.Pairs[i]
		p.Reference = resolve(base, p.Reference)
		p.Candidate = resolve(base, p.Candidate)
		if p.Report != "" {
			p.Report = resolve(base, p.Report)
		}
	}
	return m, nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func (m *Manifest) validate() error {
	seen := make(map[string]struct{}, len(m.Pairs))
	for i, p := range m.Pairs {
		if p.Name == "" {
			return errors.Errorf("pair %d: name is required", i)
		}
		if _, dup := seen[p.Name]; dup {
			return errors.Errorf("pair %q: duplicate name", p.Name)
		}
		seen[p.Name] = struct{}{}
		if p.Reference == "" || p.Candidate == "" {
			return errors.Errorf("pair %q: reference and candidate are required", p.Name)
		}
		if _, err := entity.ParseMethod(p.Method); err != nil {
			return errors.Wrapf(err, "pair %q", p.Name)
		}
		if rng := p.Range(); rng.Min > rng.Max {
			return errors.Errorf("pair %q: min %.2f is above max %.2f", p.Name, rng.Min, rng.Max)
		}
	}
	return nil
}

// Outcome итог одной пары.
type Outcome struct {
	Pair   Pair
	Result entity.ComparisonResult
	Report *entity.ComparisonReport
	Err    error
}

// Passed истинно, если сравнение выполнено и попало в диапазон.
func (o Outcome) Passed() bool {
	return o.Err == nil
}

// BatchService прогоняет манифест с ограниченной параллельностью.
type BatchService struct {
	comparisons *ComparisonService
	workers     int
	log         logr.Logger
}

func NewBatchService(comparisons *ComparisonService, workers int, log logr.Logger) *BatchService {
	if workers <= 0 {
		workers = 1
	}
	return &BatchService{
		comparisons: comparisons,
		workers:     workers,
		log:         log.WithName("batch"),
	}
}

// Run сравнивает все пары. Отказ одной пары не останавливает остальные;
// порядок итогов совпадает с манифестом. Ошибка объединяет все отказы.
func (b *BatchService) Run(ctx context.Context, m *Manifest) ([]Outcome, error) {
	outcomes := make([]Outcome, len(m.Pairs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(b.workers)
	for i, p := range m.Pairs {
		eg.Go(func() error {
			outcomes[i] = b.runPair(ctx, p)
			return nil
		})
	}
	_ = eg.Wait()

	var result *multierror.Error
	passed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			result = multierror.Append(result, errors.Wrapf(o.Err, "pair %q", o.Pair.Name))
			continue
		}
		passed++
	}
	b.log.Info("batch finished", "pairs", len(outcomes), "passed", passed)
	return outcomes, result.ErrorOrNil()
}

func (b *BatchService) runPair(ctx context.Context, p Pair) Outcome {
	out := Outcome{Pair: p}
	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}

	method, err := entity.ParseMethod(p.Method)
	if err != nil {
		out.Err = err
		return out
	}

	out.Result, out.Err = b.comparisons.Assert(ctx, method, p.Reference, p.Candidate, p.Range())
	if out.Err != nil && !errors.Is(out.Err, entity.ErrOutOfRange) {
		return out
	}

	if p.Report != "" {
		report, err := b.comparisons.Report(ctx, p.Name, p.Reference, p.Candidate, p.Report)
		if err != nil && out.Err == nil {
			out.Err = err
		}
		out.Report = report
	}
	return out
}

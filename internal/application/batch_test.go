package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"screen-match/internal/domain/entity"
)

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest(strings.NewReader(`
pairs:
  - name: search-thumb
    reference: search.png
    candidate: detail.png
    min: 80
    max: 95
  - name: header
    reference: a.png
    candidate: b.png
    method: pixel
`))
	require.NoError(t, err)
	require.Len(t, m.Pairs, 2)
	require.Equal(t, entity.Range{Min: 80, Max: 95}, m.Pairs[0].Range())
	require.Equal(t, entity.FullRange, m.Pairs[1].Range())
}

func TestParseManifest_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown field": "pairs:\n  - name: a\n    reference: a.png\n    candidate: b.png\n    threshold: 1\n",
		"no name":       "pairs:\n  - reference: a.png\n    candidate: b.png\n",
		"duplicate":     "pairs:\n  - {name: a, reference: a.png, candidate: b.png}\n  - {name: a, reference: c.png, candidate: d.png}\n",
		"no candidate":  "pairs:\n  - {name: a, reference: a.png}\n",
		"bad method":    "pairs:\n  - {name: a, reference: a.png, candidate: b.png, method: ssim}\n",
		"min above max": "pairs:\n  - {name: a, reference: a.png, candidate: b.png, min: 90, max: 10}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseManifest(strings.NewReader(doc))
			require.Error(t, err)
		})
	}
}

func TestLoadManifest_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	doc := "pairs:\n  - {name: a, reference: shots/a.png, candidate: /abs/b.png, report: out/diff.png}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "shots/a.png"), m.Pairs[0].Reference)
	require.Equal(t, "/abs/b.png", m.Pairs[0].Candidate)
	require.Equal(t, filepath.Join(dir, "out/diff.png"), m.Pairs[0].Report)

	_, err = LoadManifest(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestBatchService_Run(t *testing.T) {
	cmp := &mockComparer{}
	comparisons := NewComparisonService(cmp, nil, nil, nil, testr.New(t))
	batch := NewBatchService(comparisons, 2, testr.New(t))
	ctx := context.Background()

	lo, hi := 80.0, 100.0
	m := &Manifest{Pairs: []Pair{
		{Name: "ok", Reference: "a.png", Candidate: "b.png", Min: &lo, Max: &hi},
		{Name: "low", Reference: "c.png", Candidate: "d.png", Min: &lo},
		{Name: "broken", Reference: "e.png", Candidate: "missing.png", Method: "pixel"},
		{Name: "report", Reference: "a.png", Candidate: "b.png", Method: "histogram", Report: "diff.png"},
	}}

	cmp.On("RobustSimilarity", mock.Anything, "a.png", "b.png").Return(result(entity.MethodRobust, 91), nil)
	cmp.On("RobustSimilarity", mock.Anything, "c.png", "d.png").Return(result(entity.MethodRobust, 40), nil)
	cmp.On("PixelSimilarity", mock.Anything, "e.png", "missing.png").
		Return(entity.ComparisonResult{}, entity.NewLoadError("missing.png", os.ErrNotExist))
	cmp.On("HistogramSimilarity", mock.Anything, "a.png", "b.png").Return(result(entity.MethodHistogram, 97), nil)
	cmp.On("SaveComparisonReport", mock.Anything, "a.png", "b.png", "diff.png").
		Return(&entity.ComparisonReport{Result: result(entity.MethodPixel, 88), DiffPath: "diff.png"}, nil)

	outcomes, err := batch.Run(ctx, m)
	require.Error(t, err)
	require.ErrorIs(t, err, entity.ErrOutOfRange)
	require.ErrorIs(t, err, entity.ErrLoadFailure)
	require.Len(t, outcomes, 4)

	require.Equal(t, "ok", outcomes[0].Pair.Name)
	require.True(t, outcomes[0].Passed())
	require.Equal(t, 91.0, outcomes[0].Result.Similarity)

	require.False(t, outcomes[1].Passed())
	require.ErrorIs(t, outcomes[1].Err, entity.ErrOutOfRange)
	require.Equal(t, 40.0, outcomes[1].Result.Similarity)

	require.ErrorIs(t, outcomes[2].Err, entity.ErrLoadFailure)

	require.True(t, outcomes[3].Passed())
	require.NotNil(t, outcomes[3].Report)
	require.Equal(t, "diff.png", outcomes[3].Report.DiffPath)
	cmp.AssertExpectations(t)
}

func TestBatchService_CancelledContext(t *testing.T) {
	batch := NewBatchService(NewComparisonService(&mockComparer{}, nil, nil, nil, testr.New(t)), 0, testr.New(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := batch.Run(ctx, &Manifest{Pairs: []Pair{{Name: "a", Reference: "a.png", Candidate: "b.png"}}})
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, outcomes[0].Err, context.Canceled)
}

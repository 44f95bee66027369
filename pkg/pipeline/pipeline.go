// Package pipeline orchestrates the per-run parse, assemble and normalize
// stages and fans out over independent runs. Runs share no mutable state,
// so ingestion parallelizes freely; results meet only at comparison.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plasmahydro/hydrocmp/pkg/assembler"
	"github.com/plasmahydro/hydrocmp/pkg/config"
	"github.com/plasmahydro/hydrocmp/pkg/normalize"
	"github.com/plasmahydro/hydrocmp/pkg/parser"
	"github.com/plasmahydro/hydrocmp/pkg/provenance"
	"github.com/plasmahydro/hydrocmp/pkg/series"
)

// FormatFor builds the format descriptor for one run entry.
func FormatFor(rc *config.RunConfig) (parser.Format, error) {
	switch rc.SourceType() {
	case series.SourceMultiFs:
		return parser.MultiFsFormat{}, nil
	case series.SourceMedusa:
		return parser.MedusaFormat{SnapshotTime: rc.SnapshotTime}, nil
	case series.SourceExperiment:
		return parser.ColumnsFormat{FormatName: "experiment", FieldNames: rc.Fields}, nil
	default:
		return nil, fmt.Errorf("run %q: unknown source %q", rc.Name, rc.Source)
	}
}

// BuildRun ingests one run: parse, assemble, normalize, attach provenance.
func BuildRun(ctx context.Context, cfg *config.Config, rc *config.RunConfig, logger *zap.Logger) (*series.Run, error) {
	format, err := FormatFor(rc)
	if err != nil {
		return nil, err
	}

	mandatory := cfg.MandatoryQuantities()
	if mandatory == nil {
		mandatory = normalize.DefaultMandatory(rc.SourceType())
	}

	mapping, err := normalize.MappingFor(rc.SourceType(), format, rc.File, mandatory)
	if err != nil {
		return nil, err
	}

	asm, err := assembler.New(format, mapping, rc.File, rc.SourceType())
	if err != nil {
		return nil, err
	}

	src := parser.NewFileSource(rc.File, format)
	if rc.CommentMarker != nil {
		src.SetCommentMarker(*rc.CommentMarker)
	}
	defer func() { _ = src.Close() }()

	raw, err := asm.Assemble(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", rc.Name, err)
	}

	var tags []string
	if cfg.Namelist != "" {
		tags, err = provenance.GroupTags(cfg.Namelist)
		if err != nil {
			return nil, fmt.Errorf("run %q: %w", rc.Name, err)
		}
	}

	run := normalize.Build(rc.SourceType(), rc.Name, cfg.Label, tags, raw)
	logger.Info("run ingested",
		zap.String("run", rc.Name),
		zap.String("source", rc.Source),
		zap.String("file", rc.File),
		zap.Int("quantities", len(run.Series)),
	)
	return run, nil
}

// BuildRuns ingests every run of the manifest concurrently. Each task owns
// its own file handle; the returned slice keeps manifest order.
func BuildRuns(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]*series.Run, error) {
	runs := make([]*series.Run, len(cfg.Runs))
	g, gctx := errgroup.WithContext(ctx)
	for i := range cfg.Runs {
		i := i
		g.Go(func() error {
			run, err := BuildRun(gctx, cfg, &cfg.Runs[i], logger)
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

// SharedQuantities returns the quantities present in every run, in sorted
// order. Used when the manifest does not select quantities explicitly.
func SharedQuantities(runs []*series.Run) []series.Quantity {
	if len(runs) == 0 {
		return nil
	}
	var shared []series.Quantity
	for _, q := range runs[0].Quantities() {
		inAll := true
		for _, r := range runs[1:] {
			if _, ok := r.Series[q]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			shared = append(shared, q)
		}
	}
	return shared
}

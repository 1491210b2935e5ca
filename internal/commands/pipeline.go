package commands

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/importer"
	"github.com/tally-dev/tally/internal/logger"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/statement"
)

// rangeFlags holds the optional --from/--to bounds, as yyyy-mm-dd.
type rangeFlags struct {
	from string
	to   string
}

func (r rangeFlags) parse() (from, to civil.Date, err error) {
	if r.from != "" {
		if from, err = civil.ParseDate(r.from); err != nil {
			return from, to, fmt.Errorf("parsing --from: %w", err)
		}
	}
	if r.to != "" {
		if to, err = civil.ParseDate(r.to); err != nil {
			return from, to, fmt.Errorf("parsing --to: %w", err)
		}
	}
	return from, to, nil
}

// workspace is the loaded configuration and the extended timelines of every
// account, with the range every account has data for.
type workspace struct {
	cfg        *config.Config
	timelines  []*model.Timeline
	start, end civil.Date
}

func loadWorkspace(ctx context.Context, cfgPath string) (*workspace, error) {
	log := logger.FromContext(ctx)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	reg := importer.DefaultRegistry()
	var streams []model.Stream
	for _, src := range cfg.Sources {
		delim, err := src.DelimiterRune()
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Dir, err)
		}
		loaded, err := importer.Load(ctx, reg, importer.Source{
			Format:              src.Format,
			Dir:                 src.Dir,
			Extension:           src.Extension,
			Encoding:            src.Encoding,
			Delimiter:           delim,
			Account:             src.AccountName,
			AccountFromFilename: src.AccountFromFilename,
		})
		if err != nil {
			return nil, fmt.Errorf("loading %s statements: %w", src.Format, err)
		}
		streams = append(streams, loaded...)
	}

	byAccount, err := statement.BuildAll(streams)
	if err != nil {
		return nil, err
	}
	timelines := statement.Sorted(byAccount)

	start, end, err := statement.DateRange(timelines)
	if errors.Is(err, statement.ErrEmptyInput) {
		return nil, fmt.Errorf("no statements found under the configured sources: %w", err)
	}
	if err != nil {
		return nil, err
	}
	if err := statement.ExtendAll(timelines, end); err != nil {
		return nil, err
	}

	log.Info().
		Int("files", len(streams)).
		Int("accounts", len(timelines)).
		Str("start", start.String()).
		Str("end", end.String()).
		Msg("built balance timelines")

	return &workspace{cfg: cfg, timelines: timelines, start: start, end: end}, nil
}

// narrow applies --from/--to within the workspace range. When clamp is set,
// a --from before the first day every account has data for is raised to it.
func (w *workspace) narrow(ctx context.Context, r rangeFlags, clamp bool) (civil.Date, civil.Date, error) {
	from, to, err := r.parse()
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}

	start, end := w.start, w.end
	if !from.IsZero() {
		start = from
	}
	if clamp && start.Before(w.start) {
		logger.FromContext(ctx).Warn().
			Str("from", start.String()).
			Str("start", w.start.String()).
			Msg("not every account has data that early; starting later")
		start = w.start
	}
	if !to.IsZero() && to.Before(end) {
		end = to
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("empty range: %s is after %s", start, end)
	}
	return start, end, nil
}

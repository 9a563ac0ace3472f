// Package service wires schema resolution, aggregation, insight extraction
// and composition into one report pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/qainsight/internal/adapters/memo"
	"github.com/okian/qainsight/internal/adapters/worker"
	"github.com/okian/qainsight/internal/domain/aggregate"
	"github.com/okian/qainsight/internal/domain/insight"
	"github.com/okian/qainsight/internal/domain/model"
	"github.com/okian/qainsight/internal/domain/report"
	"github.com/okian/qainsight/internal/domain/schema"
	"github.com/okian/qainsight/pkg/logger"
	"github.com/okian/qainsight/pkg/metrics"
)

// AllGroups is the scope name of a report that covers every group.
const AllGroups = "All Teams"

// Insight levels used in metrics.
const (
	levelGroup  = "group"
	levelEntity = "entity"
)

// Service generates reports. It is safe for concurrent use.
type Service struct {
	fields    schema.Table
	aliases   map[string][]string
	aggOpts   []aggregate.Option
	extOpts   []insight.Option
	reportOpt []report.Option

	workerCount int
	now         func() time.Time

	extractor *insight.Extractor
	composer  *report.Composer
	pool      *worker.Pool
	store     memo.Store[report.Document]

	// entity summarizes one partition; replaced in tests
	entity func(ctx context.Context, agg *aggregate.Aggregator, feedback []schema.Field, p aggregate.Partition) (report.Entity, error)

	logger logger.Logger
}

// New constructs a Service. It fails only when an extraction pattern does
// not compile.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		fields: schema.DefaultTable(),
		now:    time.Now,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.fields = s.fields.WithAliases(s.aliases)
	ext, err := insight.NewExtractor(s.extOpts...)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}
	s.extractor = ext
	s.composer = report.NewComposer(append([]report.Option{report.WithClock(s.now)}, s.reportOpt...)...)
	s.pool = worker.NewPool(
		worker.WithSize(s.workerCount),
		worker.WithName("entity-pool"),
		worker.WithLogger(s.logger),
	)
	if s.store == nil {
		s.store = memo.NewInMemoryStore[report.Document]()
	}
	s.entity = s.summarizeEntity
	return s, nil
}

// Generate builds the report for t restricted to scope; an empty scope covers
// every group. The same table and scope always yield the same document.
func (s *Service) Generate(ctx context.Context, t *model.Table, scope string) (report.Document, error) {
	if t == nil {
		return report.Document{}, ErrNilTable
	}
	start := time.Now()
	key := contentKey(t, scope)

	doc, hit, err := s.store.Do(ctx, key, func(ctx context.Context) (report.Document, error) {
		return s.compute(ctx, t, scope, key)
	})
	if err != nil {
		return report.Document{}, err
	}

	source := "computed"
	if hit {
		source = "memo"
		metrics.RecordMemoHit()
	} else {
		metrics.RecordMemoMiss()
	}
	took := time.Since(start)
	metrics.RecordReportGenerated(source)
	metrics.RecordReportLatency(float64(took.Microseconds()) / 1000)
	metrics.UpdateMemoSize(int(s.store.Size()))

	s.logger.Info(ctx, "report generated",
		logger.String("id", doc.ID),
		logger.String("scope", doc.Scope),
		logger.Int("records", doc.Records),
		logger.Int("agents", len(doc.Sections)),
		logger.Bool("memo", hit),
		logger.Duration("took", took))
	return doc, nil
}

// Render encodes doc as markdown or yaml.
func (s *Service) Render(doc report.Document, format string) ([]byte, error) {
	switch format {
	case "", "markdown":
		return []byte(s.composer.Render(doc)), nil
	case "yaml":
		return s.composer.RenderYAML(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (s *Service) compute(ctx context.Context, t *model.Table, scope, key string) (report.Document, error) {
	mapping, err := schema.Resolve(t.Columns, s.fields)
	if err != nil {
		metrics.RecordSchemaFailure()
		var missing *schema.MissingColumnError
		if errors.As(err, &missing) {
			s.logger.Error(ctx, "required columns missing",
				logger.Int("missing", len(missing.Missing)),
				logger.Error(err))
		}
		return report.Document{}, fmt.Errorf("resolve columns: %w", err)
	}

	agg := aggregate.New(mapping, s.aggOpts...)
	all := agg.Records(t)
	metrics.RecordRecordsIngested(len(all))

	name := scope
	if name == "" {
		name = AllGroups
	}
	records := aggregate.Filter(all, scope)
	feedback := agg.FeedbackFields()
	if !agg.HasOverall() {
		s.logger.Warn(ctx, "no overall or skill score columns; overall shows as unavailable")
	}

	texts := feedbackTexts(records, feedback)
	in := report.Input{
		ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String(),
		Scope:        name,
		GeneratedAt:  s.now(),
		Fields:       agg.NumericFields(),
		Dataset:      agg.Summarize(name, records),
		Groups:       agg.Groups(records),
		Strengths:    s.extract(texts, insight.Positive, levelGroup),
		Improvements: s.extract(texts, insight.Negative, levelGroup),
	}

	parts := aggregate.ByEntity(records)
	results := worker.Map(ctx, s.pool, len(parts), func(ctx context.Context, i int) (report.Entity, error) {
		return s.entity(ctx, agg, feedback, parts[i])
	})
	for _, r := range results {
		if r.Err != nil {
			err := &EntityError{Entity: parts[r.Index].Name, Err: r.Err}
			metrics.RecordEntityFailure()
			s.logger.Error(ctx, "skipping agent", logger.String("agent", err.Entity), logger.Error(err))
			continue
		}
		metrics.RecordEntityProcessed()
		in.Entities = append(in.Entities, r.Value)
	}
	if err := ctx.Err(); err != nil {
		return report.Document{}, err
	}

	s.logger.Debug(ctx, "report composed",
		logger.String("scope", name),
		logger.Int("groups", len(in.Groups)),
		logger.Int("agents", len(in.Entities)),
		logger.Bool("derived_overall", agg.Derived()))
	return s.composer.Compose(in), nil
}

func (s *Service) summarizeEntity(_ context.Context, agg *aggregate.Aggregator, feedback []schema.Field, p aggregate.Partition) (report.Entity, error) {
	texts := feedbackTexts(p.Records, feedback)
	return report.Entity{
		Summary:      agg.Summarize(p.Name, p.Records),
		Strengths:    s.extract(texts, insight.Positive, levelEntity),
		Improvements: s.extract(texts, insight.Negative, levelEntity),
	}, nil
}

func (s *Service) extract(texts []string, p insight.Polarity, level string) insight.Set {
	set := s.extractor.Extract(texts, p)
	metrics.RecordInsightsExtracted(p.String(), level, len(set.Items))
	return set
}

// feedbackTexts pools the present texts field by field, in record order
// within each field.
func feedbackTexts(records []model.Record, fields []schema.Field) []string {
	var out []string
	for _, f := range fields {
		for i := range records {
			if s, ok := records[i].Text(f.Key); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// contentKey hashes the columns, all cells and the scope.
func contentKey(t *model.Table, scope string) string {
	k := memo.NewKey().Add(scope).Add(strconv.Itoa(len(t.Columns)))
	for _, c := range t.Columns {
		k.Add(c)
	}
	for r := range t.Rows {
		k.Add(strconv.Itoa(len(t.Rows[r])))
		for _, v := range t.Rows[r] {
			s, _ := v.String()
			k.Add(strconv.Itoa(int(v.Kind()))).Add(s)
		}
	}
	return k.Sum()
}

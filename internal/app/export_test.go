package service

import (
	"context"

	"github.com/okian/qainsight/internal/domain/aggregate"
	"github.com/okian/qainsight/internal/domain/report"
	"github.com/okian/qainsight/internal/domain/schema"
)

// FailEntities makes per-agent processing call fn first and fail with its error.
func (s *Service) FailEntities(fn func(name string) error) {
	next := s.entity
	s.entity = func(ctx context.Context, agg *aggregate.Aggregator, feedback []schema.Field, p aggregate.Partition) (report.Entity, error) {
		if err := fn(p.Name); err != nil {
			return report.Entity{}, err
		}
		return next(ctx, agg, feedback, p)
	}
}

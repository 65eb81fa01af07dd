package mocksource

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/VincentSchmalor/WPAnalysis/internal/league"
)

type Source struct {
	mock.Mock
}

func (s *Source) Fetch(ctx context.Context) (league.RawTables, error) {
	args := s.Called(ctx)

	var res league.RawTables
	if args.Get(0) != nil {
		res = args.Get(0).(league.RawTables)
	}

	return res, args.Error(1)
}

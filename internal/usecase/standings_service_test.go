package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	standingmock "github.com/riskibarqy/league-standings/internal/mocks/domain/standing"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func teamsInOrder(rows []standing.Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Team)
	}
	return out
}

func TestStandingsService_Run_DryRunSkipsSink(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository(memory.SeedRecords())
	writer := &stubCombinedWriter{}
	sink := standingmock.NewSink(t)
	service := NewStandingsService(NewCombineService(repo, writer, 2, nil), repo, sink, nil)

	got, err := service.Run(context.Background(), RunInput{Start: 9, End: 10, MaxWorkers: 2})
	require.NoError(t, err)
	require.True(t, got.DryRun)
	require.Equal(t, 2, got.SeasonCount)
	require.Equal(t, 8, got.MatchCount)
	require.Zero(t, got.WrittenCount)
	require.Zero(t, writer.calls)

	require.Equal(t, match.Season(9), got.Seasons[0].Table.Season)
	require.Equal(t, []string{"Chelsea", "Arsenal", "Hull", "Everton"}, teamsInOrder(got.Seasons[0].Table.Rows))
	require.Equal(t, match.Season(10), got.Seasons[1].Table.Season)
	require.Equal(t, []string{"Man United", "Chelsea", "Newcastle", "West Brom"}, teamsInOrder(got.Seasons[1].Table.Rows))

	chelsea := got.Seasons[0].Table.Rows[0]
	require.Equal(t, standing.Row{Team: "Chelsea", Wins: 2, GoalsFor: 5, GoalsAgainst: 1, GoalDifference: 4, Points: 6, Place: 1}, chelsea)
}

func TestStandingsService_Run_WritesSeasonsInOrder(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository(memory.SeedRecords())
	writer := &stubCombinedWriter{}
	sink := standingmock.NewSink(t)

	var written []match.Season
	sink.
		On("ReplaceBySeason", mock.Anything, mock.AnythingOfType("match.Season"), mock.AnythingOfType("[]standing.Row")).
		Run(func(args mock.Arguments) {
			season := args.Get(1).(match.Season)
			rows := args.Get(2).([]standing.Row)
			for i, row := range rows {
				if row.Place != i+1 {
					t.Errorf("season %d row %d has place %d", season, i, row.Place)
				}
			}
			written = append(written, season)
		}).
		Return(nil).
		Twice()

	service := NewStandingsService(NewCombineService(repo, writer, 2, nil), repo, sink, nil)
	got, err := service.Run(context.Background(), RunInput{Start: 9, End: 10, Write: true, MaxWorkers: 4})
	require.NoError(t, err)
	require.Equal(t, 2, got.WrittenCount)
	require.False(t, got.DryRun)
	require.Equal(t, []match.Season{9, 10}, written)
	require.Equal(t, 1, writer.calls)
	require.Len(t, writer.records, 8)
	for _, s := range got.Seasons {
		require.True(t, s.Written)
	}
}

func TestStandingsService_Run_SinkFailure(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository(memory.SeedRecords())
	sink := standingmock.NewSink(t)
	sink.
		On("ReplaceBySeason", mock.Anything, match.Season(9), mock.Anything).
		Return(errors.New("connection refused")).
		Once()

	service := NewStandingsService(NewCombineService(repo, &stubCombinedWriter{}, 1, nil), repo, sink, nil)
	_, err := service.Run(context.Background(), RunInput{Start: 9, End: 10, Write: true})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "2009-10") {
		t.Fatalf("expected season in error, got %v", err)
	}
}

func TestStandingsService_Run_EmptySeasonFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewMatchRepository(memory.SeedRecords())
	repo.PutSeason(ctx, 11, nil)

	service := NewStandingsService(NewCombineService(repo, nil, 2, nil), repo, nil, nil)
	_, err := service.Run(ctx, RunInput{Start: 9, End: 11, MaxWorkers: 3})
	if !errors.Is(err, standing.ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable, got %v", err)
	}
	if !strings.Contains(err.Error(), "2011-12") {
		t.Fatalf("expected season in error, got %v", err)
	}
}

func TestStandingsService_Run_SourceFailure(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository(memory.SeedRecords())
	service := NewStandingsService(NewCombineService(repo, nil, 2, nil), repo, nil, nil)

	_, err := service.Run(context.Background(), RunInput{Start: 9, End: 12})
	if !errors.Is(err, match.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestStandingsService_Run_Validation(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository(memory.SeedRecords())

	tests := []struct {
		name    string
		service *StandingsService
		input   RunInput
		wantErr error
	}{
		{
			name:    "start after end",
			service: NewStandingsService(NewCombineService(repo, nil, 1, nil), repo, nil, nil),
			input:   RunInput{Start: 10, End: 9},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "write without sink",
			service: NewStandingsService(NewCombineService(repo, nil, 1, nil), repo, nil, nil),
			input:   RunInput{Start: 9, End: 9, Write: true},
			wantErr: ErrDependencyUnavailable,
		},
		{
			name:    "missing combiner",
			service: NewStandingsService(nil, repo, nil, nil),
			input:   RunInput{Start: 9, End: 9},
			wantErr: ErrDependencyUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.service.Run(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestStandingsService_BuildSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewMatchRepository(memory.SeedRecords())
	service := NewStandingsService(nil, repo, nil, nil)

	table, err := service.BuildSeason(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, match.Season(10), table.Season)
	require.Equal(t, []string{"Man United", "Chelsea", "Newcastle", "West Brom"}, teamsInOrder(table.Rows))

	_, err = service.BuildSeason(ctx, 15)
	if !errors.Is(err, match.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestStandingsService_Run_EmptySeasonSkipsCombinedWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewMatchRepository(memory.SeedRecords())
	repo.PutSeason(ctx, 11, nil)
	writer := &stubCombinedWriter{}
	sink := memory.NewStandingRepository()

	service := NewStandingsService(NewCombineService(repo, writer, 2, nil), repo, sink, nil)
	_, err := service.Run(ctx, RunInput{Start: 9, End: 11, Write: true, MaxWorkers: 3})
	if !errors.Is(err, standing.ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable, got %v", err)
	}
	require.Zero(t, writer.calls)
	if _, err := sink.ListBySeason(ctx, 9); !errors.Is(err, standing.ErrNotStored) {
		t.Fatalf("expected nothing stored for season 9, got %v", err)
	}
}

func TestStandingsService_Run_MemorySinkHoldsRankedTables(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewMatchRepository(memory.SeedRecords())
	sink := memory.NewStandingRepository()

	service := NewStandingsService(NewCombineService(repo, &stubCombinedWriter{}, 2, nil), repo, sink, nil)
	got, err := service.Run(ctx, RunInput{Start: 9, End: 10, Write: true, MaxWorkers: 2})
	require.NoError(t, err)

	for _, season := range got.Seasons {
		stored, err := sink.ListBySeason(ctx, season.Table.Season)
		require.NoError(t, err)
		require.Equal(t, season.Table.Rows, stored)
	}
}

func TestStandingsService_RunSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewMatchRepository(memory.SeedRecords())

	t.Run("write replaces the season in the sink", func(t *testing.T) {
		sink := memory.NewStandingRepository()
		service := NewStandingsService(nil, repo, sink, nil)

		got, err := service.RunSeason(ctx, 10, true)
		require.NoError(t, err)
		require.True(t, got.Written)
		require.Equal(t, 4, got.Matches)

		stored, err := service.StoredSeason(ctx, 10)
		require.NoError(t, err)
		require.Equal(t, []string{"Man United", "Chelsea", "Newcastle", "West Brom"}, teamsInOrder(stored.Rows))

		if _, err := service.StoredSeason(ctx, 9); !errors.Is(err, standing.ErrNotStored) {
			t.Fatalf("expected ErrNotStored for unwritten season, got %v", err)
		}
	})

	t.Run("dry run leaves the sink untouched", func(t *testing.T) {
		sink := standingmock.NewSink(t)
		service := NewStandingsService(nil, repo, sink, nil)

		got, err := service.RunSeason(ctx, 9, false)
		require.NoError(t, err)
		require.False(t, got.Written)
		require.Equal(t, "Chelsea", got.Table.Rows[0].Team)
	})

	t.Run("write without sink", func(t *testing.T) {
		service := NewStandingsService(nil, repo, nil, nil)
		if _, err := service.RunSeason(ctx, 9, true); !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	})

	t.Run("sink failure names the season", func(t *testing.T) {
		sink := standingmock.NewSink(t)
		sink.On("ReplaceBySeason", mock.Anything, match.Season(9), mock.Anything).
			Return(errors.New("disk full")).
			Once()
		service := NewStandingsService(nil, repo, sink, nil)

		_, err := service.RunSeason(ctx, 9, true)
		if !errors.Is(err, ErrDependencyUnavailable) || !strings.Contains(err.Error(), "2009-10") {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestStandingsService_StoredSeason_UnreadableSink(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository(memory.SeedRecords())
	service := NewStandingsService(nil, repo, standingmock.NewSink(t), nil)

	if _, err := service.StoredSeason(context.Background(), 9); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

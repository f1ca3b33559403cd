package csvfile

import (
	"context"
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

const seasonColumn = "Season"

// typedHeader names the columns of records that carry no raw source row.
var typedHeader = []string{"Div", "Date", "HomeTeam", "AwayTeam", "FTHG", "FTAG", "FTR"}

// CombinedWriter persists the concatenated multi-season dataset.
type CombinedWriter struct {
	path   string
	logger *logging.Logger
}

func NewCombinedWriter(path string, logger *logging.Logger) *CombinedWriter {
	if logger == nil {
		logger = logging.Default()
	}
	return &CombinedWriter{path: path, logger: logger}
}

func (w *CombinedWriter) Path() string {
	return w.path
}

func (w *CombinedWriter) WriteCombined(ctx context.Context, records []match.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	header := combinedHeader(records)
	out := make([][]string, 0, len(records)+1)
	out = append(out, append(append([]string(nil), header...), seasonColumn))
	for _, r := range records {
		raw := rawRow(r)
		row := make([]string, 0, len(header)+1)
		for _, column := range header {
			row = append(row, raw.Value(column))
		}
		out = append(out, append(row, strconv.Itoa(int(r.Season))))
	}

	if err := writeAll(w.path, out); err != nil {
		return crerr.Wrap(err, "write combined dataset")
	}

	w.logger.InfoContext(ctx, "combined dataset written", "path", w.path, "records", len(records))
	return nil
}

// combinedHeader is the union of the record headers in first-seen order.
// Seasons missing a column leave it empty.
func combinedHeader(records []match.Record) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(typedHeader))
	for _, r := range records {
		for _, column := range rawRow(r).Header {
			if column == seasonColumn {
				continue
			}
			if _, ok := seen[column]; ok {
				continue
			}
			seen[column] = struct{}{}
			out = append(out, column)
		}
	}
	if len(out) == 0 {
		return typedHeader
	}
	return out
}

func rawRow(r match.Record) match.RawRow {
	if len(r.Raw.Header) > 0 {
		return r.Raw
	}
	return match.RawRow{
		Header: typedHeader,
		Fields: []string{
			r.Division,
			r.Date,
			r.HomeTeam,
			r.AwayTeam,
			strconv.Itoa(r.HomeGoals),
			strconv.Itoa(r.AwayGoals),
			string(r.Result),
		},
	}
}

package csvfile

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/infrastructure/seasonfile"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

const (
	DefaultColumnLimit = 23
	timeColumn         = "Time"
)

var columnAliases = map[string][]string{
	"division":  {"Div"},
	"date":      {"Date"},
	"homeTeam":  {"HomeTeam", "Home"},
	"awayTeam":  {"AwayTeam", "Away"},
	"homeGoals": {"FTHG", "HG"},
	"awayGoals": {"FTAG", "AG"},
	"result":    {"FTR", "Res"},
}

var requiredColumns = []string{"homeTeam", "awayTeam", "homeGoals", "awayGoals", "result"}

type row struct {
	HomeTeam  string `validate:"required"`
	AwayTeam  string `validate:"required,nefield=HomeTeam"`
	HomeGoals int    `validate:"min=0"`
	AwayGoals int    `validate:"min=0"`
	Result    string `validate:"oneof=H A D"`
}

// Source reads one football-data style CSV per season.
type Source struct {
	template    string
	columnLimit int
	validate    *validator.Validate
	logger      *logging.Logger
}

func NewSource(template string, columnLimit int, logger *logging.Logger) *Source {
	if columnLimit <= 0 {
		columnLimit = DefaultColumnLimit
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Source{
		template:    template,
		columnLimit: columnLimit,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

func (s *Source) ListBySeason(ctx context.Context, season match.Season) ([]match.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := seasonfile.Path(s.template, season)
	f, err := os.Open(path)
	if err != nil {
		return nil, unavailable(err, "open season %s file %s", season.Label(), path)
	}
	defer f.Close()

	records, err := s.Parse(f, season)
	if err != nil {
		return nil, unavailable(err, "read season %s file %s", season.Label(), path)
	}

	s.logger.Debug("season file loaded", "season", season.Label(), "path", path, "records", len(records))
	return records, nil
}

// Parse decodes CSV rows into records tagged with season. A Time column is
// dropped before the column limit is applied; the projected row is kept on
// each record as Raw.
func (s *Source) Parse(r io.Reader, season match.Season) ([]match.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, crerr.New("empty csv file")
	}
	if err != nil {
		return nil, crerr.Wrap(err, "read csv header")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	timeIdx := indexOf(header, timeColumn)
	header = s.project(header, timeIdx)
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	out := make([]match.Record, 0, 380)
	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, crerr.Wrapf(err, "read csv line %d", line)
		}
		if isBlank(fields) {
			continue
		}

		fields = s.project(fields, timeIdx)
		record, err := s.decode(fields, cols, season)
		if err != nil {
			return nil, crerr.Wrapf(err, "csv line %d", line)
		}
		record.Raw = match.RawRow{Header: header, Fields: fields}
		out = append(out, record)
	}

	return out, nil
}

// project drops the time column and keeps the configured column prefix.
func (s *Source) project(fields []string, timeIdx int) []string {
	if timeIdx >= 0 && timeIdx < len(fields) {
		trimmed := make([]string, 0, len(fields)-1)
		trimmed = append(trimmed, fields[:timeIdx]...)
		fields = append(trimmed, fields[timeIdx+1:]...)
	}
	if len(fields) > s.columnLimit {
		fields = fields[:s.columnLimit]
	}
	return fields
}

func (s *Source) decode(fields []string, cols map[string]int, season match.Season) (match.Record, error) {
	homeGoals, err := parseGoals(field(fields, cols["homeGoals"]))
	if err != nil {
		return match.Record{}, crerr.Wrap(err, "home goals")
	}
	awayGoals, err := parseGoals(field(fields, cols["awayGoals"]))
	if err != nil {
		return match.Record{}, crerr.Wrap(err, "away goals")
	}

	parsed := row{
		HomeTeam:  field(fields, cols["homeTeam"]),
		AwayTeam:  field(fields, cols["awayTeam"]),
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
		Result:    strings.ToUpper(field(fields, cols["result"])),
	}
	if err := s.validate.Struct(parsed); err != nil {
		return match.Record{}, crerr.Wrap(err, "invalid match row")
	}

	result, _ := match.ParseResult(parsed.Result)
	return match.Record{
		Division:  field(fields, cols["division"]),
		Date:      field(fields, cols["date"]),
		HomeTeam:  parsed.HomeTeam,
		AwayTeam:  parsed.AwayTeam,
		HomeGoals: parsed.HomeGoals,
		AwayGoals: parsed.AwayGoals,
		Result:    result,
		Season:    season,
	}, nil
}

func resolveColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(columnAliases))
	for key, aliases := range columnAliases {
		cols[key] = -1
		for _, alias := range aliases {
			if idx := indexOf(header, alias); idx >= 0 {
				cols[key] = idx
				break
			}
		}
	}

	missing := make([]string, 0)
	for _, key := range requiredColumns {
		if cols[key] < 0 {
			missing = append(missing, columnAliases[key][0])
		}
	}
	if len(missing) > 0 {
		return nil, crerr.Newf("required columns not found in csv header: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseGoals(raw string) (int, error) {
	if raw == "" {
		return 0, crerr.New("value is empty")
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	// some exports write goals as floats ("2.0")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, crerr.Newf("invalid goal count %q", raw)
	}
	return int(f), nil
}

func field(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// unavailable keeps ErrSourceUnavailable as the primary error so callers can
// match it, and attaches the underlying failure as a secondary cause.
func unavailable(cause error, format string, args ...any) error {
	wrapped := crerr.Wrapf(match.ErrSourceUnavailable, format+": %v", append(args, cause)...)
	return crerr.WithSecondaryError(wrapped, cause)
}

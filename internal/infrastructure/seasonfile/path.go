package seasonfile

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/match"
)

const (
	TokenSeason = "{season}"
	TokenNext   = "{next}"
)

// Path expands a file template for one season. With the default
// "season-{season}{next}.csv" season 9 maps to "season-910.csv" and
// season 2015 to "season-20152016.csv".
func Path(template string, season match.Season) string {
	return strings.NewReplacer(
		TokenSeason, strconv.Itoa(int(season)),
		TokenNext, strconv.Itoa(int(season.Next())),
	).Replace(template)
}

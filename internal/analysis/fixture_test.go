package analysis

import (
	"github.com/sam-maryland/sleeper-shoulda-coulda/internal/sleeper/sleepertest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const fixtureLeagueID = sleepertest.FixtureLeagueID

var fixtureLeague = sleepertest.FixtureLeague

func nullLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

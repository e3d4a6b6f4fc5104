package game

import (
	"time"

	"github.com/pkg/errors"

	"tablestakes.com/headsup/poker"
	"tablestakes.com/headsup/util"
)

// HandRecord is the persisted summary of one finished hand. It is an
// audit trail only and is never read back into live game state.
type HandRecord struct {
	SessionID  string      `json:"sessionId"`
	HandNum    uint32      `json:"handNum"`
	Winner     string      `json:"winner"`
	Stage      string      `json:"stage"`
	ShowedDown bool        `json:"showedDown"`
	Pot        int64       `json:"pot"`
	Holes      [2][]string `json:"holes"`
	Community  []string    `json:"community"`
	Scores     [2]string   `json:"scores"`
	Stacks     [2]int64    `json:"stacks"`
	PlayedAt   time.Time   `json:"playedAt"`
}

func cardCodes(cards []poker.Card) []string {
	codes := make([]string, 0, len(cards))
	for _, card := range cards {
		codes = append(codes, card.Code())
	}
	return codes
}

func NewHandRecord(sessionID string, result *HandResult) *HandRecord {
	return &HandRecord{
		SessionID:  sessionID,
		HandNum:    result.HandNum,
		Winner:     result.Winner,
		Stage:      result.Stage,
		ShowedDown: result.ShowedDown,
		Pot:        result.Pot,
		Holes:      [2][]string{cardCodes(result.Holes[0]), cardCodes(result.Holes[1])},
		Community:  cardCodes(result.Community),
		Scores:     result.Scores,
		Stacks:     result.Stacks,
		PlayedAt:   time.Now().UTC(),
	}
}

// HandTracker stores hand history. The backing store is chosen through
// PERSIST_METHOD; every backend keys records by session id and hand
// number.
type HandTracker interface {
	Save(record *HandRecord) error
	Load(sessionID string, handNum uint32) (*HandRecord, error)
	Remove(sessionID string, handNum uint32) error
}

// NewHandTrackerFromEnv builds the tracker named by the environment.
func NewHandTrackerFromEnv() (HandTracker, error) {
	method := util.Env.GetPersistMethod()
	switch method {
	case "memory":
		return NewMemoryHandTracker(), nil
	case "redis":
		return NewRedisHandTracker(
			util.Env.GetRedisHost(),
			util.Env.GetRedisPort(),
			util.Env.GetRedisPW(),
			util.Env.GetRedisDB(),
		), nil
	case "postgres":
		return NewPostgresHandTracker(
			util.Env.GetPostgresHost(),
			util.Env.GetPostgresPort(),
			util.Env.GetPostgresUser(),
			util.Env.GetPostgresPW(),
			util.Env.GetPostgresDB(),
		)
	default:
		return nil, errors.Errorf("unsupported PERSIST_METHOD: %s", method)
	}
}

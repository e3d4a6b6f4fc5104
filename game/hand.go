package game

import (
	"fmt"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog/log"

	"tablestakes.com/headsup/logging"
	"tablestakes.com/headsup/poker"
	"tablestakes.com/headsup/util"
)

var handLogger = log.With().Str("logger_name", "game::hand").Logger()

const (
	HandStage__INIT     string = "INIT"
	HandStage__PREFLOP  string = "PREFLOP"
	HandStage__FLOP     string = "FLOP"
	HandStage__TURN     string = "TURN"
	HandStage__RIVER    string = "RIVER"
	HandStage__SHOWDOWN string = "SHOWDOWN"
	HandStage__ENDED    string = "ENDED"
)

const (
	HandEvent__DEAL     string = "DEAL"
	HandEvent__FLOP     string = "FLOP"
	HandEvent__TURN     string = "TURN"
	HandEvent__RIVER    string = "RIVER"
	HandEvent__SHOWDOWN string = "SHOWDOWN"
	HandEvent__FINISH   string = "FINISH"
)

// Hand plays exactly one hand of heads-up hold'em from blinds to payout.
type Hand struct {
	num       uint32
	players   [2]*Player
	deck      *poker.Deck
	sb        int64
	bb        int64
	pot       int64
	holes     [2][]poker.Card
	community []poker.Card
	sm        *fsm.FSM
}

// HandResult summarizes one finished hand for the session and the
// history tracker. Scores are the showdown hand descriptions and stay
// empty when the hand ended on a fold.
type HandResult struct {
	HandNum    uint32
	Pot        int64
	Winner     string
	Stage      string
	ShowedDown bool
	Holes      [2][]poker.Card
	Community  []poker.Card
	Scores     [2]string
	Stacks     [2]int64
}

func NewHand(num uint32, seat1 *Player, seat2 *Player, deck *poker.Deck, smallBlind int64, bigBlind int64) *Hand {
	h := &Hand{
		num:     num,
		players: [2]*Player{seat1, seat2},
		deck:    deck,
		sb:      smallBlind,
		bb:      bigBlind,
	}
	h.sm = fsm.NewFSM(
		HandStage__INIT,
		fsm.Events{
			{Name: HandEvent__DEAL, Src: []string{HandStage__INIT}, Dst: HandStage__PREFLOP},
			{Name: HandEvent__FLOP, Src: []string{HandStage__PREFLOP}, Dst: HandStage__FLOP},
			{Name: HandEvent__TURN, Src: []string{HandStage__FLOP}, Dst: HandStage__TURN},
			{Name: HandEvent__RIVER, Src: []string{HandStage__TURN}, Dst: HandStage__RIVER},
			{Name: HandEvent__SHOWDOWN, Src: []string{HandStage__RIVER}, Dst: HandStage__SHOWDOWN},
			{Name: HandEvent__FINISH, Src: []string{
				HandStage__PREFLOP,
				HandStage__FLOP,
				HandStage__TURN,
				HandStage__RIVER,
				HandStage__SHOWDOWN,
			}, Dst: HandStage__ENDED},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) { h.enterState(e) },
		},
	)
	return h
}

func (h *Hand) event(event string) {
	err := h.sm.Event(event)
	if err != nil {
		handLogger.Warn().Msgf("Error from state machine: %s", err.Error())
	}
}

func (h *Hand) enterState(e *fsm.Event) {
	handLogger.Info().
		Uint32(logging.HandNumKey, h.num).
		Msgf("[%s] ===> [%s]", e.Src, e.Dst)
}

// Stage returns the current stage of the hand state machine.
func (h *Hand) Stage() string {
	return h.sm.Current()
}

func (h *Hand) otherPlayer(p *Player) *Player {
	if p == h.players[0] {
		return h.players[1]
	}
	return h.players[0]
}

func (h *Hand) tell(p *Player, message string) error {
	if err := p.IO.Notify(message); err != nil {
		return &DisconnectError{PlayerName: p.Name, Err: err}
	}
	return nil
}

func (h *Hand) tellBoth(message string) error {
	if err := h.tell(h.players[0], message); err != nil {
		return err
	}
	return h.tell(h.players[1], message)
}

// announce tells the acting seat one thing and the other seat the same
// news from its own perspective.
func (h *Hand) announce(actor *Player, toActor string, toOther string) error {
	if err := h.tell(actor, toActor); err != nil {
		return err
	}
	return h.tell(h.otherPlayer(actor), toOther)
}

func (h *Hand) showHoleCards() error {
	for i, p := range h.players {
		if err := h.tell(p, fmt.Sprintf("Your cards: %s", poker.CardsToString(h.holes[i]))); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hand) observeHoles() {
	for i, p := range h.players {
		if obs, ok := p.IO.(CardObserver); ok {
			obs.ObserveHole(h.holes[i])
		}
	}
}

func (h *Hand) observeCommunity() {
	for _, p := range h.players {
		if obs, ok := p.IO.(CardObserver); ok {
			obs.ObserveCommunity(h.community)
		}
	}
}

// postBlinds moves the blinds into the pot, capped at each stack, and
// returns the posted big blind that opens the pre-flop betting.
func (h *Hand) postBlinds() (int64, error) {
	p1 := h.players[0]
	p2 := h.players[1]
	sb := min64(h.sb, p1.Stack)
	bb := min64(h.bb, p2.Stack)
	p1.Stack -= sb
	p1.contrib = sb
	p2.Stack -= bb
	p2.contrib = bb
	h.pot = sb + bb
	if p1.Stack == 0 {
		p1.allIn = true
	}
	if p2.Stack == 0 {
		p2.allIn = true
	}

	toP1 := fmt.Sprintf("You post small blind: %d", sb)
	toP2 := fmt.Sprintf("%s posts small blind: %d", p1.Name, sb)
	if err := h.announce(p1, toP1, toP2); err != nil {
		return 0, err
	}
	toP2 = fmt.Sprintf("You post big blind: %d", bb)
	toP1 = fmt.Sprintf("%s posts big blind: %d", p2.Name, bb)
	if err := h.announce(p2, toP2, toP1); err != nil {
		return 0, err
	}
	if err := h.tellBoth(fmt.Sprintf("Pot after blinds: %d", h.pot)); err != nil {
		return 0, err
	}
	return bb, nil
}

// foldWhere renders the stage for the fold payout message.
func foldWhere(stage string) string {
	if stage == "pre-flop" {
		return stage
	}
	return "on the " + stage
}

// checkFolded awards the pot when a seat folded during the given stage.
// It returns the finished result, or nil when both seats are still in.
func (h *Hand) checkFolded(stage string) (*HandResult, error) {
	var folded *Player
	for _, p := range h.players {
		if p.folded {
			folded = p
		}
	}
	if folded == nil {
		return nil, nil
	}
	winner := h.otherPlayer(folded)
	winner.Stack += h.pot
	util.Metrics.HandFolded()

	where := foldWhere(stage)
	toWinner := fmt.Sprintf("You win the pot of %d (%s folded %s).", h.pot, folded.Name, where)
	toFolded := fmt.Sprintf("%s wins the pot of %d (you folded %s).", winner.Name, h.pot, where)
	if err := h.announce(winner, toWinner, toFolded); err != nil {
		return nil, err
	}
	h.event(HandEvent__FINISH)
	return h.result(seatLabel(winner), stage, false), nil
}

func seatLabel(p *Player) string {
	return fmt.Sprintf("seat%d", p.Seat)
}

func (h *Hand) result(winner string, stage string, showedDown bool) *HandResult {
	return &HandResult{
		HandNum:    h.num,
		Pot:        h.pot,
		Winner:     winner,
		Stage:      stage,
		ShowedDown: showedDown,
		Holes:      h.holes,
		Community:  h.community,
		Stacks:     [2]int64{h.players[0].Stack, h.players[1].Stack},
	}
}

// Run plays the hand to completion and returns its result. Any error is
// a dead connection and poisons the whole session.
func (h *Hand) Run() (*HandResult, error) {
	for _, p := range h.players {
		p.resetForHand()
	}

	for i := range h.players {
		cards, err := h.deck.Deal(2)
		if err != nil {
			return nil, err
		}
		h.holes[i] = cards
	}
	h.observeHoles()
	if err := h.showHoleCards(); err != nil {
		return nil, err
	}

	openingBet, err := h.postBlinds()
	if err != nil {
		return nil, err
	}
	if err := h.showHoleCards(); err != nil {
		return nil, err
	}

	h.event(HandEvent__DEAL)
	if err := h.runBettingRound("pre-flop", openingBet); err != nil {
		return nil, err
	}
	if result, err := h.checkFolded("pre-flop"); result != nil || err != nil {
		return result, err
	}

	streets := []struct {
		name  string
		label string
		deal  int
		event string
	}{
		{name: "flop", label: "Flop", deal: 3, event: HandEvent__FLOP},
		{name: "turn", label: "Turn", deal: 1, event: HandEvent__TURN},
		{name: "river", label: "River", deal: 1, event: HandEvent__RIVER},
	}
	for _, street := range streets {
		if err := h.showHoleCards(); err != nil {
			return nil, err
		}
		cards, err := h.deck.Deal(street.deal)
		if err != nil {
			return nil, err
		}
		h.community = append(h.community, cards...)
		h.observeCommunity()
		if err := h.tellBoth(fmt.Sprintf("%s: %s", street.label, poker.CardsToString(h.community))); err != nil {
			return nil, err
		}

		h.event(street.event)
		for _, p := range h.players {
			p.contrib = 0
		}
		if err := h.runBettingRound(street.name, 0); err != nil {
			return nil, err
		}
		if result, err := h.checkFolded(street.name); result != nil || err != nil {
			return result, err
		}
	}

	return h.showdown()
}

func (h *Hand) showdown() (*HandResult, error) {
	h.event(HandEvent__SHOWDOWN)
	util.Metrics.ShowdownReached()

	if err := h.tellBoth("--- SHOWDOWN ---"); err != nil {
		return nil, err
	}
	if err := h.tellBoth(fmt.Sprintf("Community cards: %s", poker.CardsToString(h.community))); err != nil {
		return nil, err
	}
	for i, p := range h.players {
		other := h.otherPlayer(p)
		if err := h.tell(p, fmt.Sprintf("Your cards: %s", poker.CardsToString(h.holes[i]))); err != nil {
			return nil, err
		}
		if err := h.tell(p, fmt.Sprintf("%s cards: %s", other.Name, poker.CardsToString(h.holes[1-i]))); err != nil {
			return nil, err
		}
	}

	scores := [2]poker.Score{}
	for i := range h.players {
		seven := make([]poker.Card, 0, 7)
		seven = append(seven, h.holes[i]...)
		seven = append(seven, h.community...)
		scores[i] = poker.Evaluate(seven)
	}
	for i, p := range h.players {
		other := h.otherPlayer(p)
		if err := h.tell(p, fmt.Sprintf("Your hand: %s", scores[i])); err != nil {
			return nil, err
		}
		if err := h.tell(p, fmt.Sprintf("%s hand: %s", other.Name, scores[1-i])); err != nil {
			return nil, err
		}
	}

	var winnerLabel string
	switch cmp := scores[0].Cmp(scores[1]); {
	case cmp > 0:
		winnerLabel = seatLabel(h.players[0])
		h.players[0].Stack += h.pot
		toWinner := fmt.Sprintf("You win the pot of %d!", h.pot)
		toLoser := fmt.Sprintf("%s wins the pot of %d.", h.players[0].Name, h.pot)
		if err := h.announce(h.players[0], toWinner, toLoser); err != nil {
			return nil, err
		}
	case cmp < 0:
		winnerLabel = seatLabel(h.players[1])
		h.players[1].Stack += h.pot
		toWinner := fmt.Sprintf("You win the pot of %d!", h.pot)
		toLoser := fmt.Sprintf("%s wins the pot of %d.", h.players[1].Name, h.pot)
		if err := h.announce(h.players[1], toWinner, toLoser); err != nil {
			return nil, err
		}
	default:
		// Floor split. An odd pot leaves one chip on the table, awarded
		// to nobody.
		winnerLabel = "split"
		h.players[0].Stack += h.pot / 2
		h.players[1].Stack += h.pot / 2
		if err := h.tellBoth("It's a tie! Pot is split."); err != nil {
			return nil, err
		}
	}

	h.event(HandEvent__FINISH)
	result := h.result(winnerLabel, "showdown", true)
	result.Scores = [2]string{scores[0].String(), scores[1].String()}
	return result, nil
}

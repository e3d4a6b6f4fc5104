package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	caches "tablestakes.com/headsup/caching"
	"tablestakes.com/headsup/client"
	"tablestakes.com/headsup/game"
	"tablestakes.com/headsup/logging"
	"tablestakes.com/headsup/relay"
	"tablestakes.com/headsup/transport"
	"tablestakes.com/headsup/util"
)

var runRelay *bool
var runHost *bool
var runJoin *bool
var runLocal *bool
var runGameScriptTests *bool
var gameScriptsFileOrDir *string
var testName *string
var relayAddr *string
var listenAddr *string
var connectAddr *string
var startingStack *int64
var mainLogger = logging.GetZeroLogger("main::main", nil)

const botCacheSize = 1024

func init() {
	runRelay = flag.Bool("relay", false, "runs the message relay")
	runHost = flag.Bool("host", false, "hosts a game for a remote opponent")
	runJoin = flag.Bool("join", false, "attends a hosted game from this terminal")
	runLocal = flag.Bool("local", false, "plays against the computer on this terminal")
	runGameScriptTests = flag.Bool("script-tests", false, "runs script tests")
	gameScriptsFileOrDir = flag.String("game-script", "game/test_scripts", "runs tests with game script files")
	testName = flag.String("testname", "", "runs a specific test")
	relayAddr = flag.String("relay-addr", "", "plays through the relay at this address instead of direct TCP")
	listenAddr = flag.String("listen", ":65432", "address to wait for a direct opponent on")
	connectAddr = flag.String("connect", "", "address of a directly hosted game")
	startingStack = flag.Int64("stack", game.DefaultStartingStack, "starting chips for each seat")
}

func main() {
	err := run()
	if err != nil {
		mainLogger.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run() error {
	logLevel := util.Env.GetZeroLogLogLevel()
	zerolog.SetGlobalLevel(logLevel)
	flag.Parse()

	switch {
	case *runRelay:
		return runRelayServer()
	case *runGameScriptTests:
		return game.RunGameScriptTests(*gameScriptsFileOrDir, *testName)
	case *runHost:
		return hostGame()
	case *runJoin:
		return joinGame()
	case *runLocal:
		return playLocalGame()
	}
	flag.Usage()
	return errors.New("choose one of -relay, -host, -join, -local, -script-tests")
}

func runRelayServer() error {
	router := relay.NewRouter()
	go func() {
		if err := relay.RunRestServer(router, util.Env.GetRelayRestAddr()); err != nil {
			mainLogger.Error().Msgf("Admin endpoint stopped: %s", err)
		}
	}()
	return router.Listen(util.Env.GetRelayAddr())
}

// hostGame seats the operator at seat 1 and a remote opponent at seat 2,
// reached either directly or through the relay.
func hostGame() error {
	sess, err := opponentSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	tracker, err := game.NewHandTrackerFromEnv()
	if err != nil {
		return errors.Wrap(err, "unable to set up the hand history tracker")
	}

	seat1 := game.NewPlayer(1, "You", *startingStack, game.NewLocalIO(os.Stdin, os.Stdout))
	seat2 := game.NewPlayer(2, "Opponent", *startingStack, transport.NewPlayerLink(sess))
	return game.NewSession(seat1, seat2, tracker).Run()
}

// opponentSession waits for a direct connection, or picks a peer off the
// relay when -relay-addr is set.
func opponentSession() (transport.Session, error) {
	if *relayAddr == "" {
		return transport.ListenDirect(*listenAddr)
	}

	rc, err := transport.DialRelay(*relayAddr)
	if err != nil {
		return nil, err
	}
	ids, err := rc.ListClients()
	if err != nil {
		rc.Close()
		return nil, err
	}
	others := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != rc.ID() {
			others = append(others, id)
		}
	}
	if len(others) == 0 {
		rc.Close()
		return nil, errors.New("no opponent is connected to the relay yet")
	}
	fmt.Println("Connected clients:")
	for i, id := range others {
		fmt.Printf("  %d: %s\n", i+1, id)
	}
	peerID, err := game.NewLocalIO(os.Stdin, os.Stdout).
		RequestAction("Enter the opponent's session id: ")
	if err != nil {
		rc.Close()
		return nil, err
	}
	peerID = strings.TrimSpace(peerID)
	valid := false
	for _, id := range others {
		if id == peerID {
			valid = true
			break
		}
	}
	if !valid {
		rc.Close()
		return nil, errors.Errorf("%s is not a connected session id", peerID)
	}
	return rc.Bind(peerID), nil
}

// joinGame runs the console client against a direct host, or waits on
// the relay for a host to pick this session.
func joinGame() error {
	if *relayAddr != "" {
		rc, err := transport.DialRelay(*relayAddr)
		if err != nil {
			return err
		}
		defer rc.Close()
		fmt.Printf("Your session id is %s. Waiting for a host...\n", rc.ID())
		sess, err := rc.AwaitPeer()
		if err != nil {
			return err
		}
		return client.Run(sess, os.Stdin, os.Stdout)
	}

	if *connectAddr == "" {
		return errors.New("-join needs -connect or -relay-addr")
	}
	sess, err := transport.DialDirect(*connectAddr)
	if err != nil {
		return err
	}
	defer sess.Close()
	return client.Run(sess, os.Stdin, os.Stdout)
}

// playLocalGame seats the operator against the bot, no network at all.
func playLocalGame() error {
	cache, err := caches.NewScoreCache(botCacheSize)
	if err != nil {
		return errors.Wrap(err, "unable to create the bot's score cache")
	}
	tracker, err := game.NewHandTrackerFromEnv()
	if err != nil {
		return errors.Wrap(err, "unable to set up the hand history tracker")
	}

	seat1 := game.NewPlayer(1, "You", *startingStack, game.NewLocalIO(os.Stdin, os.Stdout))
	seat2 := game.NewPlayer(2, "CPU", *startingStack, game.NewBotIO("CPU", nil, cache))
	return game.NewSession(seat1, seat2, tracker).Run()
}

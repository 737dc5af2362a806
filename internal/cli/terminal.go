package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/engine"
)

// Screen is a navigation destination of the terminal front-end.
type Screen string

const (
	ScreenMenu     Screen = "menu"
	ScreenSettings Screen = "settings"
	ScreenGame     Screen = "game"
	ScreenResult   Screen = "result"
	screenExit     Screen = "exit"
)

const (
	minSecondsPerRound = 5
	maxSecondsPerRound = 30
	progressBarWidth   = 20
)

var roundPresets = []int{5, 10, 15}

// Terminal renders the menu, settings, game and result screens on a line
// based terminal. Settings edited on the settings screen are read once, when
// the next game starts.
type Terminal struct {
	service  *app.GameService
	settings domain.SessionConfig
	in       io.Reader
	out      io.Writer

	lines  <-chan string
	result domain.SessionResult
}

func NewTerminal(service *app.GameService, settings domain.SessionConfig, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		service:  service,
		settings: settings,
		in:       in,
		out:      out,
	}
}

// Settings returns the values the next game will start with.
func (t *Terminal) Settings() domain.SessionConfig {
	return t.settings
}

// Run navigates between screens until the user quits, input ends or ctx is
// cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	t.lines = readLines(t.in)

	screen := ScreenMenu
	for screen != screenExit {
		var err error
		switch screen {
		case ScreenMenu:
			screen, err = t.menu(ctx)
		case ScreenSettings:
			screen, err = t.settingsScreen(ctx)
		case ScreenGame:
			screen, err = t.game(ctx)
		case ScreenResult:
			screen, err = t.resultScreen(ctx)
		default:
			return fmt.Errorf("unknown screen %q", screen)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
	return nil
}

func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// readLine returns false once input is exhausted.
func (t *Terminal) readLine(ctx context.Context) (string, bool, error) {
	select {
	case line, ok := <-t.lines:
		return strings.TrimSpace(line), ok, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func (t *Terminal) menu(ctx context.Context) (Screen, error) {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "== Menu ==")
	fmt.Fprintln(t.out, "1. Start game")
	fmt.Fprintln(t.out, "2. Settings")
	fmt.Fprintln(t.out, "3. Quit")

	for {
		fmt.Fprint(t.out, "> ")
		line, ok, err := t.readLine(ctx)
		if err != nil || !ok {
			return screenExit, err
		}
		switch strings.ToLower(line) {
		case "1", "start", "s":
			return ScreenGame, nil
		case "2", "settings":
			return ScreenSettings, nil
		case "3", "quit", "q":
			return screenExit, nil
		default:
			fmt.Fprintln(t.out, "Please choose 1, 2 or 3.")
		}
	}
}

func (t *Terminal) settingsScreen(ctx context.Context) (Screen, error) {
	for {
		t.renderSettings()
		fmt.Fprint(t.out, "> ")
		line, ok, err := t.readLine(ctx)
		if err != nil || !ok {
			return screenExit, err
		}

		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "back", "b", "save":
			return ScreenMenu, nil
		case "difficulty", "d":
			if len(fields) != 2 {
				fmt.Fprintln(t.out, "Usage: difficulty <easy|normal|hard>")
				continue
			}
			difficulty := domain.ParseDifficulty(fields[1])
			if !difficulty.Known() {
				fmt.Fprintf(t.out, "Unknown difficulty %q.\n", fields[1])
				continue
			}
			t.settings.Difficulty = difficulty
		case "rounds", "r":
			n, err := argInt(fields)
			if err != nil || !isRoundPreset(n) {
				fmt.Fprintf(t.out, "Rounds must be one of %s.\n", presetList())
				continue
			}
			t.settings.RoundCount = n
		case "time", "t":
			n, err := argInt(fields)
			if err != nil || n < minSecondsPerRound || n > maxSecondsPerRound {
				fmt.Fprintf(t.out, "Time per round must be between %d and %d seconds.\n", minSecondsPerRound, maxSecondsPerRound)
				continue
			}
			t.settings.SecondsPerRound = n
		default:
			fmt.Fprintf(t.out, "Unknown setting %q.\n", fields[0])
		}
	}
}

func (t *Terminal) renderSettings() {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "== Settings ==")
	names := make([]string, len(domain.Difficulties))
	for i, d := range domain.Difficulties {
		names[i] = string(d)
	}
	fmt.Fprintf(t.out, "Difficulty: %s (%s)\n", t.settings.Difficulty, strings.Join(names, ", "))
	fmt.Fprintf(t.out, "Rounds: %d (%s)\n", t.settings.RoundCount, presetList())
	fmt.Fprintf(t.out, "Time per round: %d seconds (%d-%d)\n", t.settings.SecondsPerRound, minSecondsPerRound, maxSecondsPerRound)
	fmt.Fprintln(t.out, "Commands: difficulty <name>, rounds <n>, time <seconds>, back")
}

func (t *Terminal) game(ctx context.Context) (Screen, error) {
	session, err := t.service.StartGame(ctx, t.settings)
	if err != nil {
		fmt.Fprintf(t.out, "Cannot start game: %v\n", err)
		return ScreenMenu, nil
	}

	snapshots := session.Snapshots()
	var (
		current domain.RoundSnapshot
		input   <-chan string
	)
	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			if snap.RoundNumber != current.RoundNumber {
				t.renderRound(snap)
				// Accept one answer per round.
				input = t.lines
			}
			t.renderCountdown(snap)
			current = snap

		case line, ok := <-input:
			if !ok {
				t.abandon(session)
				return screenExit, nil
			}
			line = strings.TrimSpace(line)
			if strings.EqualFold(line, "q") {
				t.abandon(session)
				fmt.Fprintln(t.out, "\nGame abandoned.")
				return ScreenMenu, nil
			}
			option, valid := optionForLetter(current.Options, line)
			if !valid {
				fmt.Fprintf(t.out, "\nPlease enter a letter A-%c, or q to quit.\n", 'A'+rune(len(current.Options))-1)
				continue
			}
			if err := t.service.SubmitAnswer(session.ID(), current.RoundNumber, option); err != nil {
				continue
			}
			input = nil

		case result := <-session.Done():
			fmt.Fprintln(t.out)
			if result.Status == domain.StatusAbandoned {
				return ScreenMenu, nil
			}
			t.result = result
			return ScreenResult, nil

		case <-ctx.Done():
			t.abandon(session)
			return screenExit, ctx.Err()
		}
	}
}

func (t *Terminal) abandon(session *engine.Session) {
	_ = t.service.Abandon(session.ID())
	<-session.Finished()
}

func (t *Terminal) renderRound(snap domain.RoundSnapshot) {
	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "\nRound %d/%d  (score %d)\n", snap.RoundNumber, snap.TotalRounds, snap.CurrentScore)
	fmt.Fprintln(t.out, snap.QuestionText)
	for i, option := range snap.Options {
		fmt.Fprintf(t.out, "  %c. %s\n", 'A'+rune(i), option)
	}
}

func (t *Terminal) renderCountdown(snap domain.RoundSnapshot) {
	fmt.Fprintf(t.out, "\r%s %2ds > ", progressBar(snap.SecondsRemaining, snap.SecondsPerRound, progressBarWidth), snap.SecondsRemaining)
}

func (t *Terminal) resultScreen(ctx context.Context) (Screen, error) {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "== Result ==")
	fmt.Fprintf(t.out, "Your score: %d/%d\n", t.result.FinalScore, t.result.TotalRounds)
	fmt.Fprintln(t.out, "Press Enter to return to the menu.")

	_, ok, err := t.readLine(ctx)
	if err != nil || !ok {
		return screenExit, err
	}
	return ScreenMenu, nil
}

// progressBar draws remaining/total as a bar of width cells.
func progressBar(remaining, total, width int) string {
	filled := 0
	if total > 0 {
		filled = remaining * width / total
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func optionForLetter(options []string, input string) (string, bool) {
	if len(input) != 1 {
		return "", false
	}
	idx := int(strings.ToUpper(input)[0]) - 'A'
	if idx < 0 || idx >= len(options) {
		return "", false
	}
	return options[idx], true
}

func argInt(fields []string) (int, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("expected one argument")
	}
	return strconv.Atoi(fields[1])
}

func isRoundPreset(n int) bool {
	for _, preset := range roundPresets {
		if n == preset {
			return true
		}
	}
	return false
}

func presetList() string {
	parts := make([]string, len(roundPresets))
	for i, preset := range roundPresets {
		parts[i] = strconv.Itoa(preset)
	}
	return strings.Join(parts, ", ")
}

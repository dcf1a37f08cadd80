package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-farm/internal/clock"
	"github.com/pixil98/go-farm/internal/display"
	"github.com/pixil98/go-farm/internal/farm"
	"github.com/pixil98/go-farm/internal/inventory"
	"github.com/pixil98/go-farm/internal/storage"
)

// Ticker forces a driver pass outside the timer, used right after a
// time warp.
type Ticker interface {
	Tick(ctx context.Context) error
}

// Shell is the operator console over a running farm. Every connection
// gets its own session; all sessions act on the same engine, can, and
// bag, so two operators see each other's work.
type Shell struct {
	engine *farm.Engine
	cal    *clock.Calendar
	bag    *inventory.Ledger
	can    *inventory.WateringCan
	crops  *storage.SelectableStorer[*farm.Crop]
	driver Ticker
	mapId  storage.Identifier

	commands *commandSet
}

func NewShell(engine *farm.Engine, cal *clock.Calendar, bag *inventory.Ledger, can *inventory.WateringCan, crops *storage.SelectableStorer[*farm.Crop], driver Ticker, mapId storage.Identifier) *Shell {
	return &Shell{
		engine:   engine,
		cal:      cal,
		bag:      bag,
		can:      can,
		crops:    crops,
		driver:   driver,
		mapId:    mapId,
		commands: newCommandSet(),
	}
}

// Run drives one console session until quit, connection loss, or
// context cancellation.
func (s *Shell) Run(ctx context.Context, conn io.ReadWriter) error {
	sess := &session{Shell: s, conn: conn, mapId: s.mapId, input: make(chan string)}
	return sess.run(ctx)
}

type session struct {
	*Shell
	conn  io.ReadWriter
	mapId storage.Identifier
	input chan string
	quit  bool
}

func (s *session) run(ctx context.Context) error {
	// Read input lines into a channel so the select below can also
	// honor context cancellation.
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.conn)
		for scanner.Scan() {
			s.input <- scanner.Text()
		}
		inputErrChan <- scanner.Err()
		close(s.input)
	}()

	if err := s.writeLine("Welcome to the farm. Type 'help' for commands."); err != nil {
		return err
	}
	if err := s.exec(ctx, "look", nil); err != nil {
		return fmt.Errorf("initial look failed: %w", err)
	}
	if err := s.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-s.input:
			if !ok {
				// Connection lost.
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line == "" {
				if err := s.prompt(); err != nil {
					return err
				}
				continue
			}

			parts := strings.Fields(line)
			if err := s.exec(ctx, strings.ToLower(parts[0]), parts[1:]); err != nil {
				return err
			}

			if s.quit {
				if err := s.writeLine("Goodbye!"); err != nil {
					slog.Warn("writing goodbye", "error", err)
				}
				return nil
			}

			if err := s.prompt(); err != nil {
				return err
			}
		}
	}
}

// exec dispatches one command. User errors are written to the session;
// anything else is a system error that ends it.
func (s *session) exec(ctx context.Context, name string, args []string) error {
	cmd, ok := s.commands.byName[name]
	if !ok {
		return s.writeLine(s.commands.unknown(name))
	}

	err := cmd.run(s, ctx, args)
	if err != nil {
		var userErr *UserError
		if errors.As(err, &userErr) {
			return s.writeLine(userErr.Message)
		}
		return fmt.Errorf("command %q failed: %w", name, err)
	}
	return nil
}

func (s *session) prompt() error {
	_, err := fmt.Fprintf(s.conn, "[%s %d | can %d/%d] > ",
		display.Capitalize(s.cal.CurrentSeason().String()),
		s.cal.DayOfSeason(),
		s.can.Charges(),
		s.can.Capacity(),
	)
	return err
}

func (s *session) writeLine(msg string) error {
	_, err := s.conn.Write([]byte(display.Wrap(msg) + "\n"))
	return err
}

// promptIO returns a ReadWriter for mid-session prompt flows. The line
// reader goroutine owns the connection's read side, so prompt answers
// have to arrive through the same input channel as commands.
func (s *session) promptIO() io.ReadWriter {
	return &promptIO{s: s}
}

type promptIO struct {
	s       *session
	pending []byte
}

func (p *promptIO) Read(b []byte) (int, error) {
	if len(p.pending) == 0 {
		line, ok := <-p.s.input
		if !ok {
			return 0, io.EOF
		}
		p.pending = []byte(line + "\n")
	}

	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *promptIO) Write(b []byte) (int, error) {
	return p.s.conn.Write(b)
}

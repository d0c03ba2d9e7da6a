// Package spectator serves auto battles to SSH terminals. Connecting runs one
// battle against the opponent named in the command and streams its log:
//
//	ssh -p 2222 arena.example.com forest-troll fast
//	ssh -p 2222 arena.example.com list
package spectator

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gliderlabs/ssh"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

// Config configures the spectator server
type Config struct {
	Addr string
	// HostKeyFile is a PEM private key. Without one an ephemeral key is generated.
	HostKeyFile  string
	ArenaService arena.Service
}

// Validate ensures all required settings are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Addr", c.Addr, vb)
	if c.ArenaService == nil {
		vb.RequiredField("ArenaService")
	}
	return vb.Build()
}

// Server accepts SSH connections and plays a battle for each
type Server struct {
	arenaService arena.Service
	server       *ssh.Server
}

// New creates a spectator server
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{arenaService: cfg.ArenaService}
	s.server = &ssh.Server{
		Addr:    cfg.Addr,
		Handler: s.handleSession,
	}
	if cfg.HostKeyFile != "" {
		if err := s.server.SetOption(ssh.HostKeyFile(cfg.HostKeyFile)); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to load host key").
				WithMeta("path", cfg.HostKeyFile)
		}
	}

	return s, nil
}

// ListenAndServe blocks until the server is closed
func (s *Server) ListenAndServe() error {
	slog.Info("Spectator listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != ssh.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for open ones to finish
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleSession(sess ssh.Session) {
	user := sess.User()
	slog.Info("Spectator connected", "user", user, "remote_addr", sess.RemoteAddr().String())

	if err := s.Run(sess.Context(), sess, user, sess.Command()); err != nil {
		_, _ = fmt.Fprintf(sess, "error: %s\n", errors.GetMessage(err))
		_ = sess.Exit(1)
		return
	}
	_ = sess.Exit(0)
}

// Run executes one spectator command, writing the output to w
func (s *Server) Run(ctx context.Context, w io.Writer, user string, args []string) error {
	if len(args) > 0 && args[0] == "list" {
		return s.list(ctx, w)
	}

	var opponentID, speed string
	if len(args) > 0 {
		opponentID = args[0]
	}
	if len(args) > 1 {
		speed = args[1]
	}
	if opponentID == "" {
		opponents, err := s.arenaService.ListOpponents(ctx, &arena.ListOpponentsInput{})
		if err != nil {
			return err
		}
		if len(opponents.Opponents) == 0 {
			return errors.NotFound("the roster has no opponents")
		}
		opponentID = opponents.Opponents[0].ID
	}
	if user == "" {
		user = "spectator"
	}

	return s.watch(ctx, w, user, opponentID, speed)
}

func (s *Server) list(ctx context.Context, w io.Writer) error {
	out, err := s.arenaService.ListOpponents(ctx, &arena.ListOpponentsInput{})
	if err != nil {
		return err
	}
	for _, opponent := range out.Opponents {
		_, _ = fmt.Fprintln(w, renderOpponent(opponent))
	}
	return nil
}

func (s *Server) watch(ctx context.Context, w io.Writer, user, opponentID, speed string) error {
	created, err := s.arenaService.CreateSession(ctx, &arena.CreateSessionInput{
		PlayerID:   user,
		OpponentID: opponentID,
		Speed:      speed,
	})
	if err != nil {
		return err
	}
	sessionID := created.Session.SessionID

	defer func() {
		// the connection context may already be gone
		if _, err := s.arenaService.EndSession(context.Background(), &arena.EndSessionInput{SessionID: sessionID}); err != nil {
			slog.Warn("Failed to end spectator session", "session_id", sessionID, "error", err)
		}
	}()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	watch, err := s.arenaService.Watch(watchCtx, &arena.WatchInput{SessionID: sessionID})
	if err != nil {
		return err
	}

	if _, err := s.arenaService.StartBattle(ctx, &arena.StartBattleInput{SessionID: sessionID}); err != nil {
		return err
	}
	if _, err := s.arenaService.SetAutoProgress(ctx, &arena.SetAutoProgressInput{SessionID: sessionID, Enabled: true}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-watch.Updates:
			if !ok {
				return nil
			}
			if update.Entry != nil {
				_, _ = fmt.Fprintln(w, renderEntry(update.Entry))
			}
			if update.State.IsTerminal() {
				return s.summary(ctx, w, sessionID)
			}
		}
	}
}

// summary prints the final standings
func (s *Server) summary(ctx context.Context, w io.Writer, sessionID string) error {
	out, err := s.arenaService.GetSession(ctx, &arena.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(w, renderSummary(out.Session, out.Balance))
	return nil
}

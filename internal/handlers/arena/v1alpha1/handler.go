package v1alpha1

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/orchestrators/arena"
)

// HandlerConfig holds dependencies for the arena handler
type HandlerConfig struct {
	ArenaService arena.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.ArenaService == nil {
		return errors.InvalidArgument("arena service is required")
	}
	return nil
}

// Handler implements the arena gRPC service
type Handler struct {
	arenaService arena.Service
}

// Ensure Handler implements the server interface
var _ ArenaServiceServer = (*Handler)(nil)

// NewHandler creates a new arena handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		arenaService: cfg.ArenaService,
	}, nil
}

// ListOpponents returns the opponents a session can choose from
func (h *Handler) ListOpponents(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.arenaService.ListOpponents(ctx, &arena.ListOpponentsInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	opponents := make([]any, len(out.Opponents))
	for i, opponent := range out.Opponents {
		opponents[i] = convertEntity(opponent)
	}

	return respond(map[string]any{"opponents": opponents})
}

// CreateSession opens a session for a player
func (h *Handler) CreateSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if stringField(req, FieldPlayerID) == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("player_id is required"))
	}

	out, err := h.arenaService.CreateSession(ctx, &arena.CreateSessionInput{
		PlayerID:   stringField(req, FieldPlayerID),
		OpponentID: stringField(req, FieldOpponentID),
		Speed:      stringField(req, FieldSpeed),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"session": convertSnapshot(out.Session)})
}

// GetSession returns a session snapshot and the player's balance
func (h *Handler) GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.arenaService.GetSession(ctx, &arena.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"session": convertSnapshot(out.Session),
		"balance": out.Balance,
	})
}

// EndSession closes a session
func (h *Handler) EndSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	if _, err := h.arenaService.EndSession(ctx, &arena.EndSessionInput{SessionID: sessionID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &structpb.Struct{}, nil
}

// ChooseOpponent loads a fresh opponent into the session
func (h *Handler) ChooseOpponent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}
	if stringField(req, FieldOpponentID) == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("opponent_id is required"))
	}

	out, err := h.arenaService.ChooseOpponent(ctx, &arena.ChooseOpponentInput{
		SessionID:  sessionID,
		OpponentID: stringField(req, FieldOpponentID),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"session": convertSnapshot(out.Session)})
}

// StartBattle starts the chosen encounter
func (h *Handler) StartBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.arenaService.StartBattle(ctx, &arena.StartBattleInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"session": convertSnapshot(out.Session)})
}

// ProgressBattle plays one turn
func (h *Handler) ProgressBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.arenaService.ProgressBattle(ctx, &arena.ProgressBattleInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"session":    convertSnapshot(out.Session),
		"progressed": out.Progressed,
	})
}

// ResetBattle restores both combatants and clears the log
func (h *Handler) ResetBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.arenaService.ResetBattle(ctx, &arena.ResetBattleInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"session": convertSnapshot(out.Session)})
}

// SetAutoProgress toggles auto-advance
func (h *Handler) SetAutoProgress(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.arenaService.SetAutoProgress(ctx, &arena.SetAutoProgressInput{
		SessionID: sessionID,
		Enabled:   boolField(req, FieldEnabled),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"session": convertSnapshot(out.Session)})
}

// SetSpeed changes the auto-advance pace
func (h *Handler) SetSpeed(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.arenaService.SetSpeed(ctx, &arena.SetSpeedInput{
		SessionID: sessionID,
		Speed:     stringField(req, FieldSpeed),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"session": convertSnapshot(out.Session)})
}

// DeliverRewards credits undelivered victory gold
func (h *Handler) DeliverRewards(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.arenaService.DeliverRewards(ctx, &arena.DeliverRewardsInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"session": convertSnapshot(out.Session),
		"balance": out.Balance,
	})
}

// WatchBattle sends the current snapshot, then every update until the session
// ends or the client goes away
func (h *Handler) WatchBattle(req *structpb.Struct, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return err
	}
	ctx := stream.Context()

	// subscribe first so nothing between the snapshot and the stream is lost
	watch, err := h.arenaService.Watch(ctx, &arena.WatchInput{SessionID: sessionID})
	if err != nil {
		return errors.ToGRPCError(err)
	}

	current, err := h.arenaService.GetSession(ctx, &arena.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return errors.ToGRPCError(err)
	}
	first, err := respond(map[string]any{
		"session": convertSnapshot(current.Session),
		"balance": current.Balance,
	})
	if err != nil {
		return err
	}
	if err := stream.Send(first); err != nil {
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
			msg, err := respond(convertUpdate(update))
			if err != nil {
				return err
			}
			if err := stream.Send(msg); err != nil {
				slog.Debug("Watcher went away",
					"session_id", sessionID,
					"error", err)
				return err
			}
		}
	}
}

func requireSessionID(req *structpb.Struct) (string, error) {
	id := stringField(req, FieldSessionID)
	if id == "" {
		return "", errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}
	return id, nil
}

func respond(m map[string]any) (*structpb.Struct, error) {
	s, err := toStruct(m)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return s, nil
}

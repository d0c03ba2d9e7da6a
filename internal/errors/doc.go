// Package errors provides structured errors for the arena service.
//
// Errors carry a Code, a user-facing message, an optional cause and metadata.
// Codes map onto gRPC status codes for the gRPC surface and onto HTTP statuses
// for the dashboard REST surface.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("session not found")
//	err := errors.InvalidArgumentf("unknown battle speed: %s", speed)
//
// Adding metadata:
//
//	err := errors.NotFound("opponent not found").
//	    WithMeta("opponent_id", opponentID)
//
// Wrapping errors:
//
//	if _, err := wallet.Credit(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to credit battle rewards")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("session_id", input.SessionID, vb)
//	errors.ValidateEnum("speed", input.Speed, []string{"slow", "normal", "fast"}, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
//
// # Transport
//
// Handlers return errors.ToGRPCError(err) from gRPC methods and use
// errors.GetCode(err).HTTPStatus() in REST handlers. Metadata travels as a
// google.protobuf.Struct status detail and is restored by FromGRPCError.
//
// # Layer Guidelines
//
// Repositories return NotFound and wrap storage failures. Orchestrators validate input
// (InvalidArgument) and state (FailedPrecondition). Handlers only convert.
package errors

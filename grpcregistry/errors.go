package grpcregistry

import (
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/tokenreg/ledger"
	"xdao.co/tokenreg/registry"
)

// mapErr converts registry/ledger failures into gRPC status errors.
//
// Structured registry errors carry their stable code as a message prefix
// ("REG-AUTH-001: ...") so the client can reconstruct them.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var re *registry.Error
	if errors.As(err, &re) {
		msg := string(re.Code) + ": " + re.Message
		switch re.Kind {
		case registry.KindAuth:
			return status.Error(codes.PermissionDenied, msg)
		case registry.KindInput:
			return status.Error(codes.InvalidArgument, msg)
		case registry.KindState:
			return status.Error(codes.FailedPrecondition, msg)
		}
		return status.Error(codes.Internal, msg)
	}
	if errors.Is(err, ledger.ErrSupplyExceeded) {
		return status.Error(codes.ResourceExhausted, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// mapRPC converts a gRPC status error back into a structured registry
// error where the server encoded one, and ledger.ErrSupplyExceeded for
// over-cap mints. Other failures pass through untouched.
func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if st.Code() == codes.ResourceExhausted {
		return ledger.ErrSupplyExceeded
	}

	code, msg, found := strings.Cut(st.Message(), ": ")
	if !found || !strings.HasPrefix(code, "REG-") {
		return err
	}
	var kind registry.Kind
	switch {
	case strings.HasPrefix(code, "REG-AUTH-"):
		kind = registry.KindAuth
	case strings.HasPrefix(code, "REG-IN-"):
		kind = registry.KindInput
	case strings.HasPrefix(code, "REG-ST-"):
		kind = registry.KindState
	default:
		return err
	}
	return &registry.Error{Kind: kind, Code: registry.Code(code), Message: msg}
}

package grpcregistry

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/registry"
	"xdao.co/tokenreg/tokenid"
)

// Server exposes a registry.Registry over the Registry gRPC service.
type Server struct {
	UnimplementedRegistryServer
	Registry *registry.Registry
	Ledger   registry.Ledger
}

func (s *Server) ready() error {
	if s == nil || s.Registry == nil || s.Ledger == nil {
		return status.Error(codes.FailedPrecondition, "missing registry")
	}
	return nil
}

func (s *Server) TokenInfo(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	id, err := decodeID(in.GetValue())
	if err != nil {
		return nil, err
	}
	info, err := structpb.NewStruct(map[string]interface{}{
		"creator":          s.Registry.Creator(id).String(),
		"origin":           s.Registry.Origin(id).String(),
		"index":            strconv.FormatUint(s.Registry.Index(id), 10),
		"max_supply":       strconv.FormatUint(s.Registry.MaxSupply(id), 10),
		"remaining_supply": strconv.FormatUint(s.Registry.RemainingSupply(id), 10),
		"total_supply":     strconv.FormatUint(s.Ledger.TotalSupply(id), 10),
		"uri":              s.Ledger.URI(id),
		"permanent":        s.Ledger.IsPermanent(id),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "response encoding failed")
	}
	return info, nil
}

func (s *Server) RegistryInfo(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	_, _ = ctx, in
	if err := s.ready(); err != nil {
		return nil, err
	}
	info, err := structpb.NewStruct(map[string]interface{}{
		"admin":           s.Registry.Admin().String(),
		"template_uri":    s.Ledger.TemplateURI(),
		"migrate_enabled": s.Registry.MigrateEnabled(),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, "response encoding failed")
	}
	return info, nil
}

func (s *Server) BalanceOf(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	owner, err := fieldAccount(in, "owner")
	if err != nil {
		return nil, err
	}
	id, err := fieldID(in, "id")
	if err != nil {
		return nil, err
	}
	bal := s.Ledger.BalanceOf(owner, id)
	return wrapperspb.String(strconv.FormatUint(bal, 10)), nil
}

func (s *Server) Mint(ctx context.Context, in *structpb.Struct) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	caller, err := fieldAccount(in, "caller")
	if err != nil {
		return nil, err
	}
	to, err := fieldAccount(in, "to")
	if err != nil {
		return nil, err
	}
	id, err := fieldID(in, "id")
	if err != nil {
		return nil, err
	}
	quantity, err := fieldU64(in, "quantity")
	if err != nil {
		return nil, err
	}
	data := []byte(fieldStringOr(in, "data", ""))
	if err := s.Registry.Mint(caller, to, id, quantity, data); err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bool(true), nil
}

func (s *Server) MintBatch(ctx context.Context, in *structpb.Struct) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	caller, err := fieldAccount(in, "caller")
	if err != nil {
		return nil, err
	}
	to, err := fieldAccount(in, "to")
	if err != nil {
		return nil, err
	}
	ids, err := fieldIDList(in, "ids")
	if err != nil {
		return nil, err
	}
	quantities, err := fieldU64List(in, "quantities")
	if err != nil {
		return nil, err
	}
	data := []byte(fieldStringOr(in, "data", ""))
	if err := s.Registry.MintBatch(caller, to, ids, quantities, data); err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bool(true), nil
}

func (s *Server) SetCreator(ctx context.Context, in *structpb.Struct) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	caller, err := fieldAccount(in, "caller")
	if err != nil {
		return nil, err
	}
	id, err := fieldID(in, "id")
	if err != nil {
		return nil, err
	}
	to, err := fieldAccount(in, "to")
	if err != nil {
		return nil, err
	}
	if err := s.Registry.SetCreator(caller, id, to); err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bool(true), nil
}

func (s *Server) Migrate(ctx context.Context, in *structpb.Struct) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	caller, err := fieldAccount(in, "caller")
	if err != nil {
		return nil, err
	}
	records, err := fieldRecords(in, "records")
	if err != nil {
		return nil, err
	}
	if err := s.Registry.Migrate(caller, records); err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bool(true), nil
}

func (s *Server) DisableMigrate(ctx context.Context, in *structpb.Struct) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	caller, err := fieldAccount(in, "caller")
	if err != nil {
		return nil, err
	}
	if err := s.Registry.DisableMigrate(caller); err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bool(true), nil
}

func (s *Server) AddSharedProxy(ctx context.Context, in *structpb.Struct) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	caller, err := fieldAccount(in, "caller")
	if err != nil {
		return nil, err
	}
	addr, err := fieldAccount(in, "address")
	if err != nil {
		return nil, err
	}
	if err := s.Registry.AddSharedProxy(caller, addr); err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bool(true), nil
}

func (s *Server) RemoveSharedProxy(ctx context.Context, in *structpb.Struct) (*wrapperspb.BoolValue, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	caller, err := fieldAccount(in, "caller")
	if err != nil {
		return nil, err
	}
	addr, err := fieldAccount(in, "address")
	if err != nil {
		return nil, err
	}
	if err := s.Registry.RemoveSharedProxy(caller, addr); err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bool(true), nil
}

// Request decoding helpers. All malformed-request failures surface as
// InvalidArgument before any registry code runs.

func decodeID(s string) (tokenid.ID, error) {
	id, err := tokenid.Parse(s)
	if err != nil {
		return tokenid.ID{}, status.Error(codes.InvalidArgument, err.Error())
	}
	return id, nil
}

func fieldValue(in *structpb.Struct, name string) (*structpb.Value, error) {
	v, ok := in.GetFields()[name]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("missing field %q", name))
	}
	return v, nil
}

func fieldString(in *structpb.Struct, name string) (string, error) {
	v, err := fieldValue(in, name)
	if err != nil {
		return "", err
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Error(codes.InvalidArgument, fmt.Sprintf("field %q must be a string", name))
	}
	return sv.StringValue, nil
}

func fieldStringOr(in *structpb.Struct, name, fallback string) string {
	s, err := fieldString(in, name)
	if err != nil {
		return fallback
	}
	return s
}

func fieldAccount(in *structpb.Struct, name string) (account.Account, error) {
	s, err := fieldString(in, name)
	if err != nil {
		return account.Zero, err
	}
	a, err := account.Parse(s)
	if err != nil {
		return account.Zero, status.Error(codes.InvalidArgument, err.Error())
	}
	return a, nil
}

func fieldID(in *structpb.Struct, name string) (tokenid.ID, error) {
	s, err := fieldString(in, name)
	if err != nil {
		return tokenid.ID{}, err
	}
	return decodeID(s)
}

func fieldU64(in *structpb.Struct, name string) (uint64, error) {
	s, err := fieldString(in, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, status.Error(codes.InvalidArgument, fmt.Sprintf("field %q must be a decimal string", name))
	}
	return n, nil
}

func fieldList(in *structpb.Struct, name string) ([]*structpb.Value, error) {
	v, err := fieldValue(in, name)
	if err != nil {
		return nil, err
	}
	lv, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("field %q must be a list", name))
	}
	return lv.ListValue.GetValues(), nil
}

func fieldIDList(in *structpb.Struct, name string) ([]tokenid.ID, error) {
	values, err := fieldList(in, name)
	if err != nil {
		return nil, err
	}
	ids := make([]tokenid.ID, 0, len(values))
	for _, v := range values {
		id, err := decodeID(v.GetStringValue())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func fieldU64List(in *structpb.Struct, name string) ([]uint64, error) {
	values, err := fieldList(in, name)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, 0, len(values))
	for _, v := range values {
		n, err := strconv.ParseUint(v.GetStringValue(), 10, 64)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("field %q must hold decimal strings", name))
		}
		out = append(out, n)
	}
	return out, nil
}

func fieldRecords(in *structpb.Struct, name string) ([]registry.OwnershipRecord, error) {
	values, err := fieldList(in, name)
	if err != nil {
		return nil, err
	}
	records := make([]registry.OwnershipRecord, 0, len(values))
	for _, v := range values {
		rec := v.GetStructValue()
		if rec == nil {
			return nil, status.Error(codes.InvalidArgument, "records must be objects")
		}
		id, err := fieldID(rec, "id")
		if err != nil {
			return nil, err
		}
		// The null owner is decoded, not rejected: the registry's own
		// validation must see it so the batch aborts with its error.
		ownerStr, err := fieldString(rec, "owner")
		if err != nil {
			return nil, err
		}
		owner, err := account.Parse(ownerStr)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		records = append(records, registry.OwnershipRecord{ID: id, Owner: owner})
	}
	return records, nil
}

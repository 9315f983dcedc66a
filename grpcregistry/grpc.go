// Package grpcregistry exposes a registry over gRPC.
//
// We intentionally use protobuf well-known types (StringValue, BoolValue,
// Struct) so this package does not require a protoc/codegen toolchain.
// Numeric fields travel as decimal strings: Struct numbers are float64,
// which cannot carry a full 56-bit token index exactly.
//
// Caller identity is a plain request field. The transport is expected to
// run inside a host that has already authenticated the caller (or behind
// an authenticating proxy); this package adds no authentication of its own.
package grpcregistry

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "xdao.tokenreg.grpcregistry.v1.Registry"

// RegistryServer is the server API for the Registry gRPC service.
type RegistryServer interface {
	TokenInfo(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	RegistryInfo(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	BalanceOf(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	Mint(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error)
	MintBatch(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error)
	SetCreator(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error)
	Migrate(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error)
	DisableMigrate(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error)
	AddSharedProxy(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error)
	RemoveSharedProxy(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error)
}

// UnimplementedRegistryServer can be embedded to have forward compatible implementations.
type UnimplementedRegistryServer struct{}

func (UnimplementedRegistryServer) TokenInfo(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method TokenInfo not implemented")
}
func (UnimplementedRegistryServer) RegistryInfo(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RegistryInfo not implemented")
}
func (UnimplementedRegistryServer) BalanceOf(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method BalanceOf not implemented")
}
func (UnimplementedRegistryServer) Mint(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Mint not implemented")
}
func (UnimplementedRegistryServer) MintBatch(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method MintBatch not implemented")
}
func (UnimplementedRegistryServer) SetCreator(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method SetCreator not implemented")
}
func (UnimplementedRegistryServer) Migrate(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Migrate not implemented")
}
func (UnimplementedRegistryServer) DisableMigrate(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method DisableMigrate not implemented")
}
func (UnimplementedRegistryServer) AddSharedProxy(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method AddSharedProxy not implemented")
}
func (UnimplementedRegistryServer) RemoveSharedProxy(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveSharedProxy not implemented")
}

// RegisterRegistryServer registers the Registry service on a gRPC server.
func RegisterRegistryServer(s grpc.ServiceRegistrar, srv RegistryServer) {
	s.RegisterService(&Registry_ServiceDesc, srv)
}

// RegistryClient is the client API for the Registry gRPC service.
type RegistryClient interface {
	TokenInfo(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	RegistryInfo(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	BalanceOf(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Mint(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	MintBatch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	SetCreator(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	Migrate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	DisableMigrate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	AddSharedProxy(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	RemoveSharedProxy(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type registryClient struct{ cc grpc.ClientConnInterface }

// NewRegistryClient returns the low-level RPC client. Most callers want
// Client, which speaks registry types.
func NewRegistryClient(cc grpc.ClientConnInterface) RegistryClient { return &registryClient{cc: cc} }

func (c *registryClient) TokenInfo(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/TokenInfo", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryClient) RegistryInfo(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/RegistryInfo", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryClient) BalanceOf(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/BalanceOf", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryClient) invokeBool(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryClient) Mint(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return c.invokeBool(ctx, "Mint", in, opts...)
}

func (c *registryClient) MintBatch(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return c.invokeBool(ctx, "MintBatch", in, opts...)
}

func (c *registryClient) SetCreator(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return c.invokeBool(ctx, "SetCreator", in, opts...)
}

func (c *registryClient) Migrate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return c.invokeBool(ctx, "Migrate", in, opts...)
}

func (c *registryClient) DisableMigrate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return c.invokeBool(ctx, "DisableMigrate", in, opts...)
}

func (c *registryClient) AddSharedProxy(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return c.invokeBool(ctx, "AddSharedProxy", in, opts...)
}

func (c *registryClient) RemoveSharedProxy(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return c.invokeBool(ctx, "RemoveSharedProxy", in, opts...)
}

// Handler plumbing below mirrors what protoc-gen-go-grpc would emit, with
// one closure factory per request type instead of one hand-written handler
// per method.

type stringCall func(ctx context.Context, srv RegistryServer, in *wrapperspb.StringValue) (interface{}, error)

func stringHandler(method string, call stringCall) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	full := "/" + serviceName + "/" + method
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(wrapperspb.StringValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, srv.(RegistryServer), in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(ctx, srv.(RegistryServer), req.(*wrapperspb.StringValue))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type structCall func(ctx context.Context, srv RegistryServer, in *structpb.Struct) (interface{}, error)

func structHandler(method string, call structCall) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	full := "/" + serviceName + "/" + method
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, srv.(RegistryServer), in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(ctx, srv.(RegistryServer), req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Registry_ServiceDesc is the grpc.ServiceDesc for the Registry service.
var Registry_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "TokenInfo", Handler: stringHandler("TokenInfo", func(ctx context.Context, srv RegistryServer, in *wrapperspb.StringValue) (interface{}, error) {
			return srv.TokenInfo(ctx, in)
		})},
		{MethodName: "RegistryInfo", Handler: stringHandler("RegistryInfo", func(ctx context.Context, srv RegistryServer, in *wrapperspb.StringValue) (interface{}, error) {
			return srv.RegistryInfo(ctx, in)
		})},
		{MethodName: "BalanceOf", Handler: structHandler("BalanceOf", func(ctx context.Context, srv RegistryServer, in *structpb.Struct) (interface{}, error) {
			return srv.BalanceOf(ctx, in)
		})},
		{MethodName: "Mint", Handler: structHandler("Mint", func(ctx context.Context, srv RegistryServer, in *structpb.Struct) (interface{}, error) {
			return srv.Mint(ctx, in)
		})},
		{MethodName: "MintBatch", Handler: structHandler("MintBatch", func(ctx context.Context, srv RegistryServer, in *structpb.Struct) (interface{}, error) {
			return srv.MintBatch(ctx, in)
		})},
		{MethodName: "SetCreator", Handler: structHandler("SetCreator", func(ctx context.Context, srv RegistryServer, in *structpb.Struct) (interface{}, error) {
			return srv.SetCreator(ctx, in)
		})},
		{MethodName: "Migrate", Handler: structHandler("Migrate", func(ctx context.Context, srv RegistryServer, in *structpb.Struct) (interface{}, error) {
			return srv.Migrate(ctx, in)
		})},
		{MethodName: "DisableMigrate", Handler: structHandler("DisableMigrate", func(ctx context.Context, srv RegistryServer, in *structpb.Struct) (interface{}, error) {
			return srv.DisableMigrate(ctx, in)
		})},
		{MethodName: "AddSharedProxy", Handler: structHandler("AddSharedProxy", func(ctx context.Context, srv RegistryServer, in *structpb.Struct) (interface{}, error) {
			return srv.AddSharedProxy(ctx, in)
		})},
		{MethodName: "RemoveSharedProxy", Handler: structHandler("RemoveSharedProxy", func(ctx context.Context, srv RegistryServer, in *structpb.Struct) (interface{}, error) {
			return srv.RemoveSharedProxy(ctx, in)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "registry.proto",
}

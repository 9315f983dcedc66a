package grpcregistry

import (
	"context"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/registry"
	"xdao.co/tokenreg/tokenid"
)

// Client speaks registry types over the Registry gRPC service.
//
// Its read surface (BalanceOf, URI, TemplateURI) satisfies
// registry.Predecessor, so a remote registry can serve as the migration
// source of a local one.
type Client struct {
	cc     *grpc.ClientConn
	client RegistryClient

	// readErr holds the first transport failure swallowed by the
	// error-blind Predecessor reads since the last ReadErr call.
	readErr error

	// Caller is the account sent as the caller of mutating RPCs.
	Caller account.Account

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var _ registry.UnreliablePredecessor = (*Client)(nil)

type DialOptions struct {
	// Caller is the account mutating RPCs act as.
	Caller account.Account

	// Timeout bounds the initial dial when non-zero, and then applies
	// per RPC on the returned client.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		// Without WithBlock the dial returns before connecting and the
		// deadline would never be consulted.
		dialOpts = append(dialOpts, grpc.WithBlock())
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewRegistryClient(cc), Caller: opts.Caller, Timeout: opts.Timeout}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// TokenInfo describes one token as the remote registry sees it.
type TokenInfo struct {
	Creator         account.Account
	Origin          account.Account
	Index           uint64
	MaxSupply       uint64
	RemainingSupply uint64
	TotalSupply     uint64
	URI             string
	Permanent       bool
}

// RegistryInfo describes the remote registry instance.
type RegistryInfo struct {
	Admin          account.Account
	TemplateURI    string
	MigrateEnabled bool
}

func (c *Client) TokenInfo(id tokenid.ID) (*TokenInfo, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.TokenInfo(ctx, wrapperspb.String(id.String()))
	if err != nil {
		return nil, mapRPC(err)
	}
	fields := reply.GetFields()
	info := &TokenInfo{
		URI:       fields["uri"].GetStringValue(),
		Permanent: fields["permanent"].GetBoolValue(),
	}
	if info.Creator, err = account.Parse(fields["creator"].GetStringValue()); err != nil {
		return nil, err
	}
	if info.Origin, err = account.Parse(fields["origin"].GetStringValue()); err != nil {
		return nil, err
	}
	if info.Index, err = parseU64(fields["index"].GetStringValue()); err != nil {
		return nil, err
	}
	if info.MaxSupply, err = parseU64(fields["max_supply"].GetStringValue()); err != nil {
		return nil, err
	}
	if info.RemainingSupply, err = parseU64(fields["remaining_supply"].GetStringValue()); err != nil {
		return nil, err
	}
	if info.TotalSupply, err = parseU64(fields["total_supply"].GetStringValue()); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) RegistryInfo() (*RegistryInfo, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.RegistryInfo(ctx, wrapperspb.String(""))
	if err != nil {
		return nil, mapRPC(err)
	}
	fields := reply.GetFields()
	info := &RegistryInfo{
		TemplateURI:    fields["template_uri"].GetStringValue(),
		MigrateEnabled: fields["migrate_enabled"].GetBoolValue(),
	}
	if info.Admin, err = account.Parse(fields["admin"].GetStringValue()); err != nil {
		return nil, err
	}
	return info, nil
}

// Balance returns owner's balance of id, with transport errors surfaced.
func (c *Client) Balance(owner account.Account, id tokenid.ID) (uint64, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	req, err := structpb.NewStruct(map[string]interface{}{
		"owner": owner.String(),
		"id":    id.String(),
	})
	if err != nil {
		return 0, err
	}
	reply, err := c.client.BalanceOf(ctx, req)
	if err != nil {
		return 0, mapRPC(err)
	}
	return parseU64(reply.GetValue())
}

// BalanceOf implements registry.Predecessor. Transport failures read as
// zero and are recorded for ReadErr; use Balance when the failure must be
// returned in line.
func (c *Client) BalanceOf(owner account.Account, id tokenid.ID) uint64 {
	bal, err := c.Balance(owner, id)
	if err != nil {
		c.noteReadErr(err)
		return 0
	}
	return bal
}

// URI implements registry.Predecessor. Transport failures read as "" and
// are recorded for ReadErr.
func (c *Client) URI(id tokenid.ID) string {
	info, err := c.TokenInfo(id)
	if err != nil {
		c.noteReadErr(err)
		return ""
	}
	return info.URI
}

// TemplateURI implements registry.Predecessor. Transport failures read as
// "" and are recorded for ReadErr.
func (c *Client) TemplateURI() string {
	info, err := c.RegistryInfo()
	if err != nil {
		c.noteReadErr(err)
		return ""
	}
	return info.TemplateURI
}

// ReadErr implements registry.UnreliablePredecessor: it returns the first
// failure a Predecessor read swallowed since the previous call, and
// clears it. Migration checks this after planning, so an unreachable
// predecessor aborts the import instead of reading as all-zero balances.
func (c *Client) ReadErr() error {
	err := c.readErr
	c.readErr = nil
	return err
}

func (c *Client) noteReadErr(err error) {
	if c.readErr == nil {
		c.readErr = err
	}
}

func (c *Client) Mint(to account.Account, id tokenid.ID, quantity uint64, data []byte) error {
	req, err := structpb.NewStruct(map[string]interface{}{
		"caller":   c.Caller.String(),
		"to":       to.String(),
		"id":       id.String(),
		"quantity": strconv.FormatUint(quantity, 10),
		"data":     string(data),
	})
	if err != nil {
		return err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	_, err = c.client.Mint(ctx, req)
	return mapRPC(err)
}

func (c *Client) MintBatch(to account.Account, ids []tokenid.ID, quantities []uint64, data []byte) error {
	idVals := make([]interface{}, len(ids))
	for i, id := range ids {
		idVals[i] = id.String()
	}
	qtyVals := make([]interface{}, len(quantities))
	for i, q := range quantities {
		qtyVals[i] = strconv.FormatUint(q, 10)
	}
	req, err := structpb.NewStruct(map[string]interface{}{
		"caller":     c.Caller.String(),
		"to":         to.String(),
		"ids":        idVals,
		"quantities": qtyVals,
		"data":       string(data),
	})
	if err != nil {
		return err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	_, err = c.client.MintBatch(ctx, req)
	return mapRPC(err)
}

func (c *Client) SetCreator(id tokenid.ID, to account.Account) error {
	req, err := structpb.NewStruct(map[string]interface{}{
		"caller": c.Caller.String(),
		"id":     id.String(),
		"to":     to.String(),
	})
	if err != nil {
		return err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	_, err = c.client.SetCreator(ctx, req)
	return mapRPC(err)
}

func (c *Client) Migrate(records []registry.OwnershipRecord) error {
	recVals := make([]interface{}, len(records))
	for i, rec := range records {
		recVals[i] = map[string]interface{}{
			"id":    rec.ID.String(),
			"owner": rec.Owner.String(),
		}
	}
	req, err := structpb.NewStruct(map[string]interface{}{
		"caller":  c.Caller.String(),
		"records": recVals,
	})
	if err != nil {
		return err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	_, err = c.client.Migrate(ctx, req)
	return mapRPC(err)
}

func (c *Client) DisableMigrate() error {
	req, err := structpb.NewStruct(map[string]interface{}{
		"caller": c.Caller.String(),
	})
	if err != nil {
		return err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	_, err = c.client.DisableMigrate(ctx, req)
	return mapRPC(err)
}

func (c *Client) AddSharedProxy(addr account.Account) error {
	return c.sharedProxy("AddSharedProxy", addr)
}

func (c *Client) RemoveSharedProxy(addr account.Account) error {
	return c.sharedProxy("RemoveSharedProxy", addr)
}

func (c *Client) sharedProxy(method string, addr account.Account) error {
	req, err := structpb.NewStruct(map[string]interface{}{
		"caller":  c.Caller.String(),
		"address": addr.String(),
	})
	if err != nil {
		return err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	if method == "AddSharedProxy" {
		_, err = c.client.AddSharedProxy(ctx, req)
	} else {
		_, err = c.client.RemoveSharedProxy(ctx, req)
	}
	return mapRPC(err)
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}

func parseU64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

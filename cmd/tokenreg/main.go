package main

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"xdao.co/tokenreg/account"
	"xdao.co/tokenreg/grpcregistry"
	"xdao.co/tokenreg/ledger"
	"xdao.co/tokenreg/registry"
	"xdao.co/tokenreg/tokenid"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "id":
		return cmdID(args[1:], out, errOut)
	case "account":
		return cmdAccount(args[1:], out, errOut)
	case "token":
		return cmdToken(args[1:], out, errOut)
	case "info":
		return cmdInfo(args[1:], out, errOut)
	case "balance":
		return cmdBalance(args[1:], out, errOut)
	case "mint":
		return cmdMint(args[1:], out, errOut)
	case "set-creator":
		return cmdSetCreator(args[1:], out, errOut)
	case "proxy":
		return cmdProxy(args[1:], out, errOut)
	case "migrate":
		return cmdMigrate(args[1:], out, errOut)
	case "disable-migrate":
		return cmdDisableMigrate(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "tokenreg: token registry CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tokenreg id encode --creator <0xhex> --index <n> --max-supply <n>")
	fmt.Fprintln(w, "  tokenreg id decode <0xhex64>")
	fmt.Fprintln(w, "  tokenreg account derive [--alg ed25519|dilithium3] [--seed-hex <64hex>]")
	fmt.Fprintln(w, "  tokenreg token info --addr <host:port> --id <0xhex64>")
	fmt.Fprintln(w, "  tokenreg info --addr <host:port>")
	fmt.Fprintln(w, "  tokenreg balance --addr <host:port> --owner <0xhex> --id <0xhex64>")
	fmt.Fprintln(w, "  tokenreg mint --addr <host:port> --caller <0xhex> --to <0xhex> --id <0xhex64> --quantity <n>")
	fmt.Fprintln(w, "  tokenreg set-creator --addr <host:port> --caller <0xhex> --id <0xhex64> --to <0xhex>")
	fmt.Fprintln(w, "  tokenreg proxy add|remove --addr <host:port> --caller <0xhex> --account <0xhex>")
	fmt.Fprintln(w, "  tokenreg migrate --addr <host:port> --caller <0xhex> --records <file>")
	fmt.Fprintln(w, "  tokenreg disable-migrate --addr <host:port> --caller <0xhex>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - token identifiers are 32 bytes printed as 0x-prefixed 64 hex chars")
	fmt.Fprintln(w, "  - accounts are 20 bytes printed as 0x-prefixed 40 hex chars")
	fmt.Fprintln(w, "  - a records file holds one '<id> <owner>' pair per line; '#' starts a comment")
	fmt.Fprintln(w, "  - mutating commands act as --caller; the daemon trusts the host to authenticate it")
}

func cmdID(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: tokenreg id <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: encode, decode")
		return 2
	}
	switch args[0] {
	case "encode":
		fs := flag.NewFlagSet("id encode", flag.ContinueOnError)
		fs.SetOutput(errOut)
		var creatorHex string
		var index uint64
		var maxSupply uint64
		fs.StringVar(&creatorHex, "creator", "", "Creator account (0x hex)")
		fs.Uint64Var(&index, "index", 0, "Creator-scoped token index")
		fs.Uint64Var(&maxSupply, "max-supply", 0, "Supply cap (0 means uncapped semantics are up to the registry host)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		creator, err := account.Parse(creatorHex)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --creator: %v\n", err)
			return 2
		}
		id, err := tokenid.Encode(creator, index, maxSupply)
		if err != nil {
			fmt.Fprintf(errOut, "encode: %v\n", err)
			return 2
		}
		_, _ = fmt.Fprintln(out, id)
		return 0
	case "decode":
		fs := flag.NewFlagSet("id decode", flag.ContinueOnError)
		fs.SetOutput(errOut)
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(errOut, "usage: tokenreg id decode <0xhex64>")
			return 2
		}
		id, err := tokenid.Parse(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "invalid id: %v\n", err)
			return 2
		}
		fmt.Fprintf(out, "creator:    %s\n", tokenid.CreatorOf(id))
		fmt.Fprintf(out, "index:      %d\n", tokenid.IndexOf(id))
		fmt.Fprintf(out, "max-supply: %d\n", tokenid.MaxSupplyOf(id))
		return 0
	default:
		fmt.Fprintf(errOut, "unknown id subcommand: %s\n", args[0])
		return 2
	}
}

func cmdAccount(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: tokenreg account <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: derive")
		return 2
	}
	switch args[0] {
	case "derive":
		return cmdAccountDerive(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown account subcommand: %s\n", args[0])
		return 2
	}
}

func cmdAccountDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("account derive", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var alg string
	var seedHex string
	fs.StringVar(&alg, "alg", "ed25519", "Key algorithm: ed25519 or dilithium3")
	fs.StringVar(&seedHex, "seed-hex", "", "Optional 32-byte seed as 64 hex chars (random when omitted)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	var seed []byte
	if seedHex != "" {
		var err error
		seed, err = hex.DecodeString(strings.TrimPrefix(seedHex, "0x"))
		if err != nil {
			fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", err)
			return 2
		}
		if len(seed) != 32 {
			fmt.Fprintln(errOut, "invalid --seed-hex: expected 32 bytes (64 hex chars)")
			return 2
		}
	} else {
		seed = make([]byte, 32)
		if _, err := rand.Read(seed); err != nil {
			fmt.Fprintf(errOut, "rand: %v\n", err)
			return 1
		}
		fmt.Fprintf(errOut, "Seed: %s\n", hex.EncodeToString(seed))
	}

	var acct account.Account
	switch strings.ToLower(strings.TrimSpace(alg)) {
	case "ed25519":
		var err error
		acct, err = account.FromEd25519Seed(seed)
		if err != nil {
			fmt.Fprintf(errOut, "derive: %v\n", err)
			return 1
		}
	case "dilithium3":
		var s [mode3.SeedSize]byte
		copy(s[:], seed)
		pub, _ := mode3.NewKeyFromSeed(&s)
		var err error
		acct, err = account.FromDilithium3(pub)
		if err != nil {
			fmt.Fprintf(errOut, "derive: %v\n", err)
			return 1
		}
	default:
		fmt.Fprintln(errOut, "invalid --alg (expected ed25519 or dilithium3)")
		return 2
	}
	_, _ = fmt.Fprintln(out, acct)
	return 0
}

// remoteFlags holds the flags every daemon-facing command shares.
type remoteFlags struct {
	addr   string
	caller string
}

func (r *remoteFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&r.addr, "addr", "127.0.0.1:7788", "tokenregd address")
	fs.StringVar(&r.caller, "caller", "", "Account mutating commands act as (0x hex)")
}

func (r *remoteFlags) dial(errOut io.Writer, needCaller bool) (*grpcregistry.Client, int) {
	var caller account.Account
	if r.caller != "" {
		a, err := account.Parse(r.caller)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --caller: %v\n", err)
			return nil, 2
		}
		caller = a
	} else if needCaller {
		fmt.Fprintln(errOut, "missing --caller")
		return nil, 2
	}
	client, err := grpcregistry.Dial(r.addr, grpcregistry.DialOptions{Caller: caller})
	if err != nil {
		fmt.Fprintf(errOut, "dial %s: %v\n", r.addr, err)
		return nil, 1
	}
	return client, 0
}

func cmdToken(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 || args[0] != "info" {
		fmt.Fprintln(errOut, "usage: tokenreg token info --addr <host:port> --id <0xhex64>")
		return 2
	}
	fs := flag.NewFlagSet("token info", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var remote remoteFlags
	var idHex string
	remote.register(fs)
	fs.StringVar(&idHex, "id", "", "Token identifier (0x + 64 hex chars)")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	id, err := tokenid.Parse(idHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --id: %v\n", err)
		return 2
	}
	client, code := remote.dial(errOut, false)
	if client == nil {
		return code
	}
	defer client.Close()

	info, err := client.TokenInfo(id)
	if err != nil {
		fmt.Fprintf(errOut, "token info: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "creator:           %s\n", info.Creator)
	fmt.Fprintf(out, "origin:            %s\n", info.Origin)
	fmt.Fprintf(out, "index:             %d\n", info.Index)
	fmt.Fprintf(out, "max-supply:        %d\n", info.MaxSupply)
	fmt.Fprintf(out, "total-supply:      %d\n", info.TotalSupply)
	fmt.Fprintf(out, "remaining-supply:  %d\n", info.RemainingSupply)
	fmt.Fprintf(out, "uri:               %s\n", info.URI)
	fmt.Fprintf(out, "rendered-uri:      %s\n", ledger.Render(info.URI, id))
	fmt.Fprintf(out, "permanent:         %v\n", info.Permanent)
	return 0
}

func cmdInfo(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var remote remoteFlags
	remote.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	client, code := remote.dial(errOut, false)
	if client == nil {
		return code
	}
	defer client.Close()

	info, err := client.RegistryInfo()
	if err != nil {
		fmt.Fprintf(errOut, "info: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "admin:           %s\n", info.Admin)
	fmt.Fprintf(out, "template-uri:    %s\n", info.TemplateURI)
	fmt.Fprintf(out, "migrate-enabled: %v\n", info.MigrateEnabled)
	return 0
}

func cmdBalance(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("balance", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var remote remoteFlags
	var ownerHex string
	var idHex string
	remote.register(fs)
	fs.StringVar(&ownerHex, "owner", "", "Owner account (0x hex)")
	fs.StringVar(&idHex, "id", "", "Token identifier (0x + 64 hex chars)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	owner, err := account.Parse(ownerHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --owner: %v\n", err)
		return 2
	}
	id, err := tokenid.Parse(idHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --id: %v\n", err)
		return 2
	}
	client, code := remote.dial(errOut, false)
	if client == nil {
		return code
	}
	defer client.Close()

	bal, err := client.Balance(owner, id)
	if err != nil {
		fmt.Fprintf(errOut, "balance: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, bal)
	return 0
}

func cmdMint(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("mint", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var remote remoteFlags
	var toHex string
	var idHex string
	var quantity uint64
	remote.register(fs)
	fs.StringVar(&toHex, "to", "", "Recipient account (0x hex)")
	fs.StringVar(&idHex, "id", "", "Token identifier (0x + 64 hex chars)")
	fs.Uint64Var(&quantity, "quantity", 0, "Units to mint")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	to, err := account.Parse(toHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --to: %v\n", err)
		return 2
	}
	id, err := tokenid.Parse(idHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --id: %v\n", err)
		return 2
	}
	client, code := remote.dial(errOut, true)
	if client == nil {
		return code
	}
	defer client.Close()

	if err := client.Mint(to, id, quantity, nil); err != nil {
		fmt.Fprintf(errOut, "mint: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, "OK")
	return 0
}

func cmdSetCreator(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("set-creator", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var remote remoteFlags
	var idHex string
	var toHex string
	remote.register(fs)
	fs.StringVar(&idHex, "id", "", "Token identifier (0x + 64 hex chars)")
	fs.StringVar(&toHex, "to", "", "New creator account (0x hex)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	id, err := tokenid.Parse(idHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --id: %v\n", err)
		return 2
	}
	to, err := account.Parse(toHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --to: %v\n", err)
		return 2
	}
	client, code := remote.dial(errOut, true)
	if client == nil {
		return code
	}
	defer client.Close()

	if err := client.SetCreator(id, to); err != nil {
		fmt.Fprintf(errOut, "set-creator: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, "OK")
	return 0
}

func cmdProxy(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: tokenreg proxy add|remove --addr <host:port> --caller <0xhex> --account <0xhex>")
		return 2
	}
	sub := args[0]
	if sub != "add" && sub != "remove" {
		fmt.Fprintf(errOut, "unknown proxy subcommand: %s\n", sub)
		return 2
	}
	fs := flag.NewFlagSet("proxy "+sub, flag.ContinueOnError)
	fs.SetOutput(errOut)
	var remote remoteFlags
	var acctHex string
	remote.register(fs)
	fs.StringVar(&acctHex, "account", "", "Shared proxy account (0x hex)")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	acct, err := account.Parse(acctHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --account: %v\n", err)
		return 2
	}
	client, code := remote.dial(errOut, true)
	if client == nil {
		return code
	}
	defer client.Close()

	if sub == "add" {
		err = client.AddSharedProxy(acct)
	} else {
		err = client.RemoveSharedProxy(acct)
	}
	if err != nil {
		fmt.Fprintf(errOut, "proxy %s: %v\n", sub, err)
		return 1
	}
	_, _ = fmt.Fprintln(out, "OK")
	return 0
}

func cmdMigrate(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var remote remoteFlags
	var recordsPath string
	remote.register(fs)
	fs.StringVar(&recordsPath, "records", "", "File of '<id> <owner>' lines naming the balances to import")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if recordsPath == "" {
		fmt.Fprintln(errOut, "missing --records")
		return 2
	}
	records, err := readRecords(recordsPath)
	if err != nil {
		fmt.Fprintf(errOut, "read records: %v\n", err)
		return 1
	}
	if len(records) == 0 {
		fmt.Fprintln(errOut, "records file names no balances")
		return 2
	}
	client, code := remote.dial(errOut, true)
	if client == nil {
		return code
	}
	defer client.Close()

	if err := client.Migrate(records); err != nil {
		fmt.Fprintf(errOut, "migrate: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "migrated %d record(s)\n", len(records))
	return 0
}

func cmdDisableMigrate(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("disable-migrate", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var remote remoteFlags
	remote.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	client, code := remote.dial(errOut, true)
	if client == nil {
		return code
	}
	defer client.Close()

	if err := client.DisableMigrate(); err != nil {
		fmt.Fprintf(errOut, "disable-migrate: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, "OK")
	return 0
}

// readRecords parses a migration records file: one '<id> <owner>' pair per
// line, blank lines and '#' comments ignored.
func readRecords(path string) ([]registry.OwnershipRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []registry.OwnershipRecord
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected '<id> <owner>', got %s", lineNo, strconv.Quote(line))
		}
		id, err := tokenid.Parse(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: id: %w", lineNo, err)
		}
		owner, err := account.Parse(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: owner: %w", lineNo, err)
		}
		records = append(records, registry.OwnershipRecord{ID: id, Owner: owner})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

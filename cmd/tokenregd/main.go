package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"google.golang.org/grpc"

	"xdao.co/tokenreg/grpcregistry"
	"xdao.co/tokenreg/ledger"
	"xdao.co/tokenreg/registry"
	"xdao.co/tokenreg/statestore/storereg"

	_ "xdao.co/tokenreg/statestore/fsstore"
	_ "xdao.co/tokenreg/statestore/memstore"

	"xdao.co/tokenreg/account"
)

func main() {
	fs := flag.NewFlagSet("tokenregd", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file (flags override it)")
	listen := fs.String("listen", "", "listen address")
	backend := fs.String("backend", "", "state store backend name")
	admin := fs.String("admin", "", "registry administrator account (0x hex)")
	templateURI := fs.String("template-uri", "", "default metadata URI template")
	predecessor := fs.String("predecessor", "", "gRPC address of the registry to migrate from")
	listBackends := fs.Bool("list-backends", false, "List supported backends and exit")

	storereg.RegisterFlags(fs)

	_ = fs.Parse(os.Args[1:])
	if *listBackends {
		for _, b := range storereg.List() {
			if b.Description == "" {
				_, _ = fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return
	}

	cfg := defaultServiceConfig()
	if *configPath != "" {
		var err error
		cfg, err = loadServiceConfig(*configPath, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *admin != "" {
		a, err := account.Parse(*admin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tokenregd: -admin: %v\n", err)
			os.Exit(2)
		}
		cfg.Admin = a
	}
	if *templateURI != "" {
		cfg.TemplateURI = *templateURI
	}
	if *predecessor != "" {
		cfg.PredecessorAddr = *predecessor
	}

	if cfg.Admin.IsZero() {
		fmt.Fprintln(os.Stderr, "tokenregd: an admin account is required (-admin or config)")
		os.Exit(2)
	}
	if cfg.TemplateURI == "" {
		fmt.Fprintln(os.Stderr, "tokenregd: a URI template is required (-template-uri or config)")
		os.Exit(2)
	}

	store, closeFn, err := storereg.Open(cfg.Backend)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if closeFn != nil {
		defer closeFn()
	}

	led, err := ledger.New(store, cfg.TemplateURI)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var pred registry.Predecessor
	if cfg.PredecessorAddr != "" {
		client, err := grpcregistry.Dial(cfg.PredecessorAddr, grpcregistry.DialOptions{
			Caller:  cfg.Admin,
			Timeout: 10 * time.Second,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "tokenregd: dial predecessor: %v\n", err)
			os.Exit(2)
		}
		defer client.Close()
		pred = client
	}

	reg, err := registry.New(registry.Config{
		Admin:       cfg.Admin,
		Ledger:      led,
		Predecessor: pred,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	led.Bind(reg)

	for _, p := range cfg.SharedProxies {
		if err := reg.AddSharedProxy(cfg.Admin, p); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcregistry.RegisterRegistryServer(s, &grpcregistry.Server{Registry: reg, Ledger: led})

	fmt.Fprintf(os.Stderr, "tokenregd listening on %s (backend=%s admin=%s)\n", lis.Addr().String(), cfg.Backend, cfg.Admin)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

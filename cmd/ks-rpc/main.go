// ks-rpc is a stdio JSON-RPC 2.0 server exposing the editing operations
// as tools for machine callers. Individual tools can be switched off in
// a YAML config (opt-out: everything is enabled by default).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"
)

func main() {
	configPath := flag.String("config", "",
		"path to config.yaml (default: config.yaml in the working directory)")
	flag.Parse()

	enabled, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ks-rpc: %v\n", err)
		os.Exit(1)
	}
	logEnabled(os.Stderr, enabled)

	ctx := context.Background()
	stream := jsonrpc2.NewStream(&stdioReadWriteCloser{
		read:  os.Stdin,
		write: os.Stdout,
	})
	conn := jsonrpc2.NewConn(stream)
	srv := &server{tools: enabled}
	conn.Go(ctx, srv.handle)
	<-conn.Done()
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}

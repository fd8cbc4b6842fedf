package config

import (
	"flag"
	"fmt"
	"io"
)

// Flags holds the parsed command-line flags.
type Flags struct {
	SocketPort     int
	HTTPPort       int
	PrivateKeyPath string
	LogLevel       string
	LogJSON        bool
}

// ParseFlags parses args (typically os.Args[1:]) against a fresh flag set.
// Output is written to out on --help or a parse error; the caller decides
// what to do with a non-nil error (the teacher's convention is a non-zero
// exit, never a panic).
func ParseFlags(args []string, out io.Writer) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("gophercoind", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.IntVar(&f.SocketPort, "socket-port", DefaultSocketPort, "WebSocket gossip listen port")
	fs.IntVar(&f.HTTPPort, "http-port", DefaultHTTPPort, "HTTP control surface listen port")
	fs.StringVar(&f.PrivateKeyPath, "private-key-path", DefaultPrivateKeyPath(), "path to the hex-encoded wallet private key (created if absent)")
	fs.StringVar(&f.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.BoolVar(&f.LogJSON, "log-json", false, "emit logs as JSON instead of a colored console")

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: gophercoind [flags]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// ToConfig derives the runtime Config from parsed flags.
func (f *Flags) ToConfig() *Config {
	return &Config{
		SocketAddr:     addrFromPort(f.SocketPort),
		HTTPAddr:       addrFromPort(f.HTTPPort),
		PrivateKeyPath: f.PrivateKeyPath,
		LogLevel:       f.LogLevel,
		LogJSON:        f.LogJSON,
	}
}

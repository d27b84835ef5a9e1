package main

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var program = flag.NewFlagSet("gurl", flag.ExitOnError)

var (
	flagCompressed     = program.Bool("compressed", false, "request compressed response and decode it")
	flagConnectTimeout = program.Float64("connect-timeout", 0, "maximum time allowed for connection, in seconds")
	flagCookie         = program.StringP("cookie", "b", "", "send cookies from string or file")
	flagCookieJar      = program.StringP("cookie-jar", "c", "", "write cookies to <filename> after operation")
	flagData           = program.StringP("data", "d", "", "HTTP POST data")
	flagFail           = program.BoolP("fail", "f", false, "fail fast with no output on HTTP errors")
	flagHTTP1          = program.Bool("http1", true, "allow http1.1")
	flagHTTP2          = program.Bool("http2", true, "allow http2")
	flagHTTP2Prior     = program.Bool("http2-prior-knowledge", false, "http2 with prior knowledge")
	flagHTTP3          = program.Bool("http3", false, "attempt http3, racing against tcp")
	flagHTTP3Only      = program.Bool("http3-only", false, "http3 only")
	flagHead           = program.BoolP("head", "I", false, "show document info only")
	flagHeader         = program.StringArrayP("header", "H", nil, "pass custom header(s) to server")
	flagHelp           = program.BoolP("help", "h", false, "help")
	flagInclude        = program.BoolP("include", "i", false, "include response headers in the output")
	flagInsecure       = program.BoolP("insecure", "k", false, "allow insecure server connections")
	flagJSON           = program.String("json", "", "HTTP POST JSON")
	flagLocation       = program.BoolP("location", "L", false, "follow redirects")
	flagMaxRedirs      = program.Int("max-redirs", 50, "maximum number of redirects allowed")
	flagMaxTime        = program.Float64P("max-time", "m", 0, "maximum time allowed for the transfer, in seconds")
	flagMethod         = program.StringP("request", "X", "", "request method")
	flagOutput         = program.StringP("output", "o", "", "write to file instead of stdout")
	flagReferer        = program.StringP("referer", "e", "", "referer URL")
	flagSilent         = program.BoolP("silent", "s", false, "silent mode")
	flagUser           = program.StringP("user", "u", "", "<user:password>")
	flagUserAgent      = program.StringP("user-agent", "A", "", "send User-Agent <name> to server")
	flagVerbose        = program.CountP("verbose", "v", "make the operation more talkative (repeatable)")
)

func init() {
	program.Usage = func() {
		fmt.Fprintf(program.Output(), "Usage: %s [options...] <url>\n", program.Name())
		program.PrintDefaults()
	}
}

func parseArgs() {
	program.Parse(os.Args[1:])
	applyConfigDefaults()
}

// applyConfigDefaults fills in flags the user did not pass from ~/.gurlrc,
// the .curlrc equivalent. Explicit flags always win over the config file.
func applyConfigDefaults() {
	home, err := homedir.Dir()
	if err != nil {
		return
	}
	v := viper.New()
	v.SetConfigName(".gurlrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		return
	}
	program.VisitAll(func(f *flag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if s := v.GetString(f.Name); s != "" {
			program.Set(f.Name, s)
		}
	})
}

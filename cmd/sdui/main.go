package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/sduikit/sdui"
	"github.com/sduikit/sdui/pkg/api"
)

const (
	checkmark = "✓"
	crossmark = "✗"
	ellipsis  = "…"
)

func main() {
	app := kingpin.New("sdui", "Backend-driven UI content tool")
	app.HelpFlag.Short('h')

	var (
		cfgPath  = app.Flag("config", "Path to a TOML config file").Short('c').String()
		logLevel = app.Flag("log", "Log level (debug, info, warning, error)").Default("warning").String()
		base     = app.Flag("base", "Content service base URL").Short('b').String()
		dir      = app.Flag("dir", "Directory with page JSON files").Short('d').String()
	)

	show := app.Command("show", "Fetch a page and print its outline").Default()
	showName := show.Arg("name", "Page name").Required().String()

	keys := app.Command("keys", "List the form binding keys of a page")
	keysName := keys.Arg("name", "Page name").Required().String()

	get := app.Command("get", "Download one or more pages as pretty-printed JSON")
	var (
		getNames = get.Arg("names", "Page names").Required().Strings()
		outDir   = get.Flag("output", "Output directory").Short('o').Default(".").String()
	)

	serve := app.Command("serve", "Serve a directory of pages for development")
	addr := serve.Flag("addr", "Listen address").Default("localhost:8077").String()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	sdui.SetLogLevel(*logLevel)

	cfg, err := loadConfig(*cfgPath)
	if err == nil {
		if *base != "" {
			cfg.BaseURL = *base
		}
		if *dir != "" {
			cfg.PagesDir = *dir
		}

		switch command {
		case "show":
			err = doShow(setupSource(cfg), *showName)
		case "keys":
			err = doKeys(setupSource(cfg), *keysName)
		case "get":
			err = doGet(setupSource(cfg), *getNames, *outDir)
		case "serve":
			err = doServe(cfg.PagesDir, *addr)
		default:
			err = fmt.Errorf("unknown command: %q", command)
		}
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// setupSource picks the content source: the HTTP client when a base URL
// is configured, the local pages directory otherwise.
func setupSource(cfg config) sdui.Source {
	if cfg.BaseURL != "" {
		return sdui.NewCachingSource(api.NewClient(cfg.BaseURL))
	}
	return sdui.NewFilesystemSource(cfg.PagesDir)
}

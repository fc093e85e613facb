package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"geotoggle/internal/asset"
	"geotoggle/internal/config"
	"geotoggle/internal/logger"
	"geotoggle/internal/tui"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"GEOTOGGLE_CONFIG" description:"Path to configuration file"`
	Asset      string `short:"a" long:"asset"  env:"GEOTOGGLE_ASSET"  description:"Bundled asset name to load"`
	Strict     bool   `short:"s" long:"strict"                        description:"Exit when the asset cannot be loaded"`
	List       bool   `long:"list-assets"                             description:"Print bundled assets and exit"`

	Args struct {
		Path string `positional-arg-name:"geojson" description:"GeoJSON file to load instead of the bundled asset"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	closer, err := opts.Logger.Setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "log setup:", err)
		os.Exit(1)
	}
	defer closer.Close()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if opts.Asset != "" {
		cfg.Asset = opts.Asset
	}
	if opts.Strict {
		cfg.StrictLoad = true
	}

	loader := asset.Bundled()
	if opts.Args.Path != "" {
		loader = asset.NewLoader(os.DirFS(filepath.Dir(opts.Args.Path)))
		cfg.Asset = filepath.Base(opts.Args.Path)
	}

	if opts.List {
		names, err := loader.Names()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	log.Info().
		Str("asset", cfg.Asset).
		Str("match_by", cfg.MatchBy).
		Bool("strict", cfg.StrictLoad).
		Msg("Starting geotoggle")

	final, err := tea.NewProgram(tui.New(*cfg, loader), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		log.Error().Err(err).Msg("Program failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if m, ok := final.(tui.Model); ok {
		if err := m.Err(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Info().Strs("selected", m.Store().Selected()).Msg("Exiting")
	}
}

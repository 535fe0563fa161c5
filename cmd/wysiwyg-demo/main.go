package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/iw2rmb/wysiwyg"
	"github.com/iw2rmb/wysiwyg/editor"
	"github.com/iw2rmb/wysiwyg/internal/config"
	"github.com/iw2rmb/wysiwyg/internal/logging"
)

const samplePage = `<html><body>
<div data-wyg>
<h1>wysiwyg demo</h1>
<p>Type to edit. Click the toolbar to format, <a href="https://example.com">links</a> open a popover.</p>
<ul><li>ctrl+b, ctrl+i, ctrl+u toggle inline formats</li><li>ctrl+k inserts a link</li><li>ctrl+n switches editors, ctrl+q quits</li></ul>
<table><tbody><tr><td>hover</td><td>a table</td></tr></tbody></table>
</div>
<div data-wyg><p>A second editor on the same page.</p></div>
</body></html>`

var (
	cfgFile  string
	envFile  string
	printOut bool
)

var rootCmd = &cobra.Command{
	Use:     "wysiwyg-demo",
	Short:   "Rich-text editor running in the terminal",
	Version: wysiwyg.VersionTag(),
	Long: `wysiwyg-demo loads an HTML page, turns every host element into an
editor with a toolbar, and runs it as a full-screen terminal program.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "wysiwyg.yml", "config file path")
	rootCmd.Flags().StringVar(&envFile, "env", ".env", "dotenv file read before the environment")
	rootCmd.Flags().BoolVar(&printOut, "print", false, "print each editor's value on exit")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile, envFile)
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Options{
		File:      cfg.Log.File,
		Level:     cfg.Log.Level,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	if err != nil {
		return err
	}
	defer log.Close()

	doc, err := loadPage(cfg.Document)
	if err != nil {
		return err
	}

	limit, err := cfg.MediaLimit()
	if err != nil {
		return err
	}
	ecfg := editor.Config{
		Selector:     cfg.Selector,
		Tools:        cfg.Tools,
		RecheckDelay: cfg.RecheckDelay,
		HistoryLimit: cfg.HistoryLimit,
		MaxMediaSize: limit,
		Logger:       log.Logger,
	}
	if cfg.SystemClipboard {
		ecfg.Clipboard = systemClipboard{}
	}
	mgr, err := editor.NewManager(doc, ecfg)
	if err != nil {
		return err
	}
	if len(mgr.All()) == 0 {
		return fmt.Errorf("no element matches %q", cfg.Selector)
	}
	log.Info("editors ready")

	m := newModel(mgr)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}

	if printOut {
		for _, e := range mgr.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", e.ID(), e.Value())
		}
	}
	return nil
}

func loadPage(path string) (*html.Node, error) {
	var r io.Reader = strings.NewReader(samplePage)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening document: %w", err)
		}
		defer f.Close()
		r = f
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

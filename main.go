package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"wsparse/internal/config"
	"wsparse/internal/logging"
	"wsparse/internal/model"
	"wsparse/internal/tui"
	"wsparse/internal/warpscript"
	"wsparse/internal/watch"
	"wsparse/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"go.uber.org/zap"
)

// checkUpdate compares currentVer with the latest release tag.
func checkUpdate(currentVer string) error {
	res, err := latest.Check(&latest.GithubTag{
		Owner:      "wsparse",
		Repository: "wsparse",
	}, currentVer)
	if err != nil {
		return errors.Wrap(err, "checking for updates")
	}

	if !res.Outdated {
		fmt.Printf("wsparse %s is up to date\n", currentVer)
		return nil
	}
	fmt.Printf("wsparse %s is available (you have %s)\n", res.Current, currentVer)
	fmt.Println("Download it from https://github.com/wsparse/wsparse/releases")
	return nil
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wsparse [options] [file ...]\n\n")
		fmt.Fprintf(os.Stderr, "wsparse extracts header directives, statements and WarpFleet repositories\n")
		fmt.Fprintf(os.Stderr, "from WarpScript files. With no file, the script is read from stdin.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wsparse script.mc2             # Print a report\n")
		fmt.Fprintf(os.Stderr, "  wsparse -v -j a.mc2 b.mc2      # Verbose JSON for two scripts\n")
		fmt.Fprintf(os.Stderr, "  wsparse --doc 12:5 script.mc2  # Documentation lookup for the word at 12:5\n")
		fmt.Fprintf(os.Stderr, "  wsparse -t script.mc2          # Browse statements in the terminal\n")
		fmt.Fprintf(os.Stderr, "  wsparse --watch script.mc2     # Report again on every save\n")
		fmt.Fprintf(os.Stderr, "  wsparse --web                  # Serve the JSON API\n")
	}

	reportFlag := pflag.BoolP("report", "r", false, "Print a text report (default)")
	jsonFlag := pflag.BoolP("json", "j", false, "Output the analysis as JSON")
	webFlag := pflag.BoolP("web", "w", false, "Serve the JSON API")
	tuiFlag := pflag.BoolP("tui", "t", false, "Browse the first script in the terminal")
	watchFlag := pflag.Bool("watch", false, "Print the report again whenever a script changes")
	docFlag := pflag.String("doc", "", "Print the documentation lookup for the word at LINE:COL")
	skipCommentsFlag := pflag.Bool("skip-comments", false, "Drop comments before tokenizing")
	endpointFlag := pflag.StringP("endpoint", "e", "", "Default execution endpoint")
	addrFlag := pflag.String("addr", "", "Listen address for --web")
	configFlag := pflag.StringP("config", "c", "", "Path to a YAML config file")
	jobsFlag := pflag.Int("jobs", 0, "Scripts analysed concurrently")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Verbose report and debug logging")
	guideFlag := pflag.Bool("guide", false, "Show the directive guide")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("wsparse version %s\n", model.Version)
		return
	}

	if *updateFlag {
		exitOnError(checkUpdate(model.Version))
		return
	}

	if *guideFlag {
		exitOnError(showGuide())
		return
	}

	cfg, err := config.Load(*configFlag)
	exitOnError(err)

	// Command-line flags override the config file.
	if pflag.Lookup("endpoint").Changed {
		cfg.Endpoint = *endpointFlag
	}
	if pflag.Lookup("addr").Changed {
		cfg.WebAddr = *addrFlag
	}
	if pflag.Lookup("skip-comments").Changed {
		cfg.SkipComments = *skipCommentsFlag
	}
	if pflag.Lookup("jobs").Changed {
		cfg.Jobs = *jobsFlag
	}
	if *verboseFlag {
		cfg.LogLevel = "debug"
	}
	exitOnError(cfg.Validate())

	logger, err := logging.New(cfg.LogLevel)
	exitOnError(err)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *reportFlag && *jsonFlag {
		exitOnError(errors.New("--report and --json cannot be combined"))
	}

	analyzer := warpscript.NewAnalyzer(cfg.Endpoint, cfg.SkipComments)
	files := pflag.Args()
	if len(files) == 0 {
		files = []string{warpscript.StdinPath}
	}

	switch {
	case *webFlag:
		server := web.NewServer(analyzer, logger, cfg.MaxBodyBytes)
		err = server.ListenAndServe(ctx, cfg.WebAddr)
	case *tuiFlag:
		err = runTuiMode(files[0], analyzer)
	case *watchFlag:
		err = runWatchMode(ctx, files, analyzer, cfg, logger, *verboseFlag)
	case *docFlag != "":
		err = runDocMode(files[0], *docFlag, analyzer)
	case *jsonFlag:
		err = runJsonMode(ctx, files, analyzer, cfg.Jobs)
	default:
		err = runReportMode(ctx, files, analyzer, cfg.Jobs, *verboseFlag)
	}
	exitOnError(err)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReportMode(ctx context.Context, files []string, analyzer *warpscript.Analyzer, jobs int, verbose bool) error {
	results, err := analyzer.AnalyzeFiles(ctx, files, jobs)
	if err != nil {
		return err
	}
	fmt.Print(warpscript.GenerateReport(results, verbose))
	return nil
}

func runJsonMode(ctx context.Context, files []string, analyzer *warpscript.Analyzer, jobs int) error {
	results, err := analyzer.AnalyzeFiles(ctx, files, jobs)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}

func runDocMode(file, position string, analyzer *warpscript.Analyzer) error {
	line, col, err := parsePosition(position)
	if err != nil {
		return err
	}

	src, err := warpscript.ReadScript(file)
	if err != nil {
		return err
	}

	word := warpscript.WordAt(src, line, col)
	if word == "" {
		return errors.Errorf("no word at %d:%d in %s", line, col, file)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(analyzer.DocParams(src, word))
}

// parsePosition parses a LINE:COL pair.
func parsePosition(s string) (int, int, error) {
	lineStr, colStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, errors.Errorf("position %q is not LINE:COL", s)
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing line of %q", s)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "parsing column of %q", s)
	}
	return line, col, nil
}

func runWatchMode(ctx context.Context, files []string, analyzer *warpscript.Analyzer, cfg *config.Config, logger *zap.Logger, verbose bool) error {
	for _, f := range files {
		if f == warpscript.StdinPath {
			return errors.New("--watch needs script files, not stdin")
		}
	}

	if err := runReportMode(ctx, files, analyzer, cfg.Jobs, verbose); err != nil {
		return err
	}

	w, err := watch.New(files, 200*time.Millisecond, logger, func(path string) {
		if err := runReportMode(ctx, []string{path}, analyzer, 1, verbose); err != nil {
			logger.Warn("Report failed", zap.String("path", path), zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func runTuiMode(file string, analyzer *warpscript.Analyzer) error {
	if file == warpscript.StdinPath {
		return errors.New("the terminal viewer needs a script file")
	}

	m := tui.InitialModel(file, analyzer)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running terminal viewer")
	}
	return nil
}

func showGuide() error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return errors.Wrap(err, "creating markdown renderer")
	}

	out, err := renderer.Render(web.HelpText())
	if err != nil {
		return errors.Wrap(err, "rendering guide")
	}
	fmt.Print(out)
	return nil
}

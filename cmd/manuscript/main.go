// Command manuscript recovers the structure of a document and writes it as
// YAML or Markdown.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/manuscript"
	"github.com/tsawler/manuscript/bookfile"
	"github.com/tsawler/manuscript/model"
	"github.com/tsawler/manuscript/ocr"
	"github.com/tsawler/manuscript/service"
	"github.com/tsawler/manuscript/translate"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AAFF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process exit, returning the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("manuscript", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML configuration file")
	out := fs.String("o", "", "Output file (default: stdout)")
	output := fs.String("format", "", "Output format: yaml or markdown")
	lang := fs.String("lang", "", "Document language, e.g. pt")
	to := fs.String("to", "", "Translate into this language")
	pages := fs.String("pages", "", "Pages to include, e.g. 1-3,7")
	images := fs.String("images", "", "Directory for extracted PDF images")
	useOCR := fs.Bool("ocr", false, "Transcribe scanned pages and images with Tesseract")
	ocrLang := fs.String("ocr-lang", "", "Tesseract languages, e.g. por+eng")
	translateURL := fs.String("translate-url", "", "LibreTranslate server URL")
	includeAll := fs.Bool("include-all", false, "Keep repeated headers, footers and page numbers")
	verbose := fs.Bool("v", false, "Verbose logging")
	showVersion := fs.Bool("version", false, "Show version information")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "manuscript - document structure recovery\n\n")
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  manuscript [options] file\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  manuscript novel.pdf                      YAML to stdout\n")
		fmt.Fprintf(stderr, "  manuscript -format markdown book.epub     Markdown to stdout\n")
		fmt.Fprintf(stderr, "  manuscript -ocr -images img scan.pdf      Transcribe scanned pages\n")
		fmt.Fprintf(stderr, "  manuscript -to en -o book.yaml book.yaml  Translate a saved book\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "manuscript %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, errorStyle.Render("Error: exactly one input file is required."))
		fmt.Fprintln(stderr, "Try: manuscript -h")
		return 2
	}
	input := fs.Arg(0)

	cfg := &Config{}
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfigFile(*configPath); err != nil {
			fmt.Fprintln(stderr, errorStyle.Render("Error: "+err.Error()))
			return 1
		}
	}

	// flags override the file
	if *output != "" {
		cfg.Output = *output
	}
	if *lang != "" {
		cfg.Assemble.Language = *lang
	}
	if *to != "" {
		cfg.Assemble.TargetLanguage = *to
	}
	if *ocrLang != "" {
		cfg.Assemble.OCRLanguages = *ocrLang
	}
	if *images != "" {
		cfg.ImageDir = *images
	}
	if *translateURL != "" {
		cfg.Translate.URL = *translateURL
	}
	if *useOCR {
		cfg.OCR.Enabled = true
	}
	if *includeAll {
		cfg.Assemble.IncludeAll = true
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		fmt.Fprintln(stderr, errorStyle.Render("Error: "+err.Error()))
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

	ext := manuscript.Open(input).
		Config(cfg.Assemble).
		ImageDir(cfg.ImageDir).
		WithLogger(logger)

	if *pages != "" {
		selected, err := parsePages(*pages)
		if err != nil {
			fmt.Fprintln(stderr, errorStyle.Render("Error: "+err.Error()))
			return 2
		}
		ext = ext.Pages(selected...)
	}

	if cfg.OCR.Enabled {
		client, err := ocr.New()
		if err != nil {
			fmt.Fprintln(stderr, errorStyle.Render("Error: "+err.Error()))
			return 1
		}
		defer client.Close()
		if cfg.OCR.PageSegMode > 0 {
			if err := client.SetPageSegMode(ocr.PageSegMode(cfg.OCR.PageSegMode)); err != nil {
				fmt.Fprintln(stderr, errorStyle.Render("Error: "+err.Error()))
				return 1
			}
		}
		ext = ext.WithOCR(client)
	}

	if cfg.TranslationEnabled() {
		tcfg := cfg.Translate
		tcfg.Logger = logger
		client, err := translate.New(tcfg)
		if err != nil {
			fmt.Fprintln(stderr, errorStyle.Render("Error: "+err.Error()))
			return 1
		}
		ext = ext.WithTranslator(client).WithDetector(client)
	}

	book, warnings, err := ext.Book(ctx)
	if err != nil {
		var trErr *service.TranslationError
		if book == nil || !errors.As(err, &trErr) {
			fmt.Fprintln(stderr, errorStyle.Render("Error: "+err.Error()))
			return 1
		}
		// keep the untranslated book
		logger.Warn("translation failed, writing untranslated book", "error", err)
		warnings = append(warnings, manuscript.Warning{Stage: "language", Message: "translation failed", Err: err})
	}

	if err := writeBook(book, cfg.Output, *out, stdout); err != nil {
		fmt.Fprintln(stderr, errorStyle.Render("Error: "+err.Error()))
		return 1
	}

	fmt.Fprintln(stderr, summary(input, book, warnings))
	return 0
}

func writeBook(book *model.Book, output, path string, stdout io.Writer) error {
	var w io.Writer = stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if output == "markdown" {
		return bookfile.WriteMarkdown(w, book)
	}
	return bookfile.Encode(w, book)
}

// summary renders a short report of the book for the terminal.
func summary(input string, book *model.Book, warnings []manuscript.Warning) string {
	counts := make(map[model.Kind]int)
	book.Walk(func(_ *model.Page, it model.Item) bool {
		counts[it.Kind()]++
		return true
	})

	lang := book.Metadata.Language
	if lang == "" {
		lang = "unknown"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(input))
	sb.WriteByte('\n')
	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-11s", label)))
		sb.WriteString(value)
		sb.WriteByte('\n')
	}
	row("pages", strconv.Itoa(len(book.Pages)))
	row("language", lang)
	row("headings", strconv.Itoa(counts[model.KindHeading]))
	row("paragraphs", strconv.Itoa(counts[model.KindParagraph]))
	row("footnotes", strconv.Itoa(len(book.References())))
	row("images", strconv.Itoa(counts[model.KindImage]))
	if book.Metadata.OCR {
		row("ocr pages", strconv.Itoa(len(book.Metadata.OCRPages)))
	}
	if len(warnings) > 0 {
		sb.WriteString(warnStyle.Render(fmt.Sprintf("  %d warning(s)", len(warnings))))
		sb.WriteByte('\n')
		for _, line := range strings.Split(manuscript.FormatWarnings(warnings), "\n") {
			sb.WriteString(warnStyle.Render("    " + line))
			sb.WriteByte('\n')
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// parsePages parses a list like "1-3,7" into page numbers.
func parsePages(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil || start < 1 {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil || end < start {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		for p := start; p <= end; p++ {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no pages in %q", s)
	}
	return out, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	pdfservice "github.com/shelfwise/pdf-service"
	"github.com/shelfwise/pdf-service/service"
	"github.com/shelfwise/pdf-service/svgtext"
)

func main() {
	var (
		pdfFile     = flag.String("pdf", "", "Path to PDF file")
		page        = flag.Int("page", 0, "Zero-based page index")
		scale       = flag.Float64("scale", 1.0, "Render scale (1.0 = 72 dpi)")
		renderOut   = flag.String("render", "", "Render the page to this PNG file")
		thumbOut    = flag.String("thumb", "", "Render a thumbnail to this PNG file")
		thumbSize   = flag.Int("thumb-size", 256, "Thumbnail longer-edge size in pixels")
		showText    = flag.Bool("text", false, "Print the page's plain text")
		showDims    = flag.Bool("dims", false, "Print the page's dimensions")
		searchQuery = flag.String("search", "", "Search the document for this text")
		searchLimit = flag.Int("limit", 20, "Maximum search results")
		svgOut      = flag.String("svg", "", "Write the page's text layer as SVG (.svgz compresses)")
		svgChars    = flag.Bool("chars", false, "Per-character tspans in SVG output")
		allDir      = flag.String("all", "", "Render every page as PNG into this directory")
		libDirs     = flag.String("lib", "", "PDFium search directories (comma-separated)")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *pdfFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: pdfrun -pdf <file.pdf> [-page n] [-render out.png] [-text] [-search query]")
		fmt.Fprintln(os.Stderr, "       pdfrun -pdf <file.pdf> -all <dir>")
		fmt.Fprintln(os.Stderr, "       pdfrun -pdf <file.pdf> -i  (interactive mode)")
		os.Exit(1)
	}

	opts := buildOptions(*libDirs, *verbose)

	if *interactive {
		if err := runInteractive(*pdfFile, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := runConfig{
		pdfFile:     *pdfFile,
		page:        *page,
		scale:       *scale,
		renderOut:   *renderOut,
		thumbOut:    *thumbOut,
		thumbSize:   *thumbSize,
		showText:    *showText,
		showDims:    *showDims,
		searchQuery: *searchQuery,
		searchLimit: *searchLimit,
		svgOut:      *svgOut,
		svgChars:    *svgChars,
		allDir:      *allDir,
	}
	if err := run(cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildOptions(libDirs string, verbose bool) []service.Option {
	var opts []service.Option
	if libDirs != "" {
		opts = append(opts, service.WithLibraryDirs(strings.Split(libDirs, ",")...))
	}
	if verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			opts = append(opts, service.WithLogger(log))
		}
	}
	return opts
}

type runConfig struct {
	pdfFile     string
	page        int
	scale       float64
	renderOut   string
	thumbOut    string
	thumbSize   int
	showText    bool
	showDims    bool
	searchQuery string
	searchLimit int
	svgOut      string
	svgChars    bool
	allDir      string
}

func run(cfg runConfig, opts []service.Option) error {
	ctx := context.Background()

	svc, err := service.Start(opts...)
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Shutdown(ctx)

	key := strings.TrimSuffix(filepath.Base(cfg.pdfFile), filepath.Ext(cfg.pdfFile))
	info, err := svc.OpenPath(ctx, key, cfg.pdfFile)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}

	fmt.Printf("Document: %s\n", cfg.pdfFile)
	fmt.Printf("Pages: %d\n", info.PageCount)
	if info.Title != "" {
		fmt.Printf("Title: %s\n", info.Title)
	}
	if info.Author != "" {
		fmt.Printf("Author: %s\n", info.Author)
	}

	if cfg.allDir != "" {
		return renderAll(ctx, svc, key, info.PageCount, cfg.allDir, cfg.scale)
	}

	if cfg.showDims {
		dims, err := svc.PageDimensions(ctx, key, cfg.page)
		if err != nil {
			return err
		}
		fmt.Printf("Page %d: %.2f x %.2f pt\n", cfg.page, dims.Width, dims.Height)
	}

	if cfg.renderOut != "" {
		png, err := svc.RenderPage(ctx, key, pdfservice.RenderRequest{Page: cfg.page, Scale: cfg.scale})
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.renderOut, png, 0o644); err != nil {
			return err
		}
		fmt.Printf("Rendered page %d to %s (%d bytes)\n", cfg.page, cfg.renderOut, len(png))
	}

	if cfg.thumbOut != "" {
		png, err := svc.RenderThumbnail(ctx, key, cfg.page, cfg.thumbSize)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.thumbOut, png, 0o644); err != nil {
			return err
		}
		fmt.Printf("Thumbnail of page %d written to %s\n", cfg.page, cfg.thumbOut)
	}

	if cfg.showText {
		text, err := svc.PageText(ctx, key, cfg.page)
		if err != nil {
			return err
		}
		fmt.Printf("\n--- page %d text ---\n%s\n", cfg.page, text)
	}

	if cfg.svgOut != "" {
		layer, err := svc.TextLayer(ctx, key, cfg.page)
		if err != nil {
			return err
		}
		var svg string
		if cfg.svgChars {
			svg = svgtext.GenerateWithChars(layer)
		} else {
			svg = svgtext.Generate(layer)
		}
		if err := writeSVG(cfg.svgOut, svg); err != nil {
			return err
		}
		fmt.Printf("Text layer of page %d written to %s (%d spans)\n", cfg.page, cfg.svgOut, len(layer.Spans))
	}

	if cfg.searchQuery != "" {
		results, err := svc.Search(ctx, key, cfg.searchQuery, cfg.searchLimit)
		if err != nil {
			return err
		}
		fmt.Printf("\n%d match(es) for %q:\n", len(results), cfg.searchQuery)
		for _, r := range results {
			fmt.Printf("  page %d char %d: %s\n", r.Page, r.CharIndex, r.Snippet)
		}
	}

	return nil
}

// renderAll rasterizes every page concurrently. The actor serializes the
// native rendering; the group overlaps queueing and file writes.
func renderAll(ctx context.Context, svc *service.Service, key string, pages int, dir string, scale float64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for page := 0; page < pages; page++ {
		page := page
		g.Go(func() error {
			png, err := svc.RenderPage(ctx, key, pdfservice.RenderRequest{Page: page, Scale: scale})
			if err != nil {
				return fmt.Errorf("page %d: %w", page, err)
			}
			out := filepath.Join(dir, fmt.Sprintf("page-%04d.png", page))
			return os.WriteFile(out, png, 0o644)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Printf("Rendered %d page(s) into %s\n", pages, dir)
	return nil
}

// writeSVG writes markup to path, gzip-compressed when the extension is
// .svgz.
func writeSVG(path, svg string) error {
	if !strings.HasSuffix(path, ".svgz") {
		return os.WriteFile(path, []byte(svg), 0o644)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(svg)); err != nil {
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

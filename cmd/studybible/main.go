// Command studybible is the CLI for the StudyBible reading core.
// It lists translations, reads passages, searches, shows parallel views,
// and serves the REST API.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/StudyBible/core/catalog"
	"github.com/FocuswithJustin/StudyBible/core/loader"
	"github.com/FocuswithJustin/StudyBible/core/parallel"
	"github.com/FocuswithJustin/StudyBible/core/refparse"
	"github.com/FocuswithJustin/StudyBible/core/search"
	"github.com/FocuswithJustin/StudyBible/core/sqlite"
	"github.com/FocuswithJustin/StudyBible/core/verses"
	"github.com/FocuswithJustin/StudyBible/internal/api"
	"github.com/FocuswithJustin/StudyBible/internal/bundled"
	"github.com/FocuswithJustin/StudyBible/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for studybible.
var CLI struct {
	// Global flags
	Data    string `name:"data" short:"d" help:"Translation data directory (default: bundled corpus)" type:"path"`
	Verbose bool   `name:"verbose" short:"v" help:"Enable debug logging"`

	Translations TranslationsCmd `cmd:"" help:"List available translations"`
	Books        BooksCmd        `cmd:"" help:"List books of a translation"`
	Read         ReadCmd         `cmd:"" help:"Read a passage by reference"`
	Search       SearchCmd       `cmd:"" help:"Search verse text"`
	Parallel     ParallelCmd     `cmd:"" help:"Show a passage in two translations side by side"`
	Serve        ServeCmd        `cmd:"" help:"Start REST API server"`
	Version      VersionCmd      `cmd:"" help:"Print version information"`
}

// openData resolves the catalog and store from the --data flag, falling back
// to the embedded corpus.
func openData() (*catalog.Catalog, *verses.Store, error) {
	if CLI.Data == "" {
		cat, err := bundled.Catalog()
		if err != nil {
			return nil, nil, err
		}
		l, err := bundled.Loader(cat)
		if err != nil {
			return nil, nil, err
		}
		return cat, verses.New(cat, l), nil
	}

	f, err := os.Open(filepath.Join(CLI.Data, "manifest.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	cat, err := catalog.Load(f, filepath.Join(CLI.Data, "manifest.json"))
	if err != nil {
		return nil, nil, err
	}
	return cat, verses.New(cat, loader.NewDir(cat, CLI.Data)), nil
}

// TranslationsCmd lists available translations.
type TranslationsCmd struct{}

func (c *TranslationsCmd) Run() error {
	cat, _, err := openData()
	if err != nil {
		return err
	}
	for _, t := range cat.List() {
		fmt.Printf("%-8s %-12s %s\n", t.ID, t.Abbreviation, t.Name)
	}
	return nil
}

// BooksCmd lists the books of one translation.
type BooksCmd struct {
	Translation string `arg:"" help:"Translation id (e.g. kjv)"`
}

func (c *BooksCmd) Run() error {
	_, store, err := openData()
	if err != nil {
		return err
	}
	books, err := store.GetBooks(context.Background(), c.Translation)
	if err != nil {
		return err
	}
	for _, b := range books {
		fmt.Printf("%3d. %-8s %-24s %s  (%d chapters)\n",
			b.Order, b.ID, b.Name, b.Testament, b.ChapterCount)
	}
	return nil
}

// ReadCmd reads a passage by scripture reference.
type ReadCmd struct {
	Reference   []string `arg:"" help:"Scripture reference (e.g. 'Gen 1:1', 'John 1')"`
	Translation string   `name:"translation" short:"t" default:"kjv" help:"Translation id"`
}

func (c *ReadCmd) Run() error {
	ref, err := refparse.Parse(strings.Join(c.Reference, " "))
	if err != nil {
		return err
	}

	_, store, err := openData()
	if err != nil {
		return err
	}

	vs, err := store.GetChapter(context.Background(), c.Translation, ref.ID(), ref.Chapter())
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", ref.String(), c.Translation)
	for _, v := range vs {
		if !showVerse(ref, v.Number) {
			continue
		}
		fmt.Printf("%3d  %s\n", v.Number, v.Text)
	}
	return nil
}

// showVerse reports whether a verse number falls inside the requested
// reference. Chapter-only and book-only references show everything.
func showVerse(ref *refparse.Range, number int) bool {
	if ref.VerseStart == nil {
		return true
	}
	if number < *ref.VerseStart {
		return false
	}
	if ref.ChapterEnd != nil {
		// Cross-chapter range; the rest of the start chapter is included.
		return true
	}
	if ref.VerseEnd != nil {
		return number <= *ref.VerseEnd
	}
	return number == *ref.VerseStart
}

// SearchCmd searches verse text in one translation.
type SearchCmd struct {
	Query       []string `arg:"" help:"Search query"`
	Translation string   `name:"translation" short:"t" default:"kjv" help:"Translation id"`
}

func (c *SearchCmd) Run() error {
	_, store, err := openData()
	if err != nil {
		return err
	}

	engine := search.NewEngine(store)
	results, err := engine.Search(context.Background(), c.Translation, strings.Join(c.Query, " "))
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%s %d:%d  %s\n", r.BookID, r.Chapter, r.Verse, r.Text)
	}
	fmt.Printf("%d match(es)\n", len(results))
	return nil
}

// ParallelCmd shows one chapter in two translations side by side.
type ParallelCmd struct {
	Reference []string `arg:"" help:"Scripture reference (e.g. 'Gen 1')"`
	Primary   string   `name:"primary" short:"p" default:"kjv" help:"Primary translation id"`
	Secondary string   `name:"secondary" short:"s" required:"" help:"Secondary translation id"`
}

func (c *ParallelCmd) Run() error {
	ref, err := refparse.Parse(strings.Join(c.Reference, " "))
	if err != nil {
		return err
	}

	cat, store, err := openData()
	if err != nil {
		return err
	}

	coord := parallel.New(cat, store)
	ctx := context.Background()
	if _, err := coord.SetSecondary(ctx, c.Secondary); err != nil {
		return err
	}
	view, err := coord.SetPrimary(ctx, c.Primary, ref.ID(), ref.Chapter())
	if err != nil {
		return err
	}

	fmt.Printf("%s  (%s | %s)\n", ref.String(), c.Primary, c.Secondary)
	printParallel(view)
	return nil
}

// printParallel renders the two verse columns line by line, pairing verses
// by number.
func printParallel(view parallel.View) {
	secondary := make(map[int]string, len(view.Secondary))
	for _, v := range view.Secondary {
		secondary[v.Number] = v.Text
	}

	for _, v := range view.Primary {
		fmt.Printf("%3d  %s\n", v.Number, v.Text)
		if text, ok := secondary[v.Number]; ok {
			fmt.Printf("     | %s\n", text)
		}
	}
	if view.SecondaryErr != nil {
		fmt.Printf("secondary unavailable: %v\n", view.SecondaryErr)
	}
}

// ServeCmd starts the REST API server.
type ServeCmd struct {
	Port    int      `name:"port" default:"8764" help:"Port to listen on"`
	Origins []string `name:"origins" help:"CORS allowed origins (default: allow all)"`
}

func (c *ServeCmd) Run() error {
	cat, store, err := openData()
	if err != nil {
		return err
	}

	srv := api.NewServer(api.Config{
		Port:           c.Port,
		DataDir:        CLI.Data,
		AllowedOrigins: c.Origins,
	}, cat, store)
	return srv.Start()
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := sqlite.GetInfo()
	fmt.Printf("studybible version %s (sqlite driver: %s/%s)\n", version, info.DriverName, info.DriverType)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("studybible"),
		kong.Description("StudyBible - translation catalog, verse cache, search, and parallel view"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	if CLI.Verbose {
		logging.InitLogger(logging.LevelDebug, logging.FormatText)
	} else {
		logging.InitLogger(logging.LevelInfo, logging.FormatText)
	}

	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}

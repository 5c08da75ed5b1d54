package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"udemy-crawl/internal/artifacts"
	"udemy-crawl/internal/blobclient"
	"udemy-crawl/internal/config"
	"udemy-crawl/internal/crawl"
	"udemy-crawl/internal/domain"
	"udemy-crawl/internal/export"
	"udemy-crawl/internal/fetch"
	"udemy-crawl/internal/fetch/browser"
	"udemy-crawl/internal/fetch/web"
	"udemy-crawl/internal/pacing"
	"udemy-crawl/internal/sftpclient"
)

func main() {
	var (
		jobType      = flag.String("job-type", "", "root folder on blob storage (e.g. 'full_dashboard')")
		categoryName = flag.String("category-name", "", "category display name (e.g. 'Software Testing')")
		categoryURL  = flag.String("category-url", "", "category listing base URL")
		startPage    = flag.Int("start-page", 1, "first listing page")
		endPage      = flag.Int("end-page", 0, "last listing page (required)")
		fetcherKind  = flag.String("fetcher", "browser", "page fetcher: browser | http")
		outDir       = flag.String("out-dir", ".", "local directory for the parquet file")
	)
	flag.Parse()

	if *jobType == "" || *categoryName == "" || *categoryURL == "" {
		log.Fatal("missing flags: --job-type / --category-name / --category-url are required")
	}
	if *startPage < 1 || *endPage < *startPage {
		log.Fatal("bad page range: need --start-page >= 1 and --end-page >= --start-page")
	}

	cfg := config.Load()
	set := config.DefaultSettings()
	pacer := pacing.NewRandom()

	// generous overall deadline, the crawl itself is deliberately slow
	rootCtx, cancel := context.WithTimeout(context.Background(), 8*time.Hour)
	defer cancel()

	fmt.Printf("--- JOB: %s ---\n", *jobType)
	fmt.Printf("--- CATEGORY: %s ---\n", *categoryName)
	fmt.Printf("--- PAGES: %d..%d ---\n", *startPage, *endPage)
	fmt.Printf("--- HEADLESS: %v ---\n", cfg.Headless)

	dump := func(label, markup string) {
		p, err := artifacts.DumpHTML("artifacts", label, markup)
		if err != nil {
			fmt.Printf("[debug] WARN: cannot save artifact: %v\n", err)
			return
		}
		fmt.Printf("[debug] saved %s\n", p)
	}

	// phase 1: listing discovery, own browser session
	urls := listingPhase(rootCtx, *fetcherKind, cfg, set, pacer, dump, *categoryURL, *startPage, *endPage)
	fmt.Printf("\n=== %s: %d unique course links ===\n", *categoryName, len(urls))

	// phase 2: detail extraction, fresh session
	rows := detailPhase(rootCtx, *fetcherKind, cfg, set, pacer, *categoryName, urls)
	fmt.Printf("\n### DONE: scraped %d courses for %s ###\n", len(rows), *categoryName)

	if len(rows) == 0 {
		fmt.Println("[save] no rows, nothing to write")
		return
	}

	name := export.FileName(*categoryName, *startPage, *endPage, time.Now())
	localPath := filepath.Join(*outDir, name)
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}
	if err := export.WriteParquet(localPath, rows); err != nil {
		log.Fatalf("save parquet: %v", err)
	}

	blobName := path.Join(*jobType, export.Underscore(*categoryName), name)
	switch {
	case cfg.AzureConnString != "":
		err := blobclient.UploadFile(rootCtx, cfg.AzureConnString, cfg.AzureContainer, localPath, blobName)
		if err != nil {
			fmt.Printf("[azure] ERROR: %v\n", err)
		}
	case cfg.SFTPHost != "":
		err := sftpclient.UploadFile(rootCtx, sftpclient.Config{
			Host:      cfg.SFTPHost,
			Port:      cfg.SFTPPort,
			User:      cfg.SFTPUser,
			Pass:      cfg.SFTPPass,
			RemoteDir: path.Join(cfg.SFTPRemoteDir, *jobType, export.Underscore(*categoryName)),
		}, localPath, name)
		if err != nil {
			fmt.Printf("[sftp] ERROR: %v\n", err)
		}
	default:
		fmt.Println("[upload] WARN: no upload destination configured, keeping local file only")
	}

	fmt.Println("\n=== JOB COMPLETE ===")
}

func listingPhase(
	ctx context.Context,
	kind string,
	cfg config.Config,
	set config.Settings,
	pacer pacing.Pacer,
	dump func(label, markup string),
	baseURL string,
	startPage, endPage int,
) []string {
	f, closeFn, err := newFetcher(ctx, kind, cfg, set, pacer)
	if err != nil {
		log.Fatalf("listing fetcher: %v", err)
	}
	defer closeFn()

	cr := &crawl.Crawler{
		Fetcher: fetch.WithRetry(f, set, pacer),
		Pacer:   pacer,
		Set:     set,
		Dump:    dump,
	}
	return cr.Listing(ctx, baseURL, startPage, endPage)
}

func detailPhase(
	ctx context.Context,
	kind string,
	cfg config.Config,
	set config.Settings,
	pacer pacing.Pacer,
	category string,
	urls []string,
) []domain.CourseRecord {
	f, closeFn, err := newFetcher(ctx, kind, cfg, set, pacer)
	if err != nil {
		log.Fatalf("detail fetcher: %v", err)
	}
	defer closeFn()

	cr := &crawl.Crawler{
		Fetcher: fetch.WithRetry(f, set, pacer),
		Pacer:   pacer,
		Set:     set,
	}
	return cr.Details(ctx, category, urls)
}

func newFetcher(
	ctx context.Context,
	kind string,
	cfg config.Config,
	set config.Settings,
	pacer pacing.Pacer,
) (fetch.Fetcher, func(), error) {
	switch kind {
	case "browser":
		s, err := browser.NewSession(ctx, set, cfg.Headless, pacer)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "http":
		return web.New(set), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown fetcher %q (want browser or http)", kind)
	}
}

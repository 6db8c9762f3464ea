package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sheetcapture "github.com/jiewpassakorn/sheet-capture"
	"github.com/jiewpassakorn/sheet-capture/pkg/gsheet"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = gsheet.Version

var (
	sheetURL  string
	savedName string
	saveAs    string
	cookie    string
	dpi       int
	format    string
	portrait  bool
	merge     bool
	maxWidth  int
	outputDir string
	timestamp string
	urlsFile  string
	keepPDF   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheet-capture",
		Short: "Export Google Sheets as email-friendly images",
		Long:  "A tool that downloads a Google Sheet as PDF, renders each page to an image, trims the whitespace, and optionally merges the pages into a single picture",
		Run:   run,
	}

	rootCmd.Flags().StringVarP(&sheetURL, "url", "u", "", "Google Sheet URL")
	rootCmd.Flags().StringVarP(&savedName, "name", "n", "", "Use a saved URL by name")
	rootCmd.Flags().StringVar(&saveAs, "save", "", "Save this URL under a name for reuse")
	rootCmd.Flags().StringVarP(&cookie, "cookie", "c", "", "Session cookie for private sheets (default: SHEET_COOKIE env var)")
	rootCmd.Flags().IntVar(&dpi, "dpi", 600, "Image DPI")
	rootCmd.Flags().StringVar(&format, "format", "png", "Output format: png or jpg")
	rootCmd.Flags().BoolVar(&portrait, "portrait", false, "Use portrait orientation (default: landscape)")
	rootCmd.Flags().BoolVar(&merge, "merge", true, "Merge all pages into a single image")
	rootCmd.Flags().IntVar(&maxWidth, "max-width", 1600, "Max image width in pixels (0 = unlimited)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "./output", "Output directory")
	rootCmd.Flags().StringVar(&timestamp, "timestamp", "", "Shared timestamp for batch runs")
	rootCmd.Flags().StringVar(&urlsFile, "urls-file", sheetcapture.DefaultURLStorePath, "Path to the saved URLs file")
	rootCmd.Flags().BoolVar(&keepPDF, "keep-pdf", false, "Also write the downloaded PDF next to the images")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all saved URLs",
		Run: func(cmd *cobra.Command, args []string) {
			if err := listURLs(); err != nil {
				fail(err)
			}
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sheet-capture version %s\n", version)
		},
	}

	rootCmd.AddCommand(listCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func fail(err error) {
	color.New(color.FgRed).Printf("Error: %v\n", err)
	os.Exit(1)
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n📸 Sheet Capture")
	cyan.Println("================")
	cyan.Println()

	store := sheetcapture.NewURLStore(urlsFile)

	if savedName != "" {
		if err := validatePathComponent(savedName, "name"); err != nil {
			fail(err)
		}
		u, ok, err := store.Lookup(savedName)
		if err != nil {
			fail(err)
		}
		if !ok {
			fail(fmt.Errorf("%q not found; run 'sheet-capture list' to see saved URLs", savedName))
		}
		sheetURL = u
		fmt.Printf("Using saved URL: %s\n", savedName)
	}

	if sheetURL == "" {
		fail(fmt.Errorf("--url or --name is required"))
	}

	if saveAs != "" {
		if err := validatePathComponent(saveAs, "save"); err != nil {
			fail(err)
		}
		if err := store.Save(saveAs, sheetURL); err != nil {
			fail(err)
		}
		green.Printf("Saved %q\n", saveAs)
	}

	if timestamp != "" {
		if err := validatePathComponent(timestamp, "timestamp"); err != nil {
			fail(err)
		}
	}

	// Cookie resolution order: flag, then environment (a .env file in the
	// working directory is folded into the environment if present).
	if cookie == "" {
		godotenv.Load()
		cookie = os.Getenv("SHEET_COOKIE")
	}

	projectName := savedName
	if projectName == "" {
		projectName = saveAs
	}
	if projectName == "" {
		projectName = "sheet"
	}

	ts := timestamp
	if ts == "" {
		ts = time.Now().Format("20060102_150405")
	}
	dateStr := ts
	if len(dateStr) > 8 {
		dateStr = dateStr[:8]
	}
	prefix := fmt.Sprintf("%s_%s_job-card", dateStr, projectName)
	destDir := filepath.Join(outputDir, ts, projectName)

	result, err := sheetcapture.Run(sheetcapture.Options{
		URL:      sheetURL,
		Cookie:   cookie,
		DPI:      dpi,
		Format:   format,
		Portrait: portrait,
		Merge:    merge,
		MaxWidth: maxWidth,
		Prefix:   prefix,
		Logger:   &cliLogger{},
	})
	if err != nil {
		fail(err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		fail(err)
	}

	written := 0
	writeArtifact := func(name string, data []byte) {
		path := filepath.Join(destDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			fail(err)
		}
		fmt.Printf("  Saved: %s\n", path)
		written++
	}

	if keepPDF {
		writeArtifact(prefix+".pdf", result.Document.Data)
	}
	for _, img := range result.Images {
		writeArtifact(img.Name, img.Data)
	}
	if result.Composite != nil {
		writeArtifact(result.Composite.Name, result.Composite.Data)
	}

	green.Printf("\n✨ Done! %d file(s) in %s\n\n", written, destDir)
}

func listURLs() error {
	store := sheetcapture.NewURLStore(urlsFile)
	names, err := store.Names()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No saved URLs yet. Use --save <name> to save one.")
		return nil
	}

	urls, err := store.Load()
	if err != nil {
		return err
	}

	bold := color.New(color.FgCyan, color.Bold)
	for _, name := range names {
		bold.Printf("%-20s", name)
		fmt.Printf(" %s\n", urls[name])
	}
	return nil
}

// validatePathComponent rejects values that could escape the output
// directory when used as a file or directory name.
func validatePathComponent(value, label string) error {
	if strings.ContainsAny(value, `/\`) || strings.Contains(value, "..") {
		return fmt.Errorf("--%s must not contain '/', '\\' or '..'", label)
	}
	return nil
}

// cliLogger implements sheetcapture.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}

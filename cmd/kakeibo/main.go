package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/liyingruan/kakeibo/internal/expense"
	"github.com/liyingruan/kakeibo/internal/ocr"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	fs := ff.NewFlagSet("kakeibo")
	var (
		port         = fs.IntLong("port", 8080, "HTTP server port")
		dbPath       = fs.StringLong("db", "kakeibo.db", "Database file path")
		archivePath  = fs.StringLong("archive", "./receipts", "Receipt image archive directory")
		engineType   = fs.StringLong("engine", "gemini", "OCR engine: 'gemini', 'ollama', 'azure' or 'tesseract'")
		lang         = fs.StringLong("lang", ocr.LangJapanese, "Receipt language hint: 'ja' or 'en'")
		enhance      = fs.BoolLong("enhance", "Preprocess images (grayscale, contrast, sharpen) before recognition")
		geminiKey    = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel  = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL    = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel  = fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, llava-phi3, bakllava, qwen2-vl)")
		azureURL     = fs.StringLong("azure-endpoint", "", "Azure Computer Vision endpoint (or set AZURE_VISION_ENDPOINT env var)")
		azureKey     = fs.StringLong("azure-key", "", "Azure Computer Vision API key (or set AZURE_VISION_KEY env var)")
		tesseractBin = fs.StringLong("tesseract-bin", "tesseract", "Tesseract binary path")
		authUser     = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass     = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion  = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("KAKEIBO"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize database
	slog.Info("Initializing database...")
	store, err := expense.NewBoltStore(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Initialize the OCR engine based on type
	var engine ocr.Engine
	switch *engineType {
	case "gemini":
		// Get Gemini API key from flag or environment
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini engine...", "model", *geminiModel)
		engine, err = ocr.NewGemini(apiKey, *geminiModel, *lang, *enhance)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama engine...", "url", *ollamaURL, "model", *ollamaModel)
		engine, err = ocr.NewOllama(*ollamaURL, *ollamaModel, *lang, *enhance)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	case "azure":
		endpoint := *azureURL
		if endpoint == "" {
			endpoint = os.Getenv("AZURE_VISION_ENDPOINT")
		}
		apiKey := *azureKey
		if apiKey == "" {
			apiKey = os.Getenv("AZURE_VISION_KEY")
		}
		slog.Info("Initializing Azure engine...", "endpoint", endpoint)
		engine, err = ocr.NewAzure(endpoint, apiKey, *lang, *enhance)
		if err != nil {
			slog.Error("Failed to initialize Azure", "error", err)
			os.Exit(1)
		}
	case "tesseract":
		slog.Info("Initializing Tesseract engine...", "binary", *tesseractBin)
		engine, err = ocr.NewTesseract(*tesseractBin, *lang, *enhance)
		if err != nil {
			slog.Error("Failed to initialize Tesseract", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid engine type", "type", *engineType, "valid", "gemini, ollama, azure or tesseract")
		os.Exit(1)
	}
	defer engine.Close()

	// Initialize the receipt image archive
	slog.Info("Initializing archive...")
	archive, err := expense.NewLocalArchive(*archivePath)
	if err != nil {
		slog.Error("Failed to initialize archive", "error", err)
		os.Exit(1)
	}

	// Initialize service
	expenseService := expense.NewService(store, engine, archive)

	// Initialize server
	basicAuth := expense.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := expense.NewServer(expenseService, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

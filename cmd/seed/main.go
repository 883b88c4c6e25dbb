package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/alamana-org/charity-server/pkg/charity/config"
)

const usage = `Charity Server Seed CLI

Seeds the database with the bootstrap admin account and the page-content
records the public site expects to exist.

USAGE:
  seed [options]

OPTIONS:
  --skip-pages   Only seed the admin account, skip page-content records

ENVIRONMENT VARIABLES:
  DATABASE_URL      PostgreSQL connection string (in-memory when empty)
  JWT_SECRET        Token signing secret (required)
  ADMIN_EMAIL       Bootstrap admin email (required)
  ADMIN_PASSWORD    Bootstrap admin password (required)

  Configuration can be loaded from a .env file in the current directory.
  Command line environment variables override .env file values.

EXAMPLES:
  # Seed admin and pages against the configured database
  seed

  # Re-run after adding new page names (safe, existing rows are kept)
  seed
`

// defaultPages are the page-content keys the frontend reads. Seeding them
// up front means the admin panel edits existing rows instead of racing to
// create them.
var defaultPages = []string{
	"home",
	"about",
	"projects",
	"reports",
	"contact",
}

func main() {
	// Load .env file if present, ignore errors since env vars may be set directly
	_ = godotenv.Load()

	skipPages := false
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--skip-pages":
			skipPages = true
		case "-h", "--help", "help":
			fmt.Print(usage)
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n\n%s", arg, usage)
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required for seeding")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := cfg.BuildRepository(ctx)
	if err != nil {
		log.Fatalf("Failed to connect repository: %v", err)
	}

	authSvc, err := cfg.BuildAuth(repo, nil)
	if err != nil {
		log.Fatalf("Failed to build auth service: %v", err)
	}

	if err := authSvc.EnsureAdmin(ctx); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	fmt.Printf("Admin account ready: %s\n", cfg.AdminEmail)

	if skipPages {
		return
	}

	for _, name := range defaultPages {
		if _, err := repo.EnsurePageContent(ctx, name); err != nil {
			log.Fatalf("Failed to seed page %q: %v", name, err)
		}
	}
	fmt.Printf("Page content ready: %d pages\n", len(defaultPages))
}

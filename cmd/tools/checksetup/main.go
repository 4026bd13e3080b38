// checksetup verifies that the console can reach the shop backend before a
// deploy: the config record answers and the product list decodes.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"log/slog"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/DAVID1990208/SOLE/internal/soleapi"
)

func main() {
	_ = godotenv.Load()

	backend := os.Getenv("SOLE_BACKEND_URL")
	if len(os.Args) > 1 {
		backend = os.Args[1]
	}
	if backend == "" {
		fmt.Fprintln(os.Stderr, "usage: checksetup <backend-url>  (or set SOLE_BACKEND_URL)")
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	api := soleapi.New(backend, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	fmt.Printf("Verificando backend: %s\n\n", backend)
	failed := false

	cfg, err := api.GetSiteConfig(ctx)
	if err != nil {
		fmt.Printf("%s GET /api/config: %v\n", bad("✗"), err)
		failed = true
	} else {
		fmt.Printf("%s GET /api/config (color principal %s)\n", ok("✓"), cfg.PrimaryColor)
	}

	products, err := api.ListProducts(ctx, "")
	if err != nil {
		fmt.Printf("%s GET /api/products: %v\n", bad("✗"), err)
		failed = true
	} else {
		fmt.Printf("%s GET /api/products (%d productos)\n", ok("✓"), len(products))
	}

	if failed {
		fmt.Println(bad("\nEl backend no está listo."))
		os.Exit(1)
	}
	fmt.Println(ok("\nTodo listo."))
}

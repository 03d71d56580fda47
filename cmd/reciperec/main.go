// reciperec
//
// A grocery-list recipe recommendation service. Send a grocery list, get
// back the food/non-food split and recipe suggestions from an LLM.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "reciperec",
	Short: "reciperec - Grocery List Recipe Recommendations",
	Long: `reciperec turns a grocery list into recipe suggestions using an LLM.

  reciperec config set GROQ_API_KEY gsk_xxx        Set up an API key (first time)
  reciperec serve                                  Start the server
  reciperec suggest apple bread napkins            Ask a running server for recipes`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("RECIPEREC_SERVER", "http://localhost:8080"), "reciperec server URL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DakshC17/reciperecommendation/internal/recipes"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <item>...",
	Short: "Ask a running server for recipe suggestions",
	Long: `Send a grocery list to a running reciperec server and print the result.

  reciperec suggest apple bread napkins
  reciperec suggest "apple, bread, napkins"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	items := recipes.SplitItems(strings.Join(args, ","))

	body, err := json.Marshal(map[string][]string{"items": items})
	if err != nil {
		return err
	}

	resp, err := http.Post(serverURL+"/suggest-recipes", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("contacting server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, string(data))
	}

	var sugg recipes.Suggestion
	if err := json.Unmarshal(data, &sugg); err != nil {
		return fmt.Errorf("parsing server response: %w", err)
	}

	fmt.Print(recipes.FormatText(&sugg))
	return nil
}

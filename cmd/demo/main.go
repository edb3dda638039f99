// Command demo runs one suggestion against the corpus and prints the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/korjavin/fridgechef/pkg/app"
	"github.com/korjavin/fridgechef/pkg/chef"
	"github.com/korjavin/fridgechef/pkg/config"
	"github.com/korjavin/fridgechef/pkg/ingredient"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/match"
)

func main() {
	ingredients := flag.String("ingredients", "rice,bread,chicken", "comma separated ingredients")
	inMemory := flag.Bool("memory", true, "keep storage in memory")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Global.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if *inMemory {
		cfg.DataDir = ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rt, err := app.New(ctx, cfg)
	if err != nil {
		logger.Global.Error("Failed to start: %v", err)
		os.Exit(1)
	}
	defer rt.Close()

	q := ingredient.NewQuery()
	q.AddManualList(*ingredients)

	s := rt.Chef(cfg.DemoMatchThreshold, "demo").Suggest(ctx, q)
	fmt.Print(render(s, cfg.DisplayMinScore))
}

func render(s chef.Suggestion, minScore float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ingredients: %s\n", strings.Join(s.Query, ", "))

	shown := match.DisplayFilter(s.Matches, minScore)
	for _, m := range shown {
		fmt.Fprintf(&b, "\n%s\nMatch: %d%%\n", m.RecipeTitle, m.Percent)
		if len(m.MissingDisplay) > 0 {
			b.WriteString("Missing Ingredients:\n")
			for _, item := range m.MissingDisplay {
				fmt.Fprintf(&b, "  - %s\n", item)
			}
		}
	}
	if len(shown) == 0 {
		b.WriteString("\nNo database recipe scored above the display minimum.\n")
	}

	if !s.UsedDatabase {
		fmt.Fprintf(&b, "\nNo good database matches found (threshold %.2f). Generated recipe:\n\n%s\n", s.Threshold, s.Generated)
	}
	return b.String()
}

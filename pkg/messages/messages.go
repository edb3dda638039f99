// Package messages renders suggestions and pantry contents as chat text.
package messages

import (
	"fmt"
	"strings"

	"github.com/korjavin/fridgechef/pkg/chef"
	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/models"
)

const (
	// WelcomeMessage is sent on /start
	WelcomeMessage = "👋 Welcome to FridgeChef! Send me a photo of your fridge or type what you have with /add, then ask for ideas with /cook."

	// HelpMessage lists the bot commands
	HelpMessage = `Here's what I can do:

/add <items> - add ingredients, comma separated
/remove <item> - drop one ingredient
📷 photo - I'll spot the ingredients for you
/pantry - show what you have
/clear - start over
/cook - suggest recipes
/stats - see what you've been cooking`

	// EmptyPantryMessage is sent when there is nothing to cook with
	EmptyPantryMessage = "Your pantry is empty! Add ingredients with /add or by sending a photo."

	// AskIngredientsMessage prompts for a manual list
	AskIngredientsMessage = "Which ingredients do you have? Send them comma separated."

	// RemoveUsageMessage explains /remove
	RemoveUsageMessage = "Tell me what to remove, e.g. /remove milk"

	// ErrorMessage is the generic failure reply
	ErrorMessage = "😢 Sorry, something went wrong. Please try again later."

	// NoMatchesHeader precedes a generated recipe
	NoMatchesHeader = "No good database matches found."
)

// FormatSuggestion renders a suggestion. Matches scoring at or below minScore
// are left out. A generated recipe, or the error text in its place, is shown
// verbatim.
func FormatSuggestion(s chef.Suggestion, minScore float64) string {
	if s.Empty() {
		return EmptyPantryMessage
	}

	var b strings.Builder
	if !s.UsedDatabase {
		b.WriteString(NoMatchesHeader)
		b.WriteString("\n\n")
		b.WriteString(s.Generated)
		return b.String()
	}

	b.WriteString("🍽️ Here's what you can cook:\n")
	for i, m := range match.DisplayFilter(s.Matches, minScore) {
		fmt.Fprintf(&b, "\n%d. %s\nMatch: %d%%\n", i+1, m.RecipeTitle, m.Percent)
		if len(m.Missing) == 0 {
			b.WriteString("You have everything!\n")
			continue
		}
		// every missing entry may have been cleaned away
		if len(m.MissingDisplay) == 0 {
			continue
		}
		b.WriteString("Missing Ingredients:\n")
		for _, item := range m.MissingDisplay {
			b.WriteString("• " + item + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPantry lists the collected ingredients
func FormatPantry(items []string) string {
	if len(items) == 0 {
		return EmptyPantryMessage
	}
	var b strings.Builder
	b.WriteString("🧊 Here's what's in your pantry:\n\n")
	for _, item := range items {
		b.WriteString("• " + item + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDetected reports labels found on a photo
func FormatDetected(labels []string, added int) string {
	if len(labels) == 0 {
		return "I couldn't spot any ingredients on that photo. Try another one or use /add."
	}
	return fmt.Sprintf("📷 I found: %s\nAdded %d new item(s). Send /cook when you're ready.", strings.Join(labels, ", "), added)
}

// FormatRemoved confirms or declines a removal
func FormatRemoved(name string, removed bool) string {
	if !removed {
		return fmt.Sprintf("%s isn't in your pantry.", name)
	}
	return fmt.Sprintf("🗑️ Removed %s.", name)
}

// FormatAdded confirms a manual addition
func FormatAdded(added, total int) string {
	if added == 0 {
		return fmt.Sprintf("Nothing new to add. You have %d item(s).", total)
	}
	return fmt.Sprintf("✅ Added %d item(s). You have %d now.", added, total)
}

// FormatStats summarises the suggestions served to a chat
func FormatStats(st *models.Statistics, top []models.RecipeStat) string {
	if st.Suggestions == 0 {
		return "📊 No suggestions yet. Try /cook!"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Suggestions: %d\nFrom recipes: %d\nGenerated: %d\n", st.Suggestions, st.DatabaseHits, st.Generated)
	if st.GenerationFailures > 0 {
		fmt.Fprintf(&b, "Failed generations: %d\n", st.GenerationFailures)
	}
	if len(top) > 0 {
		b.WriteString("\nTop recipes:\n")
		for i, r := range top {
			fmt.Fprintf(&b, "%d. %s (%dx, best %d%%)\n", i+1, r.Title, r.TopCount, int(r.BestScore*100))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

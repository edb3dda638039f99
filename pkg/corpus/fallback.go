package corpus

import "github.com/korjavin/fridgechef/pkg/models"

// Fallback returns the built-in recipe set used when no dataset is available
func Fallback(imageExt string) []models.Recipe {
	return []models.Recipe{
		{
			Title:        "Miso-Butter Roast Chicken with Roasted Radishes",
			Ingredients:  []string{"chicken", "miso", "butter", "radish", "pepper"},
			Instructions: "1. Preheat oven to 400F. 2. Mix miso and butter. 3. Rub on chicken.",
			ImageRef:     "miso-butter-roast-chicken-with-roasted-radishes" + imageExt,
		},
		{
			Title:        "Crispy Salt and Pepper Potatoes",
			Ingredients:  []string{"potato", "oil", "salt", "pepper", "rosemary"},
			Instructions: "1. Cut potatoes. 2. Toss in oil. 3. Roast until crispy.",
			ImageRef:     "crispy-salt-and-pepper-potatoes-drizzle" + imageExt,
		},
		{
			Title:        "Simple Scrambled Eggs",
			Ingredients:  []string{"egg", "milk", "butter", "salt"},
			Instructions: "1. Whisk eggs. 2. Melt butter. 3. Cook gently.",
			ImageRef:     "simple-scrambled-eggs" + imageExt,
		},
	}
}

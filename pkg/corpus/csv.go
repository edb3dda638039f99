package corpus

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/pkg/errors"
)

// Column names of the recipe dataset
const (
	ColumnTitle        = "Title"
	ColumnIngredients  = "Cleaned_Ingredients"
	ColumnImage        = "Image_Name"
	ColumnInstructions = "Instructions"
)

// Stats summarises one import
type Stats struct {
	Rows    int `json:"rows"`
	Skipped int `json:"skipped"`
}

// ReadCSV reads recipes from a dataset with a header row. Rows whose
// ingredient column cannot be parsed, or parses to an empty list, are skipped
// and counted rather than failing the import.
func ReadCSV(r io.Reader, imageExt string, onSkip func(row int, title string, err error)) ([]models.Recipe, Stats, error) {
	var stats Stats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, stats, errors.Wrap(err, "failed to read header")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, required := range []string{ColumnTitle, ColumnIngredients, ColumnImage} {
		if _, ok := cols[required]; !ok {
			return nil, stats, errors.Errorf("missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var recipes []models.Recipe
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		stats.Rows++
		if err != nil {
			stats.Skipped++
			if onSkip != nil {
				onSkip(stats.Rows, "", err)
			}
			continue
		}

		title := field(record, ColumnTitle)
		ingredients, err := ParseIngredientList(field(record, ColumnIngredients))
		if err == nil && len(ingredients) == 0 {
			err = ErrEmptyIngredients
		}
		if err != nil {
			stats.Skipped++
			if onSkip != nil {
				onSkip(stats.Rows, title, err)
			}
			continue
		}

		recipes = append(recipes, models.Recipe{
			Title:        title,
			Ingredients:  ingredients,
			Instructions: field(record, ColumnInstructions),
			ImageRef:     field(record, ColumnImage) + imageExt,
		})
	}

	return recipes, stats, nil
}

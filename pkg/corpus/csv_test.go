package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `,Title,Ingredients,Instructions,Image_Name,Cleaned_Ingredients
0,Simple Scrambled Eggs,x,Whisk.,simple-scrambled-eggs,"['egg', 'milk', 'butter', 'salt']"
1,Broken Row,x,None.,broken,"not a list"
2,Empty Row,x,None.,empty,"[]"
3,Potatoes,x,Roast.,crispy-potatoes,"['potato', 'oil']"
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	var skipped []string
	recipes, stats, err := ReadCSV(strings.NewReader(sampleCSV), ".jpg", func(row int, title string, err error) {
		skipped = append(skipped, title)
	})
	require.NoError(t, err)

	assert.Equal(t, Stats{Rows: 4, Skipped: 2}, stats)
	assert.Equal(t, []string{"Broken Row", "Empty Row"}, skipped)

	require.Len(t, recipes, 2)
	assert.Equal(t, "Simple Scrambled Eggs", recipes[0].Title)
	assert.Equal(t, []string{"egg", "milk", "butter", "salt"}, recipes[0].Ingredients)
	assert.Equal(t, "simple-scrambled-eggs.jpg", recipes[0].ImageRef)
	assert.Equal(t, "Whisk.", recipes[0].Instructions)
	assert.Equal(t, "Potatoes", recipes[1].Title)
}

func TestReadCSV_MissingColumn(t *testing.T) {
	t.Parallel()

	_, _, err := ReadCSV(strings.NewReader("Title,Image_Name\nA,a\n"), ".jpg", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColumnIngredients)
}

func TestReadCSV_Empty(t *testing.T) {
	t.Parallel()

	_, _, err := ReadCSV(strings.NewReader(""), ".jpg", nil)
	assert.Error(t, err)
}

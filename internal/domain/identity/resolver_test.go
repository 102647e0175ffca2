package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTable() map[string]string {
	return map[string]string{
		"9265": "Aaron Davidson",
		"4298": "Alex Masuda",
		"1725": "Jericho Taylor-Daves",
	}
}

func TestResolver_MappedToken(t *testing.T) {
	r := NewResolver(testTable())

	id := r.Resolve("9265")

	assert.Equal(t, "Aaron Davidson", id.Name)
	assert.True(t, id.Known)
}

func TestResolver_MissingToken(t *testing.T) {
	r := NewResolver(testTable())

	id := r.Resolve("")

	assert.Equal(t, Unknown, id)
	assert.False(t, id.Known)
}

func TestResolver_UnmappedToken(t *testing.T) {
	r := NewResolver(testTable())

	id := r.Resolve("3253")

	// Distinguishable from Unknown so operators can extend the table
	assert.Equal(t, "Unknown Card 3253", id.Name)
	assert.False(t, id.Known)
	assert.NotEqual(t, Unknown, id)
}

func TestResolver_TrimsWhitespace(t *testing.T) {
	r := NewResolver(map[string]string{" 9265 ": " Aaron Davidson "})

	id := r.Resolve("9265")

	assert.Equal(t, "Aaron Davidson", id.Name)
	assert.True(t, id.Known)
}

func TestResolver_CopiesTable(t *testing.T) {
	table := testTable()
	r := NewResolver(table)
	table["9265"] = "Someone Else"

	assert.Equal(t, "Aaron Davidson", r.Resolve("9265").Name)
}

func TestPerson(t *testing.T) {
	assert.True(t, Person("Jerry Morales").Known)
	assert.Equal(t, "Jerry Morales", Person(" Jerry Morales ").Name)
	assert.Equal(t, Unknown, Person(""))
	assert.Equal(t, Unknown, Person("   "))
}

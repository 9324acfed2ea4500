package seed

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// nameParts are the sampled words a name template can draw on.
type nameParts struct {
	Cuisine   string
	Term      string
	Adjective string
	Base      string
}

// descriptionParts are the sampled words a description template can draw on.
type descriptionParts struct {
	Cuisine string
	Name    string
	Method  string
	Sauce   string
	Garnish string
}

// nameTemplates compose a food name. Chosen uniformly.
var nameTemplates = []func(p nameParts) string{
	func(p nameParts) string { return capitalize(p.Adjective) + " " + p.Base + " " + capitalize(p.Term) },
	func(p nameParts) string { return p.Base + " " + capitalize(p.Term) },
	func(p nameParts) string { return capitalize(p.Adjective) + " " + capitalize(p.Term) },
	func(p nameParts) string { return capitalize(p.Term) + " with " + p.Base },
	func(p nameParts) string { return p.Cuisine + " " + p.Base + " " + capitalize(p.Term) },
	func(p nameParts) string { return p.Cuisine + " Style " + capitalize(p.Term) },
}

// descriptionTemplates compose a one-sentence description. Chosen uniformly.
var descriptionTemplates = []func(p descriptionParts) string{
	func(p descriptionParts) string {
		return capitalize(p.Method) + " dish with " + p.Sauce + " and " + p.Garnish + "."
	},
	func(p descriptionParts) string {
		return "Traditional " + p.Cuisine + " dish featuring " + strings.ToLower(p.Name) + ", prepared with " + p.Sauce + "."
	},
	func(p descriptionParts) string {
		return "A " + p.Method + " specialty made with " + p.Garnish + " and a " + p.Sauce + "."
	},
	func(p descriptionParts) string {
		return "Classic " + p.Cuisine + " preparation with " + p.Garnish + ", " + p.Method + " to perfection."
	},
	func(p descriptionParts) string {
		return "Authentic " + p.Cuisine + " dish with " + p.Sauce + " and topped with " + p.Garnish + "."
	},
}

// capitalize upper-cases the first letter and lower-cases the rest,
// so "stir-fry" becomes "Stir-fry" and "PAD THAI" becomes "Pad thai".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

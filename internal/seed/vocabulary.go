// Package seed provides synthetic food generation for populating a catalog.
package seed

// CuisineVocabulary holds the words used to build names for one cuisine.
type CuisineVocabulary struct {
	Terms      []string // Dish terms ("curry", "tagine")
	Adjectives []string // Descriptive adjectives ("smoky", "tangy")
	Bases      []string // Protein or base options ("Chicken", "Tofu")
}

// Vocabulary maps cuisine names to their word lists.
type Vocabulary map[string]CuisineVocabulary

// Lookup returns the vocabulary for a cuisine.
func (v Vocabulary) Lookup(cuisine string) (CuisineVocabulary, bool) {
	cv, ok := v[cuisine]
	if !ok || len(cv.Terms) == 0 || len(cv.Adjectives) == 0 || len(cv.Bases) == 0 {
		return CuisineVocabulary{}, false
	}
	return cv, true
}

// DefaultVocabulary is the built-in vocabulary for the twelve catalog cuisines.
var DefaultVocabulary = Vocabulary{
	"Indian": {
		Terms: []string{
			"masala", "paneer", "naan", "curry", "chutney", "biryani", "dal",
			"chapati", "samosa", "chaat", "tikka", "korma", "vindaloo", "raita",
			"bhaji", "pakora", "tandoori", "dosa", "idli", "uttapam",
		},
		Adjectives: []string{
			"spicy", "creamy", "aromatic", "savory", "tangy", "hot", "rich",
			"fragrant", "flavorful", "traditional",
		},
		Bases: []string{"Chicken", "Lamb", "Paneer", "Fish", "Shrimp", "Beef", "Vegetable"},
	},
	"Mexican": {
		Terms: []string{
			"taco", "burrito", "enchilada", "quesadilla", "salsa", "guacamole",
			"chilaquiles", "mole", "pozole", "tamale", "fajita", "tostada",
			"chimichanga", "carnitas", "elote", "chiles", "churro", "ceviche",
			"sopapilla", "queso",
		},
		Adjectives: []string{
			"spicy", "zesty", "fresh", "tangy", "fiery", "savory", "hearty",
			"rich", "vibrant", "authentic",
		},
		Bases: []string{"Beef", "Chicken", "Pork", "Shrimp", "Fish", "Bean", "Vegetable"},
	},
	"Chinese": {
		Terms: []string{
			"noodle", "dumpling", "fried rice", "stir-fry", "wonton", "chow mein",
			"lo mein", "egg roll", "sweet and sour", "spring roll", "dim sum",
			"hot pot", "bao", "congee", "chop suey", "kung pao", "szechuan",
			"peking duck", "char siu", "hoisin",
		},
		Adjectives: []string{
			"savory", "umami", "stir-fried", "steamed", "crispy", "sweet", "sour",
			"spicy", "tender", "aromatic",
		},
		Bases: []string{"Chicken", "Pork", "Beef", "Fish", "Shrimp", "Tofu", "Duck"},
	},
	"Middle Eastern": {
		Terms: []string{
			"hummus", "falafel", "kebab", "pita", "tabbouleh", "tahini", "kibbeh",
			"dolma", "baba ganoush", "fattoush", "shawarma", "baklava", "halva",
			"labneh", "manakish", "mujadara", "kofta", "sfiha", "kanafeh",
			"maamoul",
		},
		Adjectives: []string{
			"savory", "aromatic", "fresh", "creamy", "hearty", "rich", "smoky",
			"spiced", "tangy", "warming",
		},
		Bases: []string{"Lamb", "Chicken", "Beef", "Falafel", "Vegetable", "Fish"},
	},
	"African": {
		Terms: []string{
			"couscous", "tagine", "injera", "fufu", "bobotie", "egusi", "jollof",
			"bunny chow", "chakalaka", "piri piri", "doro wat", "pap", "suya",
			"akara", "ful medames", "shakshouka", "matoke", "ugali", "muamba",
			"mafe",
		},
		Adjectives: []string{
			"spicy", "hearty", "rich", "flavorful", "savory", "aromatic", "bold",
			"tangy", "smoky", "warming",
		},
		Bases: []string{"Chicken", "Beef", "Fish", "Goat", "Vegetable", "Bean"},
	},
	"Thai": {
		Terms: []string{
			"pad thai", "curry", "tom yum", "som tam", "massaman", "spring roll",
			"satay", "larb", "tom kha", "khao pad", "panang", "mango sticky rice",
			"pad see ew", "khao soi", "yam", "gai yang", "pla pao", "pad kra pao",
			"mee krob", "khanom",
		},
		Adjectives: []string{
			"spicy", "sweet", "sour", "fragrant", "creamy", "fresh", "savory",
			"tangy", "rich", "aromatic",
		},
		Bases: []string{"Chicken", "Shrimp", "Beef", "Tofu", "Fish", "Pork", "Vegetable"},
	},
	"Japanese": {
		Terms: []string{
			"sushi", "ramen", "tempura", "sashimi", "udon", "teriyaki", "yakitori",
			"onigiri", "donburi", "gyoza", "miso", "takoyaki", "okonomiyaki",
			"shabu-shabu", "sukiyaki", "katsu", "yakisoba", "tamagoyaki", "unagi",
			"mochi",
		},
		Adjectives: []string{
			"umami", "savory", "delicate", "fresh", "light", "balanced",
			"traditional", "rich", "simple", "comforting",
		},
		Bases: []string{"Fish", "Chicken", "Beef", "Tofu", "Pork", "Vegetable", "Seafood"},
	},
	"Italian": {
		Terms: []string{
			"pasta", "pizza", "risotto", "carbonara", "lasagna", "bruschetta",
			"gnocchi", "tiramisu", "minestrone", "pesto", "cannoli", "ravioli",
			"parmigiana", "osso buco", "ciabatta", "focaccia", "polenta",
			"arancini", "bolognese", "cacciatore",
		},
		Adjectives: []string{
			"savory", "hearty", "rich", "creamy", "fresh", "aromatic", "rustic",
			"robust", "comforting", "wholesome",
		},
		Bases: []string{"Beef", "Chicken", "Pork", "Seafood", "Vegetable", "Cheese"},
	},
	"Greek": {
		Terms: []string{
			"souvlaki", "gyro", "moussaka", "tzatziki", "spanakopita", "dolmades",
			"baklava", "feta", "pastitsio", "keftedes", "avgolemono", "saganaki",
			"taramasalata", "kleftiko", "galaktoboureko", "tiropita",
			"loukoumades", "revani", "skordalia", "fasolada",
		},
		Adjectives: []string{
			"fresh", "tangy", "savory", "rich", "hearty", "aromatic", "light",
			"traditional", "rustic", "zesty",
		},
		Bases: []string{"Lamb", "Chicken", "Fish", "Beef", "Vegetable", "Cheese"},
	},
	"Korean": {
		Terms: []string{
			"bibimbap", "kimchi", "bulgogi", "galbi", "tteokbokki", "japchae",
			"mandu", "kimbap", "samgyeopsal", "jjigae", "sundubu", "pajeon",
			"bossam", "jajangmyeon", "gamjatang", "seolleongtang", "budae jjigae",
			"hoeddeok", "bingsu", "samgyetang",
		},
		Adjectives: []string{
			"spicy", "fermented", "savory", "sweet", "tangy", "umami", "robust",
			"rich", "bold", "hearty",
		},
		Bases: []string{"Beef", "Pork", "Chicken", "Tofu", "Fish", "Vegetable", "Seafood"},
	},
	"Vietnamese": {
		Terms: []string{
			"pho", "banh mi", "spring roll", "bun cha", "banh xeo", "com tam",
			"bun bo hue", "ca kho to", "cha ca", "cao lau", "mi quang", "hu tieu",
			"com chay", "goi cuon", "banh cuon", "com nguoi", "banh canh",
			"bo luc lac", "thit kho", "nem nuong",
		},
		Adjectives: []string{
			"fresh", "aromatic", "light", "savory", "tangy", "sweet", "spicy",
			"delicate", "balanced", "vibrant",
		},
		Bases: []string{"Beef", "Chicken", "Pork", "Shrimp", "Fish", "Tofu", "Vegetable"},
	},
	"Spanish": {
		Terms: []string{
			"paella", "tapas", "tortilla", "gazpacho", "churros", "patatas bravas",
			"croquetas", "jamon", "sangria", "empanada", "albondigas", "pisto",
			"fabada", "pulpo a la gallega", "calamares", "pan con tomate",
			"chorizo", "pimientos de padron", "torrijas", "horchata",
		},
		Adjectives: []string{
			"savory", "rich", "smoky", "aromatic", "fresh", "tangy", "spicy",
			"hearty", "robust", "comforting",
		},
		Bases: []string{"Pork", "Chicken", "Seafood", "Beef", "Fish", "Vegetable", "Chorizo"},
	},
}

// CookingMethods are used in descriptions.
var CookingMethods = []string{
	"grilled", "roasted", "fried", "sautéed", "baked", "steamed", "stewed",
	"braised", "simmered", "stir-fried",
}

// Sauces are used in descriptions.
var Sauces = []string{
	"savory sauce", "rich gravy", "spicy marinade", "tangy dressing",
	"aromatic broth", "flavorful seasoning", "delicate glaze", "creamy sauce",
}

// Garnishes are used in descriptions.
var Garnishes = []string{
	"fresh herbs", "aromatic spices", "crunchy vegetables", "toasted nuts",
	"crispy toppings", "zesty citrus", "colorful vegetables",
}

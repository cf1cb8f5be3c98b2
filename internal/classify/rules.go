package classify

const (
	FallbackCategory = "ostatni-potraviny"
	FallbackDisplay  = "Ostatní potraviny"
)

// FoodCategories are the catalog's food category ids with their display names.
var FoodCategories = map[string]string{
	"alkohol":                       "Alkoholické nápoje",
	"konzervy":                      "Konzervy",
	"lahudky":                       "Lahůdky",
	"maso-drubez-a-ryby":            "Maso, drůbež a ryby",
	"mlecne-vyrobky-a-vejce":        "Mléčné výrobky a vejce",
	"mrazene-a-instantni-potraviny": "Mražené a instant potraviny",
	"nealko-napoje":                 "Nealkoholické nápoje",
	"ovoce-a-zelenina":              "Ovoce a zelenina",
	"pecivo":                        "Pečivo",
	"sladkosti-a-slane-snacky":      "Sladkosti a slané snacky",
	"vareni-a-peceni":               "Vaření a pečení",
	FallbackCategory:                FallbackDisplay,
}

var NonFoodCategories = map[string]string{
	"auto-moto":                     "Auto a moto",
	"bydleni-a-zahrada":             "Bydlení a zahrada",
	"domacnost":                     "Domácnost",
	"drogerie":                      "Drogerie a hygiena",
	"elektro":                       "Elektronika",
	"hracky-2":                      "Hračky",
	"kancelarske-potreby-a-knihy-2": "Kancelář a knihy",
	"krasa":                         "Krása a péče",
	"lekarna":                       "Lékárna",
	"mazlicci":                      "Mazlíčci",
	"nabytek-2":                     "Nábytek",
	"obleceni-a-obuv":               "Oblečení a obuv",
	"pro-deti":                      "Pro děti",
	"sport-2":                       "Sport",
	"zdrava-vyziva":                 "Zdravá výživa",
}

// DefaultRules is the keyword table used when a listing has no native
// category. Keywords are folded (lower case, no diacritics) and match the
// start of a word; Words must match a whole word.
//
// Non-food groups come first so that e.g. "dětská kosmetika" or "granule pro
// psy s kuřecím" never land in a food category.
var DefaultRules = []Rule{
	{
		Priority: 100, Category: "pro-deti", IsFood: false,
		Keywords: []string{"plenk", "pleny", "pampers", "huggies", "dudlik", "kojenec", "babydream"},
	},
	{
		Priority: 110, Category: "drogerie", IsFood: false,
		Keywords: []string{
			"sampon", "sprchov", "mydl", "zubni", "kartacek", "deodorant", "antiperspirant",
			"toaletni", "kapesnik", "vlozk", "tampon", "holic", "kondicioner", "vlhcen", "nivea", "pletov",
		},
	},
	{
		Priority: 120, Category: "domacnost", IsFood: false,
		Keywords: []string{
			"praci", "avivaz", "myci", "mycky", "mycku", "odpadk", "alobal", "houbick",
			"cistic", "savo", "zarovk", "baterie", "svick", "ubrus",
		},
		Words: []string{"wc"},
	},
	{
		Priority: 130, Category: "mazlicci", IsFood: false,
		Keywords: []string{"granul", "kocic", "kock", "psy", "whiskas", "pedigree", "friskies", "stelivo"},
		Words:    []string{"psi", "pes"},
	},
	{
		Priority: 200, Category: "alkohol", IsFood: true,
		Keywords: []string{
			"piv", "lezak", "vodk", "whisk", "liker", "slivovic", "pilsner", "kozel", "gambrinus",
			"staropramen", "budvar", "radegast", "becherov", "fernet", "prosecc", "tequil", "brandy",
		},
		Words: []string{"vino", "vina", "rum", "gin", "sekt", "cider"},
	},
	{
		Priority: 210, Category: "nealko-napoje", IsFood: true,
		Keywords: []string{
			"voda", "vody", "limonad", "dzus", "juice", "cola", "pepsi", "fanta", "sprite",
			"mattoni", "kofol", "caj", "kava", "nektar", "sirup", "energetick",
		},
	},
	// Chocolate bars and candy brands ahead of dairy: "mléčná čokoláda" is a
	// sweet, "čokoládové mléko" and "jogurt s čokoládou" stay dairy.
	{
		Priority: 215, Category: "sladkosti-a-slane-snacky", IsFood: true,
		Keywords: []string{"milka", "pralink", "bonbon", "lentilk", "haribo"},
		Words:    []string{"cokolada", "cokolady", "cokolad"},
	},
	{
		Priority: 220, Category: "mlecne-vyrobky-a-vejce", IsFood: true,
		Keywords: []string{
			"mlek", "mlecn", "jogurt", "syr", "smetan", "masl", "tvaroh", "vejce", "vajec",
			"kefir", "eidam", "gouda", "mozzarell", "hermelin", "cottage", "zakys",
		},
		Words: []string{"niva"},
	},
	{
		Priority: 230, Category: "konzervy", IsFood: true,
		Keywords: []string{"konzerv", "pastik", "sardink", "tunak", "plechov"},
	},
	{
		Priority: 240, Category: "maso-drubez-a-ryby", IsFood: true,
		Keywords: []string{
			"maso", "masa", "mlet", "kure", "krut", "veprov", "hovez",
			"telec", "jehnec", "slanin", "sunk", "klobas", "park", "salam", "losos", "ryb",
			"filet", "pstruh", "kapr", "tresk", "kreve", "steak", "rizek", "kotlet", "krkovic", "kachn",
		},
	},
	{
		Priority: 250, Category: "lahudky", IsFood: true,
		Keywords: []string{"pomazank", "chlebicek", "chlebick", "hotov", "sushi", "lahud", "oliv"},
	},
	{
		Priority: 260, Category: "ovoce-a-zelenina", IsFood: true,
		Keywords: []string{
			"jablk", "hrusk", "banan", "pomeranc", "mandarin", "citron", "hrozn", "jahod",
			"boruvk", "malin", "kiwi", "ananas", "meloun", "brambor", "rajc", "okurk",
			"cibul", "cesnek", "mrkev", "zeli", "salat", "brokolic", "kvetak", "cukin",
			"avokad", "zelenin", "ovoce",
		},
	},
	{
		Priority: 270, Category: "pecivo", IsFood: true,
		Keywords: []string{
			"rohlik", "chleb", "baget", "housk", "kaiser", "kolac", "croissant", "loupak",
			"toast", "vanock", "buchta", "buchty", "koblih", "pecivo", "bulk",
		},
	},
	{
		Priority: 280, Category: "mrazene-a-instantni-potraviny", IsFood: true,
		Keywords: []string{"mrazen", "zmrzlin", "nanuk", "pizza", "instant", "hranolk", "knedlik"},
	},
	{
		Priority: 290, Category: "sladkosti-a-slane-snacky", IsFood: true,
		Keywords: []string{
			"cokolad", "bonbon", "susenk", "oplatk", "tycink", "chips", "bramburk", "krekr",
			"pralink", "milka", "orion", "haribo", "lentilk", "snack", "popcorn", "arasid", "orisk",
		},
	},
	{
		Priority: 300, Category: "vareni-a-peceni", IsFood: true,
		Keywords: []string{
			"mouk", "cukr", "olej", "ocet", "koren", "testovin", "spaget", "ryze",
			"kecup", "horcic", "majonez", "drozd", "kyprici", "omack", "kakao",
		},
		Words: []string{"sul", "ryz"},
	},
}

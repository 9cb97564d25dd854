package uitext

import "regexp"

// Classification vocabulary. The lists are fixed at construction time and
// never mutated afterwards; the Analyzer builds lookup sets from them once.
//
// Category precedence is a behavioral contract: action > input > navigation
// > validation > help > feedback. Reordering changes classification of
// ambiguous text, so the order below must not be touched without a product
// decision.

var categoryPriority = []Category{
	CategoryAction,
	CategoryInput,
	CategoryNavigation,
	CategoryValidation,
	CategoryHelp,
	CategoryFeedback,
}

var categoryKeywords = map[Category][]string{
	CategoryAction: {
		"spara", "skicka", "radera", "ta bort", "avbryt", "avbryta",
		"lägg till", "lagg till", "uppdatera", "redigera", "ändra",
		"skapa", "ny", "nytt", "exportera", "importera", "ladda upp",
		"ladda ner", "logga in", "logga ut", "registrera", "bekräfta",
		"godkänn", "godkänna", "stäng", "öppna", "kopiera", "duplicera",
		"beräkna", "räkna om", "uppdatering", "återställ", "börja",
		"starta", "avsluta", "publicera", "arkivera", "aktivera",
		"inaktivera", "markera", "avmarkera", "rensa", "filtrera",
		"sortera", "applicera", "verkställ", "kör",
	},
	CategoryInput: {
		"ange", "fyll i", "skriv", "skriv in", "mata in", "välj",
		"namn", "e-post", "epost", "e-postadress", "lösenord",
		"telefonnummer", "adress", "datum", "belopp", "antal", "mängd",
		"enhet", "pris", "kostnad", "inköpspris", "portionspris",
		"ingrediens", "ingredienser", "recept", "råvara", "leverantör",
		"kategori", "beskrivning av", "kommentar", "anteckning",
		"procent", "moms", "marginal", "vikt", "volym", "portion",
		"portioner", "sökterm", "organisationsnummer", "fält",
		"obligatoriskt fält", "valfri", "platshållare",
	},
	CategoryNavigation: {
		"tillbaka", "nästa", "föregående", "hem", "startsida",
		"översikt", "gå till", "visa", "visa alla", "meny", "menyer",
		"maträtt", "maträtter", "sida", "fortsätt", "hoppa över",
		"navigera", "fler", "mer", "detaljer", "inställningar",
		"kostnadskontroll", "rapporter", "instrumentpanel", "lista",
		"kalkyl", "kalkyler", "bibliotek", "arkiv", "historik",
		"föregående steg", "nästa steg", "steg",
	},
	CategoryValidation: {
		"ogiltig", "ogiltigt", "ogiltig inmatning", "krävs",
		"obligatorisk", "obligatoriskt", "felaktig", "felaktigt",
		"saknas", "måste", "måste anges", "får inte", "för kort",
		"för lång", "för stort", "för litet", "minst", "högst",
		"format", "kontrollera", "upptaget", "redan registrerad",
		"stämmer inte", "matchar inte", "otillåten", "otillåtet",
		"gräns", "överskrider", "negativt värde",
	},
	CategoryHelp: {
		"hjälp", "instruktion", "instruktioner", "exempel", "tips",
		"förklaring", "vägledning", "guide", "handledning", "så här",
		"läs mer", "vanliga frågor", "support", "dokumentation",
		"kom igång", "introduktion", "genomgång", "demo",
		"klicka här för", "hovra", "tooltip",
	},
	CategoryFeedback: {
		"sparad", "sparat", "sparades", "uppdaterad", "uppdaterat",
		"borttagen", "borttaget", "raderad", "raderat", "skickad",
		"skickat", "sparats", "uppdaterats", "raderats", "skickats", "lyckades", "misslyckades", "klart", "färdig",
		"färdigt", "slutförd", "slutfört", "tack", "välkommen",
		"bekräftelse", "ändringar sparade", "inloggad", "utloggad",
		"kopierad", "kopierat", "exporterad", "importerad", "laddar",
		"bearbetar", "vänta",
	},
}

// purposes is a static lookup of the Swedish purpose sentence per category.
// The sentences are fixed copy, not generated text.
var purposes = map[Category]string{
	CategoryInput:       "Beskriver vilken information användaren ska mata in i ett fält.",
	CategoryNavigation:  "Hjälper användaren att förflytta sig mellan sidor eller vyer.",
	CategoryAction:      "Utlöser en handling när användaren interagerar med elementet.",
	CategoryValidation:  "Informerar användaren om att inmatad data inte uppfyller kraven.",
	CategoryInformation: "Ger användaren allmän information om sidans innehåll.",
	CategoryFeedback:    "Bekräftar resultatet av en handling som användaren utfört.",
	CategoryHelp:        "Förklarar hur en funktion eller ett fält ska användas.",
	CategoryGrouping:    "Grupperar och rubricerar ett avsnitt av gränssnittet.",
	CategoryUnknown:     "Syftet kunde inte avgöras utifrån texten.",
}

// swedishStopwords is used for language detection alongside the category
// keywords; it is not a classification list.
var swedishStopwords = []string{
	"och", "att", "det", "som", "en", "ett", "den", "för", "med",
	"på", "av", "är", "till", "om", "har", "inte", "din", "ditt",
	"dina", "du", "vi", "man", "kan", "ska", "skall", "vid", "här",
	"där", "när", "vad", "vem", "hur", "varför", "alla", "några",
	"ingen", "inga", "denna", "detta", "dessa", "sin", "sitt",
	"sina", "från", "eller", "men", "så", "nu", "bara", "även",
	"efter", "innan", "under", "över", "mellan", "genom", "utan",
	"hos", "mot", "sedan", "redan", "också",
}

// englishStopwords feeds the page-level language verdict only.
var englishStopwords = []string{
	"the", "and", "for", "with", "your", "you", "this", "that",
	"are", "was", "has", "have", "not", "all", "can", "will",
	"from", "please", "enter", "save", "cancel", "delete", "add",
	"edit", "name", "email", "password", "submit", "search",
	"required", "invalid", "error", "success", "loading", "back",
	"next", "previous", "settings", "help",
}

// Rule cascade patterns for validation-message detection by text shape.
var errorTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(fel|error)[:!]`),
	regexp.MustCompile(`(?i)ogiltig[t]?\b`),
	regexp.MustCompile(`(?i)\bkrävs\b`),
	regexp.MustCompile(`(?i)\bobligatorisk[t]?\b`),
	regexp.MustCompile(`(?i)kunde inte`),
	regexp.MustCompile(`(?i)misslyckades`),
	regexp.MustCompile(`(?i)\bsaknas\b`),
	regexp.MustCompile(`(?i)fick inte|får inte|måste (anges|fyllas|väljas)`),
}

var successTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)sparad(es)?[.!]?$`),
	regexp.MustCompile(`(?i)^(klart|färdigt?|slutfört?)[.!]?`),
	regexp.MustCompile(`(?i)har (sparats|uppdaterats|tagits bort|skickats)`),
	regexp.MustCompile(`(?i)lyckades`),
	regexp.MustCompile(`(?i)^tack[,!]?`),
}

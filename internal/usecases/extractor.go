package usecases

import (
	"fmt"
	"regexp"
	"strconv"

	"bizbot/internal/entities"
)

// Closed vocabularies per entity kind. Entries are compared after stemming
// both side, so plural/inflected forms ("zapatos", "dresses") still match.
var (
	productVocab = []string{
		"zapato", "camisa", "pantalon", "vestido", "falda", "chaqueta", "abrigo",
		"gorra", "bolso", "tenis", "blusa", "sueter",
		"shoe", "shirt", "pants", "dress", "skirt", "jacket", "coat",
		"cap", "bag", "sneaker", "sweater", "hoodie", "belt",
	}
	colorVocab = []string{
		"rojo", "roja", "azul", "verde", "negro", "negra", "blanco", "blanca",
		"amarillo", "amarilla", "gris", "rosa", "morado", "cafe", "naranja",
		"red", "blue", "green", "black", "white", "yellow", "gray", "pink",
		"purple", "brown", "orange",
	}
	sizeVocab = []string{
		"chico", "chica", "mediano", "mediana", "grande", "extragrande",
		"small", "medium", "large", "xl", "xxl", "xs",
	}
	serviceVocab = []string{
		"consulta", "consultation", "emergencia", "emergency", "cita",
		"appointment", "chequeo", "checkup", "vacuna", "vaccine",
		"inscripcion", "enrollment", "curso", "course", "clase", "class",
		"tutoria", "tutoring", "examen", "exam",
	}

	priceRangeRe = regexp.MustCompile(`(\d+)\s*(?:a|-)\s*(\d+)`)
	dateRe       = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	timeRe       = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// industryExtractors maps each industry to the entity kinds it cares about.
// Industries missing from the map (or a malformed industry name) get an
// empty bag back, never an error.
var industryExtractors = map[string][]func(bag entities.EntityBag, tokens []string, raw string){
	"ecommerce":  {extractProductType, extractColor, extractSize, extractPriceRange},
	"healthcare": {extractServiceType, extractDate, extractTime},
	"education":  {extractServiceType, extractDate, extractTime},
	"restaurant": {extractDate, extractTime},
	"realestate": {extractPriceRange, extractDate},
}

// Extract tokenizes the normalized text and runs the industry's extractor
// set over it. Kinds with no match stay absent from the bag.
func Extract(text, industry string) entities.EntityBag {
	bag := entities.NewEntityBag()
	fns, ok := industryExtractors[industry]
	if !ok {
		return bag
	}

	tokens := Tokenize(text)
	for _, fn := range fns {
		fn(bag, tokens, text)
	}
	return bag
}

func matchVocab(bag entities.EntityBag, kind string, tokens, vocab []string) {
	stemmed := make(map[string]string, len(vocab))
	for _, v := range vocab {
		stemmed[Stem(v)] = v
	}
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if entry, ok := stemmed[Stem(tok)]; ok && !seen[entry] {
			bag.Add(kind, entry)
			seen[entry] = true
		}
	}
}

func extractProductType(bag entities.EntityBag, tokens []string, _ string) {
	matchVocab(bag, "product_type", tokens, productVocab)
}

func extractColor(bag entities.EntityBag, tokens []string, _ string) {
	matchVocab(bag, "color", tokens, colorVocab)
}

func extractSize(bag entities.EntityBag, tokens []string, _ string) {
	matchVocab(bag, "size", tokens, sizeVocab)
}

func extractServiceType(bag entities.EntityBag, tokens []string, _ string) {
	matchVocab(bag, "service_type", tokens, serviceVocab)
}

// extractPriceRange matches "<min> a <max>" / "<min> - <max>" over the raw
// text and stores the parsed bounds.
func extractPriceRange(bag entities.EntityBag, _ []string, raw string) {
	m := priceRangeRe.FindStringSubmatch(raw)
	if m == nil {
		return
	}
	min, err1 := strconv.Atoi(m[1])
	max, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return
	}
	bag.Price = &entities.PriceRange{Min: min, Max: max}
	bag.Add("price_range", fmt.Sprintf("%d-%d", min, max))
}

func extractDate(bag entities.EntityBag, _ []string, raw string) {
	m := dateRe.FindStringSubmatch(raw)
	if m == nil {
		return
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	bag.Add("date", fmt.Sprintf("%d/%d/%s", month, day, m[3]))
}

func extractTime(bag entities.EntityBag, _ []string, raw string) {
	m := timeRe.FindStringSubmatch(raw)
	if m == nil {
		return
	}
	hour, _ := strconv.Atoi(m[1])
	bag.Add("time", fmt.Sprintf("%d:%s", hour, m[2]))
}

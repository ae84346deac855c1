package usecases

import (
	"context"
	"fmt"
	"strings"

	"bizbot/internal/entities"
	"bizbot/internal/interfaces"
)

// maxCatalogResults caps how many products one reply lists.
const maxCatalogResults = 5

// searchStopwords are greeting/politeness words stripped before a keyword
// search; what remains is what the customer actually asked for.
var searchStopwords = map[string]bool{
	"hola": true, "hello": true, "hi": true, "hey": true, "buenas": true,
	"buenos": true, "dias": true, "tardes": true, "noches": true,
	"quiero": true, "necesito": true, "busco": true, "quisiera": true,
	"want": true, "need": true, "looking": true, "for": true,
	"por": true, "favor": true, "please": true, "gracias": true, "thanks": true,
	"me": true, "un": true, "una": true, "unos": true, "unas": true,
	"el": true, "la": true, "los": true, "las": true, "de": true,
	"a": true, "i": true, "the": true, "some": true,
}

// searchCatalog runs the product-inquiry flow:
//  1. color entity present -> search by color first
//  2. no hits -> keyword search with stopwords stripped
//  3. keyword hits + color entity -> post-filter on stemmed color attribute
//  4. format up to maxCatalogResults, or a "no matching products" reply
func searchCatalog(ctx context.Context, catalog interfaces.Catalog, businessID, rawText string, bag entities.EntityBag) (string, error) {
	color := bag.First("color")

	var products []entities.Product
	if color != "" {
		found, err := catalog.SearchByColor(ctx, businessID, color)
		if err != nil {
			return "", fmt.Errorf("color search: %w", err)
		}
		products = found
	}

	if len(products) == 0 {
		keywords := searchKeywords(rawText)
		if len(keywords) > 0 {
			found, err := catalog.SearchByKeywords(ctx, businessID, keywords)
			if err != nil {
				return "", fmt.Errorf("keyword search: %w", err)
			}
			// second-pass refinement, only when the first pass already
			// returned candidates
			if color != "" && len(found) > 0 {
				found = filterByColor(found, color)
			}
			products = found
		}
	}

	if len(products) == 0 {
		return "😕 No encontré productos que coincidan con tu búsqueda.\n\nIntenta con otra palabra o escribe *menu* para ver opciones.", nil
	}

	return formatProducts(products), nil
}

// searchKeywords strips stopwords from the normalized message.
func searchKeywords(rawText string) []string {
	var keywords []string
	for _, tok := range Tokenize(rawText) {
		if !searchStopwords[tok] {
			keywords = append(keywords, tok)
		}
	}
	return keywords
}

// filterByColor keeps products whose stored color stems to the requested one.
func filterByColor(products []entities.Product, color string) []entities.Product {
	want := Stem(strings.ToLower(color))
	var out []entities.Product
	for _, p := range products {
		if Stem(strings.ToLower(p.Color)) == want {
			out = append(out, p)
		}
	}
	return out
}

func formatProducts(products []entities.Product) string {
	n := len(products)
	if n > maxCatalogResults {
		n = maxCatalogResults
	}

	var sb strings.Builder
	sb.WriteString("🛍️ *Esto es lo que encontré:*\n\n")
	for i := 0; i < n; i++ {
		p := products[i]
		sb.WriteString(fmt.Sprintf("%d. *%s* — %s %s\n", i+1, p.Name, p.Price, p.Currency))
		if desc := truncate(p.Description, 80); desc != "" {
			sb.WriteString("   " + desc + "\n")
		}
		var attrs []string
		if p.Color != "" {
			attrs = append(attrs, "Color: "+p.Color)
		}
		if p.Size != "" {
			attrs = append(attrs, "Talla: "+p.Size)
		}
		if len(attrs) > 0 {
			sb.WriteString("   " + strings.Join(attrs, " | ") + "\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("_Responde con el número del producto que te interesa_")
	return sb.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

package catalog

// Version identifies the product assortment the table schemas are built
// against. The fixed-column ledger schema derives one column per product,
// so renaming, removing or reordering entries breaks row compatibility for
// tables that already exist. Additions go at the end, together with a bump.
const Version = 1

var products = []string{
	"Bakarwadi (200gm)",
	"Besan Ladoo (200gm)",
	"Besan Ladoo (500gm)",
	"Bhajani Chakali (200gm)",
	"Bhajani Chakali (500gm)",
	"Chivda (200gm)",
	"Chivda (500gm)",
	"Karanji (6 pcs)",
	"Motichoor Ladoo (500gm)",
	"Shankarpali (250gm)",
}

// Names returns the catalog in canonical order. Callers get a copy.
func Names() []string {
	out := make([]string, len(products))
	copy(out, products)
	return out
}

func Contains(name string) bool {
	for _, p := range products {
		if p == name {
			return true
		}
	}
	return false
}

func Len() int { return len(products) }

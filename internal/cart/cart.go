package cart

// Product is one cart entry: catalog metadata plus the quantity held in the
// cart. Title, Price and Image come straight from the stock service and are
// not interpreted here.
type Product struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
	Amount int     `json:"amount"`
}

// Stock is the purchasable limit for a product. Fetched fresh on every
// mutation, never cached, never persisted.
type Stock struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

func indexOf(cart []Product, productID int) int {
	for i := range cart {
		if cart[i].ID == productID {
			return i
		}
	}
	return -1
}

func clone(cart []Product) []Product {
	out := make([]Product, len(cart))
	copy(out, cart)
	return out
}

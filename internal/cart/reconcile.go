package cart

import "errors"

var (
	ErrStockExceeded = errors.New("requested amount exceeds stock")
	ErrNotInCart     = errors.New("product not in cart")
)

// The reconcile functions compute the next cart from the current one plus the
// data fetched for this mutation. They never modify their input: callers get
// a fresh slice on success and the untouched original survives any rejection.

func reconcileAdd(cart []Product, product Product, stock Stock) ([]Product, error) {
	i := indexOf(cart, product.ID)
	if i < 0 {
		// A first unit always enters the cart, even when the fetched
		// stock is zero. Kept for compatibility with the web client.
		product.Amount = 1
		return append(clone(cart), product), nil
	}

	if cart[i].Amount >= stock.Amount {
		return nil, ErrStockExceeded
	}

	next := clone(cart)
	next[i].Amount++
	return next, nil
}

func reconcileRemove(cart []Product, productID int) ([]Product, error) {
	if indexOf(cart, productID) < 0 {
		return nil, ErrNotInCart
	}

	next := make([]Product, 0, len(cart)-1)
	for _, p := range cart {
		if p.ID != productID {
			next = append(next, p)
		}
	}
	return next, nil
}

// reconcileUpdate applies a quantity delta: the entry ends at current+amount,
// not at amount. Only the single-increment case is checked against stock.
// A nonpositive amount changes nothing and is not an error.
func reconcileUpdate(cart []Product, productID, amount int, stock Stock) ([]Product, bool, error) {
	if amount <= 0 {
		return cart, false, nil
	}

	i := indexOf(cart, productID)
	if i < 0 {
		return nil, false, ErrNotInCart
	}

	if cart[i].Amount >= stock.Amount && amount == 1 {
		return nil, false, ErrStockExceeded
	}

	next := clone(cart)
	next[i].Amount += amount
	return next, true, nil
}

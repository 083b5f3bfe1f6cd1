package cart

import "context"

// SnapshotKey is the fixed key the cart is stored under. Kept byte-for-byte
// from the web client this store replaces, so snapshots written by either
// side stay readable by the other.
const SnapshotKey = "@RocketShoes:cart"

// Snapshot persists the whole cart as a single JSON value under SnapshotKey.
// Save is a full overwrite of any prior value; Load reports found=false when
// nothing has been saved yet.
type Snapshot interface {
	Ping(ctx context.Context) error
	Load(ctx context.Context) (cart []Product, found bool, err error)
	Save(ctx context.Context, cart []Product) error
}

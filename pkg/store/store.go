// Package store persists named wallet snapshots.
//
// Two backends ship: a file store keeping one JSON document per wallet
// under the user config directory, and a MongoDB store for shared
// deployments. Both implement Store; callers pick one at startup.
package store

import (
	"context"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

// Store is a named-wallet repository. Save overwrites any existing
// snapshot with the same name.
type Store interface {
	Save(ctx context.Context, w *wallet.Wallet) error
	Load(ctx context.Context, name string) (*wallet.Wallet, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
	Close(ctx context.Context) error
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

// FileStore keeps one JSON document per wallet in a directory.
// Suitable for single-user CLI use.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based wallet store.
// If baseDir is empty, defaults to ~/.config/utxo-intelligence/wallets/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to resolve home directory")
		}
		baseDir = filepath.Join(home, ".config", "utxo-intelligence", "wallets")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to create wallet directory")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) walletPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

func (s *FileStore) Save(ctx context.Context, w *wallet.Wallet) error {
	if err := errors.ValidateWalletName(w.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return wallet.ExportJSON(w, s.walletPath(w.Name))
}

func (s *FileStore) Load(ctx context.Context, name string) (*wallet.Wallet, error) {
	if err := errors.ValidateWalletName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := wallet.ImportJSON(s.walletPath(name))
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			return nil, errors.New(errors.ErrCodeWalletNotFound, "wallet not found: %s", name)
		}
		return nil, err
	}
	return w, nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to read wallet directory")
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return names, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateWalletName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.walletPath(name)); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeWalletNotFound, "wallet not found: %s", name)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to remove wallet file")
	}
	return nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

// Path returns the base directory for wallet files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)

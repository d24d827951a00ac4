package stockfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Collection file names inside the store directory.
const (
	securitiesFile  = "securities.json"
	accountsFile    = "accounts.json"
	settingsFile    = "settings.json"
	historicalsFile = "historicals.json"
	ratesFile       = "rates.json"
)

// DefaultSettings is the configuration used until the user saves their own.
func DefaultSettings() Settings {
	return Settings{
		Currency:          "AUD",
		GSTPercent:        "10",
		BrokerageAutofill: decimal.NewFromInt(10),
	}
}

// Store keeps the record collections in memory and mirrors every mutation to
// JSON files. All mutations run under a single writer lock, which serializes
// concurrent trades against the same security; reports read deep-copied
// snapshots and never hold the lock while computing.
type Store struct {
	mu  sync.RWMutex
	dir string // empty for a memory-only store
	log zerolog.Logger

	securities  map[string]*Security     // by symbol
	accounts    map[string]*Account      // by account id
	historicals map[string]*Historical   // by symbol
	rates       map[string]*ExchangeRate // by source currency
	settings    Settings
}

// NewStore opens the store in dir, loading any collections already on disk.
// An empty dir gives a memory-only store, used by tests.
func NewStore(dir string, log zerolog.Logger) (*Store, error) {
	s := &Store{
		dir:         dir,
		log:         log,
		securities:  make(map[string]*Security),
		accounts:    make(map[string]*Account),
		historicals: make(map[string]*Historical),
		rates:       make(map[string]*ExchangeRate),
		settings:    DefaultSettings(),
	}
	if dir == "" {
		return s, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create store directory %q: %w", dir, err)
	}
	for file, target := range map[string]any{
		securitiesFile:  &s.securities,
		accountsFile:    &s.accounts,
		settingsFile:    &s.settings,
		historicalsFile: &s.historicals,
		ratesFile:       &s.rates,
	} {
		if err := s.loadFile(file, target); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) loadFile(name string, target any) error {
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, target); err != nil {
		return fmt.Errorf("format error in %q: %w", name, err)
	}
	return nil
}

// saveFile mirrors one collection to disk. Callers hold the write lock.
func (s *Store) saveFile(name string, source any) error {
	if s.dir == "" {
		return nil
	}
	content, err := json.MarshalIndent(source, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), content, 0o644)
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings replaces the settings and persists them.
func (s *Store) SetSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.saveFile(settingsFile, &s.settings)
}

// Account looks up one account by id.
func (s *Store) Account(id string) (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return Account{}, false
	}
	return *a, true
}

// Accounts returns all accounts sorted by name.
func (s *Store) Accounts() []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		list = append(list, *a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// MutateAccounts applies fn to the accounts collection under the writer lock
// and persists the result. fn returning an error aborts without saving.
func (s *Store) MutateAccounts(fn func(map[string]*Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.accounts); err != nil {
		return err
	}
	return s.saveFile(accountsFile, &s.accounts)
}

// Security returns a deep copy of one security record.
func (s *Store) Security(symbol string) (*Security, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, ok := s.securities[symbol]
	if !ok {
		return nil, false
	}
	return sec.clone(), true
}

// UpdateSecurity applies fn to the live security record under the writer
// lock, persisting on success. This is the single-writer path every trade
// goes through.
func (s *Store) UpdateSecurity(symbol string, fn func(*Security) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec, ok := s.securities[symbol]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	if err := fn(sec); err != nil {
		return err
	}
	return s.saveFile(securitiesFile, &s.securities)
}

// MutateSecurities applies fn to the whole securities collection under the
// writer lock and persists the result.
func (s *Store) MutateSecurities(fn func(map[string]*Security) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.securities); err != nil {
		return err
	}
	return s.saveFile(securitiesFile, &s.securities)
}

// Snapshot is a consistent deep copy of the trade-bearing collections, taken
// once per report.
type Snapshot struct {
	Securities map[string]*Security
	Accounts   map[string]Account
	Settings   Settings
}

// Snapshot deep-copies securities, accounts and settings in one lock
// acquisition.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &Snapshot{
		Securities: make(map[string]*Security, len(s.securities)),
		Accounts:   make(map[string]Account, len(s.accounts)),
		Settings:   s.settings,
	}
	for symbol, sec := range s.securities {
		snap.Securities[symbol] = sec.clone()
	}
	for id, a := range s.accounts {
		snap.Accounts[id] = *a
	}
	return snap
}

// Historical returns the stored price series for a symbol, if any.
func (s *Store) Historical(symbol string) (*Historical, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.historicals[symbol]
	if !ok {
		return nil, false
	}
	dup := *h
	dup.Entries = append([]Point(nil), h.Entries...)
	return &dup, true
}

// SetHistorical stores a freshly fetched price series.
func (s *Store) SetHistorical(h *Historical) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historicals[h.Symbol] = h
	return s.saveFile(historicalsFile, &s.historicals)
}

// Rate returns the stored exchange-rate series for a source currency, if any.
func (s *Store) Rate(fromCurrency string) (*ExchangeRate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rates[fromCurrency]
	if !ok {
		return nil, false
	}
	dup := *r
	dup.Entries = append([]Point(nil), r.Entries...)
	return &dup, true
}

// SetRate stores a freshly fetched exchange-rate series.
func (s *Store) SetRate(r *ExchangeRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[r.From] = r
	return s.saveFile(ratesFile, &s.rates)
}

// DropRatesNotTargeting removes rate series converting into anything other
// than the current reporting currency, after the user changes it.
func (s *Store) DropRatesNotTargeting(target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for from, r := range s.rates {
		if r.To != target {
			delete(s.rates, from)
		}
	}
	return s.saveFile(ratesFile, &s.rates)
}

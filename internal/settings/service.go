package settings

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"printstudio/internal/content"
	"printstudio/internal/inventory"
	"printstudio/pkg/logger"
)

// Setting keys. Draft rows share the same store under DraftKeyPrefix.
const (
	KeyAdminPassword = "admin_password"
	KeyContent       = "content"
	KeyInventory     = "printer_inventory"
)

// Password states reported by PasswordState.
const (
	PasswordEmpty   = "empty"
	PasswordDefault = "default"
	PasswordCustom  = "custom"
)

// Service wraps the key-value repository with the typed accessors the rest
// of the application uses: the published content document, the printer
// inventory and the admin credential.
type Service struct {
	repo            Repository
	defaultPassword string
}

func NewService(repo Repository, defaultPassword string) *Service {
	return &Service{repo: repo, defaultPassword: defaultPassword}
}

// Repo exposes the underlying key-value store; the draft manager persists
// draft rows through it.
func (s *Service) Repo() Repository { return s.repo }

// EnsureDefaults seeds the admin password, the content document and the
// printer inventory on first start. Existing rows are left alone.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	if _, err := s.repo.Get(ctx, KeyAdminPassword); errors.Is(err, ErrNotFound) {
		if err := s.SetAdminPassword(ctx, s.defaultPassword); err != nil {
			return fmt.Errorf("seed admin password: %w", err)
		}
		logger.Infof("seeded default admin password")
	} else if err != nil {
		return err
	}

	if _, err := s.repo.Get(ctx, KeyContent); errors.Is(err, ErrNotFound) {
		doc := content.DefaultDocument()
		content.Normalize(doc)
		if err := s.SaveContent(ctx, doc); err != nil {
			return fmt.Errorf("seed content: %w", err)
		}
		logger.Infof("seeded default content document")
	} else if err != nil {
		return err
	}

	if _, err := s.repo.Get(ctx, KeyInventory); errors.Is(err, ErrNotFound) {
		inv := inventory.DefaultInventory()
		inventory.Migrate(inv)
		if err := s.SaveInventory(ctx, inv); err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
		logger.Infof("seeded default printer inventory")
	} else if err != nil {
		return err
	}

	return nil
}

// Content loads the published document and normalizes it for use. The
// normalized form is never written back here: the published row only
// changes through SaveContent (publish).
func (s *Service) Content(ctx context.Context) (*content.Document, error) {
	raw, err := s.repo.Get(ctx, KeyContent)
	if errors.Is(err, ErrNotFound) {
		doc := content.DefaultDocument()
		content.Normalize(doc)
		if err := s.SaveContent(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	doc, err := content.Decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	content.Normalize(doc)
	return doc, nil
}

func (s *Service) SaveContent(ctx context.Context, doc *content.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	return s.repo.Put(ctx, KeyContent, string(data))
}

// Inventory loads the printer inventory, migrates it and persists the
// migrated form when the migration changed anything (write-if-dirty).
func (s *Service) Inventory(ctx context.Context) (*inventory.Inventory, error) {
	raw, err := s.repo.Get(ctx, KeyInventory)
	if errors.Is(err, ErrNotFound) {
		inv := inventory.DefaultInventory()
		inventory.Migrate(inv)
		if err := s.SaveInventory(ctx, inv); err != nil {
			return nil, err
		}
		return inv, nil
	}
	if err != nil {
		return nil, err
	}
	inv, err := inventory.Decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	if inventory.Migrate(inv) {
		if err := s.SaveInventory(ctx, inv); err != nil {
			return nil, err
		}
		logger.Debugf("printer inventory migrated and written back")
	}
	return inv, nil
}

func (s *Service) SaveInventory(ctx context.Context, inv *inventory.Inventory) error {
	data, err := inv.Encode()
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	return s.repo.Put(ctx, KeyInventory, string(data))
}

// VerifyAdminPassword checks a login attempt against the stored bcrypt
// hash, seeding the default credential when none is stored yet.
func (s *Service) VerifyAdminPassword(ctx context.Context, plain string) (bool, error) {
	hash, err := s.repo.Get(ctx, KeyAdminPassword)
	if errors.Is(err, ErrNotFound) {
		if err := s.SetAdminPassword(ctx, s.defaultPassword); err != nil {
			return false, err
		}
		return plain == s.defaultPassword, nil
	}
	if err != nil {
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil, nil
}

func (s *Service) SetAdminPassword(ctx context.Context, plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.Put(ctx, KeyAdminPassword, string(hash))
}

// PasswordState reports whether the stored credential is empty, still the
// shipped default, or operator-chosen. The admin dashboard surfaces this as
// a nag to change the default.
func (s *Service) PasswordState(ctx context.Context) (string, error) {
	hash, err := s.repo.Get(ctx, KeyAdminPassword)
	if errors.Is(err, ErrNotFound) {
		return PasswordDefault, nil
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("")) == nil {
		return PasswordEmpty, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(s.defaultPassword)) == nil {
		return PasswordDefault, nil
	}
	return PasswordCustom, nil
}

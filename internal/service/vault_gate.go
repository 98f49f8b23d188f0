package service

import "sync"

// VaultGate serializes migrations against logins and secret access inside
// one process. Nobody waits: a caller that cannot enter gets [ErrVaultBusy].
type VaultGate struct {
	mu sync.RWMutex
}

func NewVaultGate() *VaultGate {
	return &VaultGate{}
}

// Exclusive enters the gate alone. It is taken by migrations and vault
// initialization.
func (g *VaultGate) Exclusive() (release func(), err error) {
	if !g.mu.TryLock() {
		return nil, ErrVaultBusy
	}
	return g.mu.Unlock, nil
}

// Shared enters the gate alongside other shared holders.
func (g *VaultGate) Shared() (release func(), err error) {
	if !g.mu.TryRLock() {
		return nil, ErrVaultBusy
	}
	return g.mu.RUnlock, nil
}

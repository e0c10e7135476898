package sim

import (
	"sync"

	"github.com/san-kum/qwave/internal/quantum"
)

// WavePool recycles grid-sized wavefunction buffers. The engine takes one
// per step to hold the pre-step ψ and one per SetWavefunction as scratch
// for normalization.
type WavePool struct {
	pool sync.Pool
	size int
}

func NewWavePool(size int) *WavePool {
	return &WavePool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make(quantum.Wavefunction, size)
			},
		},
	}
}

// Get returns a zeroed buffer of the grid size.
func (p *WavePool) Get() quantum.Wavefunction {
	return p.pool.Get().(quantum.Wavefunction)
}

// Put zeroes w and hands it back. Buffers from another grid are dropped.
func (p *WavePool) Put(w quantum.Wavefunction) {
	if len(w) != p.size {
		return
	}
	for i := range w {
		w[i] = 0
	}
	p.pool.Put(w)
}

// Backup copies psi into a pooled buffer so a failed step can be undone.
// The caller returns the buffer with Put.
func (p *WavePool) Backup(psi quantum.Wavefunction) quantum.Wavefunction {
	b := p.Get()
	copy(b, psi)
	return b
}

// Restore writes a buffer taken with Backup back over psi.
func (p *WavePool) Restore(psi, backup quantum.Wavefunction) {
	copy(psi, backup)
}

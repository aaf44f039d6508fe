//go:build linux || darwin || freebsd || netbsd || openbsd

package bitbuf

import (
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
)

func TestMapped(t *testing.T) {
	t.Run("Aligned", func(t *testing.T) { testMapped[Aligned](t) })
	t.Run("Packed", func(t *testing.T) { testMapped[Packed](t) })

	t.Run("Errors", func(t *testing.T) {
		_, err := NewMapped[Aligned](3, 0)
		assert.That(t, ZeroCapacity.Has(err))

		b, err := NewMapped[Aligned](0, 10)
		assert.NoError(t, err)
		assert.That(t, !b.Mapped())
		assert.NoError(t, b.Close())
	})

	t.Run("Heap Close", func(t *testing.T) {
		b, err := NewAligned(5, 10)
		assert.NoError(t, err)
		assert.NoError(t, b.Close())
		assert.NoError(t, b.Set(9, 31))
	})
}

func testMapped[L Layout](t *testing.T) {
	b, err := NewMapped[L](11, 4096)
	assert.NoError(t, err)
	assert.That(t, b.Mapped())

	// mappings start zeroed
	for _, v := range b.Raw() {
		assert.Equal(t, v, 0)
	}

	exp := make([]uint64, 4096)
	for i := range exp {
		exp[i] = pcg.Uint64() & 0x7ff
		assert.NoError(t, b.Set(uint(i), exp[i]))
	}
	assert.DeepEqual(t, b.Values(), exp)

	c := b.Clone()
	assert.That(t, !c.Mapped())

	assert.NoError(t, b.Close())
	assert.That(t, !b.Mapped())
	assert.NoError(t, b.Close())

	assert.DeepEqual(t, c.Values(), exp)
}

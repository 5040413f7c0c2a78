package texbleed_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/aobake/texbleed"
)

// benchmarkBleed times bleeding a w×h RGBA atlas whose opaque UV islands
// cover roughly the given fraction of the pixels.
func benchmarkBleed(b *testing.B, w, h int, cover float64) {
	rng := rand.New(rand.NewSource(42))
	proto := make([]byte, w*h*4)
	for i := 0; i < len(proto); i += 4 {
		if rng.Float64() < cover {
			proto[i] = byte(rng.Intn(256))
			proto[i+1] = byte(rng.Intn(256))
			proto[i+2] = byte(rng.Intn(256))
			proto[i+3] = 255
		}
	}

	pix := make([]byte, len(proto))
	b.ResetTimer() // ignore atlas synthesis
	for i := 0; i < b.N; i++ {
		copy(pix, proto) // the bleed mutates the buffer
		img := texbleed.NewRGBA(pix, w, h)
		if err := texbleed.Bleed(img, nil); err != nil {
			b.Fatalf("Bleed failed: %v", err)
		}
	}
}

// BenchmarkBleed_256Sparse bleeds a 256×256 atlas with 10% coverage.
func BenchmarkBleed_256Sparse(b *testing.B) {
	benchmarkBleed(b, 256, 256, 0.1)
}

// BenchmarkBleed_256Dense bleeds a 256×256 atlas with 70% coverage.
func BenchmarkBleed_256Dense(b *testing.B) {
	benchmarkBleed(b, 256, 256, 0.7)
}

// BenchmarkBleed_1024 bleeds a 1024×1024 atlas with 30% coverage.
func BenchmarkBleed_1024(b *testing.B) {
	benchmarkBleed(b, 1024, 1024, 0.3)
}

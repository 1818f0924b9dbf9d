package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"math"
	"math/big"
	"sync"
)

// ByteGenerator streams HMAC-SHA256 output keyed by a seed (a host hash or a
// minter address). Each round hashes "<stream>:<nonce>:<round>" and yields 32
// bytes.
type ByteGenerator struct {
	seed         string
	stream       string
	nonce        uint64
	currentRound uint64
	currentPos   int
	buffer       [32]byte
}

// NewByteGenerator creates a generator at the start of the stream.
func NewByteGenerator(seed, stream string, nonce uint64) *ByteGenerator {
	bg := &ByteGenerator{
		seed:   seed,
		stream: stream,
		nonce:  nonce,
	}

	// Always generate the initial round
	bg.generateRound()

	return bg
}

// Next returns the next byte from the generator
func (bg *ByteGenerator) Next() byte {
	if bg.currentPos >= 32 {
		bg.currentRound++
		bg.currentPos = 0
		bg.generateRound()
	}

	b := bg.buffer[bg.currentPos]
	bg.currentPos++
	return b
}

// Read fills p from the stream. It never fails.
func (bg *ByteGenerator) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = bg.Next()
	}
	return len(p), nil
}

// NextFloat generates the next float in [0, 1) using exactly 4 bytes
func (bg *ByteGenerator) NextFloat() float64 {
	b0 := bg.Next()
	b1 := bg.Next()
	b2 := bg.Next()
	b3 := bg.Next()

	return bytesToFloat([4]byte{b0, b1, b2, b3})
}

func (bg *ByteGenerator) generateRound() {
	h := hmac.New(sha256.New, []byte(bg.seed))
	message := fmt.Sprintf("%s:%d:%d", bg.stream, bg.nonce, bg.currentRound)
	h.Write([]byte(message))
	copy(bg.buffer[:], h.Sum(nil))
}

// bytesToFloat computes b0/256 + b1/256^2 + b2/256^3 + b3/256^4.
func bytesToFloat(bytes [4]byte) float64 {
	result := 0.0
	for i, b := range bytes {
		divider := math.Pow(256, float64(i+1))
		result += float64(b) / divider
	}
	return result
}

// Rand is a resettable float source, the shape of $fx.rand: every call
// advances the stream and Reset rewinds it to the first value.
type Rand struct {
	mu     sync.Mutex
	seed   string
	stream string
	nonce  uint64
	gen    *ByteGenerator
}

// NewRand creates a source over the given seed and stream.
func NewRand(seed, stream string, nonce uint64) *Rand {
	return &Rand{
		seed:   seed,
		stream: stream,
		nonce:  nonce,
		gen:    NewByteGenerator(seed, stream, nonce),
	}
}

// Float returns the next value in [0, 1).
func (r *Rand) Float() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen.NextFloat()
}

// Read fills p with the next bytes of the stream.
func (r *Rand) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen.Read(p)
}

// Reset rewinds the source to its first value.
func (r *Rand) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen = NewByteGenerator(r.seed, r.stream, r.nonce)
}

// BigInt returns a uniform integer in [0, limit). limit must be positive.
func (r *Rand) BigInt(limit *big.Int) *big.Int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uniformBig(r.gen, limit)
}

func uniformBig(bg *ByteGenerator, limit *big.Int) *big.Int {
	bits := new(big.Int).Sub(limit, big.NewInt(1)).BitLen()
	if bits == 0 {
		return new(big.Int)
	}
	buf := make([]byte, (bits+7)/8)
	// Mask the top byte so a draw is rejected at most half the time.
	mask := byte(0xff >> (uint(len(buf)*8 - bits)))
	n := new(big.Int)
	for {
		_, _ = bg.Read(buf)
		buf[0] &= mask
		n.SetBytes(buf)
		if n.Cmp(limit) < 0 {
			return n
		}
	}
}

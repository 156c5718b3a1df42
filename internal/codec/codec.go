// Package codec converts between byte strings and sequences of message
// blocks.
//
// A block of w words covers w*mpint.WordBytes consecutive input bytes,
// stored least-significant byte first within each word and
// least-significant word first within the block. Input that is not a
// multiple of the block size is padded with zero bytes, so callers must
// remember the input length to strip the padding after Unpack.
package codec

import (
	"errors"
	"fmt"

	"github.com/mahdiidarabi/mprsa/pkg/mpint"
)

var (
	// ErrBlockSize is returned for a block size below one word.
	ErrBlockSize = errors.New("codec: block size must be at least one word")

	// ErrBlockOverflow is returned by Unpack when a block does not fit in
	// the requested block size.
	ErrBlockOverflow = errors.New("codec: block does not fit block size")
)

// BlockBytes returns the number of bytes covered by a block of words words.
func BlockBytes(words int) int {
	return words * mpint.WordBytes
}

// BlockWordsFor returns the largest block size, in words, whose every
// value is strictly below n: one word less than n itself. It returns 0
// when n has a single word and cannot carry a block at all.
func BlockWordsFor(n *mpint.Int) int {
	if n.Len() < 2 {
		return 0
	}
	return n.Len() - 1
}

// Pack splits data into blocks of words words, zero-padding the tail.
// Empty input yields no blocks.
func Pack(data []byte, words int) ([]*mpint.Int, error) {
	if words < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBlockSize, words)
	}
	size := BlockBytes(words)
	count := (len(data) + size - 1) / size
	blocks := make([]*mpint.Int, 0, count)

	buf := make([]byte, size)
	for off := 0; off < len(data); off += size {
		end := min(off+size, len(data))
		n := copy(buf, data[off:end])
		clear(buf[n:])
		blocks = append(blocks, new(mpint.Int).SetBytesLE(buf))
	}
	return blocks, nil
}

// Unpack concatenates blocks of words words back into bytes. The result
// is len(blocks)*BlockBytes(words) long, padding included.
func Unpack(blocks []*mpint.Int, words int) ([]byte, error) {
	if words < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBlockSize, words)
	}
	size := BlockBytes(words)
	out := make([]byte, len(blocks)*size)
	for i, b := range blocks {
		if _, err := b.FillBytesLE(out[i*size : (i+1)*size]); err != nil {
			return nil, fmt.Errorf("%w: block %d has %d bits, limit %d", ErrBlockOverflow, i, b.BitLen(), size*8)
		}
	}
	return out, nil
}

// Repack reinterprets blocks of from words as blocks of to words.
func Repack(blocks []*mpint.Int, from, to int) ([]*mpint.Int, error) {
	data, err := Unpack(blocks, from)
	if err != nil {
		return nil, err
	}
	return Pack(data, to)
}

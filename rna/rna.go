/*
Package rna defines the immutable RNA sequence type shared by every stage of
the interaction predictor, from accessibility computation through output.

Encoding follows the same int8 scheme as energy_params.NucleotideEncodedIntMap
(A=1, C=2, G=3, U=4) so that code produced here plugs directly into
energymodel without re-encoding, the way checks.IsRNA and
energy_params.EncodeSequence independently agree on the same alphabet in the
teacher.
*/
package rna

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/bebop-rna/intarna-go/checks"
	"github.com/bebop-rna/intarna-go/seqhash"
)

// Code is the int8 nucleotide encoding used throughout the predictor.
// 0 denotes N (unknown or IUPAC-ambiguous), matching the "never pairs" rule.
type Code int8

const (
	CodeN Code = 0
	CodeA Code = 1
	CodeC Code = 2
	CodeG Code = 3
	CodeU Code = 4
)

var iupacToACGU = map[byte]byte{
	'A': 'A', 'C': 'C', 'G': 'G', 'U': 'U', 'T': 'U',
	'R': 'N', 'Y': 'N', 'S': 'N', 'W': 'N', 'K': 'N', 'M': 'N',
	'B': 'N', 'D': 'N', 'H': 'N', 'V': 'N', 'N': 'N',
}

var baseToCode = map[byte]Code{
	'A': CodeA, 'C': CodeC, 'G': CodeG, 'U': CodeU, 'N': CodeN,
}

// Sequence is an immutable, IUPAC-normalized RNA sequence.
type Sequence struct {
	id      string
	letters []byte
	code    []Code
	idxPos0 int
}

// NewSequence normalizes raw (which may contain T, lowercase, or IUPAC
// ambiguity codes) into uppercase RNA letters restricted to {A,C,G,U,N}.
// If id is empty, a deterministic id is derived via blake3 over the
// normalized letters, grounded on seqhash.Hash's digest construction.
func NewSequence(id, raw string, idxPos0 int) (*Sequence, error) {
	return NewSequenceWithHashAlgo(id, raw, idxPos0, HashBlake3)
}

// HashAlgo selects the digest NewSequenceWithHashAlgo falls back to when id
// is empty.
type HashAlgo int

const (
	// HashBlake3 derives the id via seqhash.Hash, the default.
	HashBlake3 HashAlgo = iota
	// HashBlake2b derives the id via blake2b-256, offered as an alternate
	// digest for callers that prefer it (--idHashAlgo).
	HashBlake2b
)

// NewSequenceWithHashAlgo is NewSequence with an explicit choice of
// fallback id digest.
func NewSequenceWithHashAlgo(id, raw string, idxPos0 int, algo HashAlgo) (*Sequence, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("rna: sequence %q is empty", id)
	}
	upper := strings.ToUpper(raw)
	letters := make([]byte, len(upper))
	code := make([]Code, len(upper))
	for i := 0; i < len(upper); i++ {
		mapped, ok := iupacToACGU[upper[i]]
		if !ok {
			return nil, fmt.Errorf("rna: position %d: %q is not a valid IUPAC nucleotide code", i, upper[i])
		}
		letters[i] = mapped
		code[i] = baseToCode[mapped]
	}
	if id == "" {
		digest, err := deriveID(string(letters), algo)
		if err != nil {
			return nil, fmt.Errorf("rna: deriving id: %w", err)
		}
		id = digest
	}
	return &Sequence{id: id, letters: letters, code: code, idxPos0: idxPos0}, nil
}

func deriveID(letters string, algo HashAlgo) (string, error) {
	switch algo {
	case HashBlake2b:
		sum := blake2b.Sum256([]byte(letters))
		return hex.EncodeToString(sum[:]), nil
	default:
		return seqhash.Hash(letters, seqhash.RNA, false, false)
	}
}

// Len returns the sequence length.
func (s *Sequence) Len() int { return len(s.letters) }

// At returns the normalized (upper-case, ACGUN) letter at position i.
func (s *Sequence) At(i int) byte { return s.letters[i] }

// Code returns the int8-style numeric encoding at position i.
func (s *Sequence) Code(i int) int8 { return int8(s.code[i]) }

// String returns the full normalized sequence.
func (s *Sequence) String() string { return string(s.letters) }

// DisplayIndex converts an internal 0-based index to the caller-visible
// 1-based-by-default (or custom idxPos0) coordinate used in output.
func (s *Sequence) DisplayIndex(i int) int { return i + s.idxPos0 }

// ID returns the sequence's identifier, user-supplied or derived.
func (s *Sequence) ID() string { return s.id }

// GCContent reports the fraction of G/C letters, a cheap sanity statistic
// output.Row exposes alongside a predicted interaction.
func (s *Sequence) GCContent() float64 { return checks.GcContent(string(s.letters)) }

// AreComplementary reports whether positions i (in a) and j (in b) can form
// a Watson-Crick or wobble GU pair. N never pairs.
func AreComplementary(a, b *Sequence, i, j int) bool {
	ca, cb := a.code[i], b.code[j]
	if ca == CodeN || cb == CodeN {
		return false
	}
	switch {
	case ca == CodeA && cb == CodeU, ca == CodeU && cb == CodeA:
		return true
	case ca == CodeC && cb == CodeG, ca == CodeG && cb == CodeC:
		return true
	case ca == CodeG && cb == CodeU, ca == CodeU && cb == CodeG:
		return true
	default:
		return false
	}
}

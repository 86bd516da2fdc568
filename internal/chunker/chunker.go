// Package chunker splits extracted document text into overlapping segments
// suitable for embedding and retrieval.
package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinChunkLength is the smallest trimmed chunk kept in the output. Anything
// shorter carries too little meaning to be useful retrieval context.
const MinChunkLength = 50

// separators is the split priority: paragraph break, line break, sentence
// boundary, word boundary, and finally a hard character split.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Split divides text into chunks of at most targetSize runes, with adjacent
// chunks sharing up to overlap runes of boundary context. It prefers the
// coarsest separator that keeps pieces within targetSize and recurses to
// finer separators for oversized pieces. The output is deterministic for
// identical inputs.
//
// Empty or whitespace-only input yields an empty result, not an error.
func Split(text string, targetSize, overlap int) ([]string, error) {
	if targetSize <= 0 {
		return nil, fmt.Errorf("target size must be positive, got %d", targetSize)
	}
	if overlap < 0 || overlap >= targetSize {
		return nil, fmt.Errorf("overlap must be in [0, %d), got %d", targetSize, overlap)
	}

	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	raw := splitRecursive(text, separators, targetSize, overlap)

	chunks := make([]string, 0, len(raw))
	for _, c := range raw {
		if utf8.RuneCountInString(strings.TrimSpace(c)) > MinChunkLength {
			chunks = append(chunks, c)
		}
	}
	return chunks, nil
}

// splitRecursive splits text on the first separator from seps that occurs in
// it, merges pieces that fit, and recurses with finer separators for pieces
// that don't.
func splitRecursive(text string, seps []string, targetSize, overlap int) []string {
	sep := ""
	var rest []string
	for i, s := range seps {
		if s == "" {
			sep = ""
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}

	if sep == "" {
		// No separator left: hard split at the character boundary.
		return forceSplit(text, targetSize, overlap)
	}

	var final []string
	var good []string
	for _, piece := range strings.Split(text, sep) {
		if piece == "" {
			continue
		}
		if utf8.RuneCountInString(piece) < targetSize {
			good = append(good, piece)
			continue
		}
		// Oversized piece: flush what fits, then recurse into it.
		if len(good) > 0 {
			final = append(final, mergePieces(good, sep, targetSize, overlap)...)
			good = nil
		}
		if len(rest) == 0 {
			final = append(final, forceSplit(piece, targetSize, overlap)...)
		} else {
			final = append(final, splitRecursive(piece, rest, targetSize, overlap)...)
		}
	}
	if len(good) > 0 {
		final = append(final, mergePieces(good, sep, targetSize, overlap)...)
	}
	return final
}

// mergePieces joins consecutive pieces with sep into chunks of at most
// targetSize runes. When a chunk is emitted, pieces are dropped from the
// front until at most overlap runes remain to seed the next chunk.
func mergePieces(pieces []string, sep string, targetSize, overlap int) []string {
	sepLen := utf8.RuneCountInString(sep)

	var chunks []string
	var current []string
	total := 0

	for _, p := range pieces {
		pLen := utf8.RuneCountInString(p)
		join := 0
		if len(current) > 0 {
			join = sepLen
		}

		if total+pLen+join > targetSize && len(current) > 0 {
			if c := strings.TrimSpace(strings.Join(current, sep)); c != "" {
				chunks = append(chunks, c)
			}
			// Shed leading pieces until the retained tail fits the overlap
			// budget and leaves room for the incoming piece.
			for len(current) > 0 &&
				(total > overlap || (total+pLen+sepLen > targetSize && total > 0)) {
				drop := utf8.RuneCountInString(current[0])
				if len(current) > 1 {
					drop += sepLen
				}
				total -= drop
				current = current[1:]
			}
		}

		current = append(current, p)
		total += pLen
		if len(current) > 1 {
			total += sepLen
		}
	}

	if c := strings.TrimSpace(strings.Join(current, sep)); c != "" {
		chunks = append(chunks, c)
	}
	return chunks
}

// forceSplit cuts text into fixed-size rune windows advancing by
// targetSize-overlap each step. Last resort for text with no separators.
func forceSplit(text string, targetSize, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= targetSize {
		return []string{text}
	}

	stride := targetSize - overlap
	var chunks []string
	for start := 0; start < len(runes); start += stride {
		end := start + targetSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

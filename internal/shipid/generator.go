package shipid

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// idPrefix keeps shipment ids recognizable on waybills and in support calls.
const idPrefix = "FRT-"

// idLength is the number of characters after the prefix.
const idLength = 10

// alphabet avoids 0/O and 1/I/L to keep ids readable over the phone.
const alphabet = "23456789ABCDEFGHJKMNPQRSTVWXYZ"

// maxAttempts bounds collision retries before escalating. With 30^10
// combinations a collision is never expected in practice.
const maxAttempts = 5

// ExistsFunc reports whether a shipment id is already present in the store.
type ExistsFunc func(ctx context.Context, shipmentID string) (bool, error)

// Generator mints unique human-readable shipment ids, retrying against
// the store on the off chance of a collision.
type Generator struct {
	exists  ExistsFunc
	entropy func() [16]byte
}

// New creates a Generator backed by the given existence check.
func New(exists ExistsFunc) *Generator {
	return &Generator{
		exists:  exists,
		entropy: func() [16]byte { return [16]byte(uuid.New()) },
	}
}

// Next returns a shipment id not present in the store.
func (g *Generator) Next(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		id := format(g.entropy())
		taken, err := g.exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("shipid: check %s: %w", id, err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("shipid: exhausted %d attempts", maxAttempts)
}

// format maps raw entropy onto the readable alphabet.
func format(raw [16]byte) string {
	buf := make([]byte, idLength)
	for i := 0; i < idLength; i++ {
		buf[i] = alphabet[int(raw[i])%len(alphabet)]
	}
	return idPrefix + string(buf)
}

package envelope

import "encoding/binary"

// Byte layout of an envelope blob:
//
//	numRecipients uint16 LE
//	ephemeralPub  [32]byte
//	recipient[0]  fingerprint(7) || encSecret(32)
//	...
//	recipient[n-1]
//	gcmBody       ciphertext || 16-byte GCM tag
//
// This mirrors the offset-arithmetic style of a fixed binary.LittleEndian
// packet, generalized to a recipient-count-dependent length.
const (
	numRecipientsSize = 2
	curvePubSize      = 32
	fingerprintSize   = 7
	encSecretSize     = 32
	recordSize        = fingerprintSize + encSecretSize
	headerSize        = numRecipientsSize + curvePubSize
	gcmTagSize        = 16
)

// record is one recipient's row in the table: the fingerprint used to find
// it and the CTR-wrapped payload secret.
type record struct {
	fingerprint [fingerprintSize]byte
	encSecret   [encSecretSize]byte
}

func minBlobSize(numRecipients int) int {
	return headerSize + recordSize*numRecipients + gcmTagSize
}

// buildBlob assembles the wire format from its parts.
func buildBlob(ephemeralPub [curvePubSize]byte, records []record, gcmBody []byte) []byte {
	out := make([]byte, 0, headerSize+len(records)*recordSize+len(gcmBody))

	var numBuf [numRecipientsSize]byte
	binary.LittleEndian.PutUint16(numBuf[:], uint16(len(records)))
	out = append(out, numBuf[:]...)
	out = append(out, ephemeralPub[:]...)

	for _, r := range records {
		out = append(out, r.fingerprint[:]...)
		out = append(out, r.encSecret[:]...)
	}
	out = append(out, gcmBody...)
	return out
}

// parseBlob validates and splits a blob into its component fields. It never
// allocates more than the input's own length and performs the same checks
// regardless of where a fingerprint match will later be found, so that
// malformed-blob rejection itself leaks nothing about recipient membership.
func parseBlob(blob []byte) (ephemeralPub [curvePubSize]byte, records []record, gcmBody []byte, err error) {
	if len(blob) < headerSize {
		return ephemeralPub, nil, nil, ErrTruncatedBlob
	}

	numRecipients := binary.LittleEndian.Uint16(blob[0:numRecipientsSize])
	copy(ephemeralPub[:], blob[numRecipientsSize:headerSize])

	if numRecipients == 0 {
		return ephemeralPub, nil, nil, ErrInvalidBlob
	}

	need := minBlobSize(int(numRecipients))
	if len(blob) < need {
		return ephemeralPub, nil, nil, ErrTruncatedBlob
	}

	records = make([]record, numRecipients)
	offset := headerSize
	for i := range records {
		copy(records[i].fingerprint[:], blob[offset:offset+fingerprintSize])
		copy(records[i].encSecret[:], blob[offset+fingerprintSize:offset+recordSize])
		offset += recordSize
	}

	gcmBody = blob[offset:]
	return ephemeralPub, records, gcmBody, nil
}

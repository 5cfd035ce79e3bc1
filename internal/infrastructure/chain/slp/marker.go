package slp

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

const (
	tokenTypeFungible = 0x01
	tokenIDLength     = 32
	// maxSendOutputs is the max number of outputs a SEND marker can assign
	// tokens to.
	maxSendOutputs = 19
)

var (
	lokadID        = []byte("SLP\x00")
	sendTxType     = []byte("SEND")
	tokenTypeBytes = []byte{tokenTypeFungible}

	// ErrInvalidMarker is returned when parsing a script that is not a valid
	// SEND marker.
	ErrInvalidMarker = errors.New("invalid token marker")
)

// buildSendMarker returns the OP_RETURN script moving the given token amounts
// to the outputs following the marker, in order.
// Every field is an explicit data push, including the single byte token type
// that a txscript.ScriptBuilder would encode as OP_1.
func buildSendMarker(tokenID string, amounts []uint64) ([]byte, error) {
	id, err := hex.DecodeString(tokenID)
	if err != nil {
		return nil, fmt.Errorf("%w: token id: %s", ErrInvalidMarker, err)
	}
	if len(id) != tokenIDLength {
		return nil, fmt.Errorf(
			"%w: token id must be %d bytes", ErrInvalidMarker, tokenIDLength,
		)
	}
	if len(amounts) <= 0 || len(amounts) > maxSendOutputs {
		return nil, fmt.Errorf(
			"%w: number of amounts must be in range [1, %d]",
			ErrInvalidMarker, maxSendOutputs,
		)
	}

	buf := bytes.NewBuffer([]byte{txscript.OP_RETURN})
	pushes := [][]byte{lokadID, tokenTypeBytes, sendTxType, id}
	for _, amount := range amounts {
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, amount)
		pushes = append(pushes, b)
	}
	for _, data := range pushes {
		buf.WriteByte(byte(len(data)))
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// parseSendMarker is the inverse of buildSendMarker.
func parseSendMarker(script []byte) (string, []uint64, error) {
	if len(script) <= 0 || script[0] != txscript.OP_RETURN {
		return "", nil, fmt.Errorf("%w: missing OP_RETURN", ErrInvalidMarker)
	}

	pushes := make([][]byte, 0)
	for i := 1; i < len(script); {
		size := int(script[i])
		if size < txscript.OP_DATA_1 || size > txscript.OP_DATA_75 ||
			i+1+size > len(script) {
			return "", nil, fmt.Errorf("%w: malformed push", ErrInvalidMarker)
		}
		pushes = append(pushes, script[i+1:i+1+size])
		i += 1 + size
	}

	if len(pushes) < 5 ||
		!bytes.Equal(pushes[0], lokadID) ||
		!bytes.Equal(pushes[1], tokenTypeBytes) ||
		!bytes.Equal(pushes[2], sendTxType) ||
		len(pushes[3]) != tokenIDLength {
		return "", nil, fmt.Errorf("%w: not a SEND marker", ErrInvalidMarker)
	}

	amounts := make([]uint64, 0, len(pushes)-4)
	for _, p := range pushes[4:] {
		if len(p) != 8 {
			return "", nil, fmt.Errorf("%w: malformed amount", ErrInvalidMarker)
		}
		amounts = append(amounts, binary.BigEndian.Uint64(p))
	}
	return hex.EncodeToString(pushes[3]), amounts, nil
}

package avm

import (
	"bytes"
	"encoding/binary"
	"sort"
)

const (
	codecVersion uint16 = 0

	baseTxTypeID         uint32 = 0
	transferInputTypeID  uint32 = 5
	transferOutputTypeID uint32 = 7
	credentialTypeID     uint32 = 9

	maxMemoLen = 256
)

type transferInput struct {
	txID        [32]byte
	outputIndex uint32
	assetID     [32]byte
	amount      uint64
}

type transferOutput struct {
	assetID [32]byte
	amount  uint64
	address []byte
}

func (in transferInput) less(other transferInput) bool {
	if cmp := bytes.Compare(in.txID[:], other.txID[:]); cmp != 0 {
		return cmp < 0
	}
	return in.outputIndex < other.outputIndex
}

func (in transferInput) pack(p *packer) {
	p.Write(in.txID[:])
	p.packUint32(in.outputIndex)
	p.Write(in.assetID[:])
	p.packUint32(transferInputTypeID)
	p.packUint64(in.amount)
	// single signature at index 0
	p.packUint32(1)
	p.packUint32(0)
}

func (out transferOutput) pack(p *packer) {
	p.Write(out.assetID[:])
	p.packUint32(transferOutputTypeID)
	p.packUint64(out.amount)
	// locktime
	p.packUint64(0)
	// threshold
	p.packUint32(1)
	p.packUint32(1)
	p.Write(out.address)
}

func (out transferOutput) serialize() []byte {
	p := &packer{}
	out.pack(p)
	return p.Bytes()
}

// baseTx is the wire representation of a balance transfer. The node only
// accepts outputs sorted by their serialization and inputs sorted by the
// UTXO they spend, see sort.
type baseTx struct {
	networkID    uint32
	blockchainID [32]byte
	inputs       []transferInput
	outputs      []transferOutput
	memo         []byte
}

// sort puts inputs and outputs in canonical order.
func (tx *baseTx) sort() {
	sort.SliceStable(tx.inputs, func(i, j int) bool {
		return tx.inputs[i].less(tx.inputs[j])
	})
	sort.SliceStable(tx.outputs, func(i, j int) bool {
		return bytes.Compare(tx.outputs[i].serialize(), tx.outputs[j].serialize()) < 0
	})
}

type packer struct {
	bytes.Buffer
}

func (p *packer) packUint16(v uint16) {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	p.Write(b)
}

func (p *packer) packUint32(v uint32) {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	p.Write(b)
}

func (p *packer) packUint64(v uint64) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	p.Write(b)
}

func (p *packer) packBytes(b []byte) {
	p.packUint32(uint32(len(b)))
	p.Write(b)
}

// unsignedBytes returns the serialization every credential signs the hash
// of.
func (tx *baseTx) unsignedBytes() []byte {
	p := &packer{}
	p.packUint16(codecVersion)
	p.packUint32(baseTxTypeID)
	p.packUint32(tx.networkID)
	p.Write(tx.blockchainID[:])

	p.packUint32(uint32(len(tx.outputs)))
	for _, out := range tx.outputs {
		out.pack(p)
	}

	p.packUint32(uint32(len(tx.inputs)))
	for _, in := range tx.inputs {
		in.pack(p)
	}

	p.packBytes(tx.memo)
	return p.Bytes()
}

// signedBytes appends the credentials to the unsigned bytes, one per input
// in wire order.
func (tx *baseTx) signedBytes(unsigned []byte, sigs [][]byte) []byte {
	p := &packer{}
	p.Write(unsigned)
	p.packUint32(uint32(len(sigs)))
	for _, sig := range sigs {
		p.packUint32(credentialTypeID)
		p.packUint32(1)
		p.Write(sig)
	}
	return p.Bytes()
}

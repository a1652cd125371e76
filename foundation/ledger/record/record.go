// Package record provides the jellyfish protocol's own transaction
// content: insert a record, or modify or remove a record added by an
// earlier transaction.
package record

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/signature"
)

// Method is the operation a transaction performs on the ledger.
type Method int

const (
	// Insert adds a new record.
	Insert Method = iota
	// Modify replaces a previously added record.
	Modify
	// Remove deletes a previously added record.
	Remove
)

// methodNames are the wire names of the methods.
var methodNames = map[Method]string{
	Insert: "Insert",
	Modify: "Modify",
	Remove: "Remove",
}

// String returns the wire name of the method.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// AppendBytes appends the canonical one-byte encoding of the method.
func (m Method) AppendBytes(buf []byte) []byte {
	switch m {
	case Insert:
		return append(buf, 0x01)
	case Modify:
		return append(buf, 0x02)
	default:
		return append(buf, 0x04)
	}
}

// MarshalText implements the encoding.TextMarshaler interface.
func (m Method) MarshalText() ([]byte, error) {
	name, ok := methodNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown method %d", int(m))
	}
	return []byte(name), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (m *Method) UnmarshalText(text []byte) error {
	for method, name := range methodNames {
		if string(text) == name {
			*m = method
			return nil
		}
	}

	return fmt.Errorf("unknown method %q", text)
}

// =============================================================================

// TransactionID points at a transaction inside an earlier block, used as
// the target of Modify and Remove entries.
type TransactionID struct {
	// Height of the block containing the target transaction.
	Height uint64 `json:"height"`
	// Sign of the target transaction.
	Sign signature.Signature `json:"sign"`
}

// AppendBytes appends the canonical encoding: height little endian 8
// bytes, then the raw signature.
func (id TransactionID) AppendBytes(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, id.Height)
	return id.Sign.AppendBytes(buf)
}

// =============================================================================

// Entry is the content of a jellyfish transaction. Build one with Insert,
// Modify, or Remove; the zero value is not a valid entry.
type Entry struct {
	method Method
	record string
	target *TransactionID
}

// entryJSON is the wire shape of an entry. Absent fields are omitted.
type entryJSON struct {
	Method Method         `json:"method"`
	Record *string        `json:"record,omitempty"`
	Target *TransactionID `json:"target,omitempty"`
}

// NewInsert creates content that adds a new record.
func NewInsert(record string) Entry {
	return Entry{
		method: Insert,
		record: record,
	}
}

// NewModify creates content that replaces the record added by the target
// transaction.
func NewModify(record string, target TransactionID) Entry {
	return Entry{
		method: Modify,
		record: record,
		target: &target,
	}
}

// NewRemove creates content that deletes the record added by the target
// transaction.
func NewRemove(target TransactionID) Entry {
	return Entry{
		method: Remove,
		target: &target,
	}
}

// Method returns the entry's operation.
func (e Entry) Method() Method {
	return e.method
}

// Record returns the record payload. It is absent for Remove entries.
func (e Entry) Record() (string, bool) {
	return e.record, e.method != Remove
}

// Target returns the target transaction. It is absent for Insert entries.
func (e Entry) Target() (TransactionID, bool) {
	if e.target == nil {
		return TransactionID{}, false
	}
	return *e.target, true
}

// AppendBytes appends the canonical encoding: method byte, record bytes
// when present, target bytes when present.
func (e Entry) AppendBytes(buf []byte) []byte {
	buf = e.method.AppendBytes(buf)

	if record, ok := e.Record(); ok {
		buf = append(buf, record...)
	}

	if target, ok := e.Target(); ok {
		buf = target.AppendBytes(buf)
	}

	return buf
}

// MarshalJSON implements the json.Marshaler interface.
func (e Entry) MarshalJSON() ([]byte, error) {
	wire := entryJSON{
		Method: e.method,
		Target: e.target,
	}
	if record, ok := e.Record(); ok {
		wire.Record = &record
	}

	return json.Marshal(wire)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var wire entryJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	switch wire.Method {
	case Insert:
		if wire.Record == nil {
			return fmt.Errorf("insert entry requires a record")
		}
		*e = NewInsert(*wire.Record)

	case Modify:
		if wire.Record == nil || wire.Target == nil {
			return fmt.Errorf("modify entry requires a record and a target")
		}
		*e = NewModify(*wire.Record, *wire.Target)

	case Remove:
		if wire.Target == nil {
			return fmt.Errorf("remove entry requires a target")
		}
		*e = NewRemove(*wire.Target)

	default:
		return fmt.Errorf("unknown method %q", wire.Method)
	}

	return nil
}

package digest_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/digest"
)

const abcHex = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

var abcBytes = []byte{
	186, 120, 22, 191, 143, 1, 207, 234, 65, 65, 64, 222, 93, 174, 34, 35,
	176, 3, 97, 163, 150, 23, 122, 156, 180, 16, 255, 97, 242, 0, 21, 173,
}

func Test_Hash(t *testing.T) {
	d := digest.Hash([]byte("abc"))

	if !bytes.Equal(d.Bytes(), abcBytes) {
		t.Fatalf("got %x, exp %x", d.Bytes(), abcBytes)
	}

	if d2 := digest.Hash([]byte("abc")); !d.Equal(d2) {
		t.Fatal("hashing the same input twice should yield the same digest")
	}
}

func Test_AppendBytes(t *testing.T) {
	d := digest.Hash([]byte("abc"))

	if got := d.AppendBytes(nil); !bytes.Equal(got, abcBytes) {
		t.Fatalf("canonical bytes should be the raw digest, got %x", got)
	}
}

func Test_Marshal(t *testing.T) {
	d := digest.Hash([]byte("abc"))

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("should be able to marshal a digest: %s", err)
	}

	if exp := `"` + abcHex + `"`; string(data) != exp {
		t.Fatalf("got %s, exp %s", data, exp)
	}

	var back digest.Digest
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("should be able to unmarshal a digest: %s", err)
	}

	if !back.Equal(d) {
		t.Fatal("unmarshal should restore the original digest")
	}
}

func Test_UnmarshalBadLength(t *testing.T) {
	cases := map[string]string{
		"too short":   `"` + abcHex[:62] + `"`,
		"too long":    `"` + abcHex + `00"`,
		"invalid hex": `"` + abcHex[:62] + `:z"`,
	}

	for name, doc := range cases {
		var d digest.Digest
		if err := json.Unmarshal([]byte(doc), &d); err == nil {
			t.Errorf("%s: expected a format error", name)
		}
	}
}

package signature_test

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Amelia10007/jellyfish-chain/foundation/ledger/signature"
)

const (
	nameHex = "8c23ac26a17daffc01bcc8dddb8dfee17666db1c5e7098a26154071f51da97f0"
	signHex = "f980f643a1af9602564fb1da2fd296bc48e546d0958124c2a466756eb35bcf9e145a0b8eea383672d54ea9f10b67011cbb1df7896dd796de1ff326fbc39edd08"
)

// =============================================================================

func Test_SignatureMarshal(t *testing.T) {
	var sign signature.Signature
	if err := sign.UnmarshalText([]byte(signHex)); err != nil {
		t.Fatalf("Should be able to parse a signature: %s", err)
	}

	data, err := json.Marshal(sign)
	if err != nil {
		t.Fatalf("Should be able to marshal a signature: %s", err)
	}

	if exp := `"` + signHex + `"`; string(data) != exp {
		t.Fatalf("Signature should serialize as a bare hex string, got %s", data)
	}

	var back signature.Signature
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Should be able to unmarshal a signature: %s", err)
	}

	if !back.Equal(sign) {
		t.Fatal("Unmarshal should restore the original signature.")
	}
}

func Test_SignatureBadLength(t *testing.T) {
	cases := map[string]string{
		"too short": `"` + signHex[:126] + `"`,
		"too long":  `"` + signHex + `00"`,
		"not hex":   `"` + strings.Repeat("zz", 64) + `"`,
	}

	for name, doc := range cases {
		var sign signature.Signature
		if err := json.Unmarshal([]byte(doc), &sign); err == nil {
			t.Errorf("%s: expected a format error", name)
		}
	}
}

// =============================================================================

func Test_AccountMarshal(t *testing.T) {
	doc := `{"name":"` + nameHex + `"}`

	var account signature.Account
	if err := json.Unmarshal([]byte(doc), &account); err != nil {
		t.Fatalf("Should be able to unmarshal an account: %s", err)
	}

	if account.String() != nameHex {
		t.Fatalf("got %s, exp %s", account, nameHex)
	}

	data, err := json.Marshal(account)
	if err != nil {
		t.Fatalf("Should be able to marshal an account: %s", err)
	}

	if string(data) != doc {
		t.Fatalf("got %s, exp %s", data, doc)
	}
}

func Test_AccountBadLength(t *testing.T) {
	cases := map[string]string{
		"too short": `{"name":"` + nameHex[:62] + `"}`,
		"too long":  `{"name":"` + nameHex + `00"}`,
	}

	for name, doc := range cases {
		var account signature.Account
		if err := json.Unmarshal([]byte(doc), &account); err == nil {
			t.Errorf("%s: expected a format error", name)
		}
	}
}

// =============================================================================

func Test_SignVerify(t *testing.T) {
	sa, err := signature.Generate(rand.Reader)
	if err != nil {
		t.Fatalf("Should be able to generate an account: %s", err)
	}

	msg := []byte("the ultimate answer=42")
	sign := sa.Sign(msg)

	if err := sa.Public().Verify(msg, sign); err != nil {
		t.Fatalf("Should be able to verify a genuine signature: %s", err)
	}

	if err := sa.Public().Verify([]byte("the ultimate answer=43"), sign); err == nil {
		t.Fatal("A corrupted message should fail verification.")
	}

	corrupt := sa.Sign([]byte("the ultimate answer=43"))
	if err := sa.Public().Verify(msg, corrupt); err == nil {
		t.Fatal("A corrupted signature should fail verification.")
	}
}

func Test_BackupRestore(t *testing.T) {
	sa, err := signature.Generate(rand.Reader)
	if err != nil {
		t.Fatalf("Should be able to generate an account: %s", err)
	}

	restored, err := signature.Restore(sa.Backup())
	if err != nil {
		t.Fatalf("Should be able to restore from a backup: %s", err)
	}

	msg := []byte("hello")
	if !restored.Sign(msg).Equal(sa.Sign(msg)) {
		t.Fatal("A restored account should produce identical signatures.")
	}

	if !restored.Public().Equal(sa.Public()) {
		t.Fatal("A restored account should keep its public identity.")
	}
}

func Test_RestoreRejectsCorruptBackup(t *testing.T) {
	sa, err := signature.Generate(rand.Reader)
	if err != nil {
		t.Fatalf("Should be able to generate an account: %s", err)
	}

	if _, err := signature.Restore(sa.Backup()[:63]); err == nil {
		t.Fatal("A truncated backup should be rejected.")
	}

	backup := sa.Backup()
	backup[40] ^= 0xFF
	if _, err := signature.Restore(backup); err == nil {
		t.Fatal("A backup with a mismatched public key should be rejected.")
	}
}

func Test_SecretAccountRedacted(t *testing.T) {
	sa, err := signature.Generate(rand.Reader)
	if err != nil {
		t.Fatalf("Should be able to generate an account: %s", err)
	}

	seed := sa.Backup()[:32]
	if bytes.Contains([]byte(sa.String()), seed) {
		t.Fatal("String must not leak private key material.")
	}
}

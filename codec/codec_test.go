package codec

import (
	"testing"

	"github.com/certen/ledger-core/capability"
	"github.com/certen/ledger-core/model"
)

func TestJSONBytesHexRoundTrip(t *testing.T) {
	hasher := capability.NewSHA256Hasher()
	coin, err := model.NewCoin().WithOutputData(model.Digest{0x07}, 2, 77)
	if err != nil {
		t.Fatalf("WithOutputData: %v", err)
	}
	coin, err = coin.Finalize(hasher)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	jsonBytes, err := ToJSON(coin)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var viaJSON model.Coin
	if err := FromJSON(jsonBytes, &viaJSON); err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if viaJSON.ID != coin.ID {
		t.Fatalf("JSON round-trip changed id")
	}

	cborBytes, err := ToBytes(coin)
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	var viaCBOR model.Coin
	if err := FromBytes(cborBytes, &viaCBOR); err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if viaCBOR.ID != coin.ID {
		t.Fatalf("CBOR round-trip changed id")
	}

	hexStr, err := ToHex(coin)
	if err != nil {
		t.Fatalf("ToHex: %v", err)
	}
	var viaHex model.Coin
	if err := FromHex(hexStr, &viaHex); err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	if viaHex.ID != coin.ID {
		t.Fatalf("hex round-trip changed id")
	}
}

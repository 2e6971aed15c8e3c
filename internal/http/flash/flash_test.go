package flash

import (
	"testing"

	"orderdesk/internal/view"
)

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec([]byte("secret"), "flash", false)
	v, err := c.Encode(view.Flash{Kind: view.FlashError, Message: "Failed to delete order. Please try again."})
	if err != nil {
		t.Fatal(err)
	}
	f, err := c.Decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Kind != view.FlashError || f.Message != "Failed to delete order. Please try again." {
		t.Fatalf("unexpected flash %+v", f)
	}
}

func TestCodec_RejectsTampering(t *testing.T) {
	c := NewCodec([]byte("secret"), "flash", false)
	v, _ := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "hi"})

	other := NewCodec([]byte("other"), "flash", false)
	if _, err := other.Decode(v); err != ErrInvalid {
		t.Fatalf("expected invalid, got %v", err)
	}
	for _, bad := range []string{"", "abc", "a.b.c", v + "x"} {
		if _, err := c.Decode(bad); err != ErrInvalid {
			t.Fatalf("%q: expected invalid, got %v", bad, err)
		}
	}
	empty, _ := c.Encode(view.Flash{Kind: view.FlashInfo})
	if _, err := c.Decode(empty); err != ErrInvalid {
		t.Fatalf("empty message accepted")
	}
}

package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get(missing) = %v, %v; want miss", ok, err)
	}

	if err := c.Set(ctx, "key", []byte("payload"), 0); err != nil {
		t.Fatal(err)
	}
	data, ok, err := c.Get(ctx, "key")
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q", data)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("Get after Delete should miss")
	}
	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "short"); ok {
		t.Error("expired entry should miss")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Error("null cache should always miss")
	}
}

func TestElementsKey(t *testing.T) {
	opts := ElementsKeyOpts{Focal: "Power Rod", Filtered: true, Categories: []string{"trade", "craft"}}

	k1 := ElementsKey("hash-a", opts)
	k2 := ElementsKey("hash-a", ElementsKeyOpts{Focal: "Power Rod", Filtered: true, Categories: []string{"craft", "trade"}})
	if k1 != k2 {
		t.Error("category order should not change the key")
	}

	if ElementsKey("hash-b", opts) == k1 {
		t.Error("dataset hash should change the key")
	}
	if ElementsKey("hash-a", ElementsKeyOpts{Focal: "Power Rod"}) == k1 {
		t.Error("unfiltered and filtered builds must not share a key")
	}

	// Absent filter vs empty filter are distinct cache entries.
	absent := ElementsKey("h", ElementsKeyOpts{Focal: "X", Filtered: false})
	empty := ElementsKey("h", ElementsKeyOpts{Focal: "X", Filtered: true, Categories: []string{}})
	if absent == empty {
		t.Error("absent and empty selections must not share a key")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("data"))
	if len(h) != 64 {
		t.Errorf("hash length = %d, want 64", len(h))
	}
	if h == Hash([]byte("other")) {
		t.Error("different inputs should hash differently")
	}
}

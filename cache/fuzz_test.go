package cache

import (
	"strings"
	"testing"
	"time"
)

// Fuzz basic Set/Get/Delete semantics under arbitrary string inputs.
// Cap key/value lengths to avoid pathological memory usage during fuzzing.
func FuzzCache_SetGetDelete(f *testing.F) {
	f.Add("", "")
	f.Add("a", "1")
	f.Add("diagram:d1", "{}")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c, err := New[string](Options[string]{
			DefaultTTL:    time.Minute,
			MaxSize:       16,
			SweepInterval: time.Hour,
			Sizer:         func(s string) int { return len(s) },
		})
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = c.Close() })

		c.Set(k, v)
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("after Set/Get: want %q, got %q ok=%v", v, got, ok)
		}
		if st := c.Stats(); st.ApproximateSizeBytes != int64(len(k)+len(v)) {
			t.Fatalf("bytes = %d, want %d", st.ApproximateSizeBytes, len(k)+len(v))
		}

		c.Set(k, v+v)
		if got, _ := c.Get(k); got != v+v {
			t.Fatalf("overwrite: want %q, got %q", v+v, got)
		}
		if c.Len() != 1 {
			t.Fatalf("Len = %d after overwrite", c.Len())
		}

		if !c.Delete(k) {
			t.Fatal("Delete must return true")
		}
		if c.Delete(k) {
			t.Fatal("second Delete must return false")
		}
		if _, ok := c.Get(k); ok {
			t.Fatal("key must be absent after Delete")
		}
		if st := c.Stats(); st.ApproximateSizeBytes != 0 {
			t.Fatalf("bytes = %d after Delete", st.ApproximateSizeBytes)
		}
	})
}

package metrics

import "testing"

// BenchmarkCollector_FileCompiled measures the overhead of recording
// a compilation (atomic operations).
func BenchmarkCollector_FileCompiled(b *testing.B) {
	c := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.FileCompiled(32768)
	}
}

// BenchmarkCollector_Snapshot measures the cost of taking a snapshot.
func BenchmarkCollector_Snapshot(b *testing.B) {
	c := New()
	c.FileCompiled(1024)
	c.RecordError("test")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Snapshot()
	}
}

// BenchmarkCollector_Parallel measures contention on the request counter.
func BenchmarkCollector_Parallel(b *testing.B) {
	c := New()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.RequestServed()
		}
	})
}

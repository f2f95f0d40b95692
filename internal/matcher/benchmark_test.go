package matcher

import "testing"

// BenchmarkPrefixMatch measures the per-line cost of a matching line.
func BenchmarkPrefixMatch(b *testing.B) {
	m := New("2024-01-01")
	line := "2024-01-01 12:00:00 INFO request served path=/api/health status=200\n"

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Match(line)
	}
}

// BenchmarkPrefixMiss measures the per-line cost of a non-matching line.
func BenchmarkPrefixMiss(b *testing.B) {
	m := New("2024-01-01")
	line := "2024-01-02 12:00:00 INFO request served path=/api/health status=200\n"

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Match(line)
	}
}

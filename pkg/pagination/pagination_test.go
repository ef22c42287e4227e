package pagination

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	if got := Normalize(Params{Page: -3, Size: 0}); got.Page != 0 || got.Size != DefaultSize {
		t.Fatalf("unexpected normalization %+v", got)
	}
	if got := Normalize(Params{Page: 2, Size: 500}); got.Size != MaxSize {
		t.Fatalf("expected size capped at %d, got %d", MaxSize, got.Size)
	}
}

func TestFromQuery(t *testing.T) {
	t.Parallel()

	if got := FromQuery("3", "50"); got.Page != 3 || got.Size != 50 {
		t.Fatalf("unexpected params %+v", got)
	}
	if got := FromQuery("garbage", ""); got.Page != 0 || got.Size != DefaultSize {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	if got := TotalPages(0, 20); got != 0 {
		t.Fatalf("expected 0 pages, got %d", got)
	}
	if got := TotalPages(41, 20); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}
	if got := TotalPages(40, 20); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
}

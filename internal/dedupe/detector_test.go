package dedupe

import (
	"testing"

	"github.com/payops/validator/internal/table"
)

func nameTable(t *testing.T, names ...string) *table.Table {
	t.Helper()
	records := [][]string{{"Name"}}
	for _, n := range names {
		records = append(records, []string{n})
	}
	tbl, err := table.FromRecords(records)
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	return tbl
}

func TestFindDuplicates_NearMatch(t *testing.T) {
	tbl := nameTable(t, "Jon Smith", "John Smith", "Completely Unrelated")

	pairs := FindDuplicates(tbl, "Name")
	if len(pairs) != 1 {
		t.Fatalf("pairs = %v, want exactly one", pairs)
	}
	p := pairs[0]
	if p.I != 0 || p.J != 1 {
		t.Errorf("pair indices = (%d, %d), want (0, 1)", p.I, p.J)
	}
	if p.NameA != "Jon Smith" || p.NameB != "John Smith" {
		t.Errorf("pair names = (%q, %q)", p.NameA, p.NameB)
	}
}

func TestFindDuplicates_ExactMatch(t *testing.T) {
	tbl := nameTable(t, "Alice Jones", "Alice Jones")
	pairs := FindDuplicates(tbl, "Name")
	if len(pairs) != 1 {
		t.Fatalf("pairs = %v, want exactly one", pairs)
	}
}

func TestFindDuplicates_DistinctNames(t *testing.T) {
	tbl := nameTable(t, "Alice Jones", "Bob Carter", "Carol Diaz")
	if pairs := FindDuplicates(tbl, "Name"); len(pairs) != 0 {
		t.Errorf("pairs = %v, want none", pairs)
	}
}

func TestFindDuplicates_NullsSkipped(t *testing.T) {
	tbl := nameTable(t, "Jon Smith", "", "John Smith")
	pairs := FindDuplicates(tbl, "Name")
	if len(pairs) != 1 {
		t.Fatalf("pairs = %v, want exactly one", pairs)
	}
	if pairs[0].I != 0 || pairs[0].J != 2 {
		t.Errorf("pair indices = (%d, %d), want (0, 2)", pairs[0].I, pairs[0].J)
	}
}

func TestFindDuplicates_MissingColumn(t *testing.T) {
	tbl := nameTable(t, "Jon Smith", "John Smith")
	if pairs := FindDuplicates(tbl, "Full Name"); pairs != nil {
		t.Errorf("pairs = %v, want nil when column is absent", pairs)
	}
}

func TestFindDuplicates_Ordered(t *testing.T) {
	tbl := nameTable(t, "Ann Lee", "Anne Lee", "Ann Leigh")
	pairs := FindDuplicates(tbl, "Name")
	for k := 1; k < len(pairs); k++ {
		prev, cur := pairs[k-1], pairs[k]
		if cur.I < prev.I || (cur.I == prev.I && cur.J <= prev.J) {
			t.Errorf("pairs out of order at %d: %+v then %+v", k, prev, cur)
		}
	}
}
